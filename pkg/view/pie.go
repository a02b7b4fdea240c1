package view

import (
	"github.com/raykavin/launchdash/pkg/core"
	"github.com/raykavin/launchdash/pkg/metric"
	"github.com/samber/lo"
)

const (
	bootstrapSamples    = 1000
	bootstrapConfidence = 0.95
)

// PieFigure describes the launch outcome pie chart
type PieFigure struct {
	Title       string                   `json:"title"`
	Site        string                   `json:"site"`
	Labels      []string                 `json:"labels"`
	Values      []int                    `json:"values"`
	Success     int                      `json:"success"`
	Failure     int                      `json:"failure"`
	SuccessRate float64                  `json:"success_rate"`
	Interval    metric.BootstrapInterval `json:"interval"`
}

// Total returns the number of launches in the pie
func (p PieFigure) Total() int { return p.Success + p.Failure }

// OutcomePie counts successes and failures for the selected site, or for
// the whole dataset when site is core.AllSites.
func OutcomePie(ds *core.Dataset, site string) PieFigure {
	records := FilterSite(ds.Records(), site)
	success, failure := CountOutcomes(records)

	figure := PieFigure{
		Title:   "Total Success Launches for " + scopeName(site),
		Site:    site,
		Labels:  []string{core.Success.String(), core.Failure.String()},
		Values:  []int{success, failure},
		Success: success,
		Failure: failure,
	}

	if len(records) == 0 {
		return figure
	}

	outcomes := lo.Map(records, func(record core.LaunchRecord, _ int) float64 {
		return float64(record.Outcome.Value())
	})

	figure.SuccessRate = float64(success) / float64(len(records))
	figure.Interval = metric.Bootstrap(outcomes, metric.Mean, bootstrapSamples,
		bootstrapConfidence, metric.DefaultSeed)

	return figure
}
