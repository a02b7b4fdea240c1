package view

import (
	"github.com/StudioSol/set"
	"github.com/raykavin/launchdash/pkg/core"
	"github.com/raykavin/launchdash/pkg/metric"
	"github.com/samber/lo"
)

// Axis labels of the scatter chart
const (
	PayloadAxisLabel = "Payload Mass (kg)"
	OutcomeAxisLabel = "Launch Outcome"
)

// ScatterPoint is one plotted launch
type ScatterPoint struct {
	FlightNumber   int     `json:"flight_number"`
	Site           string  `json:"site"`
	PayloadMass    float64 `json:"x"`
	Outcome        int     `json:"y"`
	BoosterVersion string  `json:"booster_version"`
}

// ScatterSeries groups the points of one booster version for coloring
type ScatterSeries struct {
	Name   string         `json:"name"`
	Points []ScatterPoint `json:"points"`
}

// ScatterFigure describes the payload vs. outcome scatter chart
type ScatterFigure struct {
	Title       string          `json:"title"`
	XLabel      string          `json:"x_label"`
	YLabel      string          `json:"y_label"`
	Selection   core.Selection  `json:"selection"`
	Points      []ScatterPoint  `json:"points"`
	Series      []ScatterSeries `json:"series"`
	Correlation float64         `json:"correlation"`
}

// PayloadScatter plots the launches whose payload mass lies in the selected
// range, restricted to the selected site unless it is core.AllSites.
// Points keep dataset order; booster version only labels them.
func PayloadScatter(ds *core.Dataset, selection core.Selection) ScatterFigure {
	records := FilterSite(FilterPayload(ds.Records(), selection.Payload), selection.Site)

	points := lo.Map(records, func(record core.LaunchRecord, _ int) ScatterPoint {
		return ScatterPoint{
			FlightNumber:   record.FlightNumber,
			Site:           record.Site,
			PayloadMass:    record.PayloadMass,
			Outcome:        record.Outcome.Value(),
			BoosterVersion: record.BoosterVersion,
		}
	})

	masses := lo.Map(points, func(p ScatterPoint, _ int) float64 { return p.PayloadMass })
	outcomes := lo.Map(points, func(p ScatterPoint, _ int) float64 { return float64(p.Outcome) })

	return ScatterFigure{
		Title:       "Payload vs. Launch Outcome for " + scopeName(selection.Site),
		XLabel:      PayloadAxisLabel,
		YLabel:      OutcomeAxisLabel,
		Selection:   selection,
		Points:      points,
		Series:      groupByBooster(points),
		Correlation: metric.Correlation(masses, outcomes),
	}
}

// groupByBooster splits points into one series per booster version, in
// order of first appearance
func groupByBooster(points []ScatterPoint) []ScatterSeries {
	boosters := set.NewLinkedHashSetString()
	for _, point := range points {
		boosters.Add(point.BoosterVersion)
	}

	grouped := lo.GroupBy(points, func(p ScatterPoint) string { return p.BoosterVersion })

	series := make([]ScatterSeries, 0, boosters.Length())
	for booster := range boosters.Iter() {
		series = append(series, ScatterSeries{
			Name:   booster,
			Points: grouped[booster],
		})
	}

	return series
}
