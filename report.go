package launchdash

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/raykavin/launchdash/pkg/core"
	"github.com/raykavin/launchdash/pkg/view"
	"github.com/samber/lo"
)

const histogramBins = 10

// PrintSummary writes the per-site table, the overall outcome split and a
// histogram of payload masses
func PrintSummary(w io.Writer, ds *core.Dataset) error {
	pie := view.OutcomePie(ds, core.AllSites)
	bounds := ds.PayloadBounds()

	if _, err := fmt.Fprintf(w, "-- LAUNCH SITES --\n%s\n", view.SiteSummaries(ds)); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Launches: %d | Success: %d | Failure: %d | Payload: %.0f - %.0f kg\n",
		pie.Total(), pie.Success, pie.Failure, bounds.Min, bounds.Max); err != nil {
		return err
	}

	if ds.Len() == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "Success rate: %.1f%% (95%% CI %.1f%% - %.1f%%)\n",
		pie.SuccessRate*100, pie.Interval.Lower*100, pie.Interval.Upper*100); err != nil {
		return err
	}

	// A single distinct payload leaves the histogram without a bin width
	if bounds.Max <= bounds.Min {
		return nil
	}

	masses := lo.Map(ds.Records(), func(record core.LaunchRecord, _ int) float64 {
		return record.PayloadMass
	})

	if _, err := fmt.Fprintln(w, "\n-- PAYLOAD MASS (kg) --"); err != nil {
		return err
	}
	hist := histogram.Hist(histogramBins, masses)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}
