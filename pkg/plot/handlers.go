package plot

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/raykavin/launchdash/pkg/core"
	"github.com/raykavin/launchdash/pkg/view"
	"github.com/samber/lo"
)

var errInvalidSelection = errors.New("invalid selection")

// handleHealth reports the dashboard as healthy once the dataset is loaded
func (c *Chart) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, "%d records", c.dataset.Len()); err != nil {
		c.log.Error("Failed to write health status: ", err)
	}
}

// handleIndex renders the dashboard page
func (c *Chart) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	err := c.indexHTML.Execute(w, map[string]interface{}{
		"title": c.title,
		"sites": c.siteOptions(),
	})
	if err != nil {
		c.log.Error("Template execution failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleOptions describes the dropdown entries and the slider bounds
func (c *Chart) handleOptions(w http.ResponseWriter, _ *http.Request) {
	bounds := c.dataset.PayloadBounds()
	sliderMax := c.sliderMax(bounds)

	c.writeJSON(w, controlOptions{
		Title:       c.title,
		Sites:       c.siteOptions(),
		DefaultSite: core.AllSites,
		Payload: sliderOptions{
			Min:   bounds.Min,
			Max:   sliderMax,
			Step:  c.sliderStep,
			Value: bounds,
			Marks: map[string]float64{
				strconv.FormatFloat(bounds.Min, 'f', -1, 64): bounds.Min,
				strconv.FormatFloat(sliderMax, 'f', -1, 64):  sliderMax,
			},
		},
	})
}

// sliderMax rounds the dataset maximum up to the next whole step above the
// minimum. Range inputs snap to min + k*step, so anything short of that
// leaves the heaviest launches unselectable.
func (c *Chart) sliderMax(bounds core.PayloadRange) float64 {
	if c.sliderStep <= 0 || bounds.Max <= bounds.Min {
		return bounds.Max
	}
	steps := math.Ceil((bounds.Max - bounds.Min) / c.sliderStep)
	return bounds.Min + steps*c.sliderStep
}

// handlePie recomputes the outcome pie for the selected site
func (c *Chart) handlePie(w http.ResponseWriter, r *http.Request) {
	site := siteParam(r)

	c.writeFigure(w, "pie|"+site, c.knownSite(site), func() any {
		return view.OutcomePie(c.dataset, site)
	})
}

// handleScatter recomputes the payload scatter for the selected site and range
func (c *Chart) handleScatter(w http.ResponseWriter, r *http.Request) {
	selection, err := c.parseSelection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := fmt.Sprintf("scatter|%s|%v|%v", selection.Site, selection.Payload.Min, selection.Payload.Max)
	c.writeFigure(w, key, c.knownSite(selection.Site), func() any {
		return view.PayloadScatter(c.dataset, selection)
	})
}

// handleSummary returns the per-site breakdown of the dataset
func (c *Chart) handleSummary(w http.ResponseWriter, _ *http.Request) {
	c.writeFigure(w, "summary", true, func() any {
		return view.SiteSummaries(c.dataset)
	})
}

// handleExport handles CSV export of the records behind the scatter chart
func (c *Chart) handleExport(w http.ResponseWriter, r *http.Request) {
	selection, err := c.parseSelection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records := c.dataset.Select(selection.Filters()...)

	buffer := bytes.NewBuffer(nil)
	csvWriter := csv.NewWriter(buffer)

	if err := csvWriter.Write([]string{
		"flight_number", "launch_site", "payload_mass_kg", "class", "booster_version",
	}); err != nil {
		c.log.Error("Failed writing CSV header: ", err)
		http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
		return
	}

	if err := csvWriter.WriteAll(lo.Map(records, func(record core.LaunchRecord, _ int) []string {
		return record.ToSlice()
	})); err != nil {
		c.log.Error("Failed writing CSV data: ", err)
		http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
		return
	}

	filename := "launches_" + strings.NewReplacer(" ", "_", "/", "_").Replace(selection.Site) + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename="+filename)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buffer.Bytes()); err != nil {
		c.log.Error("Failed writing CSV response: ", err)
	}
}

// siteOptions lists "All Sites" followed by every site of the dataset
func (c *Chart) siteOptions() []siteOption {
	options := []siteOption{{Label: "All Sites", Value: core.AllSites}}
	for _, site := range c.dataset.Sites() {
		options = append(options, siteOption{Label: site, Value: site})
	}
	return options
}

// knownSite reports whether site names the AllSites sentinel or a site of
// the dataset. Figures for any other site are not cached, since the key
// space would be client controlled.
func (c *Chart) knownSite(site string) bool {
	return site == core.AllSites || c.dataset.HasSite(site)
}

// siteParam returns the selected site, defaulting to all sites
func siteParam(r *http.Request) string {
	site := strings.TrimSpace(r.URL.Query().Get("site"))
	if site == "" {
		return core.AllSites
	}
	return site
}

// parseSelection reads site, min and max from the query. Missing bounds
// default to the dataset bounds; reversed bounds are swapped.
func (c *Chart) parseSelection(r *http.Request) (core.Selection, error) {
	query := r.URL.Query()
	payload := c.dataset.PayloadBounds()

	for name, bound := range map[string]*float64{"min": &payload.Min, "max": &payload.Max} {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" {
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return core.Selection{}, fmt.Errorf("%w: %s=%q is not a finite number", errInvalidSelection, name, raw)
		}
		*bound = value
	}

	return core.Selection{
		Site:    siteParam(r),
		Payload: payload.Normalize(),
	}, nil
}

// writeFigure serves the cached payload for key, computing it on a miss.
// The result is only stored when cacheable is set.
func (c *Chart) writeFigure(w http.ResponseWriter, key string, cacheable bool, compute func() any) {
	useCache := c.cache != nil && cacheable
	if useCache {
		if payload, ok := c.cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(payload)
			return
		}
	}

	payload, err := json.Marshal(compute())
	if err != nil {
		c.log.Error("JSON encoding failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if useCache {
		if err := c.cache.Set(key, payload); err != nil {
			c.log.WithError(err).Warn("Failed to cache figure")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// writeJSON encodes v as the response body
func (c *Chart) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.log.Error("JSON encoding failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
