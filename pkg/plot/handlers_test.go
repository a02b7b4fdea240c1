package plot

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/raykavin/launchdash/pkg/core"
	logzerolog "github.com/raykavin/launchdash/pkg/logger/zerolog"
	"github.com/raykavin/launchdash/pkg/storage"
	"github.com/raykavin/launchdash/pkg/view"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChart(t *testing.T, options ...Option) *Chart {
	t.Helper()

	ds, err := core.NewDataset([]core.LaunchRecord{
		{FlightNumber: 1, Site: "A", PayloadMass: 500, Outcome: core.Success, BoosterVersion: "v1.0"},
		{FlightNumber: 2, Site: "A", PayloadMass: 1500, Outcome: core.Failure, BoosterVersion: "v1.1"},
		{FlightNumber: 3, Site: "B", PayloadMass: 2000, Outcome: core.Success, BoosterVersion: "FT"},
	})
	require.NoError(t, err)

	nop := zerolog.Nop()
	chart, err := NewChart(logzerolog.NewAdapter(&nop), ds, options...)
	require.NoError(t, err)
	return chart
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewChart_RequiresDataset(t *testing.T) {
	nop := zerolog.Nop()
	_, err := NewChart(logzerolog.NewAdapter(&nop), nil)
	require.Error(t, err)
}

func TestHandleIndex(t *testing.T) {
	rec := get(t, newTestChart(t).Handler(), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "SpaceX Launch Records Dashboard")
	assert.Contains(t, body, `<option value="ALL">All Sites</option>`)
	assert.Contains(t, body, `<option value="B">B</option>`)
}

func TestHandleScript(t *testing.T) {
	rec := get(t, newTestChart(t).Handler(), "/assets/chart.js")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/api/options")
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestChart(t).Handler(), "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3 records", rec.Body.String())
}

func TestHandleOptions(t *testing.T) {
	rec := get(t, newTestChart(t, WithSliderStep(250)).Handler(), "/api/options")
	require.Equal(t, http.StatusOK, rec.Code)

	var options controlOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))

	assert.Equal(t, []siteOption{
		{Label: "All Sites", Value: core.AllSites},
		{Label: "A", Value: "A"},
		{Label: "B", Value: "B"},
	}, options.Sites)
	assert.Equal(t, core.AllSites, options.DefaultSite)
	assert.Equal(t, 500.0, options.Payload.Min)
	assert.Equal(t, 2000.0, options.Payload.Max)
	assert.Equal(t, 250.0, options.Payload.Step)
	assert.Equal(t, core.PayloadRange{Min: 500, Max: 2000}, options.Payload.Value)
}

func TestHandlePie(t *testing.T) {
	h := newTestChart(t).Handler()

	tests := []struct {
		target  string
		success int
		failure int
		title   string
	}{
		{"/api/pie", 2, 1, "Total Success Launches for All Sites"},
		{"/api/pie?site=ALL", 2, 1, "Total Success Launches for All Sites"},
		{"/api/pie?site=A", 1, 1, "Total Success Launches for A"},
		{"/api/pie?site=C", 0, 0, "Total Success Launches for C"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			var pie view.PieFigure
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pie))
			assert.Equal(t, tt.success, pie.Success)
			assert.Equal(t, tt.failure, pie.Failure)
			assert.Equal(t, tt.title, pie.Title)
		})
	}
}

func TestHandleScatter(t *testing.T) {
	h := newTestChart(t).Handler()

	tests := []struct {
		target  string
		flights []int
	}{
		{"/api/scatter", []int{1, 2, 3}},
		{"/api/scatter?site=ALL&min=0&max=1000", []int{1}},
		{"/api/scatter?site=A&min=0&max=10000", []int{1, 2}},
		{"/api/scatter?min=1000&max=0", []int{1}},
		{"/api/scatter?min=1500&max=1500", []int{2}},
		{"/api/scatter?site=C", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			var scatter view.ScatterFigure
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scatter))

			flights := make([]int, 0, len(scatter.Points))
			for _, p := range scatter.Points {
				flights = append(flights, p.FlightNumber)
			}
			assert.Equal(t, tt.flights, flights)
		})
	}
}

func TestHandleOptions_SliderReachesMax(t *testing.T) {
	tests := []struct {
		step float64
		max  float64
	}{
		{step: 250, max: 2000},
		{step: 1000, max: 2500},
		{step: 400, max: 2100},
		{step: 0, max: 2000},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.step, 'f', -1, 64), func(t *testing.T) {
			rec := get(t, newTestChart(t, WithSliderStep(tt.step)).Handler(), "/api/options")
			require.Equal(t, http.StatusOK, rec.Code)

			var options controlOptions
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))

			payload := options.Payload
			assert.Equal(t, tt.max, payload.Max)
			assert.GreaterOrEqual(t, payload.Max, 2000.0)
			assert.Equal(t, core.PayloadRange{Min: 500, Max: 2000}, payload.Value)
			if payload.Step > 0 {
				steps := (payload.Max - payload.Min) / payload.Step
				assert.Equal(t, math.Trunc(steps), steps)
			}
		})
	}
}

func TestHandleScatter_BadBound(t *testing.T) {
	h := newTestChart(t).Handler()

	for _, target := range []string{
		"/api/scatter?min=heavy",
		"/api/scatter?min=NaN",
		"/api/scatter?max=Inf",
		"/api/scatter?min=-Inf&max=1000",
		"/export?max=%2BInf",
	} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid selection")
		})
	}
}

func TestHandleSummary(t *testing.T) {
	rec := get(t, newTestChart(t).Handler(), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary view.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary, 2)
	assert.Equal(t, "A", summary[0].Site)
	assert.Equal(t, 2, summary[0].Launches)
}

func TestHandleExport(t *testing.T) {
	rec := get(t, newTestChart(t).Handler(), "/export?site=A&min=0&max=1000")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "launches_A.csv")

	lines, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"flight_number", "launch_site", "payload_mass_kg", "class", "booster_version"},
		{"1", "A", "500", "1", "v1.0"},
	}, lines)
}

func TestFigureCache(t *testing.T) {
	cache, err := storage.NewFigureCache(0)
	require.NoError(t, err)
	defer cache.Close()

	h := newTestChart(t, WithFigureCache(cache)).Handler()

	first := get(t, h, "/api/pie?site=A")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := get(t, h, "/api/pie?site=A")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	assert.Equal(t, 1, cache.Len())
}

func TestFigureCache_UnknownSite(t *testing.T) {
	cache, err := storage.NewFigureCache(0)
	require.NoError(t, err)
	defer cache.Close()

	h := newTestChart(t, WithFigureCache(cache)).Handler()

	for _, target := range []string{"/api/pie?site=Z", "/api/scatter?site=Z&min=0&max=100"} {
		for i := 0; i < 2; i++ {
			rec := get(t, h, target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("X-Cache"))
		}
	}
	assert.Zero(t, cache.Len())

	rec := get(t, h, "/api/scatter?site=ALL&min=0&max=100")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, cache.Len())
}
