package plot

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/raykavin/launchdash/pkg/core"
	"github.com/raykavin/launchdash/pkg/logger"
	"github.com/raykavin/launchdash/pkg/storage"
)

// Static assets embedded in the binary
var (
	//go:embed assets
	staticFiles embed.FS
)

const shutdownTimeout = 5 * time.Second

// Chart serves the launch dashboard: the page, its script and one JSON
// endpoint per chart. Every chart request recomputes its figure from the
// read-only dataset, so a Chart needs no locking.
type Chart struct {
	port          int
	debug         bool
	sliderStep    float64
	title         string
	dataset       *core.Dataset
	cache         *storage.FigureCache
	scriptContent string
	indexHTML     *template.Template
	log           logger.Logger
}

// Option defines a function type for configuring a Chart instance
type Option func(*Chart)

// WithPort sets the HTTP server port
func WithPort(port int) Option {
	return func(chart *Chart) {
		chart.port = port
	}
}

// WithDebug enables debug mode (disables minification)
func WithDebug() Option {
	return func(chart *Chart) {
		chart.debug = true
	}
}

// WithSliderStep sets the step of the payload range slider
func WithSliderStep(step float64) Option {
	return func(chart *Chart) {
		chart.sliderStep = step
	}
}

// WithTitle sets the page heading
func WithTitle(title string) Option {
	return func(chart *Chart) {
		chart.title = title
	}
}

// WithFigureCache memoizes figure responses in cache
func WithFigureCache(cache *storage.FigureCache) Option {
	return func(chart *Chart) {
		chart.cache = cache
	}
}

// NewChart creates a new dashboard over dataset with the provided options
func NewChart(log logger.Logger, dataset *core.Dataset, options ...Option) (*Chart, error) {
	if dataset == nil {
		return nil, errors.New("dashboard requires a dataset")
	}

	chart := &Chart{
		port:       8050,
		sliderStep: 1000,
		title:      "SpaceX Launch Records Dashboard",
		dataset:    dataset,
		log:        log,
	}

	for _, option := range options {
		option(chart)
	}

	var err error
	chart.indexHTML, err = template.ParseFS(staticFiles, "assets/chart.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}

	chartJS, err := staticFiles.ReadFile("assets/chart.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read chart.js: %w", err)
	}

	transpileChartJS := api.Transform(string(chartJS), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !chart.debug,
		MinifyIdentifiers: !chart.debug,
		MinifyWhitespace:  !chart.debug,
	})

	if len(transpileChartJS.Errors) > 0 {
		return nil, fmt.Errorf("chart script failed with: %v", transpileChartJS.Errors)
	}

	chart.scriptContent = string(transpileChartJS.Code)

	return chart, nil
}

// Handler returns the dashboard routes
func (c *Chart) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(c.requestLogger)

	r.Get("/assets/chart.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprint(w, c.scriptContent)
	})
	r.Handle("/assets/*", http.FileServer(http.FS(staticFiles)))

	r.Get("/health", c.handleHealth)
	r.Get("/export", c.handleExport)
	r.Route("/api", func(r chi.Router) {
		r.Get("/options", c.handleOptions)
		r.Get("/pie", c.handlePie)
		r.Get("/scatter", c.handleScatter)
		r.Get("/summary", c.handleSummary)
	})
	r.Get("/", c.handleIndex)

	return r
}

// Start serves the dashboard until ctx is cancelled
func (c *Chart) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.port),
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.log.Infof("Dashboard available at http://localhost:%d", c.port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// requestLogger logs every request at debug level
func (c *Chart) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		c.log.WithFields(map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"query":      r.URL.RawQuery,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("dashboard request")
	})
}
