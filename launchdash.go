// Package launchdash wires the launch records dashboard: it loads the
// dataset once and serves the outcome pie and payload scatter views.
package launchdash

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/raykavin/launchdash/pkg/config"
	"github.com/raykavin/launchdash/pkg/core"
	"github.com/raykavin/launchdash/pkg/loader"
	"github.com/raykavin/launchdash/pkg/logger"
	"github.com/raykavin/launchdash/pkg/logger/zerolog"
	"github.com/raykavin/launchdash/pkg/plot"
	"github.com/raykavin/launchdash/pkg/storage"
	"gorm.io/driver/sqlite"
)

// Dashboard owns the loaded dataset and the chart server
type Dashboard struct {
	cfg     *config.AppConfig
	dataset *core.Dataset
	cache   *storage.FigureCache
	chart   *plot.Chart
	log     logger.Logger
}

type Option func(*Dashboard)

// WithLogger overrides the logger built from the configuration
func WithLogger(log logger.Logger) Option {
	return func(d *Dashboard) {
		d.log = log
	}
}

// WithDataset serves dataset instead of loading the configured source
func WithDataset(dataset *core.Dataset) Option {
	return func(d *Dashboard) {
		d.dataset = dataset
	}
}

// NewDashboard loads the dataset and prepares the chart server. A dataset
// that cannot be loaded is a startup failure.
func NewDashboard(cfg *config.AppConfig, options ...Option) (*Dashboard, error) {
	d := &Dashboard{cfg: cfg}

	for _, option := range options {
		option(d)
	}

	if err := initializeLogger(d); err != nil {
		return nil, err
	}

	if err := initializeDataset(d); err != nil {
		return nil, err
	}

	if err := initializeChart(d); err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

// NewLogger builds a logger from the log configuration
func NewLogger(cfg config.LogConfig) (logger.Logger, error) {
	zl, err := zerolog.New(zerolog.Config{
		Level:          cfg.Level,
		DateTimeLayout: cfg.TimeFormat,
		Colored:        cfg.Colored,
		JSON:           cfg.JSON,
	})
	if err != nil {
		return nil, err
	}
	return zerolog.NewAdapter(zl), nil
}

// LoadDataset loads the dataset from SQLite when configured, else from CSV
func LoadDataset(cfg config.DataConfig) (*core.Dataset, error) {
	if cfg.SQLite != "" {
		return loader.FromSQL(sqlite.Open(cfg.SQLite))
	}
	return loader.FromCSV(cfg.File)
}

func initializeLogger(d *Dashboard) error {
	if d.log != nil {
		return nil
	}

	log, err := NewLogger(d.cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	d.log = log
	return nil
}

func initializeDataset(d *Dashboard) error {
	if d.dataset != nil {
		return nil
	}

	dataset, err := LoadDataset(d.cfg.Data)
	if err != nil {
		return err
	}

	bounds := dataset.PayloadBounds()
	d.log.WithFields(map[string]any{
		"records":     dataset.Len(),
		"sites":       len(dataset.Sites()),
		"min_payload": bounds.Min,
		"max_payload": bounds.Max,
	}).Info("Launch dataset loaded")

	d.dataset = dataset
	return nil
}

func initializeChart(d *Dashboard) error {
	var err error

	d.cache, err = storage.NewFigureCache(d.cfg.Cache.TTL)
	if err != nil {
		return err
	}

	options := []plot.Option{
		plot.WithPort(d.cfg.Server.Port),
		plot.WithSliderStep(d.cfg.Slider.Step),
		plot.WithFigureCache(d.cache),
	}
	if d.cfg.Server.Debug {
		options = append(options, plot.WithDebug())
	}

	d.chart, err = plot.NewChart(d.log, d.dataset, options...)
	return err
}

// Dataset returns the loaded dataset
func (d *Dashboard) Dataset() *core.Dataset { return d.dataset }

// Handler returns the dashboard HTTP handler
func (d *Dashboard) Handler() http.Handler { return d.chart.Handler() }

// Run serves the dashboard until ctx is cancelled
func (d *Dashboard) Run(ctx context.Context) error {
	err := d.chart.Start(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close releases the figure cache
func (d *Dashboard) Close() error {
	if d.cache == nil {
		return nil
	}
	return d.cache.Close()
}
