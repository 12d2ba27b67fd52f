package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"StandingsScraper/internal/config"
	"StandingsScraper/internal/history"
	"StandingsScraper/internal/infrastructure/fetch"
	"StandingsScraper/internal/infrastructure/parser"
	"StandingsScraper/internal/infrastructure/scheduler"
	"StandingsScraper/internal/infrastructure/storage"
	"StandingsScraper/internal/logging"
	"StandingsScraper/internal/usecase"
)

// Application wires configs to use cases.
type Application struct {
	cfg         config.Config
	store       storage.Store
	pipeline    *usecase.Pipeline
	maintenance *usecase.Maintenance
	logger      *slog.Logger
}

// New opens the configured storage and builds the use cases for dataset;
// an empty dataset falls back to the configured one.
func New(ctx context.Context, cfg config.Config, dataset string, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if dataset == "" {
		dataset = cfg.Storage.Dataset
	}

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Fetcher:       fetch.NewClient(cfg.Fetch, baseLogger.With("component", "fetch")),
		Store:         store,
		Sources:       parser.NewSources(cfg.Sources),
		Dataset:       dataset,
		DefaultSeason: cfg.Defaults.Season,
		Now:           time.Now,
		Logger:        baseLogger.With("component", "pipeline"),
	})
	maintenance := usecase.NewMaintenance(store, dataset, time.Now, baseLogger.With("component", "maintenance"))

	baseLogger.Debug("application ready",
		"driver", cfg.Storage.Driver,
		"dataset", dataset)
	return &Application{
		cfg:         cfg,
		store:       store,
		pipeline:    pipeline,
		maintenance: maintenance,
		logger:      baseLogger,
	}, nil
}

// Scrape plans and runs one scrape request. An empty source falls back to
// the configured default.
func (a *Application) Scrape(ctx context.Context, req usecase.ScrapeRequest) (usecase.ScrapeResult, error) {
	if req.Source == "" && req.Round == 0 {
		req.Source = a.cfg.Defaults.Source
	}
	plan, err := usecase.NewPlan(req)
	if err != nil {
		return usecase.ScrapeResult{}, err
	}
	return a.pipeline.Scrape(ctx, plan)
}

// Watch repeats req on the configured interval until ctx is done; a
// positive every overrides the interval.
func (a *Application) Watch(ctx context.Context, req usecase.ScrapeRequest, every time.Duration) error {
	if req.Source == "" && req.Round == 0 {
		req.Source = a.cfg.Defaults.Source
	}
	plan, err := usecase.NewPlan(req)
	if err != nil {
		return err
	}
	if every <= 0 {
		every = a.cfg.Schedule.Interval
	}
	a.logger.Info("watching standings", "source", plan.Source, "every", every)
	driver := scheduler.NewTickerScheduler(every)
	return usecase.NewWatcher(driver, a.pipeline, plan, a.logger.With("component", "watcher")).Run(ctx)
}

// Repair backfills derived metadata in the stored dataset.
func (a *Application) Repair(ctx context.Context) (history.RepairReport, error) {
	return a.maintenance.Repair(ctx)
}

// Check summarizes the stored dataset.
func (a *Application) Check(ctx context.Context) ([]usecase.SeasonSummary, error) {
	return a.maintenance.Check(ctx)
}

// Synthesize appends synthetic evolution snapshots.
func (a *Application) Synthesize(ctx context.Context, req usecase.SynthesizeRequest) (int, error) {
	generated, err := a.maintenance.Synthesize(ctx, req)
	return len(generated), err
}

// Close releases storage.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
