package usecase

import (
	"context"
	"log/slog"
	"time"

	"StandingsScraper/internal/ports"
)

// Watcher repeats one scrape plan on a schedule.
type Watcher struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	plan     Plan
	logger   *slog.Logger
}

// NewWatcher binds the pipeline and plan to a scheduler driver.
func NewWatcher(driver ports.Scheduler, pipeline *Pipeline, plan Plan, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{driver: driver, pipeline: pipeline, plan: plan, logger: logger}
}

// Run blocks until ctx is done. A failed run is logged and the next tick
// tries again.
func (w *Watcher) Run(ctx context.Context) error {
	if w.driver == nil || w.pipeline == nil {
		return nil
	}

	return w.driver.Run(ctx, func(ctx context.Context, trigger time.Time) {
		res, err := w.pipeline.Scrape(ctx, w.plan)
		if err != nil {
			w.logger.Error("scheduled scrape failed", "trigger", trigger, "error", err)
			return
		}
		w.logger.Info("scheduled scrape finished", "season", res.Season, "snapshots", len(res.Snapshots))
	})
}
