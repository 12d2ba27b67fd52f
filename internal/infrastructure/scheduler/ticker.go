package scheduler

import (
	"context"
	"time"

	"StandingsScraper/internal/ports"
)

// TickerScheduler runs a job immediately and then on every interval.
type TickerScheduler struct {
	interval time.Duration
}

var _ ports.Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler builds a scheduler firing every interval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	return &TickerScheduler{interval: interval}
}

// Run blocks until ctx is done. Jobs never overlap: a tick that arrives
// while a job is running is dropped by the ticker.
func (s *TickerScheduler) Run(ctx context.Context, job func(context.Context, time.Time)) error {
	if job == nil || s.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	job(ctx, time.Now())
	for {
		select {
		case t := <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			job(ctx, t)
		case <-ctx.Done():
			return nil
		}
	}
}
