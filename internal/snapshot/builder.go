// Package snapshot assembles extractor output into immutable snapshots.
package snapshot

import (
	"time"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/extract"
)

// Meta carries request metadata that overrides or completes the result.
type Meta struct {
	Source       string
	Season       string
	SnapshotType domain.SnapshotType
}

// Builder stamps extraction results with the fetch time.
type Builder struct {
	now func() time.Time
}

// NewBuilder uses now as the clock; nil means time.Now.
func NewBuilder(now func() time.Time) Builder {
	if now == nil {
		now = time.Now
	}
	return Builder{now: now}
}

// Build produces a snapshot. Source defaults to the result URL, season and
// type to the result's own values, and round to the highest played count.
func (b Builder) Build(res extract.Result, meta Meta) domain.Snapshot {
	now := b.now
	if now == nil {
		now = time.Now
	}

	snap := domain.Snapshot{
		Date:         domain.FormatTimestamp(now()),
		Source:       meta.Source,
		Season:       meta.Season,
		SnapshotType: meta.SnapshotType,
		Clubs:        append([]domain.ClubRow{}, res.Clubs...),
	}

	if snap.Source == "" {
		snap.Source = res.URL
	}
	if res.URL != snap.Source {
		snap.URL = res.URL
	}
	if snap.Season == "" {
		snap.Season = domain.NormalizeSeason(res.Season)
	}
	if snap.SnapshotType == "" {
		snap.SnapshotType = res.SnapshotType
	}
	if res.Window != nil {
		window := *res.Window
		snap.Params = &window
	}

	if res.Round != nil {
		snap.Round = domain.IntPtr(*res.Round)
	} else {
		snap.Round = DefaultRound(snap.Clubs)
	}
	return snap
}

// DefaultRound is the highest played count across clubs, nil when none has one.
func DefaultRound(clubs []domain.ClubRow) *int {
	if played, ok := domain.MaxPlayed(clubs); ok {
		return &played
	}
	return nil
}
