package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/history"
	"StandingsScraper/internal/normalize"
	"StandingsScraper/internal/ports"
)

// DefaultSyntheticTop is the number of leading clubs carried into
// synthetic evolution snapshots.
const DefaultSyntheticTop = 10

// Maintenance groups the offline operations over a stored dataset.
type Maintenance struct {
	store   ports.HistoryStore
	dataset string
	now     func() time.Time
	logger  *slog.Logger
}

// NewMaintenance binds maintenance operations to one dataset.
func NewMaintenance(store ports.HistoryStore, dataset string, now func() time.Time, logger *slog.Logger) *Maintenance {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Maintenance{store: store, dataset: dataset, now: now, logger: logger}
}

// Repair backfills rounds and synthetic dates, saving only when something
// changed.
func (m *Maintenance) Repair(ctx context.Context) (history.RepairReport, error) {
	hist, err := loadHistory(ctx, m.store, m.dataset, m.logger)
	if err != nil {
		return history.RepairReport{}, err
	}

	report := history.Repair(hist, m.now())
	m.logger.Info("history repaired",
		"dataset", m.dataset,
		"rounds_filled", report.RoundsFilled,
		"dates_filled", report.DatesFilled,
		"matchdays_filled", report.MatchdaysFilled)
	if !report.Changed() {
		return report, nil
	}

	if err := m.store.Save(ctx, m.dataset, hist); err != nil {
		return report, fmt.Errorf("save history: %w", err)
	}
	return report, nil
}

// SynthesizeRequest selects the season and round range to generate.
type SynthesizeRequest struct {
	Season string
	From   int
	To     int
	Top    int
	Seed   uint64
}

// Synthesize appends generated evolution snapshots built from the latest
// footmercato table of the season.
func (m *Maintenance) Synthesize(ctx context.Context, req SynthesizeRequest) ([]domain.Snapshot, error) {
	if req.From <= 0 || req.To < req.From {
		return nil, fmt.Errorf("invalid round range %d..%d", req.From, req.To)
	}
	season := domain.NormalizeSeason(req.Season)
	if season == "" {
		season = domain.CurrentSeason(m.now())
	}

	hist, err := loadHistory(ctx, m.store, m.dataset, m.logger)
	if err != nil {
		return nil, err
	}

	base, ok := history.LatestFootMercato(hist[season])
	if !ok {
		return nil, fmt.Errorf("no footmercato snapshot for season %s", season)
	}

	top := req.Top
	if top <= 0 {
		top = DefaultSyntheticTop
	}
	seed := req.Seed
	if seed == 0 {
		seed = uint64(m.now().UnixNano())
	}

	generated := history.Synthesize(base, season, history.SynthesizeOptions{
		FromRound: req.From,
		ToRound:   req.To,
		Top:       top,
		Rand:      rand.New(rand.NewPCG(seed, seed>>1)),
	})
	for _, snap := range generated {
		history.Apply(hist, season, snap, history.Options{})
	}

	if err := m.store.Save(ctx, m.dataset, hist); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}
	m.logger.Info("synthetic snapshots added", "season", season, "count", len(generated))
	return generated, nil
}

// SeasonSummary describes one stored season.
type SeasonSummary struct {
	Season       string
	Snapshots    int
	Valid        int
	LatestClubs  int
	Leader       string
	LeaderPoints *int
	// LastUpdated is the newest snapshot date; zero when none parses.
	LastUpdated time.Time
}

// Check summarizes every season in ascending key order. A snapshot is valid
// when at least one club has a real name and a position; the leader is the
// first club of the latest valid snapshot.
func (m *Maintenance) Check(ctx context.Context) ([]SeasonSummary, error) {
	hist, err := loadHistory(ctx, m.store, m.dataset, m.logger)
	if err != nil {
		return nil, err
	}

	seasons := make([]string, 0, len(hist))
	for season := range hist {
		seasons = append(seasons, season)
	}
	slices.Sort(seasons)

	summaries := make([]SeasonSummary, 0, len(seasons))
	for _, season := range seasons {
		summary := SeasonSummary{Season: season, Snapshots: len(hist[season])}
		var latest *domain.Snapshot
		for i, snap := range hist[season] {
			if date, err := domain.ParseTimestamp(snap.Date); err == nil && date.After(summary.LastUpdated) {
				summary.LastUpdated = date
			}
			if validSnapshot(snap) {
				summary.Valid++
				latest = &hist[season][i]
			}
		}
		if latest != nil {
			summary.LatestClubs = len(latest.Clubs)
			summary.Leader = latest.Clubs[0].Name
			summary.LeaderPoints = latest.Clubs[0].Points
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func validSnapshot(snap domain.Snapshot) bool {
	for _, club := range snap.Clubs {
		if club.Position != nil && normalize.ValidName(club.Name) {
			return true
		}
	}
	return false
}
