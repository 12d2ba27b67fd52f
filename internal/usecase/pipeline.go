package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/extract"
	"StandingsScraper/internal/history"
	"StandingsScraper/internal/ports"
	"StandingsScraper/internal/snapshot"
)

// PipelineDeps wires the driven adapters into the scrape pipeline.
type PipelineDeps struct {
	Fetcher ports.Fetcher
	Store   ports.HistoryStore
	Sources ports.Sources
	Dataset string
	// DefaultSeason is used when neither the request nor the page names one.
	DefaultSeason string
	Now           func() time.Time
	Logger        *slog.Logger
}

// Pipeline runs fetch, extract, build, merge and persist for each window of
// a plan, one at a time.
type Pipeline struct {
	fetcher       ports.Fetcher
	store         ports.HistoryStore
	sources       ports.Sources
	dataset       string
	defaultSeason string
	now           func() time.Time
	logger        *slog.Logger
}

// ScrapeResult summarizes a finished run.
type ScrapeResult struct {
	Season    string
	Snapshots []domain.Snapshot
	Actions   []history.Action
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher:       deps.Fetcher,
		store:         deps.Store,
		sources:       deps.Sources,
		dataset:       deps.Dataset,
		defaultSeason: deps.DefaultSeason,
		now:           now,
		logger:        logger,
	}
}

// Scrape executes plan. The history is saved after every snapshot, so a
// fetch failure aborts the rest of the plan but keeps what came before.
func (p *Pipeline) Scrape(ctx context.Context, plan Plan) (ScrapeResult, error) {
	extractor, err := p.sources.Resolve(plan.Source)
	if err != nil {
		return ScrapeResult{}, err
	}

	hist, err := loadHistory(ctx, p.store, p.dataset, p.logger)
	if err != nil {
		return ScrapeResult{}, err
	}

	logger := p.logger.With("run_id", uuid.NewString())
	builder := snapshot.NewBuilder(p.now)
	result := ScrapeResult{Season: plan.Season}

	for i, params := range plan.Windows {
		if params.Season == "" && plan.Source == extract.SourceTransfermarkt {
			params.Season = p.fallbackSeason()
		}

		url, err := extractor.URL(params)
		if err != nil {
			return result, fmt.Errorf("build url: %w", err)
		}

		logger.Info("fetching standings", "source", extractor.Name(), "url", url)
		body, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			return result, err
		}

		res := extractor.Extract(extract.NewDocument(body), params)
		if res.URL == "" {
			res.URL = url
		}
		logger.Info("standings extracted",
			"url", url,
			"strategy", res.Strategy,
			"clubs", len(res.Clubs))
		if len(res.Clubs) == 0 {
			logger.Warn("no club rows found", "url", url)
		}

		season := firstNonEmpty(plan.Season, domain.NormalizeSeason(res.Season), p.fallbackSeason())
		snap := builder.Build(res, snapshot.Meta{
			Source: sourceLabel(extractor.Name(), res.URL),
			Season: season,
		})

		action := history.Apply(hist, season, snap, history.Options{Reset: plan.Fresh && i == 0})
		logger.Info("snapshot merged",
			"season", season,
			"round", roundAttr(snap.Round),
			"type", snap.SnapshotType,
			"action", action,
			"total", len(hist[season]))

		if err := p.store.Save(ctx, p.dataset, hist); err != nil {
			return result, fmt.Errorf("save history: %w", err)
		}

		result.Season = season
		result.Snapshots = append(result.Snapshots, snap)
		result.Actions = append(result.Actions, action)
	}
	return result, nil
}

func (p *Pipeline) fallbackSeason() string {
	if p.defaultSeason != "" {
		return domain.NormalizeSeason(p.defaultSeason)
	}
	return domain.CurrentSeason(p.now())
}

// sourceLabel keeps the page URL as source for footmercato, as stored
// histories always have.
func sourceLabel(name, url string) string {
	if name == extract.SourceFootMercato {
		return url
	}
	return name
}

// loadHistory treats undecodable storage as an empty history.
func loadHistory(ctx context.Context, store ports.HistoryStore, dataset string, logger *slog.Logger) (domain.SeasonHistory, error) {
	hist, err := store.Load(ctx, dataset)
	if errors.Is(err, ports.ErrMalformed) {
		logger.Warn("stored history is malformed, starting empty", "dataset", dataset, "error", err)
		return domain.SeasonHistory{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if hist == nil {
		hist = domain.SeasonHistory{}
	}
	return hist, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func roundAttr(round *int) any {
	if round == nil {
		return nil
	}
	return *round
}
