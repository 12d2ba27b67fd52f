package ports

import (
	"context"
	"errors"
	"time"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/extract"
)

// ErrMalformed marks stored history that could not be decoded. Callers
// treat it as an empty history.
var ErrMalformed = errors.New("malformed history")

// Fetcher retrieves raw page bodies from upstream standings sites.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HistoryStore loads and persists the season history of one dataset.
type HistoryStore interface {
	Load(ctx context.Context, dataset string) (domain.SeasonHistory, error)
	Save(ctx context.Context, dataset string, history domain.SeasonHistory) error
}

// Sources resolves a source identifier to its extractor.
type Sources interface {
	Resolve(name string) (extract.Extractor, error)
}

// Scheduler controls when recurring scrapes execute.
type Scheduler interface {
	Run(ctx context.Context, job func(ctx context.Context, trigger time.Time)) error
}
