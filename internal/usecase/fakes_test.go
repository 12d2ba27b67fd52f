package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"StandingsScraper/internal/config"
	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/infrastructure/parser"
	"StandingsScraper/internal/ports"
)

var errUnreachable = errors.New("unreachable")

type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	page, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("fetch %s: %w", url, errUnreachable)
	}
	return []byte(page), nil
}

type memoryStore struct {
	data      domain.SeasonHistory
	malformed bool
	saves     int
}

var _ ports.HistoryStore = (*memoryStore)(nil)

func (m *memoryStore) Load(_ context.Context, _ string) (domain.SeasonHistory, error) {
	if m.malformed {
		return domain.SeasonHistory{}, fmt.Errorf("%w: broken", ports.ErrMalformed)
	}
	return m.data.Clone(), nil
}

func (m *memoryStore) Save(_ context.Context, _ string, history domain.SeasonHistory) error {
	m.saves++
	m.malformed = false
	m.data = history.Clone()
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock() time.Time {
	return time.Date(2025, time.November, 20, 9, 0, 0, 0, time.UTC)
}

func newTestPipeline(fetcher ports.Fetcher, store ports.HistoryStore) *Pipeline {
	return NewPipeline(PipelineDeps{
		Fetcher:       fetcher,
		Store:         store,
		Sources:       parser.NewSources(config.SourcesConfig{}),
		Dataset:       "standings",
		DefaultSeason: "2025",
		Now:           fixedClock,
		Logger:        quietLogger(),
	})
}
