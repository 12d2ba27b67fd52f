package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"StandingsScraper/internal/domain"
)

// JSONStore keeps each dataset in <dir>/<dataset>.json, a document mapping
// season keys to snapshot sequences.
type JSONStore struct {
	dir string
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore stores datasets under dir.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// Path returns the file backing dataset.
func (s *JSONStore) Path(dataset string) string {
	return filepath.Join(s.dir, dataset+".json")
}

// Load reads dataset. A missing file yields an empty history; undecodable
// content yields an empty history and an error wrapping ErrMalformed.
func (s *JSONStore) Load(_ context.Context, dataset string) (domain.SeasonHistory, error) {
	raw, err := os.ReadFile(s.Path(dataset))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.SeasonHistory{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", dataset, err)
	}

	history := domain.SeasonHistory{}
	if err := json.Unmarshal(raw, &history); err != nil {
		return domain.SeasonHistory{}, fmt.Errorf("%w: %s: %v", ErrMalformed, s.Path(dataset), err)
	}
	if history == nil {
		history = domain.SeasonHistory{}
	}
	return history, nil
}

// Save writes the whole history with two-space indentation and no HTML
// escaping. The file is
// replaced atomically.
func (s *JSONStore) Save(_ context.Context, dataset string, history domain.SeasonHistory) error {
	if history == nil {
		history = domain.SeasonHistory{}
	}
	payload, err := encodeJSON(history, "  ")
	if err != nil {
		return fmt.Errorf("encode history %s: %w", dataset, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, dataset+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write history %s: %w", dataset, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(dataset)); err != nil {
		return fmt.Errorf("replace history %s: %w", dataset, err)
	}
	return nil
}

// Close implements Store.
func (s *JSONStore) Close() error { return nil }
