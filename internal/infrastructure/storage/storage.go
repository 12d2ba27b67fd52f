// Package storage persists season histories as a JSON document per dataset
// or as rows in an SQLite database.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"StandingsScraper/internal/config"
	"StandingsScraper/internal/ports"
)

// ErrMalformed is returned, wrapped, alongside an empty history.
var ErrMalformed = ports.ErrMalformed

// Store is a HistoryStore holding resources that must be released.
type Store interface {
	ports.HistoryStore
	Close() error
}

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", config.DriverJSON:
		return NewJSONStore(cfg.DataDir), nil
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// encodeJSON renders v without HTML escaping so URLs and club names keep
// their literal "&", "<" and ">". The result ends with a newline.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
