package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"StandingsScraper/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS snapshots (
	dataset TEXT NOT NULL,
	season  TEXT NOT NULL,
	seq     INTEGER NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY (dataset, season, seq)
)`

// SQLiteStore keeps one row per snapshot, ordered within a season by seq.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns every stored season of dataset.
func (s *SQLiteStore) Load(ctx context.Context, dataset string) (domain.SeasonHistory, error) {
	query, args, err := sq.Select("season", "payload").
		From("snapshots").
		Where(sq.Eq{"dataset": dataset}).
		OrderBy("season", "seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	history := domain.SeasonHistory{}
	for rows.Next() {
		var season, payload string
		if err := rows.Scan(&season, &payload); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var snap domain.Snapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			return domain.SeasonHistory{}, fmt.Errorf("%w: dataset %s season %s: %v", ErrMalformed, dataset, season, err)
		}
		history[season] = append(history[season], snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return history, nil
}

// Save replaces the stored rows of dataset with history in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, dataset string, history domain.SeasonHistory) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := sq.Delete("snapshots").Where(sq.Eq{"dataset": dataset}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}

	insert := sq.Insert("snapshots").Columns("dataset", "season", "seq", "payload")
	count := 0
	for season, seq := range history {
		for i, snap := range seq {
			payload, mErr := encodeJSON(snap, "")
			if mErr != nil {
				err = fmt.Errorf("encode snapshot: %w", mErr)
				return err
			}
			insert = insert.Values(dataset, season, i, string(bytes.TrimSuffix(payload, []byte("\n"))))
			count++
		}
	}
	if count > 0 {
		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert snapshots: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
