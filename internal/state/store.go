package state

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	"setupvault/internal/config"
)

// Store manages state-area persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the state database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.StateDir(), "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the state database.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS tracked_items (
    id           TEXT PRIMARY KEY,
    state        TEXT NOT NULL CHECK (state IN ('inbox', 'snoozed')),
    identity_key TEXT NOT NULL UNIQUE,
    source       TEXT NOT NULL,
    title        TEXT NOT NULL,
    kind         TEXT NOT NULL,
    command      TEXT,
    path         TEXT,
    os           TEXT NOT NULL,
    arch         TEXT NOT NULL,
    tags_json    TEXT,
    observed_at  TEXT NOT NULL,
    queued_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tracked_items_state
    ON tracked_items (state, queued_at);

CREATE TABLE IF NOT EXISTS snapshots (
    source       TEXT NOT NULL,
    identity_key TEXT NOT NULL,
    PRIMARY KEY (source, identity_key)
);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
