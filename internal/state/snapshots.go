package state

import (
	"context"
	"database/sql"
	"fmt"

	"setupvault/internal/change"
)

// Snapshot returns the identity-key set recorded for a source on its last
// successful scan. An absent source yields an empty set (first run).
func (s *Store) Snapshot(ctx context.Context, source string) (map[change.Key]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT identity_key FROM snapshots WHERE source = ?`, source)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	keys := make(map[change.Key]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan snapshot key: %w", err)
		}
		keys[change.Key(key)] = struct{}{}
	}
	return keys, rows.Err()
}

// ApplyScan records the outcome of one source's successful scan in a single
// transaction: the source's snapshot is replaced wholesale with the run's
// complete key set, and the new candidates join the inbox. Either every
// write lands or none does, so a crash mid-scan cannot desynchronize the
// snapshot from the queues.
func (s *Store) ApplyScan(ctx context.Context, source string, keys []change.Key, newItems []*change.Tracked) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE source = ?`, source); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
		for _, key := range keys {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT OR IGNORE INTO snapshots (source, identity_key) VALUES (?, ?)`,
				source, string(key),
			); err != nil {
				return fmt.Errorf("insert snapshot key: %w", err)
			}
		}
		for _, item := range newItems {
			if err := insertItem(ctx, tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// SnapshotSources lists the sources that have a recorded snapshot.
func (s *Store) SnapshotSources(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT source FROM snapshots ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("scan snapshot source: %w", err)
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}
