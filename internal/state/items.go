package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"setupvault/internal/change"
)

const itemColumns = `id, state, source, title, kind, command, path, os, arch, tags_json, observed_at, queued_at`

// Items returns the tracked items in the given state, oldest first.
func (s *Store) Items(ctx context.Context, st change.State) ([]*change.Tracked, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+itemColumns+` FROM tracked_items WHERE state = ? ORDER BY queued_at, source, title`,
		string(st),
	)
	if err != nil {
		return nil, fmt.Errorf("query tracked items: %w", err)
	}
	defer rows.Close()

	var items []*change.Tracked
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get fetches a tracked item by id. Returns nil when the id is unknown.
func (s *Store) Get(ctx context.Context, id string) (*change.Tracked, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM tracked_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tracked item: %w", err)
	}
	return item, nil
}

// Insert adds a tracked item. The identity_key unique constraint rejects a
// second live item with the same identity.
func (s *Store) Insert(ctx context.Context, item *change.Tracked) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return insertItem(ctx, tx, item)
	})
}

// SetState moves a tracked item between queues. Reports whether a row changed.
func (s *Store) SetState(ctx context.Context, id string, st change.State) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE tracked_items SET state = ? WHERE id = ?`,
		string(st), id,
	)
	if err != nil {
		return false, fmt.Errorf("set item state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a tracked item. Reports whether a row was deleted.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tracked_items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete tracked item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ResolveID expands an id prefix to the full tracked item id. Returns an
// empty string when nothing matches and an error when the prefix is
// ambiguous.
func (s *Store) ResolveID(ctx context.Context, prefix string) (string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id FROM tracked_items WHERE id LIKE ? || '%' LIMIT 2`,
		prefix,
	)
	if err != nil {
		return "", fmt.Errorf("resolve id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", nil
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
	}
}

// IdentityRef locates a live tracked item by id and current queue.
type IdentityRef struct {
	ID    string
	State change.State
}

// IdentityKeys returns the identity key of every live tracked item, for
// building the in-memory index at startup.
func (s *Store) IdentityKeys(ctx context.Context) (map[change.Key]IdentityRef, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT identity_key, id, state FROM tracked_items`)
	if err != nil {
		return nil, fmt.Errorf("query identity keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[change.Key]IdentityRef)
	for rows.Next() {
		var key, id, st string
		if err := rows.Scan(&key, &id, &st); err != nil {
			return nil, fmt.Errorf("scan identity key: %w", err)
		}
		keys[change.Key(key)] = IdentityRef{ID: id, State: change.State(st)}
	}
	return keys, rows.Err()
}

func insertItem(ctx context.Context, tx *sql.Tx, item *change.Tracked) error {
	if item == nil {
		return errors.New("item is nil")
	}
	tagsJSON, err := json.Marshal(change.NormalizeTags(item.Candidate.Tags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO tracked_items (
            id, state, identity_key, source, title, kind, command, path,
            os, arch, tags_json, observed_at, queued_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		string(item.State),
		string(item.Candidate.Key()),
		item.Candidate.Source,
		item.Candidate.Title,
		string(item.Candidate.Kind),
		nullableString(item.Candidate.Command),
		nullableString(item.Candidate.Path),
		item.Candidate.System.OS,
		item.Candidate.System.Arch,
		string(tagsJSON),
		item.Candidate.ObservedAt.UTC().Format(time.RFC3339Nano),
		item.QueuedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert tracked item: %w", err)
	}
	return nil
}
