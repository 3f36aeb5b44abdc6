package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"setupvault/internal/change"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*change.Tracked, error) {
	var (
		item           change.Tracked
		st             string
		kind           string
		command        sql.NullString
		path           sql.NullString
		tagsJSON       sql.NullString
		observedAtText string
		queuedAtText   string
	)
	if err := row.Scan(
		&item.ID,
		&st,
		&item.Candidate.Source,
		&item.Candidate.Title,
		&kind,
		&command,
		&path,
		&item.Candidate.System.OS,
		&item.Candidate.System.Arch,
		&tagsJSON,
		&observedAtText,
		&queuedAtText,
	); err != nil {
		return nil, err
	}

	item.State = change.State(st)
	item.Candidate.Kind = change.EntryKind(kind)
	item.Candidate.Command = command.String
	item.Candidate.Path = path.String

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &item.Candidate.Tags); err != nil {
			return nil, fmt.Errorf("parse tags: %w", err)
		}
	}

	observedAt, err := time.Parse(time.RFC3339Nano, observedAtText)
	if err != nil {
		return nil, fmt.Errorf("parse observed_at: %w", err)
	}
	item.Candidate.ObservedAt = observedAt

	queuedAt, err := time.Parse(time.RFC3339Nano, queuedAtText)
	if err != nil {
		return nil, fmt.Errorf("parse queued_at: %w", err)
	}
	item.QueuedAt = queuedAt

	return &item, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
