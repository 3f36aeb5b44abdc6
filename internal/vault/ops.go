package vault

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"setupvault/internal/change"
	"setupvault/internal/logging"
	"setupvault/internal/records"
	"setupvault/internal/secrets"
)

// Inbox returns the pending tracked changes, oldest first.
func (m *Manager) Inbox(ctx context.Context) ([]*change.Tracked, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Items(ctx, change.StateInbox)
}

// Snoozed returns the deferred tracked changes, oldest first.
func (m *Manager) Snoozed(ctx context.Context) ([]*change.Tracked, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Items(ctx, change.StateSnoozed)
}

// Library returns every record, ordered by source then title. Corrupt
// record files are logged and skipped so one bad file never hides the rest.
func (m *Manager) Library() ([]*records.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.libraryLocked()
}

func (m *Manager) libraryLocked() ([]*records.Record, error) {
	library, corrupt, err := m.records.List()
	if err != nil {
		return nil, err
	}
	for _, c := range corrupt {
		m.logger.Warn("skipping corrupt record", logging.String("path", c.Path), logging.String("reason", c.Reason))
	}
	return library, nil
}

// Tracked fetches a queued change by id or unique id prefix.
func (m *Manager) Tracked(ctx context.Context, id string) (*change.Tracked, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, err := m.resolveTracked(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, Wrap(ErrNotFound, "show", "tracked item "+id, nil)
	}
	return item, nil
}

// resolveTracked loads a tracked item by id or unique prefix. Returns nil
// when nothing matches.
func (m *Manager) resolveTracked(ctx context.Context, id string) (*change.Tracked, error) {
	full, err := m.state.ResolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	if full == "" {
		return nil, nil
	}
	return m.state.Get(ctx, full)
}

// Record fetches a library record by id.
func (m *Manager) Record(id string) (*records.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, _, err := m.records.Find(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, Wrap(ErrNotFound, "show", "record "+id, nil)
	}
	return record, nil
}

// AcceptRequest carries the user-supplied documentation for an acceptance.
type AcceptRequest struct {
	Rationale    string
	Verification string
	Tags         []string
}

// Accept promotes an inbox or snoozed item into the record library. The
// rationale is mandatory; the tracked item's id carries over so references
// made while the change was queued stay valid. The record file lands
// before the queue row is deleted, and the file is removed again if the
// queue delete fails, so the identity is never live in two places.
func (m *Manager) Accept(ctx context.Context, id string, req AcceptRequest) (*records.Record, error) {
	if strings.TrimSpace(req.Rationale) == "" {
		return nil, Wrap(ErrMissingRationale, "accept", id, nil)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, err := m.resolveTracked(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, Wrap(ErrNotFound, "accept", "tracked item "+id, nil)
	}

	record := &records.Record{
		ID:           item.ID,
		Title:        item.Candidate.Title,
		Kind:         item.Candidate.Kind,
		Source:       item.Candidate.Source,
		Command:      item.Candidate.Command,
		Path:         item.Candidate.Path,
		System:       item.Candidate.System,
		DetectedAt:   item.Candidate.ObservedAt,
		Status:       records.StatusActive,
		Tags:         change.NormalizeTags(append(append([]string{}, item.Candidate.Tags...), req.Tags...)),
		Rationale:    strings.TrimSpace(req.Rationale),
		Verification: strings.TrimSpace(req.Verification),
	}
	m.warnOnSecrets(record)

	if err := m.records.Write(record); err != nil {
		return nil, err
	}
	if _, err := m.state.Delete(ctx, item.ID); err != nil {
		// Roll the record back so the identity does not end up live in
		// both the queue and the library.
		if _, removeErr := m.records.Remove(record.ID); removeErr != nil {
			m.logger.Error("failed to roll back record after queue delete failure",
				logging.String("id", record.ID), logging.Error(removeErr))
		}
		return nil, err
	}
	m.index[record.Key()] = entryRef{id: record.ID, loc: locLibrary}
	m.logger.Info("accepted change",
		logging.String("id", record.ID),
		logging.String("source", record.Source),
		logging.String("title", record.Title))
	return record, nil
}

// Snooze defers an inbox item. Snoozing an already snoozed item is a no-op.
func (m *Manager) Snooze(ctx context.Context, id string) error {
	return m.setQueue(ctx, id, change.StateSnoozed, "snooze")
}

// Unsnooze returns a deferred item to the inbox.
func (m *Manager) Unsnooze(ctx context.Context, id string) error {
	return m.setQueue(ctx, id, change.StateInbox, "unsnooze")
}

// setQueue moves a tracked item between queues. Requesting the queue the
// item already occupies is an intentional no-op, not an error: the state
// the caller asked for already holds.
func (m *Manager) setQueue(ctx context.Context, id string, st change.State, operation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, err := m.resolveTracked(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return Wrap(ErrNotFound, operation, "tracked item "+id, nil)
	}
	if item.State == st {
		return nil
	}
	if _, err := m.state.SetState(ctx, item.ID, st); err != nil {
		return err
	}
	loc := locInbox
	if st == change.StateSnoozed {
		loc = locSnoozed
	}
	m.index[item.Candidate.Key()] = entryRef{id: item.ID, loc: loc}
	return nil
}

// Discard drops a tracked item without creating a record. The identity
// leaves the live index, so the change resurfaces on the next scan that
// still observes it.
func (m *Manager) Discard(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, err := m.resolveTracked(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return Wrap(ErrNotFound, "discard", "tracked item "+id, nil)
	}
	if _, err := m.state.Delete(ctx, item.ID); err != nil {
		return err
	}
	delete(m.index, item.Candidate.Key())
	m.logger.Info("discarded change",
		logging.String("id", item.ID),
		logging.String("source", item.Candidate.Source),
		logging.String("title", item.Candidate.Title))
	return nil
}

// CaptureRequest describes a manually entered change that never went
// through a scanner.
type CaptureRequest struct {
	Source       string
	Title        string
	Kind         change.EntryKind
	Command      string
	Path         string
	Rationale    string
	Verification string
	Tags         []string
}

// Capture records a change directly into the library, bypassing the inbox.
// The same identity and rationale rules apply as for scanner-detected
// changes.
func (m *Manager) Capture(req CaptureRequest) (*records.Record, error) {
	if strings.TrimSpace(req.Rationale) == "" {
		return nil, Wrap(ErrMissingRationale, "capture", req.Title, nil)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := change.NewKey(req.Source, req.Title)
	if ref, ok := m.index[key]; ok {
		return nil, Wrap(ErrDuplicateIdentity, "capture", key.String()+" already tracked as "+ref.id, nil)
	}

	kind := req.Kind
	if kind == "" {
		kind = change.KindOther
	}
	record := &records.Record{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(req.Title),
		Kind:         kind,
		Source:       strings.TrimSpace(req.Source),
		Command:      strings.TrimSpace(req.Command),
		Path:         strings.TrimSpace(req.Path),
		System:       change.SystemInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
		DetectedAt:   time.Now().UTC(),
		Status:       records.StatusActive,
		Tags:         change.NormalizeTags(req.Tags),
		Rationale:    strings.TrimSpace(req.Rationale),
		Verification: strings.TrimSpace(req.Verification),
	}
	m.warnOnSecrets(record)

	if err := m.records.Write(record); err != nil {
		return nil, err
	}
	m.index[record.Key()] = entryRef{id: record.ID, loc: locLibrary}
	m.logger.Info("captured change",
		logging.String("id", record.ID),
		logging.String("source", record.Source),
		logging.String("title", record.Title))
	return record, nil
}

// EditRecord mutates the mutable fields of a record. A nil field pointer
// leaves that field untouched; clearing the rationale is rejected.
type EditRecord struct {
	Rationale    *string
	Verification *string
	Tags         []string
	Status       *records.Status
}

// Edit applies an in-place update to a record's mutable fields. Identity
// fields never change through this path.
func (m *Manager) Edit(id string, edit EditRecord) (*records.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, _, err := m.records.Find(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, Wrap(ErrNotFound, "edit", "record "+id, nil)
	}

	if edit.Rationale != nil {
		if strings.TrimSpace(*edit.Rationale) == "" {
			return nil, Wrap(ErrMissingRationale, "edit", id, nil)
		}
		record.Rationale = strings.TrimSpace(*edit.Rationale)
	}
	if edit.Verification != nil {
		record.Verification = strings.TrimSpace(*edit.Verification)
	}
	if edit.Tags != nil {
		record.Tags = change.NormalizeTags(edit.Tags)
	}
	if edit.Status != nil {
		record.Status = *edit.Status
	}
	m.warnOnSecrets(record)

	if err := m.records.Write(record); err != nil {
		return nil, err
	}
	return record, nil
}

// RemoveRecord deletes a record permanently. The identity leaves the live
// index, so the change resurfaces if a scanner still observes it.
func (m *Manager) RemoveRecord(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, _, err := m.records.Find(id)
	if err != nil {
		return err
	}
	if record == nil {
		return Wrap(ErrNotFound, "remove", "record "+id, nil)
	}
	if _, err := m.records.Remove(record.ID); err != nil {
		return err
	}
	delete(m.index, record.Key())
	m.logger.Info("removed record",
		logging.String("id", record.ID),
		logging.String("source", record.Source),
		logging.String("title", record.Title))
	return nil
}

// Restore moves a record back into the inbox for re-review, deleting the
// record file. The id is preserved across the round trip.
func (m *Manager) Restore(ctx context.Context, id string) (*change.Tracked, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, _, err := m.records.Find(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, Wrap(ErrNotFound, "restore", "record "+id, nil)
	}

	item := &change.Tracked{
		ID:    record.ID,
		State: change.StateInbox,
		Candidate: change.Candidate{
			Source:     record.Source,
			Title:      record.Title,
			Kind:       record.Kind,
			Command:    record.Command,
			Path:       record.Path,
			System:     record.System,
			ObservedAt: record.DetectedAt,
			Tags:       record.Tags,
		},
		QueuedAt: time.Now().UTC(),
	}
	if err := m.state.Insert(ctx, item); err != nil {
		return nil, err
	}
	if _, err := m.records.Remove(record.ID); err != nil {
		// Keep the record; roll the queue row back.
		if _, deleteErr := m.state.Delete(ctx, record.ID); deleteErr != nil {
			m.logger.Error("failed to roll back queue row after record remove failure",
				logging.String("id", id), logging.Error(deleteErr))
		}
		return nil, err
	}
	m.index[record.Key()] = entryRef{id: record.ID, loc: locInbox}
	m.logger.Info("restored record to inbox",
		logging.String("id", record.ID),
		logging.String("source", record.Source),
		logging.String("title", record.Title))
	return item, nil
}

// SearchResult pairs a record with its query relevance.
type SearchResult struct {
	Record *records.Record
	Score  float64
}

// Search ranks library records against a free-text query using cosine
// similarity over title, rationale, tags, and command text. Records with
// zero similarity are omitted.
func (m *Manager) Search(query string) ([]SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	queryPrint := newQueryFingerprint(query)
	if queryPrint == nil {
		return nil, nil
	}
	library, err := m.libraryLocked()
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, record := range library {
		score := scoreRecord(queryPrint, record)
		if score > 0 {
			results = append(results, SearchResult{Record: record, Score: score})
		}
	}
	sortSearchResults(results)
	return results, nil
}

func (m *Manager) warnOnSecrets(record *records.Record) {
	body := strings.Join([]string{record.Command, record.Rationale, record.Verification}, "\n")
	if secrets.ContainsPotentialSecret(body) {
		m.logger.Warn("record content looks like it may contain a credential",
			logging.String("id", record.ID),
			logging.String("title", record.Title))
	}
}
