package vault

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofrs/flock"

	"setupvault/internal/change"
	"setupvault/internal/config"
	"setupvault/internal/logging"
	"setupvault/internal/records"
	"setupvault/internal/state"
)

type location int

const (
	locInbox location = iota
	locSnoozed
	locLibrary
)

type entryRef struct {
	id  string
	loc location
}

// Manager is the single writer for all vault state. Every mutating
// operation serializes on the internal mutex; cross-process exclusion is
// enforced with a lock file in the state area.
type Manager struct {
	mu      sync.Mutex
	cfg     *config.Config
	state   *state.Store
	records *records.Store
	lock    *flock.Flock
	logger  *slog.Logger

	// index spans inbox, snoozed, and library: a given identity key is
	// live in at most one of them at any time.
	index map[change.Key]entryRef
}

// Open acquires the vault lock, opens the state and record stores, and
// builds the live identity index.
func Open(cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure vault directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire vault lock: %w", err)
	}
	if !locked {
		return nil, Wrap(ErrVaultLocked, "open", cfg.LockPath(), nil)
	}

	store, err := state.Open(cfg)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	m := &Manager{
		cfg:     cfg,
		state:   store,
		records: records.NewStore(cfg.EntriesDir()),
		lock:    lock,
		logger:  logger,
		index:   make(map[change.Key]entryRef),
	}
	if err := m.buildIndex(context.Background()); err != nil {
		_ = store.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return m, nil
}

// Close releases the state store and the vault lock.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.state.Close()
	if unlockErr := m.lock.Unlock(); err == nil {
		err = unlockErr
	}
	return err
}

// Records exposes the record store for read-only collaborators.
func (m *Manager) Records() *records.Store {
	return m.records
}

// buildIndex loads every live identity. Records are authoritative: a
// tracked row whose identity also has a record is the residue of a crash
// between the record write and the queue delete, and is dropped here.
func (m *Manager) buildIndex(ctx context.Context) error {
	library, corrupt, err := m.records.List()
	if err != nil {
		return fmt.Errorf("load library: %w", err)
	}
	for _, c := range corrupt {
		m.logger.Warn("skipping corrupt record", logging.String("path", c.Path), logging.String("reason", c.Reason))
	}
	for _, record := range library {
		m.index[record.Key()] = entryRef{id: record.ID, loc: locLibrary}
	}

	tracked, err := m.state.IdentityKeys(ctx)
	if err != nil {
		return err
	}
	for key, ref := range tracked {
		if existing, ok := m.index[key]; ok && existing.loc == locLibrary {
			if _, err := m.state.Delete(ctx, ref.ID); err != nil {
				return err
			}
			m.logger.Warn("dropped tracked item superseded by record",
				logging.String("identity", key.String()),
				logging.String("id", ref.ID))
			continue
		}
		loc := locInbox
		if ref.State == change.StateSnoozed {
			loc = locSnoozed
		}
		m.index[key] = entryRef{id: ref.ID, loc: loc}
	}
	return nil
}
