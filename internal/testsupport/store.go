package testsupport

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"setupvault/internal/change"
	"setupvault/internal/config"
	"setupvault/internal/logging"
	"setupvault/internal/state"
	"setupvault/internal/vault"
)

// MustOpenState opens a state.Store for tests and registers cleanup.
func MustOpenState(t testing.TB, cfg *config.Config) *state.Store {
	t.Helper()

	store, err := state.Open(cfg)
	if err != nil {
		t.Fatalf("state.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenManager opens a vault.Manager for tests and registers cleanup.
func MustOpenManager(t testing.TB, cfg *config.Config) *vault.Manager {
	t.Helper()

	manager, err := vault.Open(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("vault.Open: %v", err)
	}
	t.Cleanup(func() {
		manager.Close()
	})
	return manager
}

// NewCandidate builds a package candidate for the given source and title.
func NewCandidate(source, title string) change.Candidate {
	return change.Candidate{
		Source:     source,
		Title:      title,
		Kind:       change.KindPackage,
		Command:    source + " install " + title,
		System:     change.SystemInfo{OS: "linux", Arch: "amd64"},
		ObservedAt: time.Now().UTC(),
	}
}

// NewTracked inserts an inbox item for tests using the provided store.
func NewTracked(t testing.TB, store *state.Store, source, title string) *change.Tracked {
	t.Helper()

	item := &change.Tracked{
		ID:        uuid.NewString(),
		State:     change.StateInbox,
		Candidate: NewCandidate(source, title),
		QueuedAt:  time.Now().UTC(),
	}
	if err := store.Insert(context.Background(), item); err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return item
}
