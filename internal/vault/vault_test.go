package vault_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"setupvault/internal/change"
	"setupvault/internal/records"
	"setupvault/internal/scan"
	"setupvault/internal/testsupport"
	"setupvault/internal/vault"
)

func scanResults(source string, titles ...string) scan.Results {
	candidates := make([]change.Candidate, 0, len(titles))
	for _, title := range titles {
		candidates = append(candidates, testsupport.NewCandidate(source, title))
	}
	return scan.Results{Sources: []scan.SourceResult{{Source: source, Candidates: candidates}}}
}

func TestApplyScanQueuesOnlyNewChanges(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	summary, err := manager.ApplyScan(ctx, scanResults("homebrew", "jq", "ripgrep"))
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	if len(summary.New) != 2 || summary.Observed != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	inbox, err := manager.Inbox(ctx)
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 2 {
		t.Fatalf("inbox size = %d, want 2", len(inbox))
	}
}

func TestApplyScanIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	results := scanResults("homebrew", "jq")
	if _, err := manager.ApplyScan(ctx, results); err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	summary, err := manager.ApplyScan(ctx, results)
	if err != nil {
		t.Fatalf("second ApplyScan failed: %v", err)
	}
	if len(summary.New) != 0 {
		t.Fatalf("expected no new items on identical rescan, got %d", len(summary.New))
	}

	inbox, err := manager.Inbox(ctx)
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("inbox size = %d, want 1", len(inbox))
	}
}

func TestApplyScanSkipsFailedSources(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	results := scan.Results{Sources: []scan.SourceResult{
		{Source: "homebrew", Candidates: []change.Candidate{testsupport.NewCandidate("homebrew", "jq")}},
		{Source: "npm", Err: errors.New("npm exited with status 1")},
	}}
	summary, err := manager.ApplyScan(ctx, results)
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	if len(summary.New) != 1 {
		t.Fatalf("healthy source should still ingest, got %d new", len(summary.New))
	}
	if len(summary.Skipped) != 1 || summary.Skipped[0].Source != "npm" {
		t.Fatalf("unexpected skip report: %+v", summary.Skipped)
	}

	// The failed source left no snapshot, so its changes arrive fresh once
	// it recovers.
	recovered, err := manager.ApplyScan(ctx, scanResults("npm", "typescript"))
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	if len(recovered.New) != 1 {
		t.Fatalf("expected recovered source to queue its change, got %d", len(recovered.New))
	}
}

func TestAcceptRequiresRationale(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	summary, err := manager.ApplyScan(ctx, scanResults("homebrew", "jq"))
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	id := summary.New[0].ID

	_, err = manager.Accept(ctx, id, vault.AcceptRequest{Rationale: "   "})
	if !errors.Is(err, vault.ErrMissingRationale) {
		t.Fatalf("expected ErrMissingRationale, got %v", err)
	}

	// The item must still be reviewable after the rejection.
	inbox, err := manager.Inbox(ctx)
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("inbox size = %d, want 1", len(inbox))
	}
}

func TestAcceptMovesChangeToLibrary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	summary, err := manager.ApplyScan(ctx, scanResults("homebrew", "jq"))
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	id := summary.New[0].ID

	record, err := manager.Accept(ctx, id, vault.AcceptRequest{
		Rationale:    "Needed for JSON wrangling in deploy scripts.",
		Verification: "jq --version",
		Tags:         []string{"CLI"},
	})
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if record.ID != id {
		t.Fatalf("record id %q should carry over from tracked id %q", record.ID, id)
	}
	if record.Status != records.StatusActive {
		t.Fatalf("status = %q, want active", record.Status)
	}

	inbox, err := manager.Inbox(ctx)
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 0 {
		t.Fatalf("inbox should be empty after accept, has %d", len(inbox))
	}
	library, err := manager.Library()
	if err != nil {
		t.Fatalf("Library failed: %v", err)
	}
	if len(library) != 1 || library[0].ID != id {
		t.Fatalf("unexpected library: %#v", library)
	}
}

func TestAcceptedChangeDoesNotResurface(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	results := scanResults("homebrew", "jq")
	summary, err := manager.ApplyScan(ctx, results)
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	if _, err := manager.Accept(ctx, summary.New[0].ID, vault.AcceptRequest{Rationale: "documented"}); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	rescan, err := manager.ApplyScan(ctx, results)
	if err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	if len(rescan.New) != 0 {
		t.Fatalf("accepted change resurfaced: %+v", rescan.New)
	}
}

func TestSnoozeRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	summary, err := manager.ApplyScan(ctx, scanResults("homebrew", "jq"))
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	id := summary.New[0].ID

	if err := manager.Snooze(ctx, id); err != nil {
		t.Fatalf("Snooze failed: %v", err)
	}
	// Snoozing twice is a no-op, not an error.
	if err := manager.Snooze(ctx, id); err != nil {
		t.Fatalf("second Snooze failed: %v", err)
	}

	snoozed, err := manager.Snoozed(ctx)
	if err != nil {
		t.Fatalf("Snoozed failed: %v", err)
	}
	if len(snoozed) != 1 || snoozed[0].ID != id {
		t.Fatalf("unexpected snoozed queue: %#v", snoozed)
	}

	// A snoozed identity stays live: rescans must not duplicate it.
	rescan, err := manager.ApplyScan(ctx, scanResults("homebrew", "jq"))
	if err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	if len(rescan.New) != 0 {
		t.Fatalf("snoozed change duplicated: %+v", rescan.New)
	}

	if err := manager.Unsnooze(ctx, id); err != nil {
		t.Fatalf("Unsnooze failed: %v", err)
	}
	inbox, err := manager.Inbox(ctx)
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 1 || inbox[0].ID != id {
		t.Fatalf("unexpected inbox after unsnooze: %#v", inbox)
	}
}

func TestDiscardedChangeResurfacesOnRescan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	results := scanResults("homebrew", "jq")
	summary, err := manager.ApplyScan(ctx, results)
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	if err := manager.Discard(ctx, summary.New[0].ID); err != nil {
		t.Fatalf("Discard failed: %v", err)
	}

	// The snapshot still lists the key, so an identical rescan stays quiet.
	quiet, err := manager.ApplyScan(ctx, results)
	if err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	if len(quiet.New) != 0 {
		t.Fatalf("expected quiet rescan, got %+v", quiet.New)
	}

	// Once the change disappears and then reappears, it is new again.
	if _, err := manager.ApplyScan(ctx, scanResults("homebrew")); err != nil {
		t.Fatalf("empty scan failed: %v", err)
	}
	back, err := manager.ApplyScan(ctx, results)
	if err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	if len(back.New) != 1 {
		t.Fatalf("expected discarded change to resurface, got %d", len(back.New))
	}
}

func TestRestorePreservesID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	summary, err := manager.ApplyScan(ctx, scanResults("homebrew", "jq"))
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	id := summary.New[0].ID
	if _, err := manager.Accept(ctx, id, vault.AcceptRequest{Rationale: "documented"}); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	item, err := manager.Restore(ctx, id)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if item.ID != id {
		t.Fatalf("restore changed the id: %q -> %q", id, item.ID)
	}
	library, err := manager.Library()
	if err != nil {
		t.Fatalf("Library failed: %v", err)
	}
	if len(library) != 0 {
		t.Fatalf("record should leave the library on restore, found %d", len(library))
	}
	inbox, err := manager.Inbox(ctx)
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 1 || inbox[0].ID != id {
		t.Fatalf("unexpected inbox after restore: %#v", inbox)
	}
}

func TestCaptureRejectsLiveIdentity(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	if _, err := manager.ApplyScan(ctx, scanResults("homebrew", "jq")); err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}

	_, err := manager.Capture(vault.CaptureRequest{
		Source:    "Homebrew",
		Title:     " JQ ",
		Rationale: "duplicate on purpose",
	})
	if !errors.Is(err, vault.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestCaptureWritesRecordDirectly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)

	record, err := manager.Capture(vault.CaptureRequest{
		Source:    "manual",
		Title:     "increase file descriptor limit",
		Kind:      change.KindConfig,
		Path:      "/etc/security/limits.conf",
		Rationale: "Build farm runs out of fds under load.",
		Tags:      []string{"kernel"},
	})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if record.ID == "" || record.Status != records.StatusActive {
		t.Fatalf("unexpected record: %#v", record)
	}

	library, err := manager.Library()
	if err != nil {
		t.Fatalf("Library failed: %v", err)
	}
	if len(library) != 1 {
		t.Fatalf("library size = %d, want 1", len(library))
	}
}

func TestEditUpdatesMutableFieldsOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)

	record, err := manager.Capture(vault.CaptureRequest{
		Source:    "manual",
		Title:     "jq",
		Rationale: "original rationale",
	})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	updatedRationale := "clarified rationale"
	ignored := records.StatusIgnored
	updated, err := manager.Edit(record.ID, vault.EditRecord{
		Rationale: &updatedRationale,
		Status:    &ignored,
		Tags:      []string{"legacy"},
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if updated.Rationale != updatedRationale || updated.Status != records.StatusIgnored {
		t.Fatalf("edit not applied: %#v", updated)
	}
	if updated.ID != record.ID || updated.Title != record.Title {
		t.Fatalf("edit touched identity fields: %#v", updated)
	}

	empty := " "
	if _, err := manager.Edit(record.ID, vault.EditRecord{Rationale: &empty}); !errors.Is(err, vault.ErrMissingRationale) {
		t.Fatalf("expected ErrMissingRationale, got %v", err)
	}
}

func TestRemoveRecordAllowsResurfacing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	results := scanResults("homebrew", "jq")
	summary, err := manager.ApplyScan(ctx, results)
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	if _, err := manager.Accept(ctx, summary.New[0].ID, vault.AcceptRequest{Rationale: "documented"}); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if err := manager.RemoveRecord(summary.New[0].ID); err != nil {
		t.Fatalf("RemoveRecord failed: %v", err)
	}

	// Clear the snapshot, then observe the change again: it must requeue.
	if _, err := manager.ApplyScan(ctx, scanResults("homebrew")); err != nil {
		t.Fatalf("empty scan failed: %v", err)
	}
	back, err := manager.ApplyScan(ctx, results)
	if err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	if len(back.New) != 1 {
		t.Fatalf("removed record should resurface, got %d new", len(back.New))
	}
}

func TestHealthScoring(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)
	ctx := context.Background()

	report, err := manager.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if report.Score != 100 || report.Sources != 0 {
		t.Fatalf("empty vault report = %+v", report)
	}

	summary, err := manager.ApplyScan(ctx, scanResults("homebrew", "jq", "ripgrep"))
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	report, err = manager.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if report.Score != 0 || report.Inbox != 2 || report.Sources != 1 {
		t.Fatalf("undocumented vault report = %+v", report)
	}

	if _, err := manager.Accept(ctx, summary.New[0].ID, vault.AcceptRequest{Rationale: "documented"}); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	report, err = manager.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if report.Score != 50 || report.Active != 1 || report.Inbox != 1 {
		t.Fatalf("half-documented report = %+v", report)
	}
}

func TestComputeHealthBounds(t *testing.T) {
	cases := []struct {
		active, inbox, want int
	}{
		{0, 0, 100},
		{0, 5, 0},
		{5, 0, 100},
		{1, 2, 33},
		{2, 1, 67},
	}
	for _, tc := range cases {
		if got := vault.ComputeHealth(tc.active, tc.inbox); got != tc.want {
			t.Fatalf("ComputeHealth(%d, %d) = %d, want %d", tc.active, tc.inbox, got, tc.want)
		}
	}
}

func TestSearchRanksTitleMatchesFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := testsupport.MustOpenManager(t, cfg)

	if _, err := manager.Capture(vault.CaptureRequest{
		Source:    "homebrew",
		Title:     "jq",
		Rationale: "JSON processing on the command line.",
	}); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if _, err := manager.Capture(vault.CaptureRequest{
		Source:    "homebrew",
		Title:     "ripgrep",
		Rationale: "Fast search; often piped into jq for JSON logs.",
	}); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	results, err := manager.Search("jq")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}
	if results[0].Record.Title != "jq" {
		t.Fatalf("expected the jq record first, got %q", results[0].Record.Title)
	}

	none, err := manager.Search("kubernetes")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}

func TestSecondOpenFailsWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenManager(t, cfg)

	if _, err := vault.Open(cfg, nil); !errors.Is(err, vault.ErrVaultLocked) {
		t.Fatalf("expected ErrVaultLocked, got %v", err)
	}
}

func TestIndexRebuildDropsRowsSupersededByRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	manager, err := vault.Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	summary, err := manager.ApplyScan(ctx, scanResults("homebrew", "jq"))
	if err != nil {
		t.Fatalf("ApplyScan failed: %v", err)
	}
	id := summary.New[0].ID
	if _, err := manager.Accept(ctx, id, vault.AcceptRequest{Rationale: "documented"}); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if err := manager.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Simulate a crash between the record write and the queue delete by
	// reinserting the tracked row behind the manager's back.
	store := testsupport.MustOpenState(t, cfg)
	item := &change.Tracked{
		ID:        id,
		State:     change.StateInbox,
		Candidate: testsupport.NewCandidate("homebrew", "jq"),
		QueuedAt:  time.Now().UTC(),
	}
	if err := store.Insert(ctx, item); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	store.Close()

	reopened, err := vault.Open(cfg, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	inbox, err := reopened.Inbox(ctx)
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 0 {
		t.Fatalf("duplicate tracked row survived startup reconciliation: %#v", inbox)
	}
	library, err := reopened.Library()
	if err != nil {
		t.Fatalf("Library failed: %v", err)
	}
	if len(library) != 1 {
		t.Fatalf("record lost during reconciliation, library = %d", len(library))
	}
}
