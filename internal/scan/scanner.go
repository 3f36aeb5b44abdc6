package scan

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"setupvault/internal/change"
)

// Scanner probes one source for candidate changes. Implementations hold no
// shared mutable state; Scan may be called from any goroutine.
type Scanner interface {
	// Name returns the stable source identity.
	Name() string
	// Scan inspects the machine and returns every currently present
	// candidate for this source, not just new ones.
	Scan(ctx context.Context) ([]change.Candidate, error)
}

// SourceError pairs a failed scanner with its error. A source error never
// aborts the surrounding run; the failing source simply contributes no
// candidates and keeps its previous snapshot.
type SourceError struct {
	Source string
	Err    error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("scanner %s: %v", e.Source, e.Err)
}

func (e SourceError) Unwrap() error {
	return e.Err
}

func currentSystem() change.SystemInfo {
	return change.SystemInfo{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

func newCandidate(source, title string, kind change.EntryKind, command string, observedAt time.Time, tags ...string) change.Candidate {
	return change.Candidate{
		Source:     source,
		Title:      title,
		Kind:       kind,
		Command:    command,
		System:     currentSystem(),
		ObservedAt: observedAt,
		Tags:       tags,
	}
}
