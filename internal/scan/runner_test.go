package scan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"setupvault/internal/change"
	"setupvault/internal/scan"
	"setupvault/internal/testsupport"
)

type fakeScanner struct {
	name       string
	candidates []change.Candidate
	err        error
}

func (f fakeScanner) Name() string { return f.name }

func (f fakeScanner) Scan(context.Context) ([]change.Candidate, error) {
	return f.candidates, f.err
}

func TestRunnerIsolatesFailures(t *testing.T) {
	runner := scan.NewRunner([]scan.Scanner{
		fakeScanner{name: "npm", err: errors.New("npm exited with status 1")},
		fakeScanner{name: "homebrew", candidates: []change.Candidate{
			testsupport.NewCandidate("homebrew", "jq"),
		}},
	}, nil)

	results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	candidates := results.Candidates()
	if len(candidates) != 1 || candidates[0].Title != "jq" {
		t.Fatalf("healthy scanner output lost: %#v", candidates)
	}
	errs := results.Errors()
	if len(errs) != 1 || errs[0].Source != "npm" {
		t.Fatalf("unexpected error report: %#v", errs)
	}
}

func TestRunnerOrdersBySourceName(t *testing.T) {
	slow := fakeScanner{name: "apt", candidates: []change.Candidate{
		testsupport.NewCandidate("apt", "curl"),
	}}
	runner := scan.NewRunner([]scan.Scanner{
		fakeScanner{name: "npm", candidates: []change.Candidate{
			testsupport.NewCandidate("npm", "typescript"),
		}},
		slow,
	}, nil)

	results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results.Sources[0].Source != "apt" || results.Sources[1].Source != "npm" {
		t.Fatalf("sources out of order: %q, %q", results.Sources[0].Source, results.Sources[1].Source)
	}
}

type blockingScanner struct{}

func (blockingScanner) Name() string { return "blocking" }

func (blockingScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRunnerDiscardsResultsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	runner := scan.NewRunner([]scan.Scanner{
		blockingScanner{},
		fakeScanner{name: "homebrew", candidates: []change.Candidate{
			testsupport.NewCandidate("homebrew", "jq"),
		}},
	}, nil)

	if _, err := runner.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
