package scan

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"setupvault/internal/change"
	"setupvault/internal/logging"
)

// SourceResult is the outcome of one scanner's run: either a candidate
// list or an error, never both.
type SourceResult struct {
	Source     string
	Candidates []change.Candidate
	Err        error
}

// Results aggregates a full scan run, ordered by source name.
type Results struct {
	Sources []SourceResult
}

// Candidates flattens successful sources into a single list ordered by
// source name, then title.
func (r Results) Candidates() []change.Candidate {
	var all []change.Candidate
	for _, source := range r.Sources {
		if source.Err == nil {
			all = append(all, source.Candidates...)
		}
	}
	change.SortCandidates(all)
	return all
}

// Errors returns the per-source failures of the run.
func (r Results) Errors() []SourceError {
	var errs []SourceError
	for _, source := range r.Sources {
		if source.Err != nil {
			errs = append(errs, SourceError{Source: source.Source, Err: source.Err})
		}
	}
	return errs
}

// Runner fans scanners out concurrently and joins their results.
type Runner struct {
	scanners []Scanner
	logger   *slog.Logger
}

// NewRunner builds a runner over the provided scanners.
func NewRunner(scanners []Scanner, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{scanners: scanners, logger: logger}
}

// Run invokes every scanner in its own goroutine and waits for all of them.
// A scanner failure is recorded as that source's error and logged as a
// warning; it never stops sibling scanners. Output ordering is by source
// name regardless of completion order. If ctx is cancelled mid-run, the
// context error is returned and all partial results are discarded.
func (r *Runner) Run(ctx context.Context) (Results, error) {
	results := make([]SourceResult, len(r.scanners))
	var wg sync.WaitGroup
	for i, scanner := range r.scanners {
		wg.Add(1)
		go func(slot int, sc Scanner) {
			defer wg.Done()
			candidates, err := sc.Scan(ctx)
			results[slot] = SourceResult{Source: sc.Name(), Candidates: candidates, Err: err}
		}(i, scanner)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Results{}, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Source < results[j].Source
	})
	for i := range results {
		if results[i].Err != nil {
			r.logger.Warn("scanner failed",
				logging.String("source", results[i].Source),
				logging.Error(results[i].Err))
			continue
		}
		change.SortCandidates(results[i].Candidates)
		r.logger.Debug("scanner finished",
			logging.String("source", results[i].Source),
			logging.Int("candidates", len(results[i].Candidates)))
	}
	return Results{Sources: results}, nil
}
