package vault

import (
	"context"
	"time"

	"github.com/google/uuid"

	"setupvault/internal/change"
	"setupvault/internal/logging"
	"setupvault/internal/scan"
)

// IngestSummary reports the outcome of applying one scan run.
type IngestSummary struct {
	New      []*change.Tracked
	Observed int
	Skipped  []scan.SourceError
}

// ApplyScan diffs a scan run against each source's last snapshot and the
// live identity index, queues the genuinely new changes into the inbox,
// and replaces the per-source snapshots. A source that errored is skipped
// entirely: its snapshot stays untouched so nothing is marked seen and
// nothing is lost. An identity that is already live anywhere (inbox,
// snoozed, or library) is never re-queued.
func (m *Manager) ApplyScan(ctx context.Context, results scan.Results) (*IngestSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	summary := &IngestSummary{Skipped: results.Errors()}
	for _, source := range results.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if source.Err != nil {
			continue
		}

		previous, err := m.state.Snapshot(ctx, source.Source)
		if err != nil {
			return nil, err
		}

		keys := make([]change.Key, 0, len(source.Candidates))
		seen := make(map[change.Key]struct{}, len(source.Candidates))
		var fresh []*change.Tracked
		for _, candidate := range source.Candidates {
			key := candidate.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
			summary.Observed++

			if _, known := previous[key]; known {
				continue
			}
			if _, live := m.index[key]; live {
				continue
			}
			fresh = append(fresh, &change.Tracked{
				ID:        uuid.NewString(),
				State:     change.StateInbox,
				Candidate: candidate,
				QueuedAt:  time.Now().UTC(),
			})
		}

		if err := m.state.ApplyScan(ctx, source.Source, keys, fresh); err != nil {
			return nil, err
		}
		for _, item := range fresh {
			m.index[item.Candidate.Key()] = entryRef{id: item.ID, loc: locInbox}
		}
		summary.New = append(summary.New, fresh...)

		m.logger.Info("applied scan",
			logging.String("source", source.Source),
			logging.Int("observed", len(keys)),
			logging.Int("new", len(fresh)))
	}
	return summary, nil
}
