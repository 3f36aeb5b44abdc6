package vault

import (
	"context"
	"math"

	"setupvault/internal/change"
	"setupvault/internal/records"
)

// HealthReport summarizes how completely the vault is documented.
type HealthReport struct {
	Sources int
	Active  int
	Ignored int
	Inbox   int
	Snoozed int
	Score   int
}

// Health computes the documentation-completeness score alongside the
// queue and library counts behind it.
func (m *Manager) Health(ctx context.Context) (*HealthReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	library, err := m.libraryLocked()
	if err != nil {
		return nil, err
	}
	report := &HealthReport{}
	for _, record := range library {
		if record.Status == records.StatusIgnored {
			report.Ignored++
		} else {
			report.Active++
		}
	}

	inbox, err := m.state.Items(ctx, change.StateInbox)
	if err != nil {
		return nil, err
	}
	snoozed, err := m.state.Items(ctx, change.StateSnoozed)
	if err != nil {
		return nil, err
	}
	sources, err := m.state.SnapshotSources(ctx)
	if err != nil {
		return nil, err
	}
	report.Sources = len(sources)
	report.Inbox = len(inbox)
	report.Snoozed = len(snoozed)
	report.Score = ComputeHealth(report.Active, report.Inbox)
	return report, nil
}

// ComputeHealth scores documentation completeness as the percentage of
// reviewed changes among active records plus pending inbox items. An
// empty vault scores 100: nothing observed means nothing undocumented.
// Snoozed and ignored items are deliberate decisions and do not count
// against the score.
func ComputeHealth(active, inbox int) int {
	total := active + inbox
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(active) / float64(total) * 100))
}
