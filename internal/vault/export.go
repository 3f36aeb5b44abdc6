package vault

import "setupvault/internal/logging"

// Export copies the record library into dst for backup or sharing. Queue
// state stays behind: the exported tree is exactly the durable records.
func (m *Manager) Export(dst string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count, err := m.records.Export(dst)
	if err != nil {
		return count, err
	}
	m.logger.Info("exported records", logging.Int("count", count), logging.String("destination", dst))
	return count, nil
}
