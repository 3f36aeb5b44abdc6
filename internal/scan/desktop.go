package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"setupvault/internal/change"
)

// DesktopAppScanner reports Linux desktop applications from .desktop entries.
type DesktopAppScanner struct {
	dirs []string
}

// NewDesktopAppScanner builds the scanner over the standard application
// entry directories.
func NewDesktopAppScanner() DesktopAppScanner {
	dirs := []string{"/usr/share/applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local/share/applications"))
	}
	return DesktopAppScanner{dirs: dirs}
}

func (DesktopAppScanner) Name() string { return "applications" }

func (s DesktopAppScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, dir := range s.dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".desktop" {
				continue
			}
			title := strings.TrimSuffix(entry.Name(), ".desktop")
			path := filepath.Join(dir, entry.Name())
			candidate := newCandidate(
				s.Name(), title, change.KindApplication,
				fmt.Sprintf("gtk-launch %s", entry.Name()), now, "application")
			candidate.Path = path
			candidates = append(candidates, candidate)
		}
	}
	return candidates, nil
}
