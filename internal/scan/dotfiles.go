package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"setupvault/internal/change"
)

// DotfileScanner reports the watched configuration files that exist on disk.
type DotfileScanner struct {
	paths []string
}

// NewDotfileScanner builds a scanner over an explicit list of paths.
func NewDotfileScanner(paths []string) DotfileScanner {
	return DotfileScanner{paths: paths}
}

func (DotfileScanner) Name() string { return "dotfiles" }

func (s DotfileScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, path := range s.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		candidate := newCandidate(
			s.Name(), filepath.Base(path), change.KindConfig,
			fmt.Sprintf("open %s", path), now, "config")
		candidate.Path = path
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
