package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"setupvault/internal/change"
	"setupvault/internal/textutil"
)

// MacDefaultsScanner reports macOS defaults domains.
type MacDefaultsScanner struct{}

func (MacDefaultsScanner) Name() string { return "mac_defaults" }

func (s MacDefaultsScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "defaults", "domains")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, domain := range strings.Split(output, ",") {
		domain = strings.TrimSpace(domain)
		if domain == "" {
			continue
		}
		candidates = append(candidates, newCandidate(
			s.Name(), domain, change.KindConfig,
			fmt.Sprintf("defaults read %s", domain), now, "config"))
	}
	return candidates, nil
}

// MacAppScanner reports applications under /Applications, excluding ones
// already attributed to Homebrew casks.
type MacAppScanner struct {
	appDir string
}

// NewMacAppScanner builds the scanner over the standard /Applications tree.
func NewMacAppScanner() MacAppScanner {
	return MacAppScanner{appDir: "/Applications"}
}

func (MacAppScanner) Name() string { return "applications" }

func (s MacAppScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	entries, err := os.ReadDir(s.appDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.appDir, err)
	}

	// Cask-managed apps are already reported by the homebrew source.
	caskNames := make(map[string]struct{})
	if casks, err := runCommand(ctx, "brew", "list", "--cask"); err == nil {
		for _, name := range nonEmptyLines(casks) {
			caskNames[textutil.Slug(name)] = struct{}{}
		}
	}

	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, entry := range entries {
		if !entry.IsDir() || filepath.Ext(entry.Name()) != ".app" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".app")
		if _, ok := caskNames[textutil.Slug(name)]; ok {
			continue
		}
		path := filepath.Join(s.appDir, entry.Name())
		candidate := newCandidate(
			s.Name(), name, change.KindApplication,
			fmt.Sprintf("open %q", path), now, "application")
		candidate.Path = path
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
