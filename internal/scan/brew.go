package scan

import (
	"context"
	"fmt"
	"time"

	"setupvault/internal/change"
)

// BrewScanner reports Homebrew formulae and casks.
type BrewScanner struct{}

func (BrewScanner) Name() string { return "homebrew" }

func (s BrewScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	now := time.Now().UTC()
	var candidates []change.Candidate

	formulae, err := runCommand(ctx, "brew", "list", "--formula")
	if err != nil {
		return nil, err
	}
	for _, name := range nonEmptyLines(formulae) {
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindPackage,
			fmt.Sprintf("brew install %s", name), now, "package"))
	}

	casks, err := runCommand(ctx, "brew", "list", "--cask")
	if err != nil {
		return nil, err
	}
	for _, name := range nonEmptyLines(casks) {
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindApplication,
			fmt.Sprintf("brew install --cask %s", name), now, "application"))
	}

	return candidates, nil
}
