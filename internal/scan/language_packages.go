package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"setupvault/internal/change"
)

// NpmScanner reports globally installed npm packages.
type NpmScanner struct{}

func (NpmScanner) Name() string { return "npm" }

func (s NpmScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "npm", "list", "-g", "--depth=0", "--parseable")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	lines := nonEmptyLines(output)
	if len(lines) > 0 {
		// First line is the global prefix itself, not a package.
		lines = lines[1:]
	}
	var candidates []change.Candidate
	for _, line := range lines {
		name := line
		if idx := strings.LastIndexByte(line, '/'); idx >= 0 {
			name = line[idx+1:]
		}
		if name == "" {
			continue
		}
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindPackage,
			fmt.Sprintf("npm install -g %s", name), now, "package"))
	}
	return candidates, nil
}

// CargoScanner reports cargo-installed crates.
type CargoScanner struct{}

func (CargoScanner) Name() string { return "cargo" }

func (s CargoScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "cargo", "install", "--list")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, line := range strings.Split(output, "\n") {
		// Indented lines list the binaries of the crate above them.
		if line == "" || strings.HasPrefix(line, " ") {
			continue
		}
		name := strings.Fields(line)[0]
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindPackage,
			fmt.Sprintf("cargo install %s", name), now, "package"))
	}
	return candidates, nil
}

// PipScanner reports pip-installed packages.
type PipScanner struct{}

func (PipScanner) Name() string { return "pip" }

func (s PipScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "pip", "list", "--format=freeze")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, line := range nonEmptyLines(output) {
		name, _, _ := strings.Cut(line, "==")
		if name == "" {
			continue
		}
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindPackage,
			fmt.Sprintf("pip install %s", name), now, "package"))
	}
	return candidates, nil
}
