package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"setupvault/internal/change"
)

// WingetScanner reports packages from a winget source (winget or msstore).
type WingetScanner struct {
	source string
}

// NewWingetScanner reports the winget community source.
func NewWingetScanner() WingetScanner { return WingetScanner{source: "winget"} }

// NewMSStoreScanner reports Microsoft Store installs via winget.
func NewMSStoreScanner() WingetScanner { return WingetScanner{source: "msstore"} }

func (s WingetScanner) Name() string { return s.source }

func (s WingetScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "winget", "list", "--source", s.source)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	started := false
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Contains(line, "---") {
			started = true
			continue
		}
		if !started {
			continue
		}
		cols := splitColumns(line)
		if len(cols) < 2 {
			continue
		}
		name, id := cols[0], cols[1]
		command := fmt.Sprintf("winget install %s", name)
		if id != "" {
			command = fmt.Sprintf("winget install --id %s", id)
		}
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindApplication, command, now, "application"))
	}
	return candidates, nil
}

// ChocolateyScanner reports Chocolatey packages.
type ChocolateyScanner struct{}

func (ChocolateyScanner) Name() string { return "chocolatey" }

func (s ChocolateyScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "choco", "list", "-l")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, line := range nonEmptyLines(output) {
		lowered := strings.ToLower(line)
		if strings.HasPrefix(lowered, "chocolatey") || strings.Contains(lowered, "packages installed") {
			continue
		}
		name := strings.Fields(line)[0]
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindPackage,
			fmt.Sprintf("choco install %s -y", name), now, "package"))
	}
	return candidates, nil
}

// ScoopScanner reports Scoop packages.
type ScoopScanner struct{}

func (ScoopScanner) Name() string { return "scoop" }

func (s ScoopScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "scoop", "list")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, line := range nonEmptyLines(output) {
		lowered := strings.ToLower(line)
		if strings.HasPrefix(lowered, "installed") || strings.HasPrefix(lowered, "name") {
			continue
		}
		name := strings.Fields(line)[0]
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindPackage,
			fmt.Sprintf("scoop install %s", name), now, "package"))
	}
	return candidates, nil
}

// splitColumns breaks a fixed-width table row on runs of two or more
// spaces, preserving single spaces inside a column.
func splitColumns(line string) []string {
	var (
		columns  []string
		current  strings.Builder
		spaceRun int
	)
	for _, r := range line {
		if r == ' ' || r == '\t' {
			spaceRun++
			continue
		}
		if spaceRun >= 2 {
			if value := strings.TrimSpace(current.String()); value != "" {
				columns = append(columns, value)
			}
			current.Reset()
		} else if spaceRun == 1 {
			current.WriteByte(' ')
		}
		spaceRun = 0
		current.WriteRune(r)
	}
	if value := strings.TrimSpace(current.String()); value != "" {
		columns = append(columns, value)
	}
	return columns
}
