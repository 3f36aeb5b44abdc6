package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"setupvault/internal/change"
)

// AptScanner reports dpkg-installed packages on Debian-family systems.
type AptScanner struct{}

func (AptScanner) Name() string { return "apt" }

func (s AptScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "dpkg-query", "-W", "-f=${binary:Package}\n")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, name := range nonEmptyLines(output) {
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindPackage,
			fmt.Sprintf("sudo apt-get install %s", name), now, "package"))
	}
	return candidates, nil
}

// RPMScanner reports packages from dnf or yum, which share list formatting.
type RPMScanner struct {
	tool string
}

// NewDnfScanner reports dnf-installed packages.
func NewDnfScanner() RPMScanner { return RPMScanner{tool: "dnf"} }

// NewYumScanner reports yum-installed packages.
func NewYumScanner() RPMScanner { return RPMScanner{tool: "yum"} }

func (s RPMScanner) Name() string { return s.tool }

func (s RPMScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, s.tool, "list", "installed")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	started := false
	for _, line := range nonEmptyLines(output) {
		if strings.HasPrefix(strings.ToLower(line), "installed") {
			started = true
			continue
		}
		if !started {
			continue
		}
		nameField := strings.Fields(line)[0]
		// Strip the architecture suffix (e.g. jq.x86_64).
		name, _, _ := strings.Cut(nameField, ".")
		if name == "" {
			continue
		}
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindPackage,
			fmt.Sprintf("sudo %s install %s", s.tool, name), now, "package"))
	}
	return candidates, nil
}

// PacmanScanner reports pacman-installed packages.
type PacmanScanner struct{}

func (PacmanScanner) Name() string { return "pacman" }

func (s PacmanScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "pacman", "-Qq")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, name := range nonEmptyLines(output) {
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindPackage,
			fmt.Sprintf("sudo pacman -S %s", name), now, "package"))
	}
	return candidates, nil
}

// FlatpakScanner reports flatpak applications.
type FlatpakScanner struct{}

func (FlatpakScanner) Name() string { return "flatpak" }

func (s FlatpakScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "flatpak", "list", "--app", "--columns=application")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, name := range nonEmptyLines(output) {
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindApplication,
			fmt.Sprintf("flatpak install %s", name), now, "application"))
	}
	return candidates, nil
}

// SnapScanner reports snap applications.
type SnapScanner struct{}

func (SnapScanner) Name() string { return "snap" }

func (s SnapScanner) Scan(ctx context.Context) ([]change.Candidate, error) {
	output, err := runCommand(ctx, "snap", "list")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidates []change.Candidate
	for _, line := range nonEmptyLines(output) {
		if strings.HasPrefix(strings.ToLower(line), "name") {
			continue
		}
		name := strings.Fields(line)[0]
		candidates = append(candidates, newCandidate(
			s.Name(), name, change.KindApplication,
			fmt.Sprintf("sudo snap install %s", name), now, "application"))
	}
	return candidates, nil
}
