package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"setupvault/internal/change"
	"setupvault/internal/scan"
	"setupvault/internal/testsupport"
)

func candidateTitles(candidates []change.Candidate) []string {
	titles := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		titles = append(titles, candidate.Title)
	}
	return titles
}

func TestBrewScannerParsesFormulaeAndCasks(t *testing.T) {
	// The same stub answers both `brew list --formula` and `brew list
	// --cask`, so every name shows up twice with different kinds.
	testsupport.StubBinaries(t, t.TempDir(), map[string]string{
		"brew": "jq\nripgrep",
	})

	candidates, err := scan.BrewScanner{}.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(candidates) != 4 {
		t.Fatalf("candidate count = %d, want 4: %v", len(candidates), candidateTitles(candidates))
	}
	if candidates[0].Kind != change.KindPackage || candidates[0].Command != "brew install jq" {
		t.Fatalf("unexpected formula candidate: %#v", candidates[0])
	}
	if candidates[2].Kind != change.KindApplication || candidates[2].Command != "brew install --cask jq" {
		t.Fatalf("unexpected cask candidate: %#v", candidates[2])
	}
}

func TestNpmScannerSkipsPrefixLine(t *testing.T) {
	testsupport.StubBinaries(t, t.TempDir(), map[string]string{
		"npm": "/usr/local/lib\n/usr/local/lib/node_modules/typescript\n/usr/local/lib/node_modules/prettier",
	})

	candidates, err := scan.NpmScanner{}.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	got := candidateTitles(candidates)
	if len(got) != 2 || got[0] != "typescript" || got[1] != "prettier" {
		t.Fatalf("unexpected candidates: %v", got)
	}
}

func TestCargoScannerIgnoresBinaryLines(t *testing.T) {
	testsupport.StubBinaries(t, t.TempDir(), map[string]string{
		"cargo": "ripgrep v14.1.0:\n    rg\nfd-find v10.1.0:\n    fd",
	})

	candidates, err := scan.CargoScanner{}.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	got := candidateTitles(candidates)
	if len(got) != 2 || got[0] != "ripgrep" || got[1] != "fd-find" {
		t.Fatalf("unexpected candidates: %v", got)
	}
}

func TestPipScannerSplitsVersionPins(t *testing.T) {
	testsupport.StubBinaries(t, t.TempDir(), map[string]string{
		"pip": "requests==2.32.0\nhttpx==0.27.0",
	})

	candidates, err := scan.PipScanner{}.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	got := candidateTitles(candidates)
	if len(got) != 2 || got[0] != "requests" || got[1] != "httpx" {
		t.Fatalf("unexpected candidates: %v", got)
	}
	if candidates[0].Command != "pip install requests" {
		t.Fatalf("unexpected command: %q", candidates[0].Command)
	}
}

func TestMissingBinaryMeansNothingToReport(t *testing.T) {
	// Point PATH at an empty directory so no package manager resolves.
	t.Setenv("PATH", t.TempDir())

	candidates, err := scan.PipScanner{}.Scan(context.Background())
	if err != nil {
		t.Fatalf("expected missing binary to be silent, got %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %v", candidateTitles(candidates))
	}
}

func TestFailingBinaryIsAScanError(t *testing.T) {
	dir := t.TempDir()
	testsupport.StubBinaries(t, dir, map[string]string{"pip": ""})
	// Replace the stub with one that exits non-zero.
	failing := filepath.Join(dir, "bin", "pip")
	if err := os.WriteFile(failing, []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatalf("write failing stub: %v", err)
	}

	if _, err := (scan.PipScanner{}).Scan(context.Background()); err == nil {
		t.Fatal("expected a present-but-failing tool to error")
	}
}

func TestDotfileScannerReportsExistingFilesOnly(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, ".zshrc")
	testsupport.WriteFile(t, existing, "export EDITOR=vim\n")
	missing := filepath.Join(dir, ".bashrc")

	candidates, err := scan.NewDotfileScanner([]string{existing, missing}).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidate count = %d, want 1", len(candidates))
	}
	if candidates[0].Title != ".zshrc" || candidates[0].Path != existing {
		t.Fatalf("unexpected candidate: %#v", candidates[0])
	}
	if candidates[0].Kind != change.KindConfig {
		t.Fatalf("kind = %q, want config", candidates[0].Kind)
	}
}
