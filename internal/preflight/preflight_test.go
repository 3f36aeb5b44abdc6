package preflight_test

import (
	"path/filepath"
	"strings"
	"testing"

	"setupvault/internal/preflight"
	"setupvault/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := preflight.CheckDirectoryAccess("Vault directory", dir)
	if !result.Passed {
		t.Fatalf("expected writable directory to pass: %+v", result)
	}

	result = preflight.CheckDirectoryAccess("Vault directory", filepath.Join(dir, "missing"))
	if result.Passed || !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("expected missing directory to fail: %+v", result)
	}

	file := filepath.Join(dir, "file")
	testsupport.WriteFile(t, file, "not a directory\n")
	result = preflight.CheckDirectoryAccess("Vault directory", file)
	if result.Passed || !strings.Contains(result.Detail, "not a directory") {
		t.Fatalf("expected file to fail directory check: %+v", result)
	}
}

func TestCheckScannerToolsHonorsEnabledFilter(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEnabledScanners("npm"))
	testsupport.StubBinaries(t, testsupport.BaseDir(cfg), map[string]string{"npm": ""})

	statuses := preflight.CheckScannerTools(cfg)
	if len(statuses) != 1 || statuses[0].Name != "npm" {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
	if !statuses[0].Available {
		t.Fatalf("stubbed npm should be available: %+v", statuses[0])
	}
}

func TestRunAllReportsVaultDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEnabledScanners("npm"))
	testsupport.StubBinaries(t, testsupport.BaseDir(cfg), map[string]string{"npm": ""})

	results := preflight.RunAll(cfg)
	if len(results) < 3 {
		t.Fatalf("expected directory checks plus scanner checks, got %d", len(results))
	}
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("expected all checks to pass in a fresh vault: %+v", result)
		}
	}
}
