package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"setupvault/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields, creates the vault directories, and applies any
// provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.VaultDir = filepath.Join(base, "vault")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Scanners.DotfilePaths = nil

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithEnabledScanners restricts the test config's scan to the named sources.
func WithEnabledScanners(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scanners.Enabled = names
	}
}

// WithDotfilePaths sets the dotfile watch list on the test config.
func WithDotfilePaths(paths ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scanners.DotfilePaths = paths
	}
}

// WithStubbedBinaries writes stub executables that print the given output
// and prepends their directory to PATH, so scanner tests can run against
// canned tool output without the real package managers installed.
func WithStubbedBinaries(outputs map[string]string) ConfigOption {
	return func(b *configBuilder) {
		StubBinaries(b.t, b.baseDir, outputs)
	}
}

// StubBinaries writes stub executables under dir/bin emitting the provided
// stdout per binary name and prepends that directory to PATH for the test.
func StubBinaries(t testing.TB, dir string, outputs map[string]string) {
	t.Helper()

	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	for name, output := range outputs {
		script := fmt.Sprintf("#!/bin/sh\ncat <<'STUBEOF'\n%s\nSTUBEOF\n", output)
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.VaultDir)
}
