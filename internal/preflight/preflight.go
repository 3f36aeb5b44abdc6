package preflight

import (
	"setupvault/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config: the vault
// directories must be usable, and each enabled scanner's underlying tool
// is probed. Scanners that read the filesystem directly have no tool to
// probe and always pass.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Vault directory", cfg.Paths.VaultDir),
		CheckDirectoryAccess("State directory", cfg.StateDir()),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	for _, status := range CheckScannerTools(cfg) {
		result := Result{Name: "Scanner: " + status.Name, Passed: status.Available}
		if status.Available {
			result.Detail = status.Command + " found"
		} else if status.Detail != "" {
			result.Detail = status.Detail
		}
		if status.Optional && !status.Available {
			// Filesystem-backed scanners have no binary to probe.
			result.Passed = true
			result.Detail = "no external tool required"
		}
		results = append(results, result)
	}
	return results
}
