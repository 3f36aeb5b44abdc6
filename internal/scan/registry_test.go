package scan_test

import (
	"reflect"
	"sort"
	"testing"

	"setupvault/internal/scan"
	"setupvault/internal/testsupport"
)

func TestApplicableFiltersByEnabledList(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEnabledScanners("homebrew", "npm"))

	names := scan.Names(scan.Applicable("darwin", cfg))
	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"homebrew", "npm"}) {
		t.Fatalf("unexpected scanner set: %v", names)
	}
}

func TestApplicablePlatformSets(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	darwin := scan.Names(scan.Applicable("darwin", cfg))
	if !contains(darwin, "homebrew") || !contains(darwin, "mac_defaults") {
		t.Fatalf("darwin set missing expected scanners: %v", darwin)
	}
	if contains(darwin, "apt") {
		t.Fatalf("darwin set includes linux scanner: %v", darwin)
	}

	linux := scan.Names(scan.Applicable("linux", cfg))
	if !contains(linux, "apt") || !contains(linux, "flatpak") {
		t.Fatalf("linux set missing expected scanners: %v", linux)
	}

	windows := scan.Names(scan.Applicable("windows", cfg))
	if !contains(windows, "winget") || !contains(windows, "chocolatey") {
		t.Fatalf("windows set missing expected scanners: %v", windows)
	}

	// Language package managers run everywhere.
	for _, set := range [][]string{darwin, linux, windows} {
		for _, name := range []string{"npm", "cargo", "pip"} {
			if !contains(set, name) {
				t.Fatalf("cross-platform scanner %q missing from %v", name, set)
			}
		}
	}
}

func TestApplicableOutputIsSorted(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	names := scan.Names(scan.Applicable("linux", cfg))
	if !sort.StringsAreSorted(names) {
		t.Fatalf("scanner names not sorted: %v", names)
	}
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
