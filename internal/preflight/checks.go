package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"setupvault/internal/config"
	"setupvault/internal/deps"
	"setupvault/internal/scan"
)

// toolRequirements maps each scanner source to the binary it shells out
// to. Sources absent here read the filesystem directly.
var toolRequirements = map[string]deps.Requirement{
	"homebrew":     {Name: "homebrew", Command: "brew", Description: "Lists installed formulae and casks"},
	"npm":          {Name: "npm", Command: "npm", Description: "Lists globally installed npm packages"},
	"cargo":        {Name: "cargo", Command: "cargo", Description: "Lists cargo-installed binaries"},
	"pip":          {Name: "pip", Command: "pip", Description: "Lists user-installed Python packages"},
	"apt":          {Name: "apt", Command: "dpkg-query", Description: "Lists manually installed Debian packages"},
	"dnf":          {Name: "dnf", Command: "dnf", Description: "Lists user-installed Fedora packages"},
	"yum":          {Name: "yum", Command: "yum", Description: "Lists user-installed RHEL packages"},
	"pacman":       {Name: "pacman", Command: "pacman", Description: "Lists explicitly installed Arch packages"},
	"flatpak":      {Name: "flatpak", Command: "flatpak", Description: "Lists installed Flatpak applications"},
	"snap":         {Name: "snap", Command: "snap", Description: "Lists installed snaps"},
	"mac_defaults": {Name: "mac_defaults", Command: "defaults", Description: "Lists macOS preference domains"},
	"winget":       {Name: "winget", Command: "winget", Description: "Lists installed Windows packages"},
	"msstore":      {Name: "msstore", Command: "winget", Description: "Lists Microsoft Store installs"},
	"chocolatey":   {Name: "chocolatey", Command: "choco", Description: "Lists Chocolatey packages"},
	"scoop":        {Name: "scoop", Command: "scoop", Description: "Lists Scoop packages"},
}

// CheckDirectoryAccess verifies that the directory exists and is readable
// and writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckScannerTools probes the external tool behind every scanner that
// would run on this platform with the given config. Sources without an
// external tool are reported as optional.
func CheckScannerTools(cfg *config.Config) []deps.Status {
	var requirements []deps.Requirement
	for _, name := range scan.Names(scan.Default(cfg)) {
		req, ok := toolRequirements[name]
		if !ok {
			req = deps.Requirement{Name: name, Description: "Reads the filesystem directly", Optional: true}
		}
		requirements = append(requirements, req)
	}
	return deps.CheckBinaries(requirements)
}
