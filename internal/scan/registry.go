package scan

import (
	"runtime"
	"sort"

	"setupvault/internal/config"
)

// Applicable resolves the ordered scanner list for a platform, honouring
// the config's enabled filter. Platform values follow runtime.GOOS.
func Applicable(platform string, cfg *config.Config) []Scanner {
	var scanners []Scanner

	crossPlatform := []Scanner{
		NpmScanner{},
		CargoScanner{},
		PipScanner{},
	}

	switch platform {
	case "darwin":
		scanners = append(scanners,
			BrewScanner{},
			MacDefaultsScanner{},
			NewMacAppScanner(),
			NewDotfileScanner(cfg.Scanners.DotfilePaths),
		)
		scanners = append(scanners, crossPlatform...)
	case "linux":
		scanners = append(scanners,
			AptScanner{},
			NewDnfScanner(),
			NewYumScanner(),
			PacmanScanner{},
			FlatpakScanner{},
			SnapScanner{},
			NewDesktopAppScanner(),
			NewDotfileScanner(cfg.Scanners.DotfilePaths),
		)
		scanners = append(scanners, crossPlatform...)
	case "windows":
		scanners = append(scanners,
			NewWingetScanner(),
			NewMSStoreScanner(),
			ChocolateyScanner{},
			ScoopScanner{},
		)
		scanners = append(scanners, crossPlatform...)
	default:
		scanners = append(scanners, crossPlatform...)
	}

	if len(cfg.Scanners.Enabled) > 0 {
		enabled := make(map[string]struct{}, len(cfg.Scanners.Enabled))
		for _, name := range cfg.Scanners.Enabled {
			enabled[name] = struct{}{}
		}
		filtered := scanners[:0]
		for _, scanner := range scanners {
			if _, ok := enabled[scanner.Name()]; ok {
				filtered = append(filtered, scanner)
			}
		}
		scanners = filtered
	}

	sort.SliceStable(scanners, func(i, j int) bool {
		return scanners[i].Name() < scanners[j].Name()
	})
	return scanners
}

// Default resolves the scanner list for the running platform.
func Default(cfg *config.Config) []Scanner {
	return Applicable(runtime.GOOS, cfg)
}

// Names lists the source identities of the provided scanners in order.
func Names(scanners []Scanner) []string {
	names := make([]string, 0, len(scanners))
	for _, scanner := range scanners {
		names = append(names, scanner.Name())
	}
	return names
}
