// Package preflight validates the environment before the CLI does real
// work: vault directories must be accessible and each enabled scanner's
// external tool is probed for availability.
package preflight
