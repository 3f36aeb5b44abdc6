// Package scan discovers candidate changes on the machine.
//
// Each Scanner probes one source (a package manager, a set of dotfiles, an
// application directory) and maps what it finds to candidates. The Runner
// invokes every applicable scanner concurrently with no shared state,
// isolates per-source failures, and aggregates results into a
// deterministic order independent of completion order.
package scan
