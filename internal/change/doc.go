// Package change defines the core data model shared across the vault:
// candidate changes produced by scanners, tracked changes held in the
// inbox or snoozed queues, and the identity-key normalization used to
// deduplicate candidates across scan runs.
package change
