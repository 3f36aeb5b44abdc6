// Package state persists the vault state area: the inbox and snoozed
// queues plus the per-source snapshot sets, backed by a single SQLite
// database under .state/. WAL journaling and transactions keep queue and
// snapshot updates atomic, so a crash can never leave a half-applied scan.
package state
