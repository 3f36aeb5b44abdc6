// Package logging builds the slog loggers used across SetupVault.
//
// It provides console and JSON handlers selected by configuration, level
// parsing, and thin Attr constructors so call sites do not import log/slog
// directly.
package logging
