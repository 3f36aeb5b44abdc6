// Package config loads, normalizes, and validates SetupVault configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SETUPVAULT_PATH environment
// override for the vault directory. Always obtain settings through this
// package so downstream code receives sanitized paths, canonical log
// formats, and clear validation errors.
package config
