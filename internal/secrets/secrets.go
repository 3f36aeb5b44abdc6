// Package secrets implements a best-effort heuristic for spotting
// credential-like content before it is written into a record. It only ever
// produces an advisory warning; ingestion is never blocked on it.
package secrets

import "strings"

var signals = []string{
	"api_key",
	"apikey",
	"secret",
	"token",
	"aws_access_key_id",
	"aws_secret_access_key",
	"github_token",
	"bearer ",
	"private_key",
	"-----begin",
}

// ContainsPotentialSecret reports whether the content matches any known
// credential signal. False negatives are expected; this is a nudge, not a
// scanner.
func ContainsPotentialSecret(contents string) bool {
	lowered := strings.ToLower(contents)
	for _, signal := range signals {
		if strings.Contains(lowered, signal) {
			return true
		}
	}
	return false
}
