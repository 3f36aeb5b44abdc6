package vault

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRationale rejects acceptance or edits with an empty or
	// whitespace-only rationale. Recoverable; surfaced for correction.
	ErrMissingRationale = errors.New("rationale cannot be empty")
	// ErrDuplicateIdentity flags ingestion of an identity that is already
	// live. The differ excludes these, so hitting it indicates a bug.
	ErrDuplicateIdentity = errors.New("identity already tracked")
	// ErrNotFound reports an operation against an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrVaultLocked reports that another process holds the vault lock.
	ErrVaultLocked = errors.New("vault is locked by another process")
)

// Wrap builds an error message that includes operation context while
// tagging it with the provided marker for errors.Is classification.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "vault failure"
	}
	return strings.Join(parts, ": ")
}
