package records

import (
	"strconv"
	"strings"
	"time"

	"setupvault/internal/change"
)

// Status is the post-acceptance lifecycle state of a record. Ignored
// records are retained for audit history, never deleted implicitly.
type Status string

const (
	StatusActive  Status = "active"
	StatusIgnored Status = "ignored"
)

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case StatusActive, StatusIgnored:
		return normalized, true
	}
	return "", false
}

// Record is an accepted, rationale-bearing change. ID, Source, Title,
// Kind, and DetectedAt are immutable once created; Rationale, Tags,
// Verification, and Status are the only fields mutated afterwards.
type Record struct {
	ID           string
	Title        string
	Kind         change.EntryKind
	Source       string
	Command      string
	Path         string
	System       change.SystemInfo
	DetectedAt   time.Time
	Status       Status
	Tags         []string
	Rationale    string
	Verification string
}

// Key returns the record's normalized identity key.
func (r *Record) Key() change.Key {
	return change.NewKey(r.Source, r.Title)
}

// Validate checks the construction invariants.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return &CorruptError{Reason: "missing id"}
	}
	if strings.TrimSpace(r.Title) == "" {
		return &CorruptError{Reason: "missing title"}
	}
	if strings.TrimSpace(r.Source) == "" {
		return &CorruptError{Reason: "missing source"}
	}
	// The source becomes a directory segment of the record path; anything
	// that could escape the entries tree is unwritable and unlistable.
	if strings.ContainsAny(r.Source, `/\`) || strings.Contains(r.Source, "..") {
		return &CorruptError{Reason: "source " + strconv.Quote(r.Source) + " must be a single path segment"}
	}
	if strings.TrimSpace(r.Rationale) == "" {
		return &CorruptError{Reason: "missing rationale section"}
	}
	if _, ok := ParseStatus(string(r.Status)); !ok {
		return &CorruptError{Reason: "unknown status " + string(r.Status)}
	}
	if _, ok := change.ParseKind(string(r.Kind)); !ok {
		return &CorruptError{Reason: "unknown kind " + string(r.Kind)}
	}
	return nil
}
