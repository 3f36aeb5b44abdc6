package change

import (
	"strings"
	"time"
)

// EntryKind categorizes a detected change.
type EntryKind string

const (
	KindPackage     EntryKind = "package"
	KindConfig      EntryKind = "config"
	KindApplication EntryKind = "application"
	KindScript      EntryKind = "script"
	KindOther       EntryKind = "other"
)

var allKinds = []EntryKind{
	KindPackage,
	KindConfig,
	KindApplication,
	KindScript,
	KindOther,
}

var kindSet = func() map[EntryKind]struct{} {
	set := make(map[EntryKind]struct{}, len(allKinds))
	for _, kind := range allKinds {
		set[kind] = struct{}{}
	}
	return set
}()

// AllKinds returns the ordered list of known entry kinds.
func AllKinds() []EntryKind {
	cp := make([]EntryKind, len(allKinds))
	copy(cp, allKinds)
	return cp
}

// ParseKind converts a string into a known EntryKind.
func ParseKind(value string) (EntryKind, bool) {
	normalized := EntryKind(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := kindSet[normalized]
	return normalized, ok
}

// Dir returns the records-tree directory segment for the kind.
func (k EntryKind) Dir() string {
	switch k {
	case KindPackage:
		return "packages"
	case KindConfig:
		return "configs"
	case KindApplication:
		return "applications"
	case KindScript:
		return "scripts"
	default:
		return "other"
	}
}

// SystemInfo captures the machine context a change was observed on.
type SystemInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// Candidate is an ephemeral scan result, produced fresh on every run and
// discarded unless the differ finds it new.
type Candidate struct {
	Source     string
	Title      string
	Kind       EntryKind
	Command    string
	Path       string
	System     SystemInfo
	ObservedAt time.Time
	Tags       []string
}

// Key returns the normalized identity key for the candidate.
func (c Candidate) Key() Key {
	return NewKey(c.Source, c.Title)
}

// State identifies which queue currently owns a tracked change.
type State string

const (
	StateInbox   State = "inbox"
	StateSnoozed State = "snoozed"
)

// Tracked is a candidate that has entered the inbox or snoozed queue. The
// id is assigned once, on first ingestion, and never changes afterwards.
type Tracked struct {
	ID        string
	State     State
	Candidate Candidate
	QueuedAt  time.Time
}
