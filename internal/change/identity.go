package change

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key is the normalized (source, title) identity of a change. It is the
// only equality used for deduplication across scan runs.
type Key string

// NewKey builds an identity key from a source and title. Both components
// are whitespace-trimmed and case-folded so cosmetic differences between
// scan runs do not produce distinct identities.
func NewKey(source, title string) Key {
	return Key(foldComponent(source) + "\x00" + foldComponent(title))
}

// Source returns the normalized source component of the key.
func (k Key) Source() string {
	if idx := strings.IndexByte(string(k), 0); idx >= 0 {
		return string(k)[:idx]
	}
	return string(k)
}

// Title returns the normalized title component of the key.
func (k Key) Title() string {
	if idx := strings.IndexByte(string(k), 0); idx >= 0 {
		return string(k)[idx+1:]
	}
	return ""
}

func (k Key) String() string {
	return k.Source() + "/" + k.Title()
}

// A cases.Caser carries internal state and is not safe for concurrent
// use, so each fold gets its own.
func foldComponent(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}
