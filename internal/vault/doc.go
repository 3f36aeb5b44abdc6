// Package vault owns the review lifecycle of detected changes.
//
// The Manager holds the live identity index spanning the inbox, snoozed
// queue, and record library, and is the single writer for every mutation.
// It moves tracked changes through the pending -> accepted / deferred /
// discarded lifecycle, enforces the rationale-required invariant on
// acceptance, applies scan results through the differ, and derives the
// review-completeness health metric.
package vault
