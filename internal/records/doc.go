// Package records persists accepted changes as durable Markdown artifacts.
//
// Each record is one file under entries/<kind>/<source>/, named from the
// source, a slug of the title, and the record id. Files carry a TOML
// header between +++ markers followed by a mandatory Rationale section and
// an optional Verification section. Writes stage to a temporary file in
// the target directory and rename into place, so a reader never observes a
// half-written record.
package records
