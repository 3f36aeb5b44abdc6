package records

// CorruptError reports a persisted record file that failed to parse or
// violated the schema. Bulk listings report these per file and continue;
// single-record reads abort with them.
type CorruptError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CorruptError) Error() string {
	msg := "corrupt record"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}
