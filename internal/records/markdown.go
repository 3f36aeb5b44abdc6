package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"setupvault/internal/change"
)

const frontmatterMarker = "+++"

type header struct {
	ID         string    `toml:"id"`
	Title      string    `toml:"title"`
	Kind       string    `toml:"kind"`
	Source     string    `toml:"source"`
	Command    string    `toml:"command,omitempty"`
	Path       string    `toml:"path,omitempty"`
	OS         string    `toml:"os"`
	Arch       string    `toml:"arch"`
	DetectedAt time.Time `toml:"detected_at"`
	Status     string    `toml:"status"`
	Tags       []string  `toml:"tags"`
}

// Render serializes a record to its on-disk Markdown form.
func Render(record *Record) ([]byte, error) {
	head := header{
		ID:         record.ID,
		Title:      record.Title,
		Kind:       string(record.Kind),
		Source:     record.Source,
		Command:    record.Command,
		Path:       record.Path,
		OS:         record.System.OS,
		Arch:       record.System.Arch,
		DetectedAt: record.DetectedAt.UTC(),
		Status:     string(record.Status),
		Tags:       change.NormalizeTags(record.Tags),
	}
	headerTOML, err := toml.Marshal(head)
	if err != nil {
		return nil, fmt.Errorf("marshal record header: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontmatterMarker + "\n")
	b.Write(headerTOML)
	b.WriteString(frontmatterMarker + "\n\n")
	b.WriteString("# Rationale\n")
	b.WriteString(strings.TrimSpace(record.Rationale))
	b.WriteString("\n\n# Verification\n")
	if record.Verification != "" {
		b.WriteString(strings.TrimSpace(record.Verification))
	}
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// Parse deserializes a record from its on-disk Markdown form. The path is
// attached to any CorruptError for caller context.
func Parse(path string, contents []byte) (*Record, error) {
	headerText, body, err := splitFrontmatter(string(contents))
	if err != nil {
		return nil, &CorruptError{Path: path, Reason: err.Error()}
	}

	var head header
	if err := toml.Unmarshal([]byte(headerText), &head); err != nil {
		return nil, &CorruptError{Path: path, Reason: "invalid header", Err: err}
	}

	rationale, ok := extractSection(body, "Rationale")
	if !ok {
		return nil, &CorruptError{Path: path, Reason: "missing rationale section"}
	}
	verification, _ := extractSection(body, "Verification")

	record := &Record{
		ID:      head.ID,
		Title:   head.Title,
		Kind:    change.EntryKind(head.Kind),
		Source:  head.Source,
		Command: head.Command,
		Path:    head.Path,
		System: change.SystemInfo{
			OS:   head.OS,
			Arch: head.Arch,
		},
		DetectedAt:   head.DetectedAt,
		Status:       Status(head.Status),
		Tags:         change.NormalizeTags(head.Tags),
		Rationale:    rationale,
		Verification: verification,
	}
	if err := record.Validate(); err != nil {
		if corrupt, okErr := err.(*CorruptError); okErr {
			corrupt.Path = path
			return nil, corrupt
		}
		return nil, &CorruptError{Path: path, Reason: err.Error()}
	}
	return record, nil
}

func splitFrontmatter(contents string) (string, string, error) {
	open := frontmatterMarker + "\n"
	if !strings.HasPrefix(contents, open) {
		return "", "", fmt.Errorf("missing header marker")
	}
	remainder := contents[len(open):]
	closeMarker := "\n" + frontmatterMarker + "\n"
	end := strings.Index(remainder, closeMarker)
	if end < 0 {
		return "", "", fmt.Errorf("unterminated header")
	}
	headerText := remainder[:end]
	body := remainder[end+len(closeMarker):]
	return strings.TrimSpace(headerText), strings.TrimSpace(body), nil
}

func extractSection(body, heading string) (string, bool) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "# "+heading {
			continue
		}
		var section []string
		for _, next := range lines[i+1:] {
			if strings.HasPrefix(strings.TrimSpace(next), "# ") {
				break
			}
			section = append(section, next)
		}
		return strings.TrimSpace(strings.Join(section, "\n")), true
	}
	return "", false
}
