package change

import (
	"errors"
	"sort"
	"strings"
)

var errEmptyCandidate = errors.New("candidate requires source and title")

// Validate checks the minimum fields a candidate needs before ingestion.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Source) == "" || strings.TrimSpace(c.Title) == "" {
		return errEmptyCandidate
	}
	return nil
}

// NormalizeTags trims, lowercases, deduplicates, and sorts a tag list.
// Empty tags are dropped; order of the input is irrelevant.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	sort.Strings(result)
	return result
}

// SortCandidates orders candidates by source name, then title. Scan output
// ordering must not depend on scanner completion order.
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Source != candidates[j].Source {
			return candidates[i].Source < candidates[j].Source
		}
		return candidates[i].Title < candidates[j].Title
	})
}
