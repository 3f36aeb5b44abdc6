package vault

import (
	"sort"
	"strings"

	"setupvault/internal/records"
	"setupvault/internal/textutil"
)

func newQueryFingerprint(query string) *textutil.Fingerprint {
	return textutil.NewFingerprint(query)
}

// scoreRecord blends similarity over the record's searchable text with a
// bonus for exact token hits in the title, so `sv search jq` ranks the jq
// record above records that merely mention jq in a rationale.
func scoreRecord(query *textutil.Fingerprint, record *records.Record) float64 {
	body := strings.Join([]string{
		record.Title,
		record.Source,
		record.Command,
		record.Rationale,
		record.Verification,
		strings.Join(record.Tags, " "),
	}, "\n")
	score := textutil.CosineSimilarity(query, textutil.NewFingerprint(body))
	if score == 0 {
		return 0
	}
	titleScore := textutil.CosineSimilarity(query, textutil.NewFingerprint(record.Title))
	return score + titleScore
}

func sortSearchResults(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Record.Title < results[j].Record.Title
	})
}
