package main

import (
	"strings"
	"time"

	"setupvault/internal/change"
	"setupvault/internal/records"
)

const shortIDLength = 8

func kindNames() string {
	kinds := change.AllKinds()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}
	return strings.Join(names, ", ")
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func truncate(value string, max int) string {
	value = strings.TrimSpace(value)
	if max <= 3 || len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func buildTrackedRows(items []*change.Tracked) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			shortID(item.ID),
			item.Candidate.Source,
			truncate(item.Candidate.Title, 48),
			string(item.Candidate.Kind),
			formatTime(item.QueuedAt),
		})
	}
	return rows
}

func buildRecordRows(recordList []*records.Record) [][]string {
	rows := make([][]string, 0, len(recordList))
	for _, record := range recordList {
		rows = append(rows, []string{
			shortID(record.ID),
			record.Source,
			truncate(record.Title, 48),
			string(record.Kind),
			string(record.Status),
			strings.Join(record.Tags, ", "),
		})
	}
	return rows
}

var trackedHeaders = []string{"ID", "Source", "Title", "Kind", "Queued"}

var recordHeaders = []string{"ID", "Source", "Title", "Kind", "Status", "Tags"}
