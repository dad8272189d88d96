package pagekeep

import (
	"fmt"
	"strings"
)

// FormatRecords formats content records for terminal display.
// Uses title if available, falls back to URL.
// Records are separated by blank lines.
func FormatRecords(records []*ContentRecord) string {
	if len(records) == 0 {
		return ""
	}

	parts := make([]string, 0, len(records))
	for _, r := range records {
		header := r.Title
		if header == "" {
			header = r.URL
		}
		parts = append(parts, fmt.Sprintf("%s  %s  %s\n  %s\n  %s",
			r.ID, recordDate(r), header, r.URL, r.ContentPreview))
	}

	return strings.Join(parts, "\n\n")
}

// recordDate formats the record date, falling back to the raw server value
// when it could not be parsed.
func recordDate(r *ContentRecord) string {
	if r.Date.IsZero() {
		if r.RawDate == "" {
			return "-"
		}
		return r.RawDate
	}
	return r.Date.UTC().Format("2006-01-02 15:04")
}

// FormatSearchResults formats search matches for terminal display, best
// match first as returned by the server. Content is cut to previewRunes.
func FormatSearchResults(results []*SearchResult, previewRunes int) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, r := range results {
		header := r.Title
		if header == "" {
			header = r.URL
		}
		parts = append(parts, fmt.Sprintf("%d. [%.2f] %s\n   %s\n   %s",
			i+1, r.Score, header, r.URL, preview(NormalizeWhitespace(r.Content), previewRunes)))
	}
	return strings.Join(parts, "\n\n")
}

func preview(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
