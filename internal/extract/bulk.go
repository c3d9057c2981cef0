package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// trailingSource matches the first "--" on a line and everything after it.
var trailingSource = regexp.MustCompile(`--\s*(.+)$`)

// ParseBulk reads pasted quotes. A JSON array is read element by element,
// accepting text/content/quote, source/author and link/url keys. Anything
// else is read one quote per line, with "-- Author" split off the end.
//
// Entries without text are dropped. Source may come back empty.
func ParseBulk(s string) []domain.Quote {
	if quotes, ok := parseBulkJSON(s); ok {
		return quotes
	}

	var quotes []domain.Quote

	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		q := domain.Quote{Text: line}
		if m := trailingSource.FindStringSubmatchIndex(line); m != nil {
			q.Text = line[:m[0]]
			q.Source = line[m[2]:m[3]]
		}

		if q = q.Normalize(); q.Text != "" {
			quotes = append(quotes, q)
		}
	}

	return quotes
}

func parseBulkJSON(s string) ([]domain.Quote, bool) {
	if !strings.HasPrefix(strings.TrimSpace(s), "[") {
		return nil, false
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, false
	}

	quotes := make([]domain.Quote, 0, len(items))
	for _, item := range items {
		q := domain.Quote{
			Text:   firstString(item, "text", "content", "quote"),
			Source: firstString(item, "source", "author"),
			Link:   firstString(item, "link", "url"),
		}.Normalize()

		if q.Text != "" {
			quotes = append(quotes, q)
		}
	}

	return quotes, true
}

// firstString returns the first non-empty string value among keys.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}

	return ""
}
