package extract

import (
	"strings"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// Delimiters of the structured text layout:
//
//	Quote text
//	-- Source
//	-- https://example.com
//	==
//	Another quote
//	-- Another source
const (
	blockDelimiter   = "=="
	segmentDelimiter = "--"
)

func parseStructured(content []byte) ([]domain.Quote, []string, error) {
	var quotes []domain.Quote

	for _, block := range strings.Split(string(content), blockDelimiter) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		q := splitSegments(block)
		if q.Text == "" {
			return nil, nil, domain.NewFormatError(string(FormatStructured), "each quote must have text")
		}

		quotes = append(quotes, q)
	}

	return quotes, nil, nil
}

// splitSegments reads "text -- source -- link". Anything after the second
// delimiter belongs to the link, so URLs containing "--" survive.
func splitSegments(s string) domain.Quote {
	parts := strings.SplitN(s, segmentDelimiter, 3)

	var q domain.Quote
	q.Text = parts[0]
	if len(parts) > 1 {
		q.Source = parts[1]
	}
	if len(parts) > 2 {
		q.Link = parts[2]
	}

	return q.Normalize()
}

// MarshalStructured renders quotes in the structured text layout. Every block
// carries a source line and the output ends with a block delimiter, so even a
// single quote is detected as structured text when read back.
func MarshalStructured(quotes []domain.Quote) (string, error) {
	var b strings.Builder

	for _, q := range quotes {
		n := q.Normalize()

		switch {
		case n.Text == "":
			return "", domain.NewFormatError(string(FormatStructured), "each quote must have text")
		case strings.Contains(n.Text, blockDelimiter) || strings.Contains(n.Text, segmentDelimiter):
			return "", domain.NewFormatError(string(FormatStructured), "quote text contains a delimiter")
		case strings.Contains(n.Source, blockDelimiter) || strings.Contains(n.Source, segmentDelimiter):
			return "", domain.NewFormatError(string(FormatStructured), "source contains a delimiter")
		case strings.Contains(n.Link, blockDelimiter):
			return "", domain.NewFormatError(string(FormatStructured), "link contains a block delimiter")
		}

		b.WriteString(n.Text)
		b.WriteString("\n" + segmentDelimiter + " " + n.Source)
		if n.Link != "" {
			b.WriteString("\n" + segmentDelimiter + " " + n.Link)
		}
		b.WriteString("\n" + blockDelimiter + "\n")
	}

	return b.String(), nil
}
