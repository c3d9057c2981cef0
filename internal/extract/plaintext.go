package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

var numberedPrefix = regexp.MustCompile(`^\d+\.\s*`)

const (
	openingMarks = `"“”‘'«`
	closingMarks = `"”’'»`
	bulletMarks  = "-*•"
)

// parsePlainText applies a line heuristic to prose:
//   - a line opening with a quotation mark, bullet or "1." starts a quote
//   - "-- ..." sets the source of the current quote
//   - "http://..." or "https://..." sets its link
//   - an uppercase line starts a quote, anything else continues the current one
//
// The uppercase rule misreads quotes that continue on a capitalized word.
// It is kept so re-uploads of existing files segment the same way.
func parsePlainText(content []byte) ([]domain.Quote, []string, error) {
	var (
		quotes  []domain.Quote
		current *domain.Quote
		quoted  bool
	)

	flush := func() {
		if current == nil {
			return
		}

		if quoted {
			current.Text = strings.TrimRight(current.Text, closingMarks)
		}

		if q := current.Normalize(); q.Text != "" {
			quotes = append(quotes, q)
		}

		current = nil
	}

	start := func(text string, isQuoted bool) {
		flush()
		current = &domain.Quote{Text: strings.TrimSpace(text)}
		quoted = isQuoted
	}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		first, size := utf8.DecodeRuneInString(line)

		switch {
		case strings.HasPrefix(line, segmentDelimiter):
			if current != nil {
				current.Source = strings.TrimSpace(strings.TrimPrefix(line, segmentDelimiter))
			}
		case strings.HasPrefix(line, "http://"), strings.HasPrefix(line, "https://"):
			if current != nil {
				current.Link = line
			}
		case strings.ContainsRune(openingMarks, first):
			start(line[size:], true)
		case strings.ContainsRune(bulletMarks, first):
			start(line[size:], false)
		case numberedPrefix.MatchString(line):
			start(numberedPrefix.ReplaceAllString(line, ""), false)
		case current == nil, unicode.IsUpper(first):
			start(line, false)
		default:
			current.Text += " " + line
		}
	}

	flush()

	var warnings []string
	if len(quotes) == 1 {
		warnings = append(warnings, WarningSingleQuote)
	}

	return quotes, warnings, nil
}
