// Package extract turns uploaded file content into quotes.
//
// Each supported layout is a strategy: a predicate over the declared file
// name, content type and content, paired with a parser. Strategies are tried
// in priority order and the first match wins, so adding a layout means adding
// a strategy rather than touching the existing parsers.
//
// Extraction is a pure function of its input. It never mutates the content
// and holds no state between calls.
package extract

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// Format names the layout a piece of content was parsed as.
type Format string

// Supported formats, in detection order.
const (
	FormatJSON       Format = "json"
	FormatMarkdown   Format = "markdown"
	FormatStructured Format = "structured"
	FormatPlainText  Format = "plaintext"
)

// WarningSingleQuote is attached when the plain text heuristic finds only one quote.
const WarningSingleQuote = "Only one quote was found. If the file holds several, " +
	"separate them with == and put the source on a line starting with --."

// Result is the outcome of a successful extraction.
type Result struct {
	Format   Format
	Quotes   []domain.Quote
	Warnings []string
}

// input is what a strategy predicate gets to look at.
type input struct {
	ext         string
	contentType string
	content     []byte
}

type strategy struct {
	format Format
	match  func(in input) bool
	parse  func(content []byte) ([]domain.Quote, []string, error)
}

// strategies is ordered: extension match, then content sniffing, then fallback.
var strategies = []strategy{
	{format: FormatJSON, match: matchJSON, parse: parseJSON},
	{format: FormatMarkdown, match: matchMarkdown, parse: parseMarkdown},
	{format: FormatStructured, match: matchStructured, parse: parseStructured},
	{format: FormatPlainText, match: func(input) bool { return true }, parse: parsePlainText},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extract parses content into quotes using the first strategy that accepts
// the declared file name and content type. A zero-quote result is not an
// error here; callers decide whether an empty file is acceptable.
func Extract(content []byte, fileName, contentType string) (Result, error) {
	in := newInput(content, fileName, contentType)

	for _, s := range strategies {
		if !s.match(in) {
			continue
		}

		quotes, warnings, err := s.parse(in.content)
		if err != nil {
			return Result{Format: s.format}, err
		}

		return Result{Format: s.format, Quotes: quotes, Warnings: warnings}, nil
	}

	// The plain text strategy accepts everything, so this is unreachable.
	return Result{}, domain.NewFormatError("", "unrecognized content")
}

// DetectFormat reports which strategy Extract would use without parsing.
func DetectFormat(content []byte, fileName, contentType string) Format {
	in := newInput(content, fileName, contentType)

	for _, s := range strategies {
		if s.match(in) {
			return s.format
		}
	}

	return FormatPlainText
}

func newInput(content []byte, fileName, contentType string) input {
	return input{
		ext:         strings.ToLower(filepath.Ext(fileName)),
		contentType: mediaType(contentType),
		content:     bytes.TrimPrefix(content, utf8BOM),
	}
}

// mediaType strips parameters such as charset from a content type.
func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func matchJSON(in input) bool {
	if in.ext == ".json" {
		return true
	}

	if in.ext != "" {
		return false
	}

	if in.contentType == "application/json" {
		return true
	}

	return mimetype.Detect(in.content).Is("application/json")
}

func matchMarkdown(in input) bool {
	switch in.ext {
	case ".md", ".markdown":
		return true
	case "":
		return in.contentType == "text/markdown"
	default:
		return false
	}
}

func matchStructured(in input) bool {
	return bytes.Contains(in.content, []byte(blockDelimiter)) &&
		bytes.Contains(in.content, []byte(segmentDelimiter))
}
