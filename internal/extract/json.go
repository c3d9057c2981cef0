package extract

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

type jsonDocument struct {
	Quotes json.RawMessage `json:"quotes"`
}

type jsonQuote struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Link   string `json:"link,omitempty"`
}

func parseJSON(content []byte) ([]domain.Quote, []string, error) {
	var doc jsonDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil, domain.NewFormatError(string(FormatJSON), "missing quotes array")
		}

		return nil, nil, domain.NewFormatErrorWithCause(string(FormatJSON), "invalid JSON", err)
	}

	var items []json.RawMessage
	if len(doc.Quotes) == 0 || json.Unmarshal(doc.Quotes, &items) != nil || items == nil {
		return nil, nil, domain.NewFormatError(string(FormatJSON), "missing quotes array")
	}

	quotes := make([]domain.Quote, 0, len(items))
	for _, raw := range items {
		var item jsonQuote
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, nil, domain.NewFormatErrorWithCause(string(FormatJSON), "each quote must have text", err)
		}

		q := domain.Quote{Text: item.Text, Source: item.Source, Link: item.Link}.Normalize()
		if q == (domain.Quote{}) {
			continue
		}

		if q.Text == "" {
			return nil, nil, domain.NewFormatError(string(FormatJSON), "each quote must have text")
		}

		quotes = append(quotes, q)
	}

	return quotes, nil, nil
}

// MarshalJSON renders quotes in the upload JSON layout, the inverse of the
// JSON strategy.
func MarshalJSON(quotes []domain.Quote) ([]byte, error) {
	items := make([]jsonQuote, 0, len(quotes))
	for _, q := range quotes {
		n := q.Normalize()
		if strings.TrimSpace(n.Text) == "" {
			return nil, domain.NewFormatError(string(FormatJSON), "each quote must have text")
		}

		items = append(items, jsonQuote(n))
	}

	return json.MarshalIndent(struct {
		Quotes []jsonQuote `json:"quotes"`
	}{Quotes: items}, "", "  ")
}
