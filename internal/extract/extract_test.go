package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		fileName    string
		contentType string
		expected    Format
	}{
		{"json extension", "not even json", "quotes.json", "", FormatJSON},
		{"json extension is case insensitive", "{}", "QUOTES.JSON", "", FormatJSON},
		{"json content type without extension", "{}", "upload", "application/json; charset=utf-8", FormatJSON},
		{"json sniffed without extension", `{"quotes":[]}`, "", "", FormatJSON},
		{"txt extension wins over json content", `{"quotes":[]}`, "quotes.txt", "", FormatPlainText},
		{"markdown extension", "> hi", "quotes.md", "", FormatMarkdown},
		{"long markdown extension", "> hi", "quotes.markdown", "", FormatMarkdown},
		{"markdown content type", "> hi", "", "text/markdown", FormatMarkdown},
		{"structured markers", "A -- B == C -- D", "quotes.txt", "", FormatStructured},
		{"only one marker", "A -- B", "quotes.txt", "", FormatPlainText},
		{"plain fallback", "hello", "quotes.txt", "text/plain", FormatPlainText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat([]byte(tt.content), tt.fileName, tt.contentType))
		})
	}
}

func TestExtract_JSON(t *testing.T) {
	content := `{"quotes":[
		{"text":"  First  ","source":" One ","link":" https://example.com/1 "},
		{"text":"Second","source":"Two"},
		{"text":"Third"}
	]}`

	res, err := Extract([]byte(content), "quotes.json", "")
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, res.Format)
	assert.Equal(t, []domain.Quote{
		{Text: "First", Source: "One", Link: "https://example.com/1"},
		{Text: "Second", Source: "Two"},
		{Text: "Third"},
	}, res.Quotes)
	assert.Empty(t, res.Warnings)
}

func TestExtract_JSONSourceOptional(t *testing.T) {
	res, err := Extract([]byte(`{"quotes":[{"text":"Q"}]}`), "x.json", "")
	require.NoError(t, err)

	require.Len(t, res.Quotes, 1)
	assert.Equal(t, domain.Quote{Text: "Q"}, res.Quotes[0])
}

func TestExtract_JSONDropsEmptyElements(t *testing.T) {
	res, err := Extract([]byte(`{"quotes":[{}, {"text":"  ","source":""}, {"text":"Q"}]}`), "x.json", "")
	require.NoError(t, err)

	assert.Equal(t, []domain.Quote{{Text: "Q"}}, res.Quotes)
}

func TestExtract_JSONEmptyArray(t *testing.T) {
	res, err := Extract([]byte(`{"quotes":[]}`), "x.json", "")
	require.NoError(t, err)

	assert.Empty(t, res.Quotes)
}

func TestExtract_JSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{"invalid syntax", `{"quotes":[`, "invalid JSON"},
		{"no quotes key", `{"items":[]}`, "missing quotes array"},
		{"quotes is null", `{"quotes":null}`, "missing quotes array"},
		{"quotes is not an array", `{"quotes":"Q"}`, "missing quotes array"},
		{"top level array", `[{"text":"Q"}]`, "missing quotes array"},
		{"quote without text", `{"quotes":[{"source":"S"}]}`, "each quote must have text"},
		{"text is not a string", `{"quotes":[{"text":42}]}`, "each quote must have text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract([]byte(tt.content), "x.json", "")
			require.Error(t, err)
			assert.True(t, domain.IsFormat(err))

			var formatErr *domain.FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, "json", formatErr.Format)
			assert.Equal(t, tt.reason, formatErr.Reason)
		})
	}
}

func TestExtract_Structured(t *testing.T) {
	res, err := Extract([]byte("A -- B == C -- D"), "quotes.txt", "")
	require.NoError(t, err)

	assert.Equal(t, FormatStructured, res.Format)
	assert.Equal(t, []domain.Quote{
		{Text: "A", Source: "B"},
		{Text: "C", Source: "D"},
	}, res.Quotes)
}

func TestExtract_StructuredMultiline(t *testing.T) {
	content := "Life is what happens while you're busy making other plans.\n" +
		"-- John Lennon\n" +
		"-- https://example.com/quote1\n" +
		"==\n" +
		"\n==\n" +
		"The only way to do great work is to love what you do.\n" +
		"-- Steve Jobs\n" +
		"==\n" +
		"A link with dashes\n" +
		"-- Someone\n" +
		"-- https://example.com/a--b\n"

	res, err := Extract([]byte(content), "quotes.txt", "")
	require.NoError(t, err)

	assert.Equal(t, []domain.Quote{
		{Text: "Life is what happens while you're busy making other plans.", Source: "John Lennon", Link: "https://example.com/quote1"},
		{Text: "The only way to do great work is to love what you do.", Source: "Steve Jobs"},
		{Text: "A link with dashes", Source: "Someone", Link: "https://example.com/a--b"},
	}, res.Quotes)
}

func TestExtract_StructuredMissingText(t *testing.T) {
	_, err := Extract([]byte("A -- B == -- D"), "quotes.txt", "")
	require.Error(t, err)

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "structured", formatErr.Format)
}

func TestExtract_LinkSchemeNotEnforced(t *testing.T) {
	res, err := Extract([]byte("A -- B -- example.com =="), "quotes.txt", "")
	require.NoError(t, err)

	require.Len(t, res.Quotes, 1)
	assert.Equal(t, "example.com", res.Quotes[0].Link)
	assert.Error(t, res.Quotes[0].ValidateEntry(), "structured entry validation still rejects it")
}

func TestExtract_DoesNotMutateInput(t *testing.T) {
	content := []byte("\xEF\xBB\xBF  A -- B == C -- D  ")
	original := append([]byte(nil), content...)

	_, err := Extract(content, "quotes.txt", "")
	require.NoError(t, err)

	assert.Equal(t, original, content)
}

func TestRoundTrip_Structured(t *testing.T) {
	quotes := []domain.Quote{
		{Text: "Only text"},
		{Text: "Text and source", Source: "Someone"},
		{Text: "Everything", Source: "Someone Else", Link: "https://example.com/x--y"},
		{Text: "Link without source", Link: "http://example.com"},
		{Text: "Line one\nline two", Source: "Poet"},
	}

	rendered, err := MarshalStructured(quotes)
	require.NoError(t, err)

	res, err := Extract([]byte(rendered), "roundtrip.txt", "")
	require.NoError(t, err)

	assert.Equal(t, FormatStructured, res.Format)
	assert.Equal(t, quotes, res.Quotes)
}

func TestRoundTrip_StructuredSingleQuote(t *testing.T) {
	quotes := []domain.Quote{{Text: "Alone"}}

	rendered, err := MarshalStructured(quotes)
	require.NoError(t, err)

	res, err := Extract([]byte(rendered), "roundtrip.txt", "")
	require.NoError(t, err)
	assert.Equal(t, quotes, res.Quotes)
}

func TestMarshalStructured_RejectsDelimiters(t *testing.T) {
	tests := []domain.Quote{
		{Text: ""},
		{Text: "a == b"},
		{Text: "a -- b"},
		{Text: "ok", Source: "x -- y"},
		{Text: "ok", Link: "https://example.com/?a==b"},
	}

	for _, q := range tests {
		_, err := MarshalStructured([]domain.Quote{q})
		assert.True(t, domain.IsFormat(err), "quote %+v", q)
	}
}

func TestRoundTrip_JSON(t *testing.T) {
	quotes := []domain.Quote{
		{Text: "Only text"},
		{Text: "With == and -- inside", Source: "Anyone"},
		{Text: "Everything", Source: "Someone", Link: "https://example.com"},
	}

	rendered, err := MarshalJSON(quotes)
	require.NoError(t, err)

	res, err := Extract(rendered, "roundtrip.json", "")
	require.NoError(t, err)

	assert.Equal(t, quotes, res.Quotes)
}

func TestMarshalJSON_RequiresText(t *testing.T) {
	_, err := MarshalJSON([]domain.Quote{{Source: "S"}})
	assert.True(t, domain.IsFormat(err))
}
