package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// markdownParser is safe for concurrent use; goldmark parsers keep no
// per-document state.
var markdownParser = goldmark.New().Parser()

// parseMarkdown reads blockquotes and list items from a markdown document.
//
// A blockquote becomes a quote; the paragraph directly after it, if any, is
// its source. A list item is split on "--" into text, source and link; items
// of a nested list are quotes of their own.
func parseMarkdown(content []byte) ([]domain.Quote, []string, error) {
	doc := markdownParser.Parse(text.NewReader(content))

	var quotes []domain.Quote

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Blockquote:
			q := domain.Quote{Text: plainText(node, content)}
			if next, ok := node.NextSibling().(*ast.Paragraph); ok {
				q.Source = plainText(next, content)
			}

			if q = q.Normalize(); q.Text != "" {
				quotes = append(quotes, q)
			}

			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if q := splitSegments(itemText(node, content)); q.Text != "" {
				quotes = append(quotes, q)
			}

			return ast.WalkContinue, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, nil, domain.NewFormatErrorWithCause(string(FormatMarkdown), "invalid markdown", err)
	}

	return quotes, nil, nil
}

// itemText is the text of a list item without its nested lists and
// blockquotes, which the walk visits separately.
func itemText(item *ast.ListItem, source []byte) string {
	parts := make([]string, 0, item.ChildCount())

	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.List, *ast.Blockquote:
			continue
		}

		if t := plainText(c, source); t != "" {
			parts = append(parts, t)
		}
	}

	return strings.Join(parts, " ")
}

// plainText collects the rendered text beneath n with inline markup removed.
// Separate blocks and soft line breaks become single spaces.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if c != n && c.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}

			return ast.WalkContinue, nil
		}

		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.URL(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}
