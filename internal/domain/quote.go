package domain

import (
	"strings"
	"time"
)

// Quote is a single quotation as submitted or extracted.
// It has no identity beyond its position within a submission.
type Quote struct {
	// Text is the quotation itself.
	Text string

	// Source is who said or wrote it. Optional for file uploads.
	Source string

	// Link points to where the quote was found. Optional.
	Link string
}

// Normalize returns a copy with every field trimmed.
func (q Quote) Normalize() Quote {
	return Quote{
		Text:   strings.TrimSpace(q.Text),
		Source: strings.TrimSpace(q.Source),
		Link:   strings.TrimSpace(q.Link),
	}
}

// HasLinkScheme reports whether the link is empty or starts with http:// or https://.
func (q Quote) HasLinkScheme() bool {
	if q.Link == "" {
		return true
	}

	return strings.HasPrefix(q.Link, "http://") || strings.HasPrefix(q.Link, "https://")
}

// EntryProblems returns the structured-entry complaints for this quote, in
// display order. An empty slice means the quote is acceptable as a manual entry.
func (q Quote) EntryProblems() []string {
	n := q.Normalize()

	var problems []string
	if n.Text == "" {
		problems = append(problems, "Quote text is required")
	}

	if n.Source == "" {
		problems = append(problems, "Source is required")
	}

	if !n.HasLinkScheme() {
		problems = append(problems, "Link must start with http:// or https://")
	}

	return problems
}

// ValidateEntry checks a manually entered quote: text and source are
// required and a link, when present, must carry an http(s) scheme.
func (q Quote) ValidateEntry() error {
	problems := q.EntryProblems()
	if len(problems) == 0 {
		return nil
	}

	return NewValidationErrorWithFields("invalid quote", map[string]string{
		"quote": strings.Join(problems, "; "),
	})
}

// User is the owner of submitted quotes, keyed by email.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Upload records the file a set of quotes came from.
type Upload struct {
	ID        string
	UserID    string
	Filename  string
	CreatedAt time.Time
}

// StoredQuote is the persisted form of a Quote.
// UploadID is empty for quotes entered directly.
type StoredQuote struct {
	ID        string
	UserID    string
	UploadID  string
	Content   string
	Author    string
	Link      string
	CreatedAt time.Time
}

// NewStoredQuote maps a Quote onto its owning user and optional upload.
func NewStoredQuote(q Quote, userID, uploadID string) StoredQuote {
	n := q.Normalize()

	return StoredQuote{
		UserID:   userID,
		UploadID: uploadID,
		Content:  n.Text,
		Author:   n.Source,
		Link:     n.Link,
	}
}
