package domain

import (
	"regexp"
	"strings"
)

// emailPattern is a conservative local@domain.tld check, not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lowercases an address so lookups and rate limit
// keys agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email passes the syntax check.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// UploadedFile is the raw file half of a file-based submission.
type UploadedFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// Submission is one request to store quotes for an email address.
// Exactly one of Quotes or File is expected. A nil Quotes means the field
// was absent; an empty non-nil slice means it was sent empty.
type Submission struct {
	Email  string
	Quotes []Quote
	File   *UploadedFile
}

// IsFile reports whether the quotes come from an uploaded file.
func (s *Submission) IsFile() bool {
	return s.Quotes == nil && s.File != nil
}

// SubmissionResult summarizes a stored submission.
type SubmissionResult struct {
	UserID      string
	UploadID    string
	QuotesCount int
	Warnings    []string
}
