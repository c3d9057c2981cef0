package dto

import (
	"encoding/base64"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// File content encodings accepted in SubmissionRequest.FileEncoding.
const (
	EncodingText   = "text"
	EncodingBase64 = "base64"
)

// MessageSubmitted is the success message for a stored submission.
const MessageSubmitted = "Quotes processed successfully"

// QuoteRequest is one manually entered quote. A client-side "id" may be sent
// and is ignored.
type QuoteRequest struct {
	Text   string `json:"text"   validate:"max=10000"`
	Source string `json:"source" validate:"max=1000"`
	Link   string `json:"link"   validate:"max=2048"`
}

// SubmissionRequest is the body of POST /api/v1/submissions. Presence rules
// (email required, quotes or file required) are enforced by the submission
// service so every variant reports them the same way.
type SubmissionRequest struct {
	Email  string         `json:"email"  validate:"max=320"`
	Quotes []QuoteRequest `json:"quotes" validate:"omitempty,dive"`

	FileName     string `json:"fileName"     validate:"max=255"`
	FileContent  string `json:"fileContent"`
	FileType     string `json:"fileType"     validate:"max=255"`
	FileEncoding string `json:"fileEncoding" validate:"omitempty,oneof=text base64"`
}

// ToDomain converts the request. A sent-but-empty quotes array stays
// non-nil so it can be told apart from an absent one. Base64 content that
// does not decode is a validation error.
func (r *SubmissionRequest) ToDomain() (*domain.Submission, error) {
	sub := &domain.Submission{Email: r.Email}

	if r.Quotes != nil {
		sub.Quotes = make([]domain.Quote, len(r.Quotes))
		for i, q := range r.Quotes {
			sub.Quotes[i] = domain.Quote{Text: q.Text, Source: q.Source, Link: q.Link}
		}

		return sub, nil
	}

	if r.FileName == "" && r.FileContent == "" {
		return sub, nil
	}

	content := []byte(r.FileContent)

	if r.FileEncoding == EncodingBase64 {
		decoded, err := base64.StdEncoding.DecodeString(r.FileContent)
		if err != nil {
			return nil, domain.NewValidationError("fileContent", "must be valid base64")
		}

		content = decoded
	}

	sub.File = &domain.UploadedFile{
		Name:        r.FileName,
		ContentType: r.FileType,
		Content:     content,
	}

	return sub, nil
}

// SubmissionResponse is the 200 body of a stored submission.
type SubmissionResponse struct {
	Message     string   `json:"message"`
	QuotesCount int      `json:"quotesCount"`
	Warnings    []string `json:"warnings,omitempty"`
}

// NewSubmissionResponse builds the success body.
func NewSubmissionResponse(res *domain.SubmissionResult) *SubmissionResponse {
	return &SubmissionResponse{
		Message:     MessageSubmitted,
		QuotesCount: res.QuotesCount,
		Warnings:    res.Warnings,
	}
}
