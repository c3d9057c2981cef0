// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

// Caller-facing messages shared by several exit paths.
const (
	MessageInternal         = "An unexpected error occurred"
	MessageMethodNotAllowed = "Method Not Allowed"
	MessageNotFound         = "Not Found"
	MessageRateLimited      = "Too many submissions, please try again later"
	MessageInvalidEmail     = "Invalid email address"
	MessageInvalidFile      = "Could not read quotes from file"
	MessageInvalidBody      = "Invalid request body"
	MessageTimeout          = "Request timed out"
)

// ErrorResponse is the error envelope for every non-2xx response.
//
//	400: {"message": "...", "details": {"field": "complaint"}}
//	500: {"message": "...", "error": "..."}   error only outside production
type ErrorResponse struct {
	// Message is a single human-readable sentence.
	Message string `json:"message"`

	// Details maps offending request fields to complaints.
	Details map[string]string `json:"details,omitempty"`

	// Error is the underlying error text. Set only when details are exposed.
	Error string `json:"error,omitempty"`

	TraceID string `json:"traceId,omitempty"`
}

// NewErrorResponse creates an error response carrying only a message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Message: message}
}

// NewErrorResponseWithDetails creates an error response with field details.
func NewErrorResponseWithDetails(message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Message: message, Details: details}
}

// WithError attaches the underlying error text.
func (e *ErrorResponse) WithError(err error) *ErrorResponse {
	if err != nil {
		e.Error = err.Error()
	}

	return e
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}
