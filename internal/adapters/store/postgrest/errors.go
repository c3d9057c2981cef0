package postgrest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-digest/internal/adapters/clients"
	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// SQLSTATE codes PostgREST passes through in the error body.
const (
	codeUniqueViolation = "23505"
	codeUndefinedTable  = "42P01"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a request the server understood but refused.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}

	if e.Code != "" {
		msg = fmt.Sprintf("%s (code %s)", msg, e.Code)
	}

	if e.Details != "" {
		msg += ": " + e.Details
	}

	return fmt.Sprintf("postgrest %d: %s", e.Status, msg)
}

// parseError reads a PostgREST error body. Bodies that are not JSON become
// the message verbatim.
func parseError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	if resp.Body == nil {
		return apiErr
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	// details and hint may be null or absent.
	if json.Unmarshal(raw, apiErr) != nil {
		apiErr.Message = string(raw)
	}

	apiErr.Status = resp.StatusCode

	return apiErr
}

// mapError translates a failed exchange into a domain error. entity names
// the table for conflict errors.
func mapError(resp *http.Response, clientErr error, operation, entity string) error {
	if clientErr != nil {
		return mapClientError(clientErr, operation)
	}

	apiErr := parseError(resp)

	switch {
	case resp.StatusCode == http.StatusConflict || apiErr.Code == codeUniqueViolation:
		return domain.NewConflictErrorWithDetails(entity, "already exists", apiErr.Message)
	case resp.StatusCode >= http.StatusInternalServerError,
		resp.StatusCode == http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s: %s", operation, apiErr.Error()))
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return domain.NewUnavailableError(serviceName, operation+": service key rejected")
	case resp.StatusCode == http.StatusNotFound || apiErr.Code == codeUndefinedTable:
		return domain.NewUnavailableError(serviceName, operation+": table not found")
	default:
		return apiErr
	}
}

func mapClientError(err error, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName, "circuit breaker open during "+operation)
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName, "retries exhausted during "+operation)
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
	}
}
