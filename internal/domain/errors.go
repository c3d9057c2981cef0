// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a state conflict such as a duplicate entry.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates the submitted input is missing fields or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidEmail indicates the email address failed the syntax check.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrFormat indicates uploaded content could not be parsed as quotes.
	ErrFormat = errors.New("unrecognized format")

	// ErrRateLimited indicates the caller exceeded the submission rate.
	ErrRateLimited = errors.New("rate limited")

	// ErrStorage indicates the record store rejected or failed an operation.
	ErrStorage = errors.New("storage failure")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError provides context for conflict errors.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s conflict: %s (%s)", e.Entity, e.Reason, e.Details)
	}

	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewConflictErrorWithDetails creates a conflict error with additional details.
func NewConflictErrorWithDetails(entity, reason, details string) error {
	return &ConflictError{Entity: entity, Reason: reason, Details: details}
}

// ValidationError describes missing or malformed input.
// Fields maps each offending field to a human-readable complaint; Message is
// the summary shown to the caller.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed: " + e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return fmt.Sprintf("validation failed: %s (%s)", e.Message, strings.Join(parts, "; "))
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for a single field.
// An empty field produces an error with no field details.
func NewValidationError(field, message string) error {
	if field == "" {
		return &ValidationError{Message: message}
	}

	return &ValidationError{Message: message, Fields: map[string]string{field: message}}
}

// NewValidationErrorWithFields creates a validation error listing several fields.
func NewValidationErrorWithFields(message string, fields map[string]string) error {
	return &ValidationError{Message: message, Fields: fields}
}

// InvalidEmailError reports an email address that failed the syntax check.
type InvalidEmailError struct {
	Email string
}

// Error implements the error interface.
func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address %q", e.Email)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidEmailError) Unwrap() error {
	return ErrInvalidEmail
}

// NewInvalidEmailError creates an invalid email error.
func NewInvalidEmailError(email string) error {
	return &InvalidEmailError{Email: email}
}

// FormatError reports uploaded content that no parser could make sense of.
// Format names the parser that rejected the content ("json", "structured", ...).
type FormatError struct {
	Format string
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("%s: %s", e.Format, e.Reason)
	}

	return e.Reason
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *FormatError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrFormat, e.Cause}
	}

	return []error{ErrFormat}
}

// NewFormatError creates a format error for the named parser.
func NewFormatError(format, reason string) error {
	return &FormatError{Format: format, Reason: reason}
}

// NewFormatErrorWithCause creates a format error wrapping an underlying parse error.
func NewFormatErrorWithCause(format, reason string, cause error) error {
	return &FormatError{Format: format, Reason: reason, Cause: cause}
}

// RateLimitedError reports that a key exhausted its submission budget.
type RateLimitedError struct {
	Limit      int
	Window     time.Duration
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit of %d submissions per %s exceeded", e.Limit, e.Window)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

// NewRateLimitedError creates a rate limited error.
func NewRateLimitedError(limit int, window, retryAfter time.Duration) error {
	return &RateLimitedError{Limit: limit, Window: window, RetryAfter: retryAfter}
}

// StorageError reports a record store failure during a pipeline step.
// Operation is the caller-facing description ("create user", "store quotes").
type StorageError struct {
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to %s: %v", e.Operation, e.Cause)
	}

	return "failed to " + e.Operation
}

// Unwrap returns the sentinel and the cause for errors.Is() support.
func (e *StorageError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStorage, e.Cause}
	}

	return []error{ErrStorage}
}

// NewStorageError creates a storage error for the given operation.
func NewStorageError(operation string, cause error) error {
	return &StorageError{Operation: operation, Cause: cause}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidEmail checks if an error is an invalid email error.
func IsInvalidEmail(err error) bool {
	return errors.Is(err, ErrInvalidEmail)
}

// IsFormat checks if an error is a format error.
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsRateLimited checks if an error is a rate limited error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsStorage checks if an error is a storage error.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
