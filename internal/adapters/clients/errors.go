// Package clients provides the instrumented HTTP client used by remote
// store adapters.
package clients

import "errors"

// Transport-level failures. Store adapters translate them into domain errors.
var (
	// ErrCircuitOpen is returned without contacting the server while the
	// circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last transport error once every
	// attempt has failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
