package clients

import (
	"sync"
	"time"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen blocks requests until the cool-down has passed.
	StateOpen

	// StateHalfOpen lets a limited number of probes through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker behavior.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures int

	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration

	// HalfOpenLimit is both the number of concurrent probes and the number of
	// consecutive successes needed to close the circuit again.
	HalfOpenLimit int

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Snapshot is a point-in-time view of the breaker used by health checks.
type Snapshot struct {
	State    State
	Failures int
	// RetryAt is when an open circuit admits its first probe. Zero unless open.
	RetryAt time.Time
}

// CircuitBreaker stops calling a store that keeps failing.
//
// Transitions:
//   - closed → open after MaxFailures consecutive failures
//   - open → half-open once Timeout has passed since the last failure
//   - half-open → closed after HalfOpenLimit consecutive successes
//   - half-open → open on any failure
type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      CircuitBreakerConfig
	now      func() time.Time
	state    State
	failures int
	// successes and inFlight only count while half-open.
	successes   int
	inFlight    int
	lastFailure time.Time
	onChange    func(from, to State)
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 1
	}

	if cfg.HalfOpenLimit <= 0 {
		cfg.HalfOpenLimit = 1
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &CircuitBreaker{cfg: cfg, now: now, state: StateClosed}
}

// OnStateChange registers a callback run on every transition. It runs on its
// own goroutine so it may call back into the breaker.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onChange = fn
}

// Allow reports whether a request may proceed. Every allowed request must be
// followed by RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastFailure) < cb.cfg.Timeout {
			return false
		}

		cb.setState(StateHalfOpen)
		cb.inFlight = 1

		return true
	case StateHalfOpen:
		if cb.inFlight >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.inFlight++

		return true
	default:
		return false
	}
}

// RecordSuccess records a request that reached the server and got a
// non-5xx answer.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.inFlight--
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.setState(StateClosed)
		}
	}
}

// RecordFailure records a transport error or 5xx answer.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++

		if cb.failures >= cb.cfg.MaxFailures {
			cb.setState(StateOpen)
		}
	case StateHalfOpen:
		cb.inFlight--
		cb.setState(StateOpen)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// Snapshot returns the current state and counters.
func (cb *CircuitBreaker) Snapshot() Snapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	s := Snapshot{State: cb.state, Failures: cb.failures}
	if cb.state == StateOpen {
		s.RetryAt = cb.lastFailure.Add(cb.cfg.Timeout)
	}

	return s
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(next State) {
	if cb.state == next {
		return
	}

	prev := cb.state
	cb.state = next
	cb.failures = 0
	cb.successes = 0

	if next != StateHalfOpen {
		cb.inFlight = 0
	}

	if cb.onChange != nil {
		go cb.onChange(prev, next)
	}
}
