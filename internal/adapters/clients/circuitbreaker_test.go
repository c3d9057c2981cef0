package clients

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newTestBreaker(maxFailures, halfOpen int) (*CircuitBreaker, *manualClock) {
	clock := newManualClock()

	return NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   maxFailures,
		Timeout:       30 * time.Second,
		HalfOpenLimit: halfOpen,
		Now:           clock.Now,
	}), clock
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(3, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.Allow())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(3, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	cb.RecordFailure()

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 2, cb.Snapshot().Failures)
}

func TestCircuitBreaker_HalfOpenProbes(t *testing.T) {
	cb, clock := newTestBreaker(1, 2)

	cb.RecordFailure()
	require.Equal(t, StateOpen, cb.State())

	snap := cb.Snapshot()
	assert.Equal(t, clock.Now().Add(30*time.Second), snap.RetryAt)

	clock.Advance(29 * time.Second)
	assert.False(t, cb.Allow(), "still cooling down")

	clock.Advance(time.Second)
	assert.True(t, cb.Allow(), "first probe")
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.True(t, cb.Allow(), "second probe")
	assert.False(t, cb.Allow(), "probe limit reached")

	cb.RecordSuccess()
	assert.Equal(t, StateHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.Snapshot().RetryAt.IsZero())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1, 2)

	cb.RecordFailure()
	clock.Advance(30 * time.Second)
	require.True(t, cb.Allow())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	cb, _ := newTestBreaker(1, 1)

	changes := make(chan [2]State, 1)
	cb.OnStateChange(func(from, to State) { changes <- [2]State{from, to} })

	cb.RecordFailure()

	select {
	case got := <-changes:
		assert.Equal(t, [2]State{StateClosed, StateOpen}, got)
	case <-time.After(time.Second):
		t.Fatal("state change callback not called")
	}
}

func TestCircuitBreaker_ZeroConfigDefaults(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_Concurrent(t *testing.T) {
	cb, _ := newTestBreaker(100, 10)

	var wg sync.WaitGroup

	for i := range 1000 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if !cb.Allow() {
				return
			}

			if i%2 == 0 {
				cb.RecordSuccess()
			} else {
				cb.RecordFailure()
			}
		}()
	}

	wg.Wait()

	assert.Contains(t, []State{StateClosed, StateOpen, StateHalfOpen}, cb.State())
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateClosed, "closed"},
		{StateOpen, "open"},
		{StateHalfOpen, "half-open"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}
