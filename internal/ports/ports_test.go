package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name  string
	err   error
	delay time.Duration
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return s.err
}

func TestNewHealthRegistry_DefaultTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCheckTimeout, NewHealthRegistry(0).timeout)
	assert.Equal(t, time.Second, NewHealthRegistry(time.Second).timeout)
}

func TestRegister_DuplicateName(t *testing.T) {
	t.Parallel()

	registry := NewHealthRegistry(0)

	require.NoError(t, registry.Register(&stubChecker{name: "store.sqlite"}))

	err := registry.Register(&stubChecker{name: "store.sqlite"})
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "store.sqlite")
}

func TestCheckAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checkers   []HealthChecker
		wantStatus HealthStatus
		wantFailed []string
	}{
		{
			name:       "no checkers",
			wantStatus: HealthStatusHealthy,
		},
		{
			name: "all healthy",
			checkers: []HealthChecker{
				&stubChecker{name: "store.memory"},
				&stubChecker{name: "limiter"},
			},
			wantStatus: HealthStatusHealthy,
		},
		{
			name: "store unreachable",
			checkers: []HealthChecker{
				&stubChecker{name: "store.postgrest", err: errors.New("connection refused")},
				&stubChecker{name: "limiter"},
			},
			wantStatus: HealthStatusUnhealthy,
			wantFailed: []string{"store.postgrest"},
		},
		{
			name: "slow check times out",
			checkers: []HealthChecker{
				&stubChecker{name: "store.mysql", delay: time.Second},
			},
			wantStatus: HealthStatusUnhealthy,
			wantFailed: []string{"store.mysql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := NewHealthRegistry(20 * time.Millisecond)
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Len(t, result.Checks, len(tt.checkers))
			assert.False(t, result.Timestamp.IsZero())

			for _, name := range tt.wantFailed {
				require.Contains(t, result.Checks, name)
				assert.Equal(t, HealthStatusUnhealthy, result.Checks[name].Status)
				assert.NotEmpty(t, result.Checks[name].Message)
			}
		})
	}
}

func TestCheckAll_CancelledContext(t *testing.T) {
	t.Parallel()

	registry := NewHealthRegistry(time.Second)
	require.NoError(t, registry.Register(&stubChecker{name: "store.sqlite", delay: time.Second}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
}
