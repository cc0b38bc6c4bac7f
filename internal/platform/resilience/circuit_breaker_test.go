package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(threshold int, openTimeout time.Duration, halfOpen int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker("store", CircuitBreakerConfig{
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpen,
	})
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2, 5*time.Second, 1)

	var transitions []string
	b.OnStateChange(func(name string, from, to CircuitState) {
		assert.Equal(t, "store", name)
		transitions = append(transitions, string(from)+"->"+string(to))
	})

	require.NoError(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())

	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	*now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())
	assert.Equal(t, CircuitStateHalfOpen, b.State())

	b.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, b.State())

	assert.Equal(t, []string{"closed->open", "open->half_open", "half_open->closed"}, transitions)
}

func TestCircuitBreaker_Do(t *testing.T) {
	dependencyErr := errors.New("connection refused")

	t.Run("failures open the breaker", func(t *testing.T) {
		b, _ := newTestBreaker(1, time.Minute, 1)

		err := b.Do(t.Context(), func(context.Context) error { return dependencyErr })
		require.ErrorIs(t, err, dependencyErr)

		called := false
		err = b.Do(t.Context(), func(context.Context) error {
			called = true
			return nil
		})
		require.ErrorIs(t, err, ErrCircuitOpen)
		assert.False(t, called)
	})

	t.Run("caller cancellation is not a failure", func(t *testing.T) {
		b, _ := newTestBreaker(1, time.Minute, 1)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := b.Do(ctx, func(ctx context.Context) error { return ctx.Err() })
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, CircuitStateClosed, b.State())
	})

	t.Run("failed half-open probe reopens", func(t *testing.T) {
		b, now := newTestBreaker(1, time.Second, 1)
		b.RecordFailure()
		*now = now.Add(2 * time.Second)

		err := b.Do(t.Context(), func(context.Context) error { return dependencyErr })
		require.ErrorIs(t, err, dependencyErr)
		assert.Equal(t, CircuitStateOpen, b.State())
	})
}
