package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
	leaderboardmock "github.com/riskibarqy/poethra-leaderboard/internal/mocks/domain/leaderboard"
	participantmock "github.com/riskibarqy/poethra-leaderboard/internal/mocks/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/poethra-leaderboard/internal/usecase"
)

func newBreaker() *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker("test", resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      time.Hour,
		HalfOpenMaxReq:   1,
	})
}

func TestParticipantRepository_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := participantmock.NewRepository(t)
	breaker := newBreaker()
	repo := NewParticipantRepository(next, breaker)

	next.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Twice()

	for range 2 {
		_, err := repo.List(ctx)
		require.Error(t, err)
		assert.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	}
	assert.Equal(t, resilience.CircuitStateOpen, breaker.State())

	_, err := repo.List(ctx)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestParticipantRepository_DomainErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := participantmock.NewRepository(t)
	breaker := newBreaker()
	repo := NewParticipantRepository(next, breaker)

	next.On("Create", mock.Anything, mock.Anything).Return(participant.ErrDuplicateName).Times(3)
	next.On("Delete", mock.Anything, "p-9").Return(participant.ErrNotFound).Times(3)

	for range 3 {
		require.ErrorIs(t, repo.Create(ctx, participant.Participant{ID: "p-1", Name: "Alice"}), participant.ErrDuplicateName)
		require.ErrorIs(t, repo.Delete(ctx, "p-9"), participant.ErrNotFound)
	}
	assert.Equal(t, resilience.CircuitStateClosed, breaker.State())
}

func TestLeaderboardCommitter_PassesThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := leaderboardmock.NewCommitter(t)
	committer := NewLeaderboardCommitter(next, newBreaker())

	result := weeklyresult.WeeklyResult{ID: "2025_H1_2"}
	next.On("CommitWeek", mock.Anything, mock.Anything, result).Return(nil).Once()

	require.NoError(t, committer.CommitWeek(ctx, []participant.Participant{{ID: "p-1"}}, result))
}
