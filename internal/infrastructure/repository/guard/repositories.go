package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/poethra-leaderboard/internal/usecase"
)

// call runs fn through the breaker. Domain outcomes such as a duplicate name are passed
// back untouched and do not count against the dependency.
func call(ctx context.Context, breaker *resilience.CircuitBreaker, fn func(context.Context) error) error {
	var domainErr error
	err := breaker.Do(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if isDomainError(err) {
			domainErr = err
			return nil
		}
		return err
	})
	if domainErr != nil {
		return domainErr
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %s store: %w", usecase.ErrDependencyUnavailable, breaker.Name(), err)
	}
	return err
}

func isDomainError(err error) bool {
	return errors.Is(err, participant.ErrDuplicateName) ||
		errors.Is(err, participant.ErrNotFound)
}

type ParticipantRepository struct {
	next    participant.Repository
	breaker *resilience.CircuitBreaker
}

func NewParticipantRepository(next participant.Repository, breaker *resilience.CircuitBreaker) *ParticipantRepository {
	return &ParticipantRepository{next: next, breaker: breaker}
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	var out []participant.Participant
	err := call(ctx, r.breaker, func(ctx context.Context) error {
		items, err := r.next.List(ctx)
		out = items
		return err
	})
	return out, err
}

func (r *ParticipantRepository) GetByID(ctx context.Context, participantID string) (participant.Participant, bool, error) {
	var (
		out    participant.Participant
		exists bool
	)
	err := call(ctx, r.breaker, func(ctx context.Context) error {
		item, ok, err := r.next.GetByID(ctx, participantID)
		out, exists = item, ok
		return err
	})
	return out, exists, err
}

func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) error {
	return call(ctx, r.breaker, func(ctx context.Context) error {
		return r.next.Create(ctx, item)
	})
}

func (r *ParticipantRepository) Delete(ctx context.Context, participantID string) error {
	return call(ctx, r.breaker, func(ctx context.Context) error {
		return r.next.Delete(ctx, participantID)
	})
}

type WeeklyResultRepository struct {
	next    weeklyresult.Repository
	breaker *resilience.CircuitBreaker
}

func NewWeeklyResultRepository(next weeklyresult.Repository, breaker *resilience.CircuitBreaker) *WeeklyResultRepository {
	return &WeeklyResultRepository{next: next, breaker: breaker}
}

func (r *WeeklyResultRepository) List(ctx context.Context) ([]weeklyresult.WeeklyResult, error) {
	var out []weeklyresult.WeeklyResult
	err := call(ctx, r.breaker, func(ctx context.Context) error {
		items, err := r.next.List(ctx)
		out = items
		return err
	})
	return out, err
}

func (r *WeeklyResultRepository) GetByID(ctx context.Context, resultID string) (weeklyresult.WeeklyResult, bool, error) {
	var (
		out    weeklyresult.WeeklyResult
		exists bool
	)
	err := call(ctx, r.breaker, func(ctx context.Context) error {
		item, ok, err := r.next.GetByID(ctx, resultID)
		out, exists = item, ok
		return err
	})
	return out, exists, err
}

type LeaderboardCommitter struct {
	next    leaderboard.Committer
	breaker *resilience.CircuitBreaker
}

func NewLeaderboardCommitter(next leaderboard.Committer, breaker *resilience.CircuitBreaker) *LeaderboardCommitter {
	return &LeaderboardCommitter{next: next, breaker: breaker}
}

func (c *LeaderboardCommitter) CommitWeek(ctx context.Context, participants []participant.Participant, result weeklyresult.WeeklyResult) error {
	return call(ctx, c.breaker, func(ctx context.Context) error {
		return c.next.CommitWeek(ctx, participants, result)
	})
}
