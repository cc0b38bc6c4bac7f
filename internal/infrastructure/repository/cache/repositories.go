package cache

import (
	"context"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
	basecache "github.com/riskibarqy/poethra-leaderboard/internal/platform/cache"
)

const (
	participantPrefix  = "participant:"
	participantListKey = participantPrefix + "list"
	weeklyResultPrefix = "weekly_result:"
	weeklyResultList   = weeklyResultPrefix + "list"
)

type ParticipantRepository struct {
	next  participant.Repository
	cache *basecache.Store
}

func NewParticipantRepository(next participant.Repository, cache *basecache.Store) *ParticipantRepository {
	return &ParticipantRepository{next: next, cache: cache}
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	v, err := r.cache.GetOrLoad(ctx, participantListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneParticipants(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]participant.Participant)
	return cloneParticipants(items), nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, participantID string) (participant.Participant, bool, error) {
	key := participantPrefix + "id:" + participantID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, participantID)
		if err != nil {
			return nil, err
		}
		return cachedParticipantByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return participant.Participant{}, false, err
	}

	cached, _ := v.(cachedParticipantByID)
	return cached.value.Clone(), cached.exists, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) error {
	defer r.cache.DeletePrefix(ctx, participantPrefix)
	return r.next.Create(ctx, item)
}

func (r *ParticipantRepository) Delete(ctx context.Context, participantID string) error {
	defer r.cache.DeletePrefix(ctx, participantPrefix)
	return r.next.Delete(ctx, participantID)
}

type cachedParticipantByID struct {
	value  participant.Participant
	exists bool
}

type WeeklyResultRepository struct {
	next  weeklyresult.Repository
	cache *basecache.Store
}

func NewWeeklyResultRepository(next weeklyresult.Repository, cache *basecache.Store) *WeeklyResultRepository {
	return &WeeklyResultRepository{next: next, cache: cache}
}

func (r *WeeklyResultRepository) List(ctx context.Context) ([]weeklyresult.WeeklyResult, error) {
	v, err := r.cache.GetOrLoad(ctx, weeklyResultList, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneResults(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]weeklyresult.WeeklyResult)
	return cloneResults(items), nil
}

func (r *WeeklyResultRepository) GetByID(ctx context.Context, resultID string) (weeklyresult.WeeklyResult, bool, error) {
	key := weeklyResultPrefix + "id:" + resultID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, resultID)
		if err != nil {
			return nil, err
		}
		return cachedWeeklyResultByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return weeklyresult.WeeklyResult{}, false, err
	}

	cached, _ := v.(cachedWeeklyResultByID)
	return cached.value.Clone(), cached.exists, nil
}

type cachedWeeklyResultByID struct {
	value  weeklyresult.WeeklyResult
	exists bool
}

// LeaderboardCommitter drops every cached participant and result after a week commit,
// including a failed one, since a serialized backend may have written part of it.
type LeaderboardCommitter struct {
	next  leaderboard.Committer
	cache *basecache.Store
}

func NewLeaderboardCommitter(next leaderboard.Committer, cache *basecache.Store) *LeaderboardCommitter {
	return &LeaderboardCommitter{next: next, cache: cache}
}

func (c *LeaderboardCommitter) CommitWeek(ctx context.Context, participants []participant.Participant, result weeklyresult.WeeklyResult) error {
	defer func() {
		c.cache.DeletePrefix(ctx, participantPrefix)
		c.cache.DeletePrefix(ctx, weeklyResultPrefix)
	}()
	return c.next.CommitWeek(ctx, participants, result)
}

func cloneParticipants(items []participant.Participant) []participant.Participant {
	out := make([]participant.Participant, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

func cloneResults(items []weeklyresult.WeeklyResult) []weeklyresult.WeeklyResult {
	out := make([]weeklyresult.WeeklyResult, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
