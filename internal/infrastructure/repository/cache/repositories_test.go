package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
	leaderboardmock "github.com/riskibarqy/poethra-leaderboard/internal/mocks/domain/leaderboard"
	participantmock "github.com/riskibarqy/poethra-leaderboard/internal/mocks/domain/participant"
	weeklyresultmock "github.com/riskibarqy/poethra-leaderboard/internal/mocks/domain/weeklyresult"
	basecache "github.com/riskibarqy/poethra-leaderboard/internal/platform/cache"
)

func TestParticipantRepository_ListIsCachedUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := participantmock.NewRepository(t)
	repo := NewParticipantRepository(next, basecache.NewStore(time.Minute))

	alice := participant.Participant{ID: "p-1", Name: "Alice", ParticipationHistory: []int{1}}
	next.On("List", mock.Anything).Return([]participant.Participant{alice}, nil).Twice()
	next.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	first[0].ParticipationHistory[0] = 99

	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, second[0].ParticipationHistory)

	require.NoError(t, repo.Create(ctx, participant.Participant{ID: "p-2", Name: "Bob"}))

	_, err = repo.List(ctx)
	require.NoError(t, err)
}

func TestParticipantRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := participantmock.NewRepository(t)
	repo := NewParticipantRepository(next, basecache.NewStore(time.Minute))

	next.On("GetByID", mock.Anything, "p-1").Return(participant.Participant{}, false, errors.New("boom")).Once()
	next.On("GetByID", mock.Anything, "p-1").Return(participant.Participant{ID: "p-1", Name: "Alice"}, true, nil).Once()

	_, _, err := repo.GetByID(ctx, "p-1")
	require.Error(t, err)

	got, exists, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "Alice", got.Name)

	got, exists, err = repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "Alice", got.Name)
}

func TestParticipantRepository_DeleteInvalidatesOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := participantmock.NewRepository(t)
	repo := NewParticipantRepository(next, basecache.NewStore(time.Minute))

	next.On("List", mock.Anything).Return([]participant.Participant{}, nil).Twice()
	next.On("Delete", mock.Anything, "p-9").Return(participant.ErrNotFound).Once()

	_, err := repo.List(ctx)
	require.NoError(t, err)

	err = repo.Delete(ctx, "p-9")
	require.ErrorIs(t, err, participant.ErrNotFound)

	_, err = repo.List(ctx)
	require.NoError(t, err)
}

func TestLeaderboardCommitter_InvalidatesReads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := basecache.NewStore(time.Minute)
	participants := participantmock.NewRepository(t)
	results := weeklyresultmock.NewRepository(t)
	committer := leaderboardmock.NewCommitter(t)

	participantRepo := NewParticipantRepository(participants, store)
	resultRepo := NewWeeklyResultRepository(results, store)
	cachedCommitter := NewLeaderboardCommitter(committer, store)

	participants.On("List", mock.Anything).Return([]participant.Participant{}, nil).Twice()
	results.On("List", mock.Anything).Return([]weeklyresult.WeeklyResult{}, nil).Twice()
	committer.On("CommitWeek", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("partial write")).Once()

	_, err := participantRepo.List(ctx)
	require.NoError(t, err)
	_, err = resultRepo.List(ctx)
	require.NoError(t, err)

	err = cachedCommitter.CommitWeek(ctx, nil, weeklyresult.WeeklyResult{ID: "2025_H1_1"})
	require.Error(t, err)

	_, err = participantRepo.List(ctx)
	require.NoError(t, err)
	_, err = resultRepo.List(ctx)
	require.NoError(t, err)
}

// slowParticipants snapshots its rows when List starts and, once armed, holds the
// snapshot until released.
type slowParticipants struct {
	participant.Repository

	mu      sync.Mutex
	rows    []participant.Participant
	armed   atomic.Bool
	listing chan struct{}
	release chan struct{}
}

func (s *slowParticipants) List(context.Context) ([]participant.Participant, error) {
	s.mu.Lock()
	snapshot := cloneParticipants(s.rows)
	s.mu.Unlock()

	if s.armed.CompareAndSwap(true, false) {
		close(s.listing)
		<-s.release
	}
	return snapshot, nil
}

func (s *slowParticipants) CommitWeek(_ context.Context, participants []participant.Participant, _ weeklyresult.WeeklyResult) error {
	s.mu.Lock()
	s.rows = cloneParticipants(participants)
	s.mu.Unlock()
	return nil
}

func TestParticipantRepository_ReadOverlappingCommitIsNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := basecache.NewStore(time.Minute)
	backing := &slowParticipants{
		rows:    []participant.Participant{{ID: "p-1", Name: "Alice"}},
		listing: make(chan struct{}),
		release: make(chan struct{}),
	}
	backing.armed.Store(true)

	repo := NewParticipantRepository(backing, store)
	committer := NewLeaderboardCommitter(backing, store)

	stale := make(chan []participant.Participant, 1)
	go func() {
		items, _ := repo.List(ctx)
		stale <- items
	}()
	<-backing.listing

	committed := []participant.Participant{{ID: "p-1", Name: "Alice", TotalPoints: 10, CurrentStreak: 1, ParticipationHistory: []int{1}}}
	require.NoError(t, committer.CommitWeek(ctx, committed, weeklyresult.WeeklyResult{ID: "2025_H1_1"}))

	close(backing.release)
	inFlight := <-stale
	require.Len(t, inFlight, 1)
	assert.Equal(t, 0, inFlight[0].TotalPoints)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].TotalPoints)
	assert.Equal(t, []int{1}, got[0].ParticipationHistory)
}
