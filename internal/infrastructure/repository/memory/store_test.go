package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

func newParticipant(t *testing.T, id, name string) participant.Participant {
	t.Helper()
	p, err := participant.New(id, name, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestParticipantRepository_CreateListDelete(t *testing.T) {
	t.Parallel()

	store := NewStore()
	repo := store.Participants()
	ctx := t.Context()

	require.NoError(t, repo.Create(ctx, newParticipant(t, "p-1", "Alice")))
	require.NoError(t, repo.Create(ctx, newParticipant(t, "p-2", "Bob")))

	err := repo.Create(ctx, newParticipant(t, "p-3", " alice "))
	require.ErrorIs(t, err, participant.ErrDuplicateName)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Alice", items[0].Name)
	assert.Equal(t, "Bob", items[1].Name)

	require.NoError(t, repo.Delete(ctx, "p-1"))
	require.ErrorIs(t, repo.Delete(ctx, "p-1"), participant.ErrNotFound)

	_, found, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.False(t, found)

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-2", items[0].ID)
}

func TestParticipantRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewStore(participant.Participant{ID: "p-1", Name: "Alice", ParticipationHistory: []int{1}})
	repo := store.Participants()

	items, err := repo.List(t.Context())
	require.NoError(t, err)
	items[0].ParticipationHistory[0] = 99
	items[0].TotalPoints = 100

	got, found, err := repo.GetByID(t.Context(), "p-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []int{1}, got.ParticipationHistory)
	assert.Zero(t, got.TotalPoints)
}

func TestStore_CommitWeek(t *testing.T) {
	t.Parallel()

	store := NewStore(
		participant.Participant{ID: "p-1", Name: "Alice"},
		participant.Participant{ID: "p-2", Name: "Bob"},
	)
	ctx := t.Context()

	rank := 1
	result := weeklyresult.WeeklyResult{
		ID:                 "2025_H1_1",
		Week:               weeklyresult.Week{Year: 2025, Semester: weeklyresult.SemesterH1, Number: 1},
		WeeklyParticipants: []string{"Alice"},
	}
	err := store.CommitWeek(ctx, []participant.Participant{
		{ID: "p-1", Name: "Alice", TotalPoints: 10, CurrentStreak: 1, BestRank: &rank, ParticipationHistory: []int{1}},
		{ID: "p-2", Name: "Bob"},
	}, result)
	require.NoError(t, err)

	alice, _, err := store.Participants().GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 10, alice.TotalPoints)

	got, found, err := store.WeeklyResults().GetByID(ctx, "2025_H1_1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"Alice"}, got.WeeklyParticipants)

	require.NoError(t, store.CommitWeek(ctx, nil, result))
	results, err := store.WeeklyResults().List(ctx)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStore_CommitWeek_CanceledContextWritesNothing(t *testing.T) {
	t.Parallel()

	store := NewStore(participant.Participant{ID: "p-1", Name: "Alice"})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := store.CommitWeek(ctx, []participant.Participant{{ID: "p-1", Name: "Alice", TotalPoints: 10}}, weeklyresult.WeeklyResult{ID: "2025_H1_1"})
	require.ErrorIs(t, err, context.Canceled)

	alice, _, err := store.Participants().GetByID(t.Context(), "p-1")
	require.NoError(t, err)
	assert.Zero(t, alice.TotalPoints)

	results, err := store.WeeklyResults().List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWeeklyResultRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := t.Context()
	for _, week := range []weeklyresult.Week{
		{Year: 2024, Semester: weeklyresult.SemesterH2, Number: 7},
		{Year: 2025, Semester: weeklyresult.SemesterH1, Number: 2},
		{Year: 2025, Semester: weeklyresult.SemesterH1, Number: 4},
	} {
		require.NoError(t, store.CommitWeek(ctx, nil, weeklyresult.WeeklyResult{ID: week.ID(), Week: week}))
	}

	items, err := store.WeeklyResults().List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "2025_H1_4", items[0].ID)
	assert.Equal(t, "2025_H1_2", items[1].ID)
	assert.Equal(t, "2024_H2_7", items[2].ID)
}
