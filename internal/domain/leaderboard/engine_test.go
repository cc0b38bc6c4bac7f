package leaderboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

var testNow = time.Date(2025, 2, 14, 18, 30, 0, 0, time.UTC)

func testWeek() weeklyresult.Week {
	return weeklyresult.Week{Year: 2025, Semester: weeklyresult.SemesterH1, Number: 1}
}

func roster(names ...string) []participant.Participant {
	out := make([]participant.Participant, 0, len(names))
	for i, name := range names {
		out = append(out, participant.Participant{
			ID:                   "p-" + string(rune('a'+i)),
			Name:                 name,
			ParticipationHistory: []int{},
		})
	}
	return out
}

func byName(t *testing.T, items []participant.Participant, name string) participant.Participant {
	t.Helper()
	p, ok := participant.FindByName(items, name)
	require.True(t, ok, "participant %s missing", name)
	return p
}

func TestPlan_PodiumScenario(t *testing.T) {
	t.Parallel()

	stored := roster("Alice", "Bob", "Carol", "Dave")
	stored[3].CurrentStreak = 4
	stored[3].TotalPoints = 13

	out, err := Plan(Submission{
		Week:   testWeek(),
		Roster: []string{"Alice", "Bob", "Carol"},
		First:  Entry{Name: "Alice", Title: "Ode"},
		Second: Entry{Name: "bob"},
		Third:  Entry{Name: "Carol", Content: "  verses  "},
	}, stored, DefaultPoints(), testNow)
	require.NoError(t, err)
	require.Len(t, out.Participants, 4)

	points := DefaultPoints()
	for name, want := range map[string]struct {
		points int
		rank   int
	}{
		"Alice": {points.FirstPlace, 1},
		"Bob":   {points.SecondPlace, 2},
		"Carol": {points.ThirdPlace, 3},
	} {
		p := byName(t, out.Participants, name)
		assert.Equal(t, want.points, p.TotalPoints, name)
		assert.Equal(t, 1, p.CurrentStreak, name)
		require.NotNil(t, p.BestRank, name)
		assert.Equal(t, want.rank, *p.BestRank, name)
		assert.Equal(t, []int{1}, p.ParticipationHistory, name)
		assert.Equal(t, testNow, p.UpdatedAt, name)
	}

	dave := byName(t, out.Participants, "Dave")
	assert.Zero(t, dave.CurrentStreak)
	assert.Equal(t, 13, dave.TotalPoints)
	assert.Nil(t, dave.BestRank)
	assert.Empty(t, dave.ParticipationHistory)

	result := out.Result
	assert.Equal(t, "2025_H1_1", result.ID)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, result.WeeklyParticipants)
	assert.Equal(t, "p-b", result.Winners.Second.ParticipantID)
	assert.Equal(t, "Bob", result.Winners.Second.Name)
	assert.Equal(t, "Ode", result.Winners.First.Title)
	assert.Equal(t, "verses", result.Winners.Third.Content)

	// inputs untouched
	assert.Zero(t, stored[0].TotalPoints)
	assert.Equal(t, 4, stored[3].CurrentStreak)
}

func TestPlan_ParticipationAndBestRank(t *testing.T) {
	t.Parallel()

	stored := roster("Alice", "Bob", "Carol", "Eve")
	two := 2
	stored[3].BestRank = &two
	stored[3].CurrentStreak = 2
	stored[3].TotalPoints = 20
	stored[3].ParticipationHistory = []int{1, 2}

	week := testWeek()
	week.Number = 3
	out, err := Plan(Submission{
		Week:   week,
		Roster: []string{"alice", "BOB", "Carol", "eve", "Eve", " "},
		First:  Entry{Name: "Alice"},
		Second: Entry{Name: "Bob"},
		Third:  Entry{Name: "Carol"},
	}, stored, DefaultPoints(), testNow)
	require.NoError(t, err)

	eve := byName(t, out.Participants, "Eve")
	assert.Equal(t, 22, eve.TotalPoints)
	assert.Equal(t, 3, eve.CurrentStreak)
	assert.Equal(t, []int{1, 2, 3}, eve.ParticipationHistory)
	require.NotNil(t, eve.BestRank)
	assert.Equal(t, 2, *eve.BestRank, "participation rank 4 must not replace a better rank")

	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Eve"}, out.Result.WeeklyParticipants)
}

func TestPlan_NonWinnerWithoutRankGetsFour(t *testing.T) {
	t.Parallel()

	stored := roster("Alice", "Bob", "Carol", "Frank")
	out, err := Plan(Submission{
		Week:   testWeek(),
		Roster: []string{"Alice", "Bob", "Carol", "Frank"},
		First:  Entry{Name: "Alice"},
		Second: Entry{Name: "Bob"},
		Third:  Entry{Name: "Carol"},
	}, stored, Points{FirstPlace: 5, SecondPlace: 3, ThirdPlace: 1, Participation: 1}, testNow)
	require.NoError(t, err)

	frank := byName(t, out.Participants, "Frank")
	require.NotNil(t, frank.BestRank)
	assert.Equal(t, int(Participated), *frank.BestRank)
	assert.Equal(t, 1, frank.TotalPoints)
}

func TestPlan_Rejections(t *testing.T) {
	t.Parallel()

	stored := roster("Alice", "Bob", "Carol")
	cases := []struct {
		name    string
		sub     Submission
		kind    error
		message string
	}{
		{
			name:    "missing winner",
			sub:     Submission{Week: testWeek(), Roster: []string{"Alice", "Bob"}, First: Entry{Name: "Alice"}, Second: Entry{Name: "Bob"}},
			kind:    ErrMissingWinner,
			message: "Please select 1st, 2nd, and 3rd place winners.",
		},
		{
			name:    "duplicate winner",
			sub:     Submission{Week: testWeek(), Roster: []string{"Alice", "Bob"}, First: Entry{Name: "Alice"}, Second: Entry{Name: "alice"}, Third: Entry{Name: "Bob"}},
			kind:    ErrDuplicateWinner,
			message: "Each of the top 3 winners must be a unique participant.",
		},
		{
			name:    "winner outside roster",
			sub:     Submission{Week: testWeek(), Roster: []string{"Alice", "Bob"}, First: Entry{Name: "Alice"}, Second: Entry{Name: "Bob"}, Third: Entry{Name: "Carol"}},
			kind:    ErrWinnerNotInRoster,
			message: "Winner 'Carol' is not in the weekly participants list.",
		},
		{
			name:    "winner not registered",
			sub:     Submission{Week: testWeek(), Roster: []string{"Alice", "Bob", "Zed"}, First: Entry{Name: "Alice"}, Second: Entry{Name: "Bob"}, Third: Entry{Name: "Zed"}},
			kind:    ErrUnknownWinner,
			message: "Winner 'Zed' was not found among registered participants.",
		},
		{
			name: "empty roster",
			sub:  Submission{Week: testWeek(), First: Entry{Name: "Alice"}, Second: Entry{Name: "Bob"}, Third: Entry{Name: "Carol"}},
			kind: ErrWinnerNotInRoster,
		},
		{
			name: "invalid week",
			sub:  Submission{Week: weeklyresult.Week{Year: 2025, Semester: "H1"}, Roster: []string{"Alice", "Bob", "Carol"}, First: Entry{Name: "Alice"}, Second: Entry{Name: "Bob"}, Third: Entry{Name: "Carol"}},
			kind: weeklyresult.ErrInvalidWeek,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := Plan(tc.sub, stored, DefaultPoints(), testNow)
			require.ErrorIs(t, err, tc.kind)
			assert.Empty(t, out.Participants)
			if tc.message != "" {
				assert.Equal(t, tc.message, err.Error())
			}

			var lbErr *Error
			if errors.As(err, &lbErr) {
				assert.Equal(t, tc.kind != ErrUnknownWinner, IsValidation(err))
			}
		})
	}
}

func TestPlan_FirstMatchWinsOnDuplicateNames(t *testing.T) {
	t.Parallel()

	stored := []participant.Participant{
		{ID: "p-1", Name: "Alice"},
		{ID: "p-2", Name: "alice"},
		{ID: "p-3", Name: "Bob"},
		{ID: "p-4", Name: "Carol"},
	}

	out, err := Plan(Submission{
		Week:   testWeek(),
		Roster: []string{"Alice", "Bob", "Carol"},
		First:  Entry{Name: "ALICE"},
		Second: Entry{Name: "Bob"},
		Third:  Entry{Name: "Carol"},
	}, stored, DefaultPoints(), testNow)
	require.NoError(t, err)

	assert.Equal(t, "p-1", out.Result.Winners.First.ParticipantID)
	assert.Equal(t, 10, out.Participants[0].TotalPoints)
	assert.Equal(t, 2, out.Participants[1].TotalPoints)
}

func TestPoints_For(t *testing.T) {
	t.Parallel()

	p := DefaultPoints()
	require.NoError(t, p.Validate())
	assert.Equal(t, 10, p.For(First))
	assert.Equal(t, 7, p.For(Second))
	assert.Equal(t, 5, p.For(Third))
	assert.Equal(t, 2, p.For(Participated))
	assert.Zero(t, p.For(Placement(9)))

	require.Error(t, Points{FirstPlace: -1}.Validate())
}
