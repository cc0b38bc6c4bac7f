package leaderboard

import (
	"sort"
	"strings"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
)

// Standing is one leaderboard row. Position is 1-based over the full ordering.
type Standing struct {
	Position    int
	Participant participant.Participant
}

// Rank orders participants by total points desc, then name asc (case-insensitive),
// then id.
func Rank(items []participant.Participant) []Standing {
	sorted := make([]participant.Participant, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if ak, bk := a.NameKey(), b.NameKey(); ak != bk {
			return ak < bk
		}
		return a.ID < b.ID
	})

	out := make([]Standing, 0, len(sorted))
	for i, item := range sorted {
		out = append(out, Standing{Position: i + 1, Participant: item})
	}
	return out
}

// Filter keeps rows whose name contains query case-insensitively. Positions are kept.
func Filter(rows []Standing, query string) []Standing {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}

	out := make([]Standing, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Participant.Name), query) {
			out = append(out, row)
		}
	}
	return out
}

// Highlights is the hall of fame. Fields are nil when there are no participants.
type Highlights struct {
	TopScorer      *participant.Participant
	HighestStreak  *participant.Participant
	MostConsistent *participant.Participant
}

// ComputeHighlights picks from ranked rows. Ties go to the better-ranked participant.
func ComputeHighlights(rows []Standing) Highlights {
	if len(rows) == 0 {
		return Highlights{}
	}

	top := rows[0].Participant
	streak := rows[0].Participant
	consistent := rows[0].Participant
	for _, row := range rows[1:] {
		p := row.Participant
		if p.CurrentStreak > streak.CurrentStreak {
			streak = p
		}
		if p.WeeksParticipated() > consistent.WeeksParticipated() {
			consistent = p
		}
	}

	return Highlights{
		TopScorer:      &top,
		HighestStreak:  &streak,
		MostConsistent: &consistent,
	}
}
