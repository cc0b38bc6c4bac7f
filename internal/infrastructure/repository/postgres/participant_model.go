package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
)

const participantsTable = "participants"

type participantTableModel struct {
	ID                   string        `db:"id"`
	Name                 string        `db:"name"`
	NameKey              string        `db:"name_key"`
	TotalPoints          int64         `db:"total_points"`
	CurrentStreak        int64         `db:"current_streak"`
	ParticipationHistory pq.Int64Array `db:"participation_history"`
	BestRank             sql.NullInt64 `db:"best_rank"`
	CreatedAt            time.Time     `db:"created_at"`
	UpdatedAt            time.Time     `db:"updated_at"`
}

// participantUpsertColumns are rewritten by a week commit. created_at is left alone.
var participantUpsertColumns = []string{
	"name",
	"name_key",
	"total_points",
	"current_streak",
	"participation_history",
	"best_rank",
	"updated_at",
}

func participantToModel(p participant.Participant) participantTableModel {
	history := make(pq.Int64Array, 0, len(p.ParticipationHistory))
	for _, week := range p.ParticipationHistory {
		history = append(history, int64(week))
	}

	var bestRank sql.NullInt64
	if p.BestRank != nil {
		bestRank = sql.NullInt64{Int64: int64(*p.BestRank), Valid: true}
	}

	return participantTableModel{
		ID:                   p.ID,
		Name:                 p.Name,
		NameKey:              p.NameKey(),
		TotalPoints:          int64(p.TotalPoints),
		CurrentStreak:        int64(p.CurrentStreak),
		ParticipationHistory: history,
		BestRank:             bestRank,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (m participantTableModel) toDomain() participant.Participant {
	history := make([]int, 0, len(m.ParticipationHistory))
	for _, week := range m.ParticipationHistory {
		history = append(history, int(week))
	}

	var bestRank *int
	if m.BestRank.Valid {
		rank := int(m.BestRank.Int64)
		bestRank = &rank
	}

	return participant.Participant{
		ID:                   m.ID,
		Name:                 m.Name,
		TotalPoints:          int(m.TotalPoints),
		CurrentStreak:        int(m.CurrentStreak),
		ParticipationHistory: history,
		BestRank:             bestRank,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
