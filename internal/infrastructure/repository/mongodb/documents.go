package mongodb

import (
	"time"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

const (
	participantsCollection  = "participants"
	weeklyResultsCollection = "weekly_results"
	revokedTokensCollection = "admin_revoked_tokens"
)

type revokedTokenDocument struct {
	TokenID   string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	RevokedAt time.Time `bson:"revoked_at"`
}

type participantDocument struct {
	ID                   string    `bson:"_id"`
	Name                 string    `bson:"name"`
	NameKey              string    `bson:"name_key"`
	TotalPoints          int       `bson:"total_points"`
	CurrentStreak        int       `bson:"current_streak"`
	ParticipationHistory []int     `bson:"participation_history"`
	BestRank             *int      `bson:"best_rank,omitempty"`
	CreatedAt            time.Time `bson:"created_at"`
	UpdatedAt            time.Time `bson:"updated_at"`
}

func participantToDocument(p participant.Participant) participantDocument {
	history := p.ParticipationHistory
	if history == nil {
		history = []int{}
	}
	var bestRank *int
	if p.BestRank != nil {
		rank := *p.BestRank
		bestRank = &rank
	}
	return participantDocument{
		ID:                   p.ID,
		Name:                 p.Name,
		NameKey:              p.NameKey(),
		TotalPoints:          p.TotalPoints,
		CurrentStreak:        p.CurrentStreak,
		ParticipationHistory: append([]int{}, history...),
		BestRank:             bestRank,
		CreatedAt:            p.CreatedAt.UTC(),
		UpdatedAt:            p.UpdatedAt.UTC(),
	}
}

func (d participantDocument) toDomain() participant.Participant {
	history := d.ParticipationHistory
	if history == nil {
		history = []int{}
	}
	return participant.Participant{
		ID:                   d.ID,
		Name:                 d.Name,
		TotalPoints:          d.TotalPoints,
		CurrentStreak:        d.CurrentStreak,
		ParticipationHistory: history,
		BestRank:             d.BestRank,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

type winnerDocument struct {
	ParticipantID string `bson:"participant_id"`
	Name          string `bson:"name"`
	Title         string `bson:"title,omitempty"`
	Content       string `bson:"content,omitempty"`
}

type winnersDocument struct {
	First  winnerDocument `bson:"first"`
	Second winnerDocument `bson:"second"`
	Third  winnerDocument `bson:"third"`
}

type weeklyResultDocument struct {
	ID                 string          `bson:"_id"`
	Year               int             `bson:"year"`
	Semester           string          `bson:"semester"`
	WeekNumber         int             `bson:"week_number"`
	WeeklyParticipants []string        `bson:"weekly_participants"`
	Winners            winnersDocument `bson:"winners"`
	CreatedAt          time.Time       `bson:"created_at"`
	UpdatedAt          time.Time       `bson:"updated_at"`
}

func weeklyResultToDocument(r weeklyresult.WeeklyResult) weeklyResultDocument {
	return weeklyResultDocument{
		ID:                 r.ID,
		Year:               r.Week.Year,
		Semester:           string(r.Week.Semester),
		WeekNumber:         r.Week.Number,
		WeeklyParticipants: append([]string{}, r.WeeklyParticipants...),
		Winners: winnersDocument{
			First:  winnerToDocument(r.Winners.First),
			Second: winnerToDocument(r.Winners.Second),
			Third:  winnerToDocument(r.Winners.Third),
		},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func winnerToDocument(w weeklyresult.WinnerInfo) winnerDocument {
	return winnerDocument{
		ParticipantID: w.ParticipantID,
		Name:          w.Name,
		Title:         w.Title,
		Content:       w.Content,
	}
}

func (d winnerDocument) toDomain() weeklyresult.WinnerInfo {
	return weeklyresult.WinnerInfo{
		ParticipantID: d.ParticipantID,
		Name:          d.Name,
		Title:         d.Title,
		Content:       d.Content,
	}
}

func (d weeklyResultDocument) toDomain() weeklyresult.WeeklyResult {
	roster := d.WeeklyParticipants
	if roster == nil {
		roster = []string{}
	}
	return weeklyresult.WeeklyResult{
		ID: d.ID,
		Week: weeklyresult.Week{
			Year:     d.Year,
			Semester: weeklyresult.Semester(d.Semester),
			Number:   d.WeekNumber,
		},
		WeeklyParticipants: roster,
		Winners: weeklyresult.Winners{
			First:  d.Winners.First.toDomain(),
			Second: d.Winners.Second.toDomain(),
			Third:  d.Winners.Third.toDomain(),
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
