package httpapi

import (
	"time"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

type participantDTO struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	TotalPoints          int       `json:"total_points"`
	CurrentStreak        int       `json:"current_streak"`
	ParticipationHistory []int     `json:"participation_history"`
	WeeksParticipated    int       `json:"weeks_participated"`
	BestRank             *int      `json:"best_rank"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type participantMutationDTO struct {
	Message     string         `json:"message"`
	Participant participantDTO `json:"participant"`
}

type standingDTO struct {
	Position int `json:"position"`
	participantDTO
}

type highlightsDTO struct {
	TopScorer      *participantDTO `json:"top_scorer"`
	HighestStreak  *participantDTO `json:"highest_streak"`
	MostConsistent *participantDTO `json:"most_consistent"`
}

type winnerDTO struct {
	Rank          int    `json:"rank"`
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Title         string `json:"title"`
	DisplayTitle  string `json:"display_title"`
	Content       string `json:"content"`
}

type weeklyResultDTO struct {
	ID                 string      `json:"id"`
	Year               int         `json:"year"`
	Semester           string      `json:"semester"`
	WeekNumber         int         `json:"week_number"`
	WeeklyParticipants []string    `json:"weekly_participants"`
	Winners            []winnerDTO `json:"winners"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

type weeklyResultMutationDTO struct {
	Message string          `json:"message"`
	Result  weeklyResultDTO `json:"result"`
}

type adminSessionDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func participantToDTO(p participant.Participant) participantDTO {
	history := p.ParticipationHistory
	if history == nil {
		history = []int{}
	}
	return participantDTO{
		ID:                   p.ID,
		Name:                 p.Name,
		TotalPoints:          p.TotalPoints,
		CurrentStreak:        p.CurrentStreak,
		ParticipationHistory: history,
		WeeksParticipated:    p.WeeksParticipated(),
		BestRank:             p.BestRank,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func standingToDTO(s leaderboard.Standing) standingDTO {
	return standingDTO{
		Position:       s.Position,
		participantDTO: participantToDTO(s.Participant),
	}
}

func highlightsToDTO(h leaderboard.Highlights) highlightsDTO {
	return highlightsDTO{
		TopScorer:      optionalParticipantDTO(h.TopScorer),
		HighestStreak:  optionalParticipantDTO(h.HighestStreak),
		MostConsistent: optionalParticipantDTO(h.MostConsistent),
	}
}

func optionalParticipantDTO(p *participant.Participant) *participantDTO {
	if p == nil {
		return nil
	}
	out := participantToDTO(*p)
	return &out
}

func weeklyResultToDTO(r weeklyresult.WeeklyResult) weeklyResultDTO {
	roster := r.WeeklyParticipants
	if roster == nil {
		roster = []string{}
	}

	slots := r.Winners.Slots()
	winners := make([]winnerDTO, 0, len(slots))
	for i, slot := range slots {
		rank := i + 1
		winners = append(winners, winnerDTO{
			Rank:          rank,
			ParticipantID: slot.ParticipantID,
			Name:          slot.Name,
			Title:         slot.Title,
			DisplayTitle:  weeklyresult.DisplayTitle(r.Week, rank, slot),
			Content:       slot.Content,
		})
	}

	return weeklyResultDTO{
		ID:                 r.ID,
		Year:               r.Week.Year,
		Semester:           string(r.Week.Semester),
		WeekNumber:         r.Week.Number,
		WeeklyParticipants: roster,
		Winners:            winners,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}
