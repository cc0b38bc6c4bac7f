package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

const weeklyResultsTable = "weekly_results"

type weeklyResultTableModel struct {
	ID                  string         `db:"id"`
	Year                int64          `db:"year"`
	Semester            string         `db:"semester"`
	WeekNumber          int64          `db:"week_number"`
	WeeklyParticipants  pq.StringArray `db:"weekly_participants"`
	FirstParticipantID  string         `db:"first_participant_id"`
	FirstName           string         `db:"first_name"`
	FirstTitle          string         `db:"first_title"`
	FirstContent        string         `db:"first_content"`
	SecondParticipantID string         `db:"second_participant_id"`
	SecondName          string         `db:"second_name"`
	SecondTitle         string         `db:"second_title"`
	SecondContent       string         `db:"second_content"`
	ThirdParticipantID  string         `db:"third_participant_id"`
	ThirdName           string         `db:"third_name"`
	ThirdTitle          string         `db:"third_title"`
	ThirdContent        string         `db:"third_content"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func weeklyResultToModel(r weeklyresult.WeeklyResult) weeklyResultTableModel {
	return weeklyResultTableModel{
		ID:                  r.ID,
		Year:                int64(r.Week.Year),
		Semester:            string(r.Week.Semester),
		WeekNumber:          int64(r.Week.Number),
		WeeklyParticipants:  pq.StringArray(append([]string{}, r.WeeklyParticipants...)),
		FirstParticipantID:  r.Winners.First.ParticipantID,
		FirstName:           r.Winners.First.Name,
		FirstTitle:          r.Winners.First.Title,
		FirstContent:        r.Winners.First.Content,
		SecondParticipantID: r.Winners.Second.ParticipantID,
		SecondName:          r.Winners.Second.Name,
		SecondTitle:         r.Winners.Second.Title,
		SecondContent:       r.Winners.Second.Content,
		ThirdParticipantID:  r.Winners.Third.ParticipantID,
		ThirdName:           r.Winners.Third.Name,
		ThirdTitle:          r.Winners.Third.Title,
		ThirdContent:        r.Winners.Third.Content,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func (m weeklyResultTableModel) toDomain() weeklyresult.WeeklyResult {
	return weeklyresult.WeeklyResult{
		ID: m.ID,
		Week: weeklyresult.Week{
			Year:     int(m.Year),
			Semester: weeklyresult.Semester(m.Semester),
			Number:   int(m.WeekNumber),
		},
		WeeklyParticipants: append([]string{}, m.WeeklyParticipants...),
		Winners: weeklyresult.Winners{
			First: weeklyresult.WinnerInfo{
				ParticipantID: m.FirstParticipantID,
				Name:          m.FirstName,
				Title:         m.FirstTitle,
				Content:       m.FirstContent,
			},
			Second: weeklyresult.WinnerInfo{
				ParticipantID: m.SecondParticipantID,
				Name:          m.SecondName,
				Title:         m.SecondTitle,
				Content:       m.SecondContent,
			},
			Third: weeklyresult.WinnerInfo{
				ParticipantID: m.ThirdParticipantID,
				Name:          m.ThirdName,
				Title:         m.ThirdTitle,
				Content:       m.ThirdContent,
			},
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
