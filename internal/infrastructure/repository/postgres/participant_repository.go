package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	qb "github.com/riskibarqy/poethra-leaderboard/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	query, args, err := qb.Select("*").From(participantsTable).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, participantID string) (participant.Participant, bool, error) {
	query, args, err := qb.Select("*").From(participantsTable).
		Where(qb.Eq("id", participantID)).
		ToSQL()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("build get participant by id query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("get participant by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) error {
	query, args, err := qb.InsertModel(participantsTable, participantToModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert participant query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: name=%s", participant.ErrDuplicateName, item.Name)
		}
		return fmt.Errorf("insert participant: %w", err)
	}

	return nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, participantID string) error {
	query, args, err := qb.DeleteFrom(participantsTable).
		Where(qb.Eq("id", participantID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete participant query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete participant rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%s", participant.ErrNotFound, participantID)
	}

	return nil
}
