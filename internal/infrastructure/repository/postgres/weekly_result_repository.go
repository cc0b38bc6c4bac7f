package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
	qb "github.com/riskibarqy/poethra-leaderboard/internal/platform/querybuilder"
)

type WeeklyResultRepository struct {
	db *sqlx.DB
}

func NewWeeklyResultRepository(db *sqlx.DB) *WeeklyResultRepository {
	return &WeeklyResultRepository{db: db}
}

func (r *WeeklyResultRepository) List(ctx context.Context) ([]weeklyresult.WeeklyResult, error) {
	query, args, err := qb.Select("*").From(weeklyResultsTable).
		OrderBy("year DESC", "week_number DESC", "semester DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly results query: %w", err)
	}

	var rows []weeklyResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weekly results: %w", err)
	}

	out := make([]weeklyresult.WeeklyResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *WeeklyResultRepository) GetByID(ctx context.Context, resultID string) (weeklyresult.WeeklyResult, bool, error) {
	query, args, err := qb.Select("*").From(weeklyResultsTable).
		Where(qb.Eq("id", resultID)).
		ToSQL()
	if err != nil {
		return weeklyresult.WeeklyResult{}, false, fmt.Errorf("build get weekly result query: %w", err)
	}

	var row weeklyResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return weeklyresult.WeeklyResult{}, false, nil
		}
		return weeklyresult.WeeklyResult{}, false, fmt.Errorf("get weekly result: %w", err)
	}

	return row.toDomain(), true, nil
}
