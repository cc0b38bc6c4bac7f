package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
	qb "github.com/riskibarqy/poethra-leaderboard/internal/platform/querybuilder"
)

// participantUpsertBatch keeps one statement well under the 65535 bind parameter limit.
const participantUpsertBatch = 500

type LeaderboardCommitter struct {
	db *sqlx.DB
}

func NewLeaderboardCommitter(db *sqlx.DB) *LeaderboardCommitter {
	return &LeaderboardCommitter{db: db}
}

// CommitWeek upserts every participant and the weekly result in one transaction.
func (c *LeaderboardCommitter) CommitWeek(ctx context.Context, participants []participant.Participant, result weeklyresult.WeeklyResult) error {
	statements, err := buildCommitWeekStatements(participants, result)
	if err != nil {
		return err
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for week commit: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			return fmt.Errorf("%s: %w", stmt.label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit week %s tx: %w", result.ID, err)
	}

	return nil
}

type statement struct {
	label string
	query string
	args  []any
}

func buildCommitWeekStatements(participants []participant.Participant, result weeklyresult.WeeklyResult) ([]statement, error) {
	out := make([]statement, 0, len(participants)/participantUpsertBatch+2)

	participantSuffix := qb.OnConflictUpdate([]string{"id"}, participantUpsertColumns...)
	for start := 0; start < len(participants); start += participantUpsertBatch {
		end := min(start+participantUpsertBatch, len(participants))
		models := make([]participantTableModel, 0, end-start)
		for _, p := range participants[start:end] {
			models = append(models, participantToModel(p))
		}

		query, args, err := qb.InsertModels(participantsTable, models, participantSuffix)
		if err != nil {
			return nil, fmt.Errorf("build upsert participants query: %w", err)
		}
		out = append(out, statement{
			label: fmt.Sprintf("upsert participants %d-%d", start, end),
			query: query,
			args:  args,
		})
	}

	resultColumns, err := qb.Columns(weeklyResultTableModel{})
	if err != nil {
		return nil, fmt.Errorf("resolve weekly result columns: %w", err)
	}
	updateColumns := make([]string, 0, len(resultColumns))
	for _, col := range resultColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		updateColumns = append(updateColumns, col)
	}

	query, args, err := qb.InsertModel(weeklyResultsTable, weeklyResultToModel(result), qb.OnConflictUpdate([]string{"id"}, updateColumns...))
	if err != nil {
		return nil, fmt.Errorf("build upsert weekly result query: %w", err)
	}
	out = append(out, statement{
		label: "upsert weekly result " + result.ID,
		query: query,
		args:  args,
	})

	return out, nil
}
