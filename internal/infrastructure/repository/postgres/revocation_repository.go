package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	qb "github.com/riskibarqy/poethra-leaderboard/internal/platform/querybuilder"
)

const revokedTokensTable = "admin_revoked_tokens"

type revokedTokenTableModel struct {
	TokenID   string    `db:"token_id"`
	ExpiresAt time.Time `db:"expires_at"`
	RevokedAt time.Time `db:"revoked_at"`
}

// RevocationRepository keeps logged out admin token ids in the shared database so every
// replica rejects them.
type RevocationRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewRevocationRepository(db *sqlx.DB) *RevocationRepository {
	return &RevocationRepository{db: db, now: time.Now}
}

func (r *RevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	statements, err := buildRevokeStatements(tokenID, expiresAt, r.now().UTC())
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			return fmt.Errorf("%s: %w", stmt.label, err)
		}
	}
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, tokenID string, now time.Time) (bool, error) {
	query, args, err := qb.Select("token_id", "expires_at", "revoked_at").From(revokedTokensTable).
		Where(qb.Eq("token_id", tokenID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build select revoked token query: %w", err)
	}

	var row revokedTokenTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("select revoked token: %w", err)
	}

	return row.ExpiresAt.After(now), nil
}

// buildRevokeStatements records the token and prunes rows whose tokens expired before now.
func buildRevokeStatements(tokenID string, expiresAt, now time.Time) ([]statement, error) {
	insert, insertArgs, err := qb.InsertModel(revokedTokensTable, revokedTokenTableModel{
		TokenID:   tokenID,
		ExpiresAt: expiresAt.UTC(),
		RevokedAt: now,
	}, qb.OnConflictUpdate([]string{"token_id"}))
	if err != nil {
		return nil, fmt.Errorf("build insert revoked token query: %w", err)
	}

	prune, pruneArgs, err := qb.DeleteFrom(revokedTokensTable).
		Where(qb.Lt("expires_at", now)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build prune revoked tokens query: %w", err)
	}

	return []statement{
		{label: "insert revoked token", query: insert, args: insertArgs},
		{label: "prune revoked tokens", query: prune, args: pruneArgs},
	}, nil
}
