package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRevokeStatements(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(time.Hour)

	stmts, err := buildRevokeStatements("jti-1", expires, now)
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	assert.Equal(t, "INSERT INTO admin_revoked_tokens (token_id, expires_at, revoked_at) VALUES ($1, $2, $3) ON CONFLICT (token_id) DO NOTHING", stmts[0].query)
	assert.Equal(t, []any{"jti-1", expires, now}, stmts[0].args)

	assert.Equal(t, "DELETE FROM admin_revoked_tokens WHERE expires_at < $1", stmts[1].query)
	assert.Equal(t, []any{now}, stmts[1].args)
}
