package admin

import (
	"context"
	"time"
)

// Revocations remembers logged out token ids until the tokens would have expired.
// Every replica that verifies tokens must share one implementation's backing store.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string, now time.Time) (bool, error)
}
