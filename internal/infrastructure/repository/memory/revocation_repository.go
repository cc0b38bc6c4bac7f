package memory

import (
	"context"
	"time"
)

type RevocationRepository struct {
	store *Store
}

// Revoke records tokenID and drops entries whose tokens have already expired.
func (r *RevocationRepository) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	for id, until := range r.store.revoked {
		if !until.After(now) {
			delete(r.store.revoked, id)
		}
	}
	r.store.revoked[tokenID] = expiresAt
	return nil
}

func (r *RevocationRepository) IsRevoked(_ context.Context, tokenID string, now time.Time) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	until, ok := r.store.revoked[tokenID]
	return ok && until.After(now), nil
}
