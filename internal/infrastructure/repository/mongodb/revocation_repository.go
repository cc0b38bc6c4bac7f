package mongodb

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RevocationRepository stores logged out admin token ids. The server's TTL monitor
// removes documents once expires_at passes; reads still compare against now because
// the monitor runs about once a minute.
type RevocationRepository struct {
	coll *mongo.Collection
}

func (r *RevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	doc := revokedTokenDocument{
		TokenID:   tokenID,
		ExpiresAt: expiresAt.UTC(),
		RevokedAt: time.Now().UTC(),
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": tokenID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrapf(err, "revoke token %s", tokenID)
	}
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, tokenID string, now time.Time) (bool, error) {
	var doc revokedTokenDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": tokenID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "find revoked token %s", tokenID)
	}
	return doc.ExpiresAt.After(now), nil
}
