package mongodb

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
)

var participantSort = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

type ParticipantRepository struct {
	coll *mongo.Collection
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(participantSort))
	if err != nil {
		return nil, errors.Wrap(err, "find participants")
	}

	var docs []participantDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode participants")
	}

	out := make([]participant.Participant, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, participantID string) (participant.Participant, bool, error) {
	var doc participantDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": participantID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return participant.Participant{}, false, nil
	}
	if err != nil {
		return participant.Participant{}, false, errors.Wrapf(err, "find participant %s", participantID)
	}
	return doc.toDomain(), true, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) error {
	if _, err := r.coll.InsertOne(ctx, participantToDocument(item)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrapf(participant.ErrDuplicateName, "name=%s", item.Name)
		}
		return errors.Wrap(err, "insert participant")
	}
	return nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, participantID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": participantID})
	if err != nil {
		return errors.Wrapf(err, "delete participant %s", participantID)
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(participant.ErrNotFound, "id=%s", participantID)
	}
	return nil
}
