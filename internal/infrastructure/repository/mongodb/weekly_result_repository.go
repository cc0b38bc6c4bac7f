package mongodb

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

// weeklyResultSort is newest first; "H2" sorts after "H1" so descending puts H2 first.
var weeklyResultSort = bson.D{
	{Key: "year", Value: -1},
	{Key: "week_number", Value: -1},
	{Key: "semester", Value: -1},
}

type WeeklyResultRepository struct {
	coll *mongo.Collection
}

func (r *WeeklyResultRepository) List(ctx context.Context) ([]weeklyresult.WeeklyResult, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(weeklyResultSort))
	if err != nil {
		return nil, errors.Wrap(err, "find weekly results")
	}

	var docs []weeklyResultDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode weekly results")
	}

	out := make([]weeklyresult.WeeklyResult, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *WeeklyResultRepository) GetByID(ctx context.Context, resultID string) (weeklyresult.WeeklyResult, bool, error) {
	var doc weeklyResultDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": resultID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return weeklyresult.WeeklyResult{}, false, nil
	}
	if err != nil {
		return weeklyresult.WeeklyResult{}, false, errors.Wrapf(err, "find weekly result %s", resultID)
	}
	return doc.toDomain(), true, nil
}
