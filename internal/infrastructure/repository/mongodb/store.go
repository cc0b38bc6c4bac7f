package mongodb

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
)

type Config struct {
	URI      string
	Database string
	// Transactions requires a replica set or sharded cluster.
	Transactions bool
	Timeout      time.Duration
}

// participantWriter and resultWriter are the collection calls a week commit makes.
type participantWriter interface {
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
}

type resultWriter interface {
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

// Store is a document-database backend. Repositories handed out by one Store share
// its client and its commit lock.
type Store struct {
	client       *mongo.Client
	participants *mongo.Collection
	results      *mongo.Collection
	revoked      *mongo.Collection
	transactions bool
	timeout      time.Duration

	participantWrites participantWriter
	resultWrites      resultWriter

	// commitMu serializes week commits when transactions are disabled.
	commitMu sync.Mutex
}

func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "connect mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongodb")
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client:       client,
		participants: db.Collection(participantsCollection),
		results:      db.Collection(weeklyResultsCollection),
		revoked:      db.Collection(revokedTokensCollection),
		transactions: cfg.Transactions,
		timeout:      cfg.Timeout,
	}
	s.participantWrites = s.participants
	s.resultWrites = s.results
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

// EnsureIndexes creates the unique name index, the result ordering index and the
// expiry index that lets the server drop stale token revocations.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.participants.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name_key", Value: 1}},
		Options: options.Index().SetName("participants_name_key_uq").SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "create participants name_key index")
	}

	_, err = s.results.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    weeklyResultSort,
		Options: options.Index().SetName("weekly_results_newest_first_idx"),
	})
	if err != nil {
		return errors.Wrap(err, "create weekly_results ordering index")
	}

	_, err = s.revoked.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("admin_revoked_tokens_ttl").SetExpireAfterSeconds(0),
	})
	if err != nil {
		return errors.Wrap(err, "create admin_revoked_tokens expiry index")
	}

	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return errors.Wrap(s.client.Disconnect(ctx), "disconnect mongodb")
}

func (s *Store) Participants() *ParticipantRepository {
	return &ParticipantRepository{coll: s.participants}
}

func (s *Store) WeeklyResults() *WeeklyResultRepository {
	return &WeeklyResultRepository{coll: s.results}
}

func (s *Store) RevokedTokens() *RevocationRepository {
	return &RevocationRepository{coll: s.revoked}
}

// CommitWeek writes every participant and then the result. With transactions enabled the
// writes land atomically; otherwise they run serialized and the first failure aborts.
func (s *Store) CommitWeek(ctx context.Context, participants []participant.Participant, result weeklyresult.WeeklyResult) error {
	if !s.transactions {
		s.commitMu.Lock()
		defer s.commitMu.Unlock()
		return s.writeWeek(ctx, participants, result)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "start mongodb session")
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, s.writeWeek(sc, participants, result)
	})
	if err != nil {
		return errors.Wrapf(err, "commit week %s", result.ID)
	}

	return nil
}

func (s *Store) writeWeek(ctx context.Context, participants []participant.Participant, result weeklyresult.WeeklyResult) error {
	if len(participants) > 0 {
		models := make([]mongo.WriteModel, 0, len(participants))
		for _, p := range participants {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": p.ID}).
				SetReplacement(participantToDocument(p)).
				SetUpsert(true))
		}
		if _, err := s.participantWrites.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
			return errors.Wrap(err, "upsert participants")
		}
	}

	doc := weeklyResultToDocument(result)
	_, err := s.resultWrites.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrapf(err, "upsert weekly result %s", doc.ID)
	}

	return nil
}
