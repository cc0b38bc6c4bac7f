package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/poethra-leaderboard/internal/config"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/admin"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/participant"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/weeklyresult"
	"github.com/riskibarqy/poethra-leaderboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/poethra-leaderboard/internal/infrastructure/repository/mongodb"
	"github.com/riskibarqy/poethra-leaderboard/internal/infrastructure/repository/postgres"
)

const maxTracedQueryLength = 512

// storage is one backend's repositories plus the hook that releases it.
type storage struct {
	participants participant.Repository
	results      weeklyresult.Repository
	committer    leaderboard.Committer
	revocations  admin.Revocations
	remote       bool
	close        func(context.Context) error
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore()
		return storage{
			participants: store.Participants(),
			results:      store.WeeklyResults(),
			committer:    store,
			revocations:  store.RevokedTokens(),
			close:        func(context.Context) error { return nil },
		}, nil
	case config.StoragePostgres:
		return openPostgres(ctx, cfg)
	case config.StorageMongo:
		store, err := mongodb.Open(ctx, mongodb.Config{
			URI:          cfg.MongoURI,
			Database:     cfg.MongoDatabase,
			Transactions: cfg.MongoTransactionsEnabled,
			Timeout:      cfg.MongoTimeout,
		})
		if err != nil {
			return storage{}, fmt.Errorf("open mongo store: %w", err)
		}
		return storage{
			participants: store.Participants(),
			results:      store.WeeklyResults(),
			committer:    store,
			revocations:  store.RevokedTokens(),
			remote:       true,
			close:        store.Close,
		}, nil
	default:
		return storage{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (storage, error) {
	db, err := otelsqlx.Open(
		"postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return storage{}, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return storage{}, fmt.Errorf("ping postgres: %w", err)
	}

	return storage{
		participants: postgres.NewParticipantRepository(db),
		results:      postgres.NewWeeklyResultRepository(db),
		committer:    postgres.NewLeaderboardCommitter(db),
		revocations:  postgres.NewRevocationRepository(db),
		remote:       true,
		close:        closeDB(db),
	}, nil
}

func closeDB(db *sqlx.DB) func(context.Context) error {
	return func(context.Context) error {
		return db.Close()
	}
}

// normalizeDBURL adds disable_prepared_binary_result=yes unless the URL already sets it.
// Poolers in transaction mode reject binary results from prepared statements.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL accepts both URL and key=value DSN forms.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}

	return ""
}

func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
