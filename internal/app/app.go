package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/poethra-leaderboard/internal/config"
	"github.com/riskibarqy/poethra-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/poethra-leaderboard/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/poethra-leaderboard/internal/infrastructure/repository/guard"
	"github.com/riskibarqy/poethra-leaderboard/internal/interfaces/httpapi"
	"github.com/riskibarqy/poethra-leaderboard/internal/observability"
	basecache "github.com/riskibarqy/poethra-leaderboard/internal/platform/cache"
	idgen "github.com/riskibarqy/poethra-leaderboard/internal/platform/id"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/poethra-leaderboard/internal/usecase"
)

// NewHTTPServer wires the configured storage backend into the services and the router.
// The returned cleanup releases the backend and must be called after Shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger, metrics *observability.Metrics) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.InfoContext(ctx, "storage ready", "driver", cfg.StorageDriver)

	if store.remote && cfg.StoreCircuitEnabled {
		breaker := resilience.NewCircuitBreaker(cfg.StorageDriver, resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.StoreCircuitFailureCount,
			OpenTimeout:      cfg.StoreCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StoreCircuitHalfOpenMaxReq,
		})
		breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
			metrics.ObserveCircuit(name, from, to)
			logger.Warn("store circuit state changed", "store", name, "from", from, "to", to)
		})
		store.participants = guard.NewParticipantRepository(store.participants, breaker)
		store.results = guard.NewWeeklyResultRepository(store.results, breaker)
		store.committer = guard.NewLeaderboardCommitter(store.committer, breaker)
	}

	// The weekly update plans from the store of record, never from cached participants.
	planParticipants := store.participants

	if cfg.CacheEnabled {
		reads := basecache.NewStore(cfg.CacheTTL,
			basecache.WithName("repository"),
			basecache.WithObserver(metrics.ObserveCache),
		)
		store.participants = cache.NewParticipantRepository(store.participants, reads)
		store.results = cache.NewWeeklyResultRepository(store.results, reads)
		store.committer = cache.NewLeaderboardCommitter(store.committer, reads)
	}

	points := leaderboard.Points{
		FirstPlace:    cfg.PointsFirstPlace,
		SecondPlace:   cfg.PointsSecondPlace,
		ThirdPlace:    cfg.PointsThirdPlace,
		Participation: cfg.PointsParticipation,
	}
	if err := points.Validate(); err != nil {
		_ = store.close(ctx)
		return nil, nil, fmt.Errorf("points table: %w", err)
	}

	participantSvc := usecase.NewParticipantService(store.participants, idgen.NewUUIDGenerator(), logger, metrics)
	leaderboardSvc := usecase.NewLeaderboardService(store.participants)
	weeklyResultSvc := usecase.NewWeeklyResultService(
		planParticipants,
		store.results,
		store.committer,
		points,
		logger,
		metrics,
	)

	if cfg.AdminPasswordHash == "" {
		logger.WarnContext(ctx, "ADMIN_PASSWORD_HASH is empty, admin login is disabled")
	}
	if cfg.AdminTokenSecret == "" {
		logger.WarnContext(ctx, "ADMIN_TOKEN_SECRET is empty, admin tokens will not survive a restart")
	}
	authSvc := usecase.NewAuthService(cfg.AdminPasswordHash, []byte(cfg.AdminTokenSecret), store.revocations, cfg.AdminSessionTTL, logger)

	handler := httpapi.NewHandler(participantSvc, leaderboardSvc, weeklyResultSvc, authSvc, logger)
	opts := httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.MetricsEnabled {
		opts.Metrics = metrics.Handler()
	}
	router := httpapi.NewRouter(handler, authSvc, logger, opts)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, store.close, nil
}
