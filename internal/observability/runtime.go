package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/sourcegraph/conc/pool"
	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/poethra-leaderboard/internal/config"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/logging"
)

// Runtime owns the process-wide telemetry started by Start. Every part is optional and
// Shutdown only touches what was started.
type Runtime struct {
	logger   *logging.Logger
	tracing  bool
	profiler *pyroscope.Profiler
	pprof    *http.Server
}

// Start configures tracing and log export, continuous profiling and the pprof listener
// from cfg. On error everything started so far is shut down again.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	rt.startTracing(cfg)

	if err := rt.startProfiler(cfg); err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}

	rt.startPprof(cfg)

	return rt, nil
}

func (rt *Runtime) startTracing(cfg config.Config) {
	logging.SetMirror(nil)

	switch {
	case !cfg.UptraceEnabled:
		rt.logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		rt.logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	rt.tracing = true
	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newLogMirror(cfg.ServiceVersion))
	}

	rt.logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)
}

func (rt *Runtime) startProfiler(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		rt.logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"storage": cfg.StorageDriver,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		return err
	}
	rt.profiler = profiler

	rt.logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
	)
	return nil
}

func (rt *Runtime) startPprof(cfg config.Config) {
	if !cfg.PprofEnabled {
		rt.logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	rt.pprof = &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func(srv *http.Server) {
		rt.logger.Info("pprof server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.logger.Error("pprof server failed", "error", err)
		}
	}(rt.pprof)
}

// Shutdown stops the pprof listener, flushes profiles and exports pending spans and logs.
// Each part may block on a network flush until ctx expires, so they stop concurrently.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	if rt == nil {
		return nil
	}

	p := pool.New().WithErrors()
	if srv := rt.pprof; srv != nil {
		rt.pprof = nil
		p.Go(func() error { return srv.Shutdown(ctx) })
	}
	if profiler := rt.profiler; profiler != nil {
		rt.profiler = nil
		p.Go(profiler.Stop)
	}
	if rt.tracing {
		rt.tracing = false
		logging.SetMirror(nil)
		p.Go(func() error { return uptrace.Shutdown(ctx) })
	}

	return p.Wait()
}
