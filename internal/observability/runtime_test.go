package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"

	"github.com/riskibarqy/poethra-leaderboard/internal/config"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	rt, err := Start(config.Config{
		ServiceName:    "poethra-leaderboard-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}, logging.NewNop())
	require.NoError(t, err)

	assert.False(t, rt.tracing)
	assert.Nil(t, rt.profiler)
	assert.Nil(t, rt.pprof)
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestStart_UptraceWithoutDSNStaysOff(t *testing.T) {
	rt, err := Start(config.Config{UptraceEnabled: true}, logging.NewNop())
	require.NoError(t, err)
	assert.False(t, rt.tracing)
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestStart_PprofListener(t *testing.T) {
	rt, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, rt.pprof)

	assert.NoError(t, rt.Shutdown(context.Background()))
	assert.Nil(t, rt.pprof)
}

func TestRuntime_ShutdownNil(t *testing.T) {
	var rt *Runtime
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestIsQuietRequest(t *testing.T) {
	t.Parallel()

	assert.True(t, isQuietRequest("http request", []any{"method", "GET", "path", "/healthz"}))
	assert.True(t, isQuietRequest("http request", []any{"path", "/metrics"}))
	assert.False(t, isQuietRequest("http request", []any{"path", "/v1/leaderboard"}))
	assert.False(t, isQuietRequest("weekly result committed", []any{"path", "/healthz"}))
}

func TestLogAttributes(t *testing.T) {
	t.Parallel()

	attrs := logAttributes([]any{"week_id", "2025_H1_3", "participants", 2, 42, "x", "roster"})
	require.Len(t, attrs, 4)

	assert.Equal(t, "week_id", attrs[0].Key)
	assert.Equal(t, "2025_H1_3", attrs[0].Value.AsString())
	assert.Equal(t, int64(2), attrs[1].Value.AsInt64())
	assert.Equal(t, "arg_2", attrs[2].Key)
	assert.Equal(t, "roster", attrs[3].Key)
	assert.Equal(t, otellog.KindEmpty, attrs[3].Value.Kind())
}

func TestLogValue(t *testing.T) {
	t.Parallel()

	rank := 2
	var noRank *int

	assert.Equal(t, int64(2), logValue(&rank, 0).AsInt64())
	assert.Equal(t, otellog.KindEmpty, logValue(noRank, 0).Kind())
	assert.Equal(t, "boom", logValue(errors.New("boom"), 0).AsString())

	history := logValue([]int{1, 2, 4}, 0)
	require.Equal(t, otellog.KindSlice, history.Kind())
	assert.Len(t, history.AsSlice(), 3)

	summary := logValue(map[string]any{"total_points": 17, "overwrote": true}, 0)
	require.Equal(t, otellog.KindMap, summary.Kind())
	items := summary.AsMap()
	require.Len(t, items, 2)
	assert.Equal(t, "overwrote", items[0].Key)

	nested := logValue(map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}, 0)
	deep := nested.AsMap()[0].Value.AsMap()[0].Value.AsMap()[0].Value
	assert.Equal(t, otellog.KindString, deep.Kind())
}
