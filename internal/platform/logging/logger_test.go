package logging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "weekly_result")

	logger.WarnContext(context.Background(), "submit weekly result failed",
		"result_id", "2025_H1_3",
		"error", errors.New("boom"),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "weekly_result", fields["component"])
	assert.Equal(t, "2025_H1_3", fields["result_id"])
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestLogger_OddArgsGetNilValue(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Info("dangling", "orphan")

	entries := logs.All()
	require.Len(t, entries, 1)
	value, ok := entries[0].ContextMap()["orphan"]
	assert.True(t, ok)
	assert.Nil(t, value)
}

func TestLogger_MirrorReceivesChildFields(t *testing.T) {
	var gotMsg string
	var gotArgs []any
	SetMirror(func(_ context.Context, _ Level, msg string, args ...any) {
		gotMsg = msg
		gotArgs = args
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger := NewNop().With("service", "poethra")
	logger.Error("store unavailable", "driver", "mongo")

	assert.Equal(t, "store unavailable", gotMsg)
	assert.Equal(t, []any{"service", "poethra", "driver", "mongo"}, gotArgs)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), "raw=%q", raw)
	}
}
