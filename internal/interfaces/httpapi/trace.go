package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/poethra-leaderboard/internal/platform/tracing"
)

// Middleware and helper spans are dropped; only handlers get their own span under the
// otelhttp request span.
var apiTracer = tracing.New("poethra-leaderboard/internal/interfaces/httpapi", tracing.WithNameFilter(isHandlerSpan))

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
