package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/poethra-leaderboard/internal/platform/tracing"
)

var usecaseTracer = tracing.New("poethra-leaderboard/internal/usecase")

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name)
}
