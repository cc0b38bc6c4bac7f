package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Tracer opens child spans only inside an already traced request, so helpers called
// from untraced paths such as /healthz never start root spans of their own.
type Tracer struct {
	tracer trace.Tracer
	keep   func(name string) bool
}

type Option func(*Tracer)

// WithNameFilter drops spans whose name fn rejects.
func WithNameFilter(fn func(name string) bool) Option {
	return func(t *Tracer) {
		t.keep = fn
	}
}

// New takes a tracer from the global provider. It delegates to a provider installed
// later, so package-level tracers are safe.
func New(scope string, opts ...Option) Tracer {
	t := Tracer{tracer: otel.Tracer(scope)}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func (t Tracer) Start(ctx context.Context, name string) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if t.keep != nil && !t.keep(name) {
		return ctx, noopSpan
	}
	return t.tracer.Start(ctx, name)
}
