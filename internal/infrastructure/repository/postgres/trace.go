package postgres

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var repositoryTracer = otel.Tracer("org-directory/internal/infrastructure/repository/postgres")
var repositoryNoopSpan = trace.SpanFromContext(context.Background())

// startRepositorySpan only opens a span when the caller is already traced.
func startRepositorySpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, repositoryNoopSpan
	}
	return repositoryTracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
}
