package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("tournify/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only nests under an existing request span. Empty ids in
// attrs are dropped so callers can pass input fields unchecked.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}

	kept := attrs[:0]
	for _, attr := range attrs {
		if attr.Value.Type() == attribute.STRING && attr.Value.AsString() == "" {
			continue
		}
		kept = append(kept, attr)
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(kept...))
}

func tournamentAttr(id string) attribute.KeyValue {
	return attribute.String("tournify.tournament_id", id)
}

func matchAttr(id string) attribute.KeyValue {
	return attribute.String("tournify.match_id", id)
}

func teamAttr(id string) attribute.KeyValue {
	return attribute.String("tournify.team_id", id)
}
