package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("tournify/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child span for Handler methods only. Response helpers and
// middleware share the handler's span, and requests without a parent span
// (filtered routes such as /healthz) get none.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !isHandlerSpan(name) {
		return ctx, noopSpan
	}

	ctx, span := apiTracer.Start(ctx, name)
	if principal, ok := principalFromContext(ctx); ok {
		span.SetAttributes(
			attribute.String("tournify.user_id", principal.UserID),
			attribute.String("tournify.role", principal.Role),
		)
	}
	return ctx, span
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}

// recordSpanOutcome tags the active span with the mapped error. Only server
// side failures flip the span status; 4xx stays unset.
func recordSpanOutcome(ctx context.Context, httpStatus int, reason string, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.Int("tournify.error.http_status", httpStatus),
		attribute.String("tournify.error.reason", reason),
	)
	if httpStatus >= 500 {
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
	}
}
