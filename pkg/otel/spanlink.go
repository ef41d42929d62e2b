// pkg/otel/spanlink.go
// Helpers that correlate one dispatched request with an OpenTelemetry span,
// so a downstream trace can be matched back to the connectionId/requestId
// pair that produced it. Intentionally free of internal package imports so
// external instrumentation layers can reuse them directly.
//
// Consumers typically wrap a dispatch:
//
//	ctx, span := otel.StartDispatchSpan(ctx, tracer, "dispatch", connectionID, requestID, appID)
//	defer span.End()
package otel

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/trace"
)

const (
	attrConnectionIDKey = "appgateway.connection_id"
	attrRequestIDKey    = "appgateway.request_id"
	attrAppIDKey        = "appgateway.app_id"
)

// StartDispatchSpan starts a child span of the span in ctx (or a root span
// if ctx has none) tagged with the request's connectionId/requestId/appId,
// so the gateway's dispatch audit trail and a downstream trace backend can
// be cross-referenced by the same triple.
func StartDispatchSpan(ctx context.Context, tracer trace.Tracer, name string, connectionID, requestID uint32, appID string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.Int64(attrConnectionIDKey, int64(connectionID)),
		attribute.Int64(attrRequestIDKey, int64(requestID)),
		attribute.String(attrAppIDKey, appID),
	}
	opts = append(opts, trace.WithAttributes(attrs...))
	return tracer.Start(ctx, name, opts...)
}

// WithDispatchBaggage returns a context carrying connectionId/requestId as
// baggage members, for cases where span context propagation into a
// downstream plugin call is unreliable but the plain values still need to
// travel.
func WithDispatchBaggage(ctx context.Context, connectionID, requestID uint32) context.Context {
	bg := baggage.FromContext(ctx)
	if m, err := baggage.NewMember(attrConnectionIDKey, strconv.FormatUint(uint64(connectionID), 10)); err == nil {
		if updated, err := bg.SetMember(m); err == nil {
			bg = updated
		}
	}
	if m, err := baggage.NewMember(attrRequestIDKey, strconv.FormatUint(uint64(requestID), 10)); err == nil {
		if updated, err := bg.SetMember(m); err == nil {
			bg = updated
		}
	}
	return baggage.ContextWithBaggage(ctx, bg)
}
