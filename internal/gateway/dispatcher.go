// internal/gateway/dispatcher.go
// Gateway Dispatcher (C7, spec §4.7) -- the heart of the gateway: for every
// inbound request it resolves, authorizes, dispatches, and asynchronously
// responds, branching into the subscribe/unsubscribe path for event
// methods. Grounded on server.go's per-stream request handling, generalized
// from a single hardcoded flamegraph stream to the resolver-driven
// multi-method surface the spec requires.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/atomic"

	"github.com/rdkcentral/appgateway/internal/logging"
	"github.com/rdkcentral/appgateway/internal/metrics"
	appgwotel "github.com/rdkcentral/appgateway/pkg/otel"
)

var tracer = otel.Tracer("appgateway.dispatch")

// Dispatcher owns resolve -> authorize -> dispatch -> respond for every
// request the Connection Manager hands it.
type Dispatcher struct {
	resolver  *Resolver
	bridge    *Bridge
	registry  *SubscriptionRegistry
	upstream  *UpstreamManager
	responder *ResponseDispatcher
	auth      Authenticator
	pool      *WorkerPool
	audit     *AuditRecorder

	// Plain process-local counters mirroring the Prometheus metrics in
	// internal/metrics,
	// kept separately so the alert engine (SPEC_FULL.md §4.12) can sample
	// them without depending on the Prometheus registry.
	dispatched        atomic.Uint64
	downstreamErrors  atomic.Uint64
	permissionDenials atomic.Uint64
}

// NewDispatcher wires a Dispatcher from its collaborators. audit may be nil,
// which disables the dispatch audit trail (spec §4.10 is purely diagnostic).
func NewDispatcher(resolver *Resolver, bridge *Bridge, registry *SubscriptionRegistry, upstream *UpstreamManager, responder *ResponseDispatcher, auth Authenticator, pool *WorkerPool, audit *AuditRecorder) *Dispatcher {
	return &Dispatcher{
		resolver:  resolver,
		bridge:    bridge,
		registry:  registry,
		upstream:  upstream,
		responder: responder,
		auth:      auth,
		pool:      pool,
		audit:     audit,
	}
}

// Dispatch submits one request for asynchronous processing; it never blocks
// the caller (the Connection Manager's read loop) beyond handing the
// closure to the worker pool.
func (d *Dispatcher) Dispatch(ctx context.Context, gwCtx Context, origin Origin, method string, params json.RawMessage) {
	d.pool.Submit(func() {
		d.process(ctx, gwCtx, origin, method, params)
	})
}

func (d *Dispatcher) process(ctx context.Context, gwCtx Context, origin Origin, method string, params json.RawMessage) {
	start := time.Now()

	ctx, span := appgwotel.StartDispatchSpan(ctx, tracer, method, gwCtx.ConnectionID, gwCtx.RequestID, gwCtx.AppID)
	defer span.End()
	// Baggage survives where span context propagation into a downstream
	// plugin call does not, so the ids still travel with the invocation.
	ctx = appgwotel.WithDispatchBaggage(ctx, gwCtx.ConnectionID, gwCtx.RequestID)

	// 1. Precondition: resolver must be configured.
	if !d.resolver.IsConfigured() {
		d.responder.RespondError(gwCtx, origin, ErrInternalError)
		logging.Sugar().Errorw("dispatcher: resolver not configured", "method", method)
		d.finish(gwCtx, method, "", "resolverNotConfigured", start)
		return
	}

	// 2. Lookup.
	alias := d.resolver.ResolveAlias(method)
	if alias == "" {
		d.responder.RespondError(gwCtx, origin, ErrNotSupported)
		d.finish(gwCtx, method, "", "notSupported", start)
		return
	}

	row, _ := d.resolver.Row(method)

	// 3. Permission check.
	if hasGroup, group := d.resolver.HasPermissionGroup(method); hasGroup {
		if d.auth == nil || !d.auth.CheckPermissionGroup(ctx, gwCtx.AppID, group) {
			d.responder.RespondError(gwCtx, origin, ErrNotPermitted)
			d.finish(gwCtx, method, alias, "notPermitted", start)
			return
		}
	}

	// 4. Event branch.
	if d.resolver.HasEvent(method) {
		d.dispatchEvent(ctx, gwCtx, origin, method, alias, row, params, start)
		return
	}

	// 5. Typed-capability branch.
	if d.resolver.HasComRPCRequestSupport(method) {
		d.dispatchTyped(ctx, gwCtx, origin, method, alias, row, params, start)
		return
	}

	// 6. Generic JSON-RPC branch.
	d.dispatchGeneric(ctx, gwCtx, origin, method, alias, row, params, start)
}

func (d *Dispatcher) dispatchEvent(ctx context.Context, gwCtx Context, origin Origin, method, alias string, row Resolution, params json.RawMessage, start time.Time) {
	var body struct {
		Listen *bool `json:"listen"`
	}
	if err := json.Unmarshal(params, &body); err != nil || body.Listen == nil {
		d.responder.RespondError(gwCtx, origin, ErrBadRequest)
		d.finish(gwCtx, method, alias, "badRequest", start)
		return
	}

	// The registry is keyed by the app-facing method name (lower-cased, the
	// same normalization the resolver applies), so an emitter pushes events
	// by the name apps subscribed with and never needs to know the
	// downstream callsign. The upstream bookkeeping is keyed separately by
	// the (module, event) pair parsed out of the alias; disconnect cleanup
	// maps one back to the other through the resolver. row.Event, when
	// present, documents the upstream event name inside the alias; the ack
	// below always echoes the method name.
	_ = row.Event
	key := strings.ToLower(method)
	module, eventFromAlias := parseAlias(alias)
	entry := SubscriptionEntry{ConnectionID: gwCtx.ConnectionID, AppID: gwCtx.AppID, RequestID: gwCtx.RequestID, Origin: origin}

	if *body.Listen {
		wasEmpty := d.registry.Add(key, entry)
		if wasEmpty {
			if _, err := d.upstream.Subscribe(ctx, module, eventFromAlias); err != nil {
				logging.Sugar().Warnw("dispatcher: upstream subscribe failed", "module", module, "event", eventFromAlias, "err", err)
			}
		}
	} else {
		nowEmpty := d.registry.Remove(key, entry)
		if nowEmpty {
			if err := d.upstream.Unsubscribe(ctx, module, eventFromAlias); err != nil {
				logging.Sugar().Warnw("dispatcher: upstream unsubscribe failed", "module", module, "event", eventFromAlias, "err", err)
			}
		}
	}
	metrics.ActiveSubscriptions.Set(float64(d.registry.Count()))
	metrics.UpstreamSubscriptionsActive.Set(float64(d.upstream.Count()))

	payload, _ := json.Marshal(struct {
		Listening bool   `json:"listening"`
		Event     string `json:"event"`
	}{Listening: *body.Listen, Event: method})
	d.responder.Respond(gwCtx, origin, string(payload))
	d.finish(gwCtx, method, alias, "ok", start)
}

func (d *Dispatcher) dispatchTyped(ctx context.Context, gwCtx Context, origin Origin, method, alias string, row Resolution, params json.RawMessage, start time.Time) {
	outbound := params
	if row.IncludeContext {
		merged, err := mergeAdditionalContext(row.AdditionalContext, origin)
		if err != nil {
			d.responder.RespondError(gwCtx, origin, ErrInternalError)
			d.finish(gwCtx, method, alias, "internalError", start)
			return
		}
		wrapped, err := json.Marshal(struct {
			Params            json.RawMessage `json:"params"`
			AdditionalContext json.RawMessage `json:"_additionalContext"`
		}{Params: params, AdditionalContext: merged})
		if err != nil {
			d.responder.RespondError(gwCtx, origin, ErrInternalError)
			d.finish(gwCtx, method, alias, "internalError", start)
			return
		}
		outbound = wrapped
	}

	result, err := d.bridge.InvokeTyped(ctx, alias, gwCtx, method, string(outbound))
	if err != nil {
		d.respondBridgeError(gwCtx, origin, method, alias, err, start)
		return
	}
	d.responder.Respond(gwCtx, origin, result)
	d.finish(gwCtx, method, alias, "ok", start)
}

func (d *Dispatcher) dispatchGeneric(ctx context.Context, gwCtx Context, origin Origin, method, alias string, row Resolution, params json.RawMessage, start time.Time) {
	outbound := params
	if row.IncludeContext {
		wrapped, err := injectContext(params, gwCtx)
		if err != nil {
			d.responder.RespondError(gwCtx, origin, ErrInternalError)
			d.finish(gwCtx, method, alias, "internalError", start)
			return
		}
		outbound = wrapped
	}

	result, err := d.bridge.InvokeGeneric(ctx, alias, string(outbound))
	if err != nil {
		d.respondBridgeError(gwCtx, origin, method, alias, err, start)
		return
	}
	if result == "" {
		result = "null"
	}
	d.responder.Respond(gwCtx, origin, result)
	d.finish(gwCtx, method, alias, "ok", start)
}

// respondBridgeError translates a Plugin Bridge failure into the wire error
// taxonomy: an unknown callsign or missing capability is NotAvailable, a
// downstream error envelope is forwarded unchanged through the normal
// respond path, and everything else collapses to InternalError.
func (d *Dispatcher) respondBridgeError(gwCtx Context, origin Origin, method, alias string, err error, start time.Time) {
	logging.Sugar().Warnw("dispatcher: invoke failed", "alias", alias, "method", method, "err", err)

	if errors.Is(err, ErrUnknownCallsign) || errors.Is(err, ErrCapabilityUnavailable) {
		d.responder.RespondError(gwCtx, origin, ErrNotAvailable)
		d.finish(gwCtx, method, alias, "notAvailable", start)
		return
	}

	var invokeFailed *InvokeFailed
	if errors.As(err, &invokeFailed) {
		if _, ok := looksLikeErrorEnvelope(invokeFailed.Text); ok {
			d.responder.Respond(gwCtx, origin, invokeFailed.Text)
			d.finish(gwCtx, method, alias, "invokeFailed", start)
			return
		}
	}
	d.responder.RespondError(gwCtx, origin, ErrInternalError)
	d.finish(gwCtx, method, alias, "invokeFailed", start)
}

// finish records the terminal status of one dispatch to both the metrics
// and audit surfaces. Always called exactly once per request, regardless of
// branch taken.
func (d *Dispatcher) finish(gwCtx Context, method, alias, status string, start time.Time) {
	metrics.RequestsTotal.WithLabelValues(status).Inc()
	metrics.DispatchLatencySeconds.Observe(time.Since(start).Seconds())
	d.dispatched.Inc()
	switch status {
	case "notPermitted":
		metrics.PermissionDenialsTotal.Inc()
		d.permissionDenials.Inc()
	case "invokeFailed":
		metrics.DownstreamErrorsTotal.Inc()
		d.downstreamErrors.Inc()
	}
	d.audit.record(gwCtx.ConnectionID, gwCtx.AppID, method, alias, status, start)
}

// HealthSignals returns a snapshot of this Dispatcher's process-local
// counters for the alert engine's SampleFunc (SPEC_FULL.md §4.12).
func (d *Dispatcher) HealthSignals() map[string]float64 {
	return map[string]float64{
		"dispatched_requests":        float64(d.dispatched.Load()),
		"downstream_invoke_failures": float64(d.downstreamErrors.Load()),
		"permission_denials":         float64(d.permissionDenials.Load()),
	}
}

// mergeAdditionalContext produces {...additionalContext, "origin": origin}.
func mergeAdditionalContext(additionalContext json.RawMessage, origin Origin) (json.RawMessage, error) {
	merged := map[string]any{}
	if len(additionalContext) > 0 {
		if err := json.Unmarshal(additionalContext, &merged); err != nil {
			return nil, fmt.Errorf("additionalContext: %w", err)
		}
	}
	merged["origin"] = origin
	return json.Marshal(merged)
}

// injectContext adds a "context" sub-object {appId, connectionId, requestId}
// into params, which must itself be a JSON object.
func injectContext(params json.RawMessage, gwCtx Context) (json.RawMessage, error) {
	obj := map[string]any{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &obj); err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
	}
	obj["context"] = map[string]any{
		"appId":        gwCtx.AppID,
		"connectionId": gwCtx.ConnectionID,
		"requestId":    gwCtx.RequestID,
	}
	return json.Marshal(obj)
}
