// internal/gateway/responder.go
// The Responder back-channel (C9, spec §4.9): respond/emit/request are all
// fire-and-forget from the caller's perspective -- each is handed to the
// WorkerPool and the outcome is logged rather than returned, since by the
// time a reply is ready the request that triggered it has long since
// returned control to its own caller. Grounded on the teacher's handleChunk
// fan-out pattern (server.go): resolve the destination, then hand the write
// to a goroutine so a slow or closed socket never blocks the producer.
package gateway

import (
	"context"

	"github.com/rdkcentral/appgateway/internal/logging"
)

// Responder is the back-channel a Context's Origin resolves to. The
// WebSocket Connection Manager is the only implementation: it is registered
// for OriginGateway and as the fallback, which also carries
// OriginLaunchDelegate. It is driven exclusively through ResponseDispatcher.
type Responder interface {
	// WriteResult delivers a successful response frame for requestId.
	WriteResult(connectionID, requestID uint32, payload string) error
	// WriteError delivers an error response frame for requestId.
	WriteError(connectionID, requestID uint32, rpcErr RPCError) error
	// WriteNotification delivers an unsolicited event frame.
	WriteNotification(connectionID uint32, method, payload string) error
	// WriteRequest delivers a server-initiated request frame expecting a
	// matching client response.
	WriteRequest(connectionID, requestID uint32, method, params string) error
}

// ResponseDispatcher is the sole caller of Responder methods: every
// operation is submitted to the WorkerPool so the Dispatcher, Fanout, and
// Bridge never block on a socket write (spec §5 "never run downstream I/O on
// the calling goroutine").
type ResponseDispatcher struct {
	table *originTable
	pool  *WorkerPool
}

// NewResponseDispatcher wires a ResponseDispatcher over table and pool.
func NewResponseDispatcher(table *originTable, pool *WorkerPool) *ResponseDispatcher {
	return &ResponseDispatcher{table: table, pool: pool}
}

// Respond delivers a successful result to the request identified by ctx,
// routed through ctx's origin.
func (d *ResponseDispatcher) Respond(ctx Context, origin Origin, payload string) {
	d.pool.Submit(func() {
		r := d.table.resolve(origin)
		if r == nil {
			logging.Sugar().Warnw("responder: no back-channel for origin", "origin", origin, "requestId", ctx.RequestID)
			return
		}
		if err := r.WriteResult(ctx.ConnectionID, ctx.RequestID, payload); err != nil {
			logging.Sugar().Warnw("responder: write result failed", "connectionId", ctx.ConnectionID, "requestId", ctx.RequestID, "err", err)
		}
	})
}

// RespondError delivers rpcErr as the final response to ctx's request.
func (d *ResponseDispatcher) RespondError(ctx Context, origin Origin, rpcErr RPCError) {
	d.pool.Submit(func() {
		r := d.table.resolve(origin)
		if r == nil {
			logging.Sugar().Warnw("responder: no back-channel for origin", "origin", origin, "requestId", ctx.RequestID)
			return
		}
		if err := r.WriteError(ctx.ConnectionID, ctx.RequestID, rpcErr); err != nil {
			logging.Sugar().Warnw("responder: write error failed", "connectionId", ctx.ConnectionID, "requestId", ctx.RequestID, "err", err)
		}
	})
}

// Emit delivers an unsolicited event notification to a single subscriber
// entry. The Fanout component calls this once per matching subscriber.
func (d *ResponseDispatcher) Emit(entry SubscriptionEntry, method, payload string) {
	d.pool.Submit(func() {
		r := d.table.resolve(entry.Origin)
		if r == nil {
			logging.Sugar().Warnw("responder: no back-channel for origin", "origin", entry.Origin)
			return
		}
		if err := r.WriteNotification(entry.ConnectionID, method, payload); err != nil {
			logging.Sugar().Warnw("responder: write notification failed", "connectionId", entry.ConnectionID, "event", method, "err", err)
		}
	})
}

// Request issues a server-initiated request to connectionId over origin's
// back-channel. The context argument is not used, and no component
// correlates the client's reply: listener.go answers an inbound frame that
// has no method with BadRequest.
func (d *ResponseDispatcher) Request(_ context.Context, origin Origin, connectionID, requestID uint32, method, params string) {
	d.pool.Submit(func() {
		r := d.table.resolve(origin)
		if r == nil {
			logging.Sugar().Warnw("responder: no back-channel for origin", "origin", origin, "requestId", requestID)
			return
		}
		if err := r.WriteRequest(connectionID, requestID, method, params); err != nil {
			logging.Sugar().Warnw("responder: write request failed", "connectionId", connectionID, "requestId", requestID, "err", err)
		}
	})
}
