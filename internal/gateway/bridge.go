// internal/gateway/bridge.go
// Bridge is the Plugin Bridge (C3): two dispatch strategies selected by the
// resolution row's useComRpc flag (spec §4.3, design note §9). Mode A looks
// the alias's callsign up in the plugin registry and invokes it generically
// by method name; Mode B looks the callsign up as a typed capability and
// calls its Handle method directly. Downstream invocations retry with
// jittered backoff the same way internal/agent/exporter's gRPC reconnect
// does, so a transient plugin hiccup does not immediately surface as
// InternalError.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rdkcentral/appgateway/internal/plugins"
)

// BridgeError taxonomy surfaced to the Dispatcher (spec §4.3 "Errors").
var (
	ErrUnknownCallsign       = errors.New("bridge: unknown callsign")
	ErrCapabilityUnavailable = errors.New("bridge: capability unavailable")
	ErrEmptyAlias            = errors.New("bridge: empty alias")
)

// InvokeFailed wraps a downstream status/text pair (spec §4.3).
type InvokeFailed struct {
	Code uint32
	Text string
}

func (e *InvokeFailed) Error() string { return e.Text }

// Bridge invokes downstream plugins through Mode A (generic JSON-RPC by
// callsign) or Mode B (typed capability).
type Bridge struct {
	retryPolicy func() backoff.BackOff
}

// NewBridge returns a Bridge with the default retry policy: up to 3
// attempts, 25ms initial interval, doubling, capped at 200ms.
func NewBridge() *Bridge {
	return &Bridge{
		retryPolicy: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 25 * time.Millisecond
			bo.MaxInterval = 200 * time.Millisecond
			bo.Multiplier = 2
			bo.MaxElapsedTime = 500 * time.Millisecond
			return backoff.WithMaxRetries(bo, 2)
		},
	}
}

// InvokeGeneric implements Mode A: alias is "<callsign>.<method>"; an alias
// without a dot is an error (callsign=alias, method="" never resolves).
func (b *Bridge) InvokeGeneric(ctx context.Context, alias, params string) (string, error) {
	if alias == "" {
		return "", ErrEmptyAlias
	}
	callsign, method := parseAlias(alias)
	if method == "" {
		return "", ErrUnknownCallsign
	}
	p, ok := plugins.Lookup(callsign)
	if !ok {
		return "", ErrUnknownCallsign
	}
	invoker, ok := p.(JSONRPCInvoker)
	if !ok {
		return "", ErrCapabilityUnavailable
	}

	var result string
	op := func() error {
		r, err := invoker.Invoke(ctx, callsign, method, params)
		if err != nil {
			return err
		}
		result = r
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(b.retryPolicy(), ctx)); err != nil {
		return "", &InvokeFailed{Code: 1, Text: err.Error()}
	}
	if result == "" {
		result = "null"
	}
	return result, nil
}

// InvokeTyped implements Mode B: alias is a bare callsign naming a typed
// capability. The capability reference is only held for the duration of
// the call (spec §5 "scoped acquisition"). A non-zero handler status is
// returned as *InvokeFailed whose Text carries the handler's response
// payload verbatim -- when that payload is an error envelope the
// dispatcher forwards it unchanged rather than masking it.
func (b *Bridge) InvokeTyped(ctx context.Context, alias string, gwCtx Context, method, params string) (string, error) {
	if alias == "" {
		return "", ErrEmptyAlias
	}
	p, ok := plugins.Lookup(alias)
	if !ok {
		return "", ErrUnknownCallsign
	}
	handler, ok := p.(RequestHandler)
	if !ok {
		return "", ErrCapabilityUnavailable
	}
	result, status := handler.Handle(ctx, gwCtx, method, params)
	if status != 0 {
		return "", &InvokeFailed{Code: status, Text: result}
	}
	return result, nil
}
