// internal/gateway/upstream.go
// UpstreamManager is the Upstream Subscription Manager (C5): it guarantees
// exactly one active upstream subscription per (module, event) regardless
// of how many apps subscribe, dedicated entirely to bookkeeping the
// Dispatcher drives on subscribe/unsubscribe edges (spec §4.5). The
// Subscription Registry remains the source of truth (spec §7
// "Propagation policy"); a failed upstream subscribe/unsubscribe call is
// logged and retried on the next edge transition rather than rolled back.
package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rdkcentral/appgateway/internal/logging"
	"github.com/rdkcentral/appgateway/internal/plugins"
)

type upstreamKey struct {
	module string
	event  string
}

// UpstreamManager owns the set of active upstream (module, event) pairs.
type UpstreamManager struct {
	mu     sync.Mutex
	active map[upstreamKey]struct{}
}

// NewUpstreamManager returns an empty manager.
func NewUpstreamManager() *UpstreamManager {
	return &UpstreamManager{active: make(map[upstreamKey]struct{})}
}

// Subscribe registers upstream interest in (module, event) iff it is not
// already active; a no-op call returns (false, nil). The notification
// handler's capability is acquired, used, and released within this call --
// no lock is held across the downstream invocation (spec §5).
func (m *UpstreamManager) Subscribe(ctx context.Context, module, event string) (newlyActive bool, err error) {
	key := upstreamKey{module, event}

	m.mu.Lock()
	if _, ok := m.active[key]; ok {
		m.mu.Unlock()
		return false, nil
	}
	m.mu.Unlock()

	handler, ok := lookupNotificationHandler(module)
	if !ok {
		return false, ErrCapabilityUnavailable
	}

	bo := newEdgeRetryPolicy()
	err = backoff.Retry(func() error { return handler.Subscribe(ctx, event) }, backoff.WithContext(bo, ctx))
	if err != nil {
		logging.Sugar().Warnw("upstream: subscribe failed, will retry on next edge", "module", module, "event", event, "err", err)
		return false, err
	}

	m.mu.Lock()
	m.active[key] = struct{}{}
	m.mu.Unlock()
	return true, nil
}

// Unsubscribe tears down upstream interest in (module, event), called only
// when the Subscription Registry reports no remaining app subscribers for
// the corresponding event.
func (m *UpstreamManager) Unsubscribe(ctx context.Context, module, event string) error {
	key := upstreamKey{module, event}

	m.mu.Lock()
	if _, ok := m.active[key]; !ok {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	handler, ok := lookupNotificationHandler(module)
	if !ok {
		// Nothing to tell downstream; still drop our own bookkeeping so we
		// don't wedge on a capability that disappeared.
		m.mu.Lock()
		delete(m.active, key)
		m.mu.Unlock()
		return ErrCapabilityUnavailable
	}

	bo := newEdgeRetryPolicy()
	err := backoff.Retry(func() error { return handler.Unsubscribe(ctx, event) }, backoff.WithContext(bo, ctx))

	m.mu.Lock()
	delete(m.active, key)
	m.mu.Unlock()

	if err != nil {
		logging.Sugar().Warnw("upstream: unsubscribe failed", "module", module, "event", event, "err", err)
	}
	return err
}

// IsActive reports whether (module, event) currently has an upstream
// subscription, used by tests validating invariant 1 (spec §8).
func (m *UpstreamManager) IsActive(module, event string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[upstreamKey{module, event}]
	return ok
}

// Count returns the number of active upstream subscriptions, for
// introspection/metrics.
func (m *UpstreamManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Teardown unsubscribes every tracked pair, called on gateway shutdown
// (spec §4.5 "Teardown").
func (m *UpstreamManager) Teardown(ctx context.Context) {
	m.mu.Lock()
	keys := make([]upstreamKey, 0, len(m.active))
	for k := range m.active {
		keys = append(keys, k)
	}
	m.mu.Unlock()

	for _, k := range keys {
		_ = m.Unsubscribe(ctx, k.module, k.event)
	}
}

func lookupNotificationHandler(module string) (NotificationHandler, bool) {
	p, ok := plugins.Lookup(module)
	if !ok {
		return nil, false
	}
	handler, ok := p.(NotificationHandler)
	return handler, ok
}

func newEdgeRetryPolicy() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 20 * time.Millisecond
	bo.MaxInterval = 100 * time.Millisecond
	bo.MaxElapsedTime = 300 * time.Millisecond
	return bo
}
