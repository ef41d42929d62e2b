// internal/gateway/notifications.go
// NotificationSink is the small dynamically-registered observer list spec
// §9's design note calls for: every connection up/down transition is
// broadcast to each registered sink on a worker, never inline with the
// handshake or disconnect path. Grounded on the teacher's alerts package
// sink-list convention (register many, notify all, never let one slow sink
// block delivery to the others).
package gateway

import (
	"sync"

	"github.com/rdkcentral/appgateway/internal/logging"
)

// NotificationSink observes connection lifecycle transitions.
type NotificationSink interface {
	OnAppConnectionChanged(appID string, connectionID uint32, connected bool)
}

// NotificationSinkFunc adapts a plain function to NotificationSink.
type NotificationSinkFunc func(appID string, connectionID uint32, connected bool)

// OnAppConnectionChanged implements NotificationSink.
func (f NotificationSinkFunc) OnAppConnectionChanged(appID string, connectionID uint32, connected bool) {
	f(appID, connectionID, connected)
}

// notificationBus fans a connection transition out to every registered sink.
type notificationBus struct {
	mu    sync.RWMutex
	sinks []NotificationSink
	pool  *WorkerPool
}

func newNotificationBus(pool *WorkerPool) *notificationBus {
	return &notificationBus{pool: pool}
}

// Register adds sink to the broadcast list.
func (b *notificationBus) Register(sink NotificationSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, sink)
}

// Broadcast submits one "connection up"/"connection down" job per
// registered sink (spec §4.8 steps 2/"connection up" handshake note). A
// panicking sink is recovered and logged so it cannot take down the worker
// or silence delivery to the remaining sinks.
func (b *notificationBus) Broadcast(appID string, connectionID uint32, connected bool) {
	b.mu.RLock()
	sinks := make([]NotificationSink, len(b.sinks))
	copy(sinks, b.sinks)
	b.mu.RUnlock()

	for _, sink := range sinks {
		sink := sink
		b.pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					logging.Sugar().Errorw("notifications: sink panicked", "panic", r)
				}
			}()
			sink.OnAppConnectionChanged(appID, connectionID, connected)
		})
	}
}
