// internal/gateway/fanout.go
// Event Fanout (C6, spec §4.6): routes one emitted event to every matching
// subscriber. Grounded on the teacher's handleChunk broadcast loop
// (server.go StreamFlamegraphs), generalized from a single fixed stream to
// an arbitrary event name with an optional app-scoped filter.
package gateway

import (
	"strings"
	"sync/atomic"

	"github.com/rdkcentral/appgateway/internal/logging"
)

// Fanout delivers emitted events to the Subscription Registry's current
// subscriber set for that event.
type Fanout struct {
	registry   *SubscriptionRegistry
	dispatcher *ResponseDispatcher
}

// NewFanout wires a Fanout over registry and dispatcher.
func NewFanout(registry *SubscriptionRegistry, dispatcher *ResponseDispatcher) *Fanout {
	return &Fanout{registry: registry, dispatcher: dispatcher}
}

// Emit routes payload to the subscribers of event. The registry is keyed by
// the app-facing event name -- the same method name apps subscribed with --
// so an emitter names the event the way apps know it, not by downstream
// callsign. Lookup is case-insensitive; the delivered notification carries
// event exactly as the emitter spelled it.
//
// When appID is non-empty, only subscribers whose SubscriptionEntry.AppID
// matches receive it (spec §4.6 "app-scoped emission"); an empty appID
// broadcasts to every subscriber.
//
// An event with no subscribers is logged at warning level and otherwise
// ignored -- this is the normal shape of a race between an upstream event
// arriving and the last app unsubscribing, not an error condition.
func (f *Fanout) Emit(event, payload, appID string) {
	subscribers := f.registry.GetSubscribers(strings.ToLower(event))
	if len(subscribers) == 0 {
		logging.Sugar().Warnw("fanout: event has no subscribers", "event", event)
		return
	}

	delivered := 0
	for _, entry := range subscribers {
		if appID != "" && entry.AppID != appID {
			continue
		}
		f.dispatcher.Emit(entry, event, payload)
		delivered++
	}
	if delivered == 0 {
		logging.Sugar().Warnw("fanout: event has no matching subscribers for app", "event", event, "appId", appID)
	}
}

// globalFanout is the process-wide Fanout plugins emit events through. It is
// set once at wiring time (Server construction) the same way
// internal/logging installs its global logger behind an atomic pointer.
var globalFanout atomic.Pointer[Fanout]

// SetGlobalFanout installs f as the target of EmitEvent calls.
func SetGlobalFanout(f *Fanout) {
	globalFanout.Store(f)
}

// EmitEvent is the hook downstream plugins call to push an event into the
// gateway (the counterpart of NotificationHandler.Subscribe/Unsubscribe).
// It is a no-op, logged, if no Fanout has been installed yet -- the normal
// state during early plugin initialization before Server wiring completes.
func EmitEvent(event, payload, appID string) {
	f := globalFanout.Load()
	if f == nil {
		logging.Sugar().Warnw("fanout: EmitEvent called before wiring", "event", event)
		return
	}
	f.Emit(event, payload, appID)
}
