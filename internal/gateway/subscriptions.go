// internal/gateway/subscriptions.go
// SubscriptionRegistry is the Subscription Registry (C4): a mapping from
// lower-cased event name to an ordered list of subscribers. Structural
// changes and list snapshots are serialized by a single mutex; fanout reads
// a copied-out snapshot so dispatch never holds the lock (spec §4.4, §5).
package gateway

import "sync"

// SubscriptionEntry is one app's interest in one event (spec §3).
type SubscriptionEntry struct {
	ConnectionID uint32
	AppID        string
	RequestID    uint32
	Origin       Origin
}

func (e SubscriptionEntry) equalIdentity(o SubscriptionEntry) bool {
	return e.ConnectionID == o.ConnectionID && e.AppID == o.AppID && e.RequestID == o.RequestID
}

// SubscriptionRegistry owns every SubscriptionEntry in the gateway.
type SubscriptionRegistry struct {
	mu   sync.Mutex
	subs map[string][]SubscriptionEntry
}

// NewSubscriptionRegistry returns an empty registry.
func NewSubscriptionRegistry() *SubscriptionRegistry {
	return &SubscriptionRegistry{subs: make(map[string][]SubscriptionEntry)}
}

// Add appends entry to event's subscriber list. Duplicates from the same
// (connectionId, appId, requestId) are allowed -- a single app may hold
// distinct subscription records per request id (spec §4.4).
//
// wasEmpty reports whether event had no subscribers before this call, the
// signal the Dispatcher uses to decide whether to ask the Upstream
// Subscription Manager to subscribe.
func (r *SubscriptionRegistry) Add(event string, entry SubscriptionEntry) (wasEmpty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wasEmpty = len(r.subs[event]) == 0
	r.subs[event] = append(r.subs[event], entry)
	return wasEmpty
}

// Remove deletes every entry matching entry's identity from event's
// subscriber list.
//
// nowEmpty reports whether event has no remaining subscribers after this
// call, the signal the Dispatcher uses to decide whether to ask the
// Upstream Subscription Manager to unsubscribe.
func (r *SubscriptionRegistry) Remove(event string, entry SubscriptionEntry) (nowEmpty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.subs[event]
	kept := list[:0:0]
	for _, e := range list {
		if !e.equalIdentity(entry) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(r.subs, event)
		return true
	}
	r.subs[event] = kept
	return false
}

// Exists reports whether event currently has at least one subscriber.
func (r *SubscriptionRegistry) Exists(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[event]) > 0
}

// GetSubscribers returns a snapshot copy of event's subscriber list, safe
// to range over without holding the registry lock.
func (r *SubscriptionRegistry) GetSubscribers(event string) []SubscriptionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.subs[event]
	out := make([]SubscriptionEntry, len(list))
	copy(out, list)
	return out
}

// Cleanup removes every entry whose ConnectionID and Origin match,
// returning the set of events that became empty as a result (the
// Dispatcher forwards each to the Upstream Subscription Manager). Called
// on connection disconnect (spec §4.8).
func (r *SubscriptionRegistry) Cleanup(connectionID uint32, origin Origin) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var emptied []string
	for event, list := range r.subs {
		kept := list[:0:0]
		for _, e := range list {
			if e.ConnectionID == connectionID && e.Origin == origin {
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(r.subs, event)
			emptied = append(emptied, event)
		} else {
			r.subs[event] = kept
		}
	}
	return emptied
}

// Events returns the set of currently-subscribed event names, for
// introspection snapshots.
func (r *SubscriptionRegistry) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.subs))
	for event := range r.subs {
		out = append(out, event)
	}
	return out
}

// Count returns the total number of subscription entries across all
// events, for metrics/introspection.
func (r *SubscriptionRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, list := range r.subs {
		n += len(list)
	}
	return n
}
