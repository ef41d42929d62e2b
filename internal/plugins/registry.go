// internal/plugins/registry.go
// Runtime plugin registry. The underlying plugin framework's real object
// lifecycle/IPC is out of scope for this gateway (spec §1); this registry
// is the in-process stand-in the Plugin Bridge (C3) and Upstream
// Subscription Manager (C5) use to look up a callsign's capability without
// hard-coding the set of downstream plugins into the gateway core.
//
// A single callsign may implement more than one capability interface (e.g.
// both the typed request handler and the notification handler), so plugins
// are keyed by callsign alone; callers type-assert the interface they need.
//
// Plugin authors implement the Plugin interface and call Register() from
// their plugin's init() function.
package plugins

import "sync"

// Plugin is the minimal contract a downstream capability stand-in must
// satisfy to participate in the registry.
type Plugin interface {
	Callsign() string // plugin-framework name, e.g. "org.rdk.System"
	// Init is invoked once after registration. Returning an error aborts
	// registration.
	Init() (any, error)
}

var (
	regMu    sync.RWMutex
	registry = make(map[string]Plugin)
)

// Register adds p to the global registry under its callsign. Should be
// called from plugin init(). A duplicate callsign panics to surface a
// programmer error early.
func Register(p Plugin) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := registry[p.Callsign()]; exists {
		panic("plugins: duplicate callsign " + p.Callsign())
	}
	if _, err := p.Init(); err != nil {
		panic("plugins: init failed for " + p.Callsign() + ": " + err.Error())
	}
	registry[p.Callsign()] = p
}

// Lookup returns the plugin registered under callsign, if any.
func Lookup(callsign string) (Plugin, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	p, ok := registry[callsign]
	return p, ok
}

// All returns every registered plugin, for introspection.
func All() []Plugin {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]Plugin, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	return out
}

// Reset clears the registry. Test-only helper so unrelated test packages
// don't leak plugin registrations into each other via the global map.
func Reset() {
	regMu.Lock()
	defer regMu.Unlock()
	registry = make(map[string]Plugin)
}
