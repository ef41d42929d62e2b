// internal/plugins/example/devicecaps/plugin.go
// Reference plugin demonstrating the two dispatch modes the Plugin Bridge
// supports: a typed capability request handler (Mode B) and a generic
// by-callsign JSON-RPC target (Mode A). Real downstream plugins live behind
// the plugin framework's own IPC, which is out of scope here (spec §1);
// this stand-in is what the tests and local dev server dispatch against.
package devicecaps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rdkcentral/appgateway/internal/gateway"
	"github.com/rdkcentral/appgateway/internal/plugins"
)

// Plugin implements gateway.RequestHandler, gateway.JSONRPCInvoker and
// gateway.NotificationHandler for a single callsign.
type Plugin struct {
	callsign     string
	friendlyName string
}

// Callsign/Init satisfy plugins.Plugin.
func (p *Plugin) Callsign() string   { return p.callsign }
func (p *Plugin) Init() (any, error) { return nil, nil }

// Handle implements gateway.RequestHandler (Mode B).
func (p *Plugin) Handle(ctx context.Context, gwCtx gateway.Context, method, params string) (string, uint32) {
	switch method {
	case "getFriendlyName":
		b, _ := json.Marshal(p.friendlyName)
		return string(b), 0
	default:
		return fmt.Sprintf(`{"code":-50200,"message":"NotAvailable: %s has no method %s"}`, p.callsign, method), 1
	}
}

// Invoke implements gateway.JSONRPCInvoker (Mode A).
func (p *Plugin) Invoke(ctx context.Context, callsign, method, params string) (string, error) {
	if callsign != p.callsign {
		return "", fmt.Errorf("devicecaps: unknown callsign %q", callsign)
	}
	switch method {
	case "getFriendlyName":
		b, _ := json.Marshal(p.friendlyName)
		return string(b), nil
	default:
		return "", fmt.Errorf("devicecaps: %s has no method %s", callsign, method)
	}
}

// Subscribe/Unsubscribe implement gateway.NotificationHandler so the same
// plugin can also be an upstream event source (C5).
func (p *Plugin) Subscribe(ctx context.Context, event string) error {
	return nil
}

func (p *Plugin) Unsubscribe(ctx context.Context, event string) error {
	return nil
}

// AudioPlugin is a second example capability, registered under
// "org.rdk.Audio", that only answers upstream subscribe/unsubscribe calls
// (it emits its events through the gateway's Fanout rather than the
// request-handler path).
type AudioPlugin struct {
	callsign string
}

func (p *AudioPlugin) Callsign() string   { return p.callsign }
func (p *AudioPlugin) Init() (any, error) { return nil, nil }
func (p *AudioPlugin) Subscribe(ctx context.Context, event string) error   { return nil }
func (p *AudioPlugin) Unsubscribe(ctx context.Context, event string) error { return nil }

// Register installs the example org.rdk.System and org.rdk.Audio
// capabilities into the global plugin registry.
func Register() {
	plugins.Register(&Plugin{callsign: "org.rdk.System", friendlyName: "Living Room"})
	plugins.Register(&AudioPlugin{callsign: "org.rdk.Audio"})
}

// init registers the plugins automatically when the package is imported,
// following the same convention as every other capability plugin.
func init() {
	Register()
}
