// internal/gateway/capability.go
// Interfaces the Plugin Bridge (C3) needs from the plugin framework. The
// framework's object lifecycle/IPC is out of scope (spec §1); only these
// contracts are specified, and internal/plugins supplies in-process
// implementations that satisfy them.
package gateway

import "context"

// RequestHandler is the typed-capability interface a downstream plugin
// exposes for Plugin Bridge Mode B (spec §4.3 Mode B).
type RequestHandler interface {
	Handle(ctx context.Context, gwCtx Context, method, params string) (result string, status uint32)
}

// NotificationHandler is the interface the Upstream Subscription Manager
// (C5) uses to register/unregister upstream event interest with a plugin.
type NotificationHandler interface {
	Subscribe(ctx context.Context, event string) error
	Unsubscribe(ctx context.Context, event string) error
}

// JSONRPCInvoker is the generic by-callsign interface for Plugin Bridge
// Mode A (spec §4.3 Mode A): invoke method on the plugin named by callsign
// with a serialized params string, get back a serialized result string.
type JSONRPCInvoker interface {
	Invoke(ctx context.Context, callsign, method, params string) (result string, err error)
}

// Authenticator resolves a handshake session token to an appId (spec §4.8
// Handshake) and answers permission-group membership checks (spec §4.7
// step 3).
type Authenticator interface {
	ResolveSession(ctx context.Context, sessionToken string) (appID string, ok bool)
	CheckPermissionGroup(ctx context.Context, appID, group string) bool
}
