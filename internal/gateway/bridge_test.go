package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rdkcentral/appgateway/internal/plugins"
)

// fakeGenericPlugin implements JSONRPCInvoker for Mode A tests.
type fakeGenericPlugin struct {
	callsign string
	result   string
	err      error
	calls    int
}

func (p *fakeGenericPlugin) Callsign() string   { return p.callsign }
func (p *fakeGenericPlugin) Init() (any, error) { return p, nil }

func (p *fakeGenericPlugin) Invoke(ctx context.Context, callsign, method, params string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.result, nil
}

// fakeTypedPlugin implements RequestHandler for Mode B tests, capturing the
// params it was handed so callers can assert on the outbound wire shape.
type fakeTypedPlugin struct {
	callsign string
	result   string
	status   uint32

	mu         sync.Mutex
	lastParams string
}

func (p *fakeTypedPlugin) Callsign() string   { return p.callsign }
func (p *fakeTypedPlugin) Init() (any, error) { return p, nil }

func (p *fakeTypedPlugin) Handle(ctx context.Context, gwCtx Context, method, params string) (string, uint32) {
	p.mu.Lock()
	p.lastParams = params
	p.mu.Unlock()
	return p.result, p.status
}

func (p *fakeTypedPlugin) capturedParams() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastParams
}

// bareCallsignPlugin satisfies neither JSONRPCInvoker nor RequestHandler, to
// exercise ErrCapabilityUnavailable.
type bareCallsignPlugin struct{ callsign string }

func (p *bareCallsignPlugin) Callsign() string   { return p.callsign }
func (p *bareCallsignPlugin) Init() (any, error) { return p, nil }

func TestBridgeInvokeGenericSuccess(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	p := &fakeGenericPlugin{callsign: "org.rdk.System", result: `{"name":"livingroom"}`}
	plugins.Register(p)

	b := NewBridge()
	result, err := b.InvokeGeneric(context.Background(), "org.rdk.System.getFriendlyName", "{}")
	if err != nil {
		t.Fatalf("InvokeGeneric: %v", err)
	}
	if result != `{"name":"livingroom"}` {
		t.Fatalf("unexpected result: %s", result)
	}
	if p.calls != 1 {
		t.Fatalf("expected exactly one downstream call, got %d", p.calls)
	}
}

func TestBridgeInvokeGenericEmptyAlias(t *testing.T) {
	b := NewBridge()
	_, err := b.InvokeGeneric(context.Background(), "", "{}")
	if !errors.Is(err, ErrEmptyAlias) {
		t.Fatalf("expected ErrEmptyAlias, got %v", err)
	}
}

// An alias with no dot must fail as an unknown callsign rather than
// resolving to a plugin named by the entire string with an empty method
// (spec §8 boundary behavior).
func TestBridgeInvokeGenericNoDotAlias(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	plugins.Register(&fakeGenericPlugin{callsign: "justacallsign", result: "null"})

	b := NewBridge()
	_, err := b.InvokeGeneric(context.Background(), "justacallsign", "{}")
	if !errors.Is(err, ErrUnknownCallsign) {
		t.Fatalf("expected ErrUnknownCallsign for a dotless alias, got %v", err)
	}
}

func TestBridgeInvokeGenericUnknownCallsign(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()

	b := NewBridge()
	_, err := b.InvokeGeneric(context.Background(), "org.rdk.Missing.getThing", "{}")
	if !errors.Is(err, ErrUnknownCallsign) {
		t.Fatalf("expected ErrUnknownCallsign, got %v", err)
	}
}

func TestBridgeInvokeGenericCapabilityUnavailable(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	// Registered but doesn't implement JSONRPCInvoker.
	plugins.Register(&bareCallsignPlugin{callsign: "org.rdk.System"})

	b := NewBridge()
	_, err := b.InvokeGeneric(context.Background(), "org.rdk.System.getFriendlyName", "{}")
	if !errors.Is(err, ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
}

func TestBridgeInvokeGenericDownstreamFailurePropagates(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	plugins.Register(&fakeGenericPlugin{callsign: "org.rdk.System", err: errors.New("downstream exploded")})

	b := NewBridge()
	_, err := b.InvokeGeneric(context.Background(), "org.rdk.System.getFriendlyName", "{}")
	var invokeFailed *InvokeFailed
	if !errors.As(err, &invokeFailed) {
		t.Fatalf("expected *InvokeFailed, got %v (%T)", err, err)
	}
}

func TestBridgeInvokeGenericEmptyResultBecomesNull(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	plugins.Register(&fakeGenericPlugin{callsign: "org.rdk.System", result: ""})

	b := NewBridge()
	result, err := b.InvokeGeneric(context.Background(), "org.rdk.System.getFriendlyName", "{}")
	if err != nil {
		t.Fatalf("InvokeGeneric: %v", err)
	}
	if result != "null" {
		t.Fatalf("expected empty downstream result to become \"null\", got %q", result)
	}
}

func TestBridgeInvokeTypedSuccess(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	plugins.Register(&fakeTypedPlugin{callsign: "org.rdk.System", result: `{"name":"livingroom"}`, status: 0})

	b := NewBridge()
	result, err := b.InvokeTyped(context.Background(), "org.rdk.System", Context{AppID: "app-a"}, "getFriendlyName", "{}")
	if err != nil {
		t.Fatalf("InvokeTyped: %v", err)
	}
	if result != `{"name":"livingroom"}` {
		t.Fatalf("unexpected result: %s", result)
	}
}

func TestBridgeInvokeTypedNonZeroStatusFails(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	plugins.Register(&fakeTypedPlugin{callsign: "org.rdk.System", result: "not permitted", status: 403})

	b := NewBridge()
	_, err := b.InvokeTyped(context.Background(), "org.rdk.System", Context{AppID: "app-a"}, "getFriendlyName", "{}")
	var invokeFailed *InvokeFailed
	if !errors.As(err, &invokeFailed) {
		t.Fatalf("expected *InvokeFailed, got %v", err)
	}
	if invokeFailed.Code != 403 {
		t.Fatalf("expected status code to round-trip, got %d", invokeFailed.Code)
	}
}

func TestBridgeInvokeTypedUnknownCallsign(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()

	b := NewBridge()
	_, err := b.InvokeTyped(context.Background(), "org.rdk.Missing", Context{}, "getFriendlyName", "{}")
	if !errors.Is(err, ErrUnknownCallsign) {
		t.Fatalf("expected ErrUnknownCallsign, got %v", err)
	}
}

func TestBridgeInvokeTypedCapabilityUnavailable(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	plugins.Register(&bareCallsignPlugin{callsign: "org.rdk.System"})

	b := NewBridge()
	_, err := b.InvokeTyped(context.Background(), "org.rdk.System", Context{}, "getFriendlyName", "{}")
	if !errors.Is(err, ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
}

func TestBridgeInvokeTypedEmptyAlias(t *testing.T) {
	b := NewBridge()
	_, err := b.InvokeTyped(context.Background(), "", Context{}, "getFriendlyName", "{}")
	if !errors.Is(err, ErrEmptyAlias) {
		t.Fatalf("expected ErrEmptyAlias, got %v", err)
	}
}
