package devicecaps

import (
	"context"
	"testing"

	"github.com/rdkcentral/appgateway/internal/gateway"
	"github.com/rdkcentral/appgateway/internal/plugins"
)

func TestPluginHandleGetFriendlyName(t *testing.T) {
	p := &Plugin{callsign: "org.rdk.System", friendlyName: "Living Room"}
	result, status := p.Handle(context.Background(), gateway.Context{}, "getFriendlyName", "{}")
	if status != 0 {
		t.Fatalf("expected status 0, got %d", status)
	}
	if result != `"Living Room"` {
		t.Fatalf("unexpected result: %s", result)
	}
}

func TestPluginHandleUnknownMethod(t *testing.T) {
	p := &Plugin{callsign: "org.rdk.System", friendlyName: "Living Room"}
	_, status := p.Handle(context.Background(), gateway.Context{}, "noSuchMethod", "{}")
	if status == 0 {
		t.Fatal("expected a non-zero status for an unknown method")
	}
}

func TestPluginInvokeGenericSuccess(t *testing.T) {
	p := &Plugin{callsign: "org.rdk.System", friendlyName: "Living Room"}
	result, err := p.Invoke(context.Background(), "org.rdk.System", "getFriendlyName", "{}")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if result != `"Living Room"` {
		t.Fatalf("unexpected result: %s", result)
	}
}

func TestPluginInvokeWrongCallsign(t *testing.T) {
	p := &Plugin{callsign: "org.rdk.System", friendlyName: "Living Room"}
	if _, err := p.Invoke(context.Background(), "org.rdk.Other", "getFriendlyName", "{}"); err == nil {
		t.Fatal("expected an error when callsign does not match")
	}
}

func TestRegisterInstallsBothExampleCapabilities(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()

	Register()

	system, ok := plugins.Lookup("org.rdk.System")
	if !ok {
		t.Fatal("expected org.rdk.System registered")
	}
	if _, ok := system.(gateway.RequestHandler); !ok {
		t.Fatal("expected org.rdk.System to satisfy gateway.RequestHandler")
	}
	if _, ok := system.(gateway.JSONRPCInvoker); !ok {
		t.Fatal("expected org.rdk.System to satisfy gateway.JSONRPCInvoker")
	}

	audio, ok := plugins.Lookup("org.rdk.Audio")
	if !ok {
		t.Fatal("expected org.rdk.Audio registered")
	}
	if _, ok := audio.(gateway.NotificationHandler); !ok {
		t.Fatal("expected org.rdk.Audio to satisfy gateway.NotificationHandler")
	}
}

func TestAudioPluginSubscribeUnsubscribeAreNoops(t *testing.T) {
	p := &AudioPlugin{callsign: "org.rdk.Audio"}
	if err := p.Subscribe(context.Background(), "onChanged"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := p.Unsubscribe(context.Background(), "onChanged"); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
}
