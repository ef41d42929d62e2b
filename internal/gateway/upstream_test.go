package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rdkcentral/appgateway/internal/plugins"
)

// fakeNotificationPlugin is a minimal plugins.Plugin + NotificationHandler
// stand-in used to exercise the Upstream Subscription Manager without a
// real downstream capability.
type fakeNotificationPlugin struct {
	callsign string

	mu            sync.Mutex
	subscribed    map[string]int
	unsubscribed  map[string]int
	failSubscribe bool
}

func newFakeNotificationPlugin(callsign string) *fakeNotificationPlugin {
	return &fakeNotificationPlugin{
		callsign:     callsign,
		subscribed:   make(map[string]int),
		unsubscribed: make(map[string]int),
	}
}

func (p *fakeNotificationPlugin) Callsign() string   { return p.callsign }
func (p *fakeNotificationPlugin) Init() (any, error) { return p, nil }

func (p *fakeNotificationPlugin) Subscribe(ctx context.Context, event string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failSubscribe {
		return errors.New("fake: subscribe failed")
	}
	p.subscribed[event]++
	return nil
}

func (p *fakeNotificationPlugin) Unsubscribe(ctx context.Context, event string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unsubscribed[event]++
	return nil
}

func (p *fakeNotificationPlugin) subscribeCount(event string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subscribed[event]
}

func TestUpstreamManagerSubscribeDedupes(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	p := newFakeNotificationPlugin("org.rdk.Audio")
	plugins.Register(p)

	m := NewUpstreamManager()
	ctx := context.Background()

	first, err := m.Subscribe(ctx, "org.rdk.Audio", "onChanged")
	if err != nil || !first {
		t.Fatalf("expected first Subscribe to be newlyActive, got first=%v err=%v", first, err)
	}
	second, err := m.Subscribe(ctx, "org.rdk.Audio", "onChanged")
	if err != nil || second {
		t.Fatalf("expected second Subscribe to be a dedup no-op, got second=%v err=%v", second, err)
	}

	if got := p.subscribeCount("onChanged"); got != 1 {
		t.Fatalf("expected exactly one downstream Subscribe call, got %d", got)
	}
	if !m.IsActive("org.rdk.Audio", "onChanged") {
		t.Fatal("expected (module, event) to be active")
	}
}

func TestUpstreamManagerUnsubscribeOnlyWhenActive(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	p := newFakeNotificationPlugin("org.rdk.Audio")
	plugins.Register(p)

	m := NewUpstreamManager()
	ctx := context.Background()

	if err := m.Unsubscribe(ctx, "org.rdk.Audio", "onChanged"); err != nil {
		t.Fatalf("expected unsubscribe of inactive pair to be a no-op, got err: %v", err)
	}
	if p.unsubscribed["onChanged"] != 0 {
		t.Fatal("expected no downstream Unsubscribe call for an inactive pair")
	}

	if _, err := m.Subscribe(ctx, "org.rdk.Audio", "onChanged"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := m.Unsubscribe(ctx, "org.rdk.Audio", "onChanged"); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	if m.IsActive("org.rdk.Audio", "onChanged") {
		t.Fatal("expected pair inactive after Unsubscribe")
	}
	if p.unsubscribed["onChanged"] != 1 {
		t.Fatalf("expected exactly one downstream Unsubscribe call, got %d", p.unsubscribed["onChanged"])
	}
}

func TestUpstreamManagerSubscribeUnknownCallsignReturnsCapabilityUnavailable(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()

	m := NewUpstreamManager()
	_, err := m.Subscribe(context.Background(), "org.rdk.Missing", "onChanged")
	if !errors.Is(err, ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
	if m.IsActive("org.rdk.Missing", "onChanged") {
		t.Fatal("a failed subscribe must not mark the pair active")
	}
}

func TestUpstreamManagerSubscribeFailureNotMarkedActive(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	p := newFakeNotificationPlugin("org.rdk.Audio")
	p.failSubscribe = true
	plugins.Register(p)

	m := NewUpstreamManager()
	_, err := m.Subscribe(context.Background(), "org.rdk.Audio", "onChanged")
	if err == nil {
		t.Fatal("expected downstream subscribe failure to propagate")
	}
	if m.IsActive("org.rdk.Audio", "onChanged") {
		t.Fatal("a failed subscribe must leave the pair inactive so the next edge retries")
	}
}

func TestUpstreamManagerTeardownUnsubscribesEverything(t *testing.T) {
	plugins.Reset()
	defer plugins.Reset()
	audio := newFakeNotificationPlugin("org.rdk.Audio")
	system := newFakeNotificationPlugin("org.rdk.System")
	plugins.Register(audio)
	plugins.Register(system)

	m := NewUpstreamManager()
	ctx := context.Background()
	if _, err := m.Subscribe(ctx, "org.rdk.Audio", "onChanged"); err != nil {
		t.Fatalf("Subscribe audio: %v", err)
	}
	if _, err := m.Subscribe(ctx, "org.rdk.System", "onRebooted"); err != nil {
		t.Fatalf("Subscribe system: %v", err)
	}

	m.Teardown(ctx)

	if m.Count() != 0 {
		t.Fatalf("expected zero active subscriptions after Teardown, got %d", m.Count())
	}
	if audio.unsubscribed["onChanged"] != 1 || system.unsubscribed["onRebooted"] != 1 {
		t.Fatal("expected Teardown to unsubscribe every tracked pair")
	}
}
