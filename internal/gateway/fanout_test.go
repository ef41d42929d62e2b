package gateway

import (
	"testing"
)

func newFanoutFixture() (*Fanout, *SubscriptionRegistry, *fakeResponder, *WorkerPool) {
	pool := NewWorkerPool(2)
	registry := NewSubscriptionRegistry()
	tbl := newOriginTable()
	fake := &fakeResponder{}
	tbl.register(OriginGateway, fake)
	tbl.setFallback(fake)
	responder := NewResponseDispatcher(tbl, pool)
	return NewFanout(registry, responder), registry, fake, pool
}

func TestFanoutEmitDeliversToEverySubscriber(t *testing.T) {
	f, registry, fake, pool := newFanoutFixture()
	registry.Add("audio.onchanged", SubscriptionEntry{ConnectionID: 1, AppID: "app-a", RequestID: 1, Origin: OriginGateway})
	registry.Add("audio.onchanged", SubscriptionEntry{ConnectionID: 2, AppID: "app-b", RequestID: 2, Origin: OriginGateway})

	f.Emit("audio.onChanged", `{"v":1}`, "")
	pool.Wait()

	if got := fake.notificationCount(); got != 2 {
		t.Fatalf("expected both subscribers notified, got %d", got)
	}
}

// The delivered notification must carry the event name exactly as the
// emitter spelled it, even though the registry lookup normalizes case.
func TestFanoutEmitPreservesEmitterCase(t *testing.T) {
	f, registry, fake, pool := newFanoutFixture()
	registry.Add("audio.onchanged", SubscriptionEntry{ConnectionID: 1, AppID: "app-a", RequestID: 1, Origin: OriginGateway})

	f.Emit("Audio.OnChanged", `{"v":1}`, "")
	pool.Wait()

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(fake.notifications))
	}
	if fake.notifications[0].method != "Audio.OnChanged" {
		t.Fatalf("expected emitter's spelling preserved, got %q", fake.notifications[0].method)
	}
}

func TestFanoutEmitTargetedSkipsOtherApps(t *testing.T) {
	f, registry, fake, pool := newFanoutFixture()
	registry.Add("audio.onchanged", SubscriptionEntry{ConnectionID: 1, AppID: "app-a", RequestID: 1, Origin: OriginGateway})
	registry.Add("audio.onchanged", SubscriptionEntry{ConnectionID: 2, AppID: "app-b", RequestID: 2, Origin: OriginGateway})

	f.Emit("audio.onChanged", `{"v":2}`, "app-a")
	pool.Wait()

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.notifications) != 1 {
		t.Fatalf("expected exactly one targeted delivery, got %d", len(fake.notifications))
	}
	if fake.notifications[0].connectionID != 1 {
		t.Fatalf("expected delivery to app-a's connection, got %d", fake.notifications[0].connectionID)
	}
}

// An event with no subscribers must be a logged no-op, never an error or a
// panic (spec: the normal shape of an unsubscribe/emit race).
func TestFanoutEmitNoSubscribersIsNoop(t *testing.T) {
	f, _, fake, pool := newFanoutFixture()

	f.Emit("nobody.listening", `{}`, "")
	pool.Wait()

	if got := fake.notificationCount(); got != 0 {
		t.Fatalf("expected no deliveries, got %d", got)
	}
}

func TestEmitEventBeforeWiringIsNoop(t *testing.T) {
	prev := globalFanout.Load()
	globalFanout.Store(nil)
	defer globalFanout.Store(prev)

	// Must not panic.
	EmitEvent("audio.onChanged", `{}`, "")
}

func TestEmitEventRoutesThroughGlobalFanout(t *testing.T) {
	f, registry, fake, pool := newFanoutFixture()
	prev := globalFanout.Load()
	SetGlobalFanout(f)
	defer globalFanout.Store(prev)

	registry.Add("audio.onchanged", SubscriptionEntry{ConnectionID: 3, AppID: "app-c", RequestID: 9, Origin: OriginGateway})
	EmitEvent("audio.onChanged", `{"v":3}`, "")
	pool.Wait()

	if got := fake.notificationCount(); got != 1 {
		t.Fatalf("expected the global hook to deliver once, got %d", got)
	}
}
