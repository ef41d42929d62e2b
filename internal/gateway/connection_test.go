package gateway

import "testing"

func TestConnectionUnauthenticatedByDefault(t *testing.T) {
	c := newConnection(1)
	if c.Authenticated() {
		t.Fatal("expected a freshly created connection to be unauthenticated")
	}
	if c.AppID() != "" {
		t.Fatalf("expected empty AppID, got %q", c.AppID())
	}
}

func TestConnectionAuthenticateDrainsPendingInFIFOOrder(t *testing.T) {
	c := newConnection(1)
	for i := uint32(1); i <= 3; i++ {
		if dropped := c.enqueuePending(pendingMessage{requestID: i, method: "m"}); dropped != nil {
			t.Fatalf("did not expect a drop before reaching capacity, got %+v", dropped)
		}
	}

	drained := c.authenticate("app-a")
	if len(drained) != 3 {
		t.Fatalf("expected 3 drained messages, got %d", len(drained))
	}
	for i, msg := range drained {
		want := uint32(i + 1)
		if msg.requestID != want {
			t.Fatalf("expected FIFO order, drained[%d].requestID = %d, want %d", i, msg.requestID, want)
		}
	}

	if !c.Authenticated() {
		t.Fatal("expected connection authenticated after authenticate()")
	}
	if c.AppID() != "app-a" {
		t.Fatalf("unexpected AppID: %q", c.AppID())
	}

	// A second authenticate call on an already-drained queue must not panic
	// and must return nothing further.
	drainedAgain := c.authenticate("app-a")
	if len(drainedAgain) != 0 {
		t.Fatalf("expected no further drained messages, got %d", len(drainedAgain))
	}
}

// Boundary: the pending queue holds exactly pendingQueueCapacity (10)
// entries; the 11th enqueue must drop the oldest rather than grow
// unbounded or reject the newest (spec §8 boundary behavior).
func TestConnectionPendingQueueDropsOldestOnOverflow(t *testing.T) {
	c := newConnection(1)
	for i := uint32(1); i <= pendingQueueCapacity; i++ {
		if dropped := c.enqueuePending(pendingMessage{requestID: i, method: "m"}); dropped != nil {
			t.Fatalf("unexpected drop at entry %d: %+v", i, dropped)
		}
	}

	dropped := c.enqueuePending(pendingMessage{requestID: 11, method: "m"})
	if dropped == nil {
		t.Fatal("expected the 11th enqueue to report a dropped message")
	}
	if dropped.requestID != 1 {
		t.Fatalf("expected the oldest entry (requestId=1) to be dropped, got %d", dropped.requestID)
	}

	drained := c.authenticate("app-a")
	if len(drained) != pendingQueueCapacity {
		t.Fatalf("expected queue to still hold exactly %d entries, got %d", pendingQueueCapacity, len(drained))
	}
	if drained[0].requestID != 2 {
		t.Fatalf("expected oldest surviving entry to be requestId=2, got %d", drained[0].requestID)
	}
	if drained[len(drained)-1].requestID != 11 {
		t.Fatalf("expected newest entry (requestId=11) to survive, got %d", drained[len(drained)-1].requestID)
	}
}

func TestConnectionPendingQueueCapacityConstant(t *testing.T) {
	if pendingQueueCapacity != 10 {
		t.Fatalf("pending queue capacity changed from the spec'd value of 10: got %d", pendingQueueCapacity)
	}
}

func TestAppIDRegistryNextConnectionIDMonotonic(t *testing.T) {
	r := NewAppIDRegistry()
	prev := uint32(0)
	for i := 0; i < 5; i++ {
		id := r.NextConnectionID()
		if id <= prev {
			t.Fatalf("expected strictly increasing connection ids, got %d after %d", id, prev)
		}
		prev = id
	}
}

func TestAppIDRegistryPutGetRemove(t *testing.T) {
	r := NewAppIDRegistry()
	id := r.NextConnectionID()
	r.Put(id, "app-a")

	got, ok := r.Get(id)
	if !ok || got != "app-a" {
		t.Fatalf("expected Get to return app-a, got %q ok=%v", got, ok)
	}
	if r.Count() != 1 {
		t.Fatalf("expected Count 1, got %d", r.Count())
	}

	removed, ok := r.Remove(id)
	if !ok || removed != "app-a" {
		t.Fatalf("expected Remove to return app-a, got %q ok=%v", removed, ok)
	}
	if _, ok := r.Get(id); ok {
		t.Fatal("expected connection removed from registry")
	}
	if r.Count() != 0 {
		t.Fatalf("expected Count 0 after Remove, got %d", r.Count())
	}
}

func TestAppIDRegistryRemoveUnknownReportsNotOK(t *testing.T) {
	r := NewAppIDRegistry()
	if _, ok := r.Remove(9999); ok {
		t.Fatal("expected Remove of an unregistered id to report ok=false")
	}
}
