package gateway

import "testing"

func TestSubscriptionRegistryAddReportsWasEmpty(t *testing.T) {
	r := NewSubscriptionRegistry()
	entry := SubscriptionEntry{ConnectionID: 1, AppID: "app-a", RequestID: 10, Origin: OriginGateway}

	if wasEmpty := r.Add("onChanged", entry); !wasEmpty {
		t.Fatal("expected first Add to report wasEmpty=true")
	}
	if !r.Exists("onChanged") {
		t.Fatal("expected event to exist after Add")
	}

	second := SubscriptionEntry{ConnectionID: 2, AppID: "app-b", RequestID: 11, Origin: OriginGateway}
	if wasEmpty := r.Add("onChanged", second); wasEmpty {
		t.Fatal("expected second Add on the same event to report wasEmpty=false")
	}
}

func TestSubscriptionRegistryRemoveReportsNowEmpty(t *testing.T) {
	r := NewSubscriptionRegistry()
	a := SubscriptionEntry{ConnectionID: 1, AppID: "app-a", RequestID: 10, Origin: OriginGateway}
	b := SubscriptionEntry{ConnectionID: 2, AppID: "app-b", RequestID: 11, Origin: OriginGateway}
	r.Add("onChanged", a)
	r.Add("onChanged", b)

	if nowEmpty := r.Remove("onChanged", a); nowEmpty {
		t.Fatal("expected registry to still have b, nowEmpty should be false")
	}
	if nowEmpty := r.Remove("onChanged", b); !nowEmpty {
		t.Fatal("expected registry to be empty after removing last subscriber")
	}
	if r.Exists("onChanged") {
		t.Fatal("expected event to no longer exist")
	}
}

func TestSubscriptionRegistryRemoveUnknownEntryIsNoop(t *testing.T) {
	r := NewSubscriptionRegistry()
	a := SubscriptionEntry{ConnectionID: 1, AppID: "app-a", RequestID: 10, Origin: OriginGateway}
	r.Add("onChanged", a)

	other := SubscriptionEntry{ConnectionID: 99, AppID: "ghost", RequestID: 0, Origin: OriginGateway}
	if nowEmpty := r.Remove("onChanged", other); nowEmpty {
		t.Fatal("removing a non-matching entry must not report nowEmpty")
	}
	if !r.Exists("onChanged") {
		t.Fatal("original subscriber must remain")
	}
}

func TestSubscriptionRegistryGetSubscribersIsASnapshot(t *testing.T) {
	r := NewSubscriptionRegistry()
	a := SubscriptionEntry{ConnectionID: 1, AppID: "app-a", RequestID: 10, Origin: OriginGateway}
	r.Add("onChanged", a)

	snap := r.GetSubscribers("onChanged")
	if len(snap) != 1 {
		t.Fatalf("expected 1 subscriber, got %d", len(snap))
	}

	r.Add("onChanged", SubscriptionEntry{ConnectionID: 2, AppID: "app-b", RequestID: 11, Origin: OriginGateway})
	if len(snap) != 1 {
		t.Fatalf("snapshot must not observe later mutation, got %d entries", len(snap))
	}
}

// Cleanup must scope by (ConnectionID, Origin) together: entries on the
// same connection ID but a different Origin must survive.
func TestSubscriptionRegistryCleanupScopedByConnectionAndOrigin(t *testing.T) {
	r := NewSubscriptionRegistry()
	target := SubscriptionEntry{ConnectionID: 5, AppID: "app-a", RequestID: 1, Origin: OriginGateway}
	sameConnDifferentOrigin := SubscriptionEntry{ConnectionID: 5, AppID: "app-a", RequestID: 1, Origin: "other-origin"}
	otherConn := SubscriptionEntry{ConnectionID: 6, AppID: "app-b", RequestID: 2, Origin: OriginGateway}

	r.Add("eventA", target)
	r.Add("eventB", sameConnDifferentOrigin)
	r.Add("eventA", otherConn)

	emptied := r.Cleanup(5, OriginGateway)
	if len(emptied) != 0 {
		t.Fatalf("eventA still has otherConn subscribed, expected no emptied events, got %v", emptied)
	}
	if !r.Exists("eventB") {
		t.Fatal("entry under a different Origin on the same connection must survive Cleanup")
	}
	subs := r.GetSubscribers("eventA")
	if len(subs) != 1 || subs[0].ConnectionID != 6 {
		t.Fatalf("expected only otherConn to remain on eventA, got %+v", subs)
	}
}

func TestSubscriptionRegistryCleanupReportsEmptiedEvents(t *testing.T) {
	r := NewSubscriptionRegistry()
	entry := SubscriptionEntry{ConnectionID: 7, AppID: "app-a", RequestID: 1, Origin: OriginGateway}
	r.Add("eventA", entry)
	r.Add("eventB", entry)

	emptied := r.Cleanup(7, OriginGateway)
	if len(emptied) != 2 {
		t.Fatalf("expected both events to empty out, got %v", emptied)
	}
	if r.Exists("eventA") || r.Exists("eventB") {
		t.Fatal("expected both events removed after cleanup")
	}
}

func TestSubscriptionRegistryCountAndEvents(t *testing.T) {
	r := NewSubscriptionRegistry()
	r.Add("eventA", SubscriptionEntry{ConnectionID: 1, AppID: "a", RequestID: 1, Origin: OriginGateway})
	r.Add("eventA", SubscriptionEntry{ConnectionID: 2, AppID: "b", RequestID: 2, Origin: OriginGateway})
	r.Add("eventB", SubscriptionEntry{ConnectionID: 3, AppID: "c", RequestID: 3, Origin: OriginGateway})

	if got := r.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
	events := r.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 distinct events, got %v", events)
	}
}
