package notify

import (
	"sync"
	"testing"
	"time"
)

func TestSubscribeGlobal(t *testing.T) {
	n := New()
	defer n.Close()

	var got []Change
	sub := n.Subscribe(func(c Change) {
		got = append(got, c)
	})
	defer sub.Unsubscribe()

	n.NotifySet("interface.webSearch", true, false, "session")
	n.NotifyToggle("interface.webSearch", false, "session")

	if len(got) != 2 {
		t.Fatalf("received %d changes, want 2", len(got))
	}
	if got[0].Type != ChangeSet || got[0].FieldID != "interface.webSearch" {
		t.Errorf("first change = %+v", got[0])
	}
	if got[0].OldValue != true || got[0].NewValue != false {
		t.Errorf("set change values = %v -> %v", got[0].OldValue, got[0].NewValue)
	}
	if got[1].Type != ChangeToggle {
		t.Errorf("second change type = %v, want toggle", got[1].Type)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Error("change IDs should be unique and non-empty")
	}
}

func TestSubscribeField(t *testing.T) {
	n := New()
	defer n.Close()

	var count int
	sub := n.SubscribeField("server.port", func(c Change) {
		count++
	})
	defer sub.Unsubscribe()

	n.NotifySet("server.port", 3080, 8080, "session")
	n.NotifySet("app.title", "a", "b", "session")

	if count != 1 {
		t.Errorf("field observer called %d times, want 1", count)
	}
}

func TestBroadcastReachesFieldObservers(t *testing.T) {
	n := New()
	defer n.Close()

	var count int
	sub := n.SubscribeField("server.port", func(c Change) {
		count++
	})
	defer sub.Unsubscribe()

	// Events without a field ID reach every field observer.
	n.NotifyReset("", nil, "session")
	n.NotifyPreset("agents-only")
	n.NotifyReload("librechat.yaml")

	if count != 3 {
		t.Errorf("field observer called %d times for broadcasts, want 3", count)
	}
}

func TestUnsubscribe(t *testing.T) {
	n := New()
	defer n.Close()

	var count int
	sub := n.Subscribe(func(c Change) {
		count++
	})

	n.NotifySet("a", nil, 1, "session")
	sub.Unsubscribe()
	n.NotifySet("a", 1, 2, "session")

	if count != 1 {
		t.Errorf("observer called %d times after unsubscribe, want 1", count)
	}
}

func TestAsyncDelivery(t *testing.T) {
	n := New(WithAsync(16))

	var mu sync.Mutex
	var got []ChangeType
	done := make(chan struct{})

	n.Subscribe(func(c Change) {
		mu.Lock()
		got = append(got, c.Type)
		if len(got) == 3 {
			close(done)
		}
		mu.Unlock()
	})

	n.NotifySet("a", nil, 1, "session")
	n.NotifyReset("a", 1, "session")
	n.NotifyReload("file")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async delivery")
	}

	n.Close()

	mu.Lock()
	defer mu.Unlock()
	want := []ChangeType{ChangeSet, ChangeReset, ChangeReload}
	for i, typ := range want {
		if got[i] != typ {
			t.Errorf("change %d = %v, want %v", i, got[i], typ)
		}
	}
}

func TestCloseIdempotent(t *testing.T) {
	n := New(WithAsync(4))
	n.Close()
	n.Close()

	// Notifications after close are dropped without blocking.
	n.NotifySet("a", nil, 1, "session")
}

func TestChangeTypeString(t *testing.T) {
	cases := map[ChangeType]string{
		ChangeSet:      "set",
		ChangeToggle:   "toggle",
		ChangeReset:    "reset",
		ChangePreset:   "preset",
		ChangeReload:   "reload",
		ChangeType(99): "unknown",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("%d.String() = %s, want %s", typ, got, want)
		}
	}
}
