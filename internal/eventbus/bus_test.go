package eventbus

import (
	"testing"
	"time"

	"pkt.systems/tabdeck/schema"
)

func TestSubscribeAndPublish(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("main")
	defer cancel()

	event := schema.TabEvent{
		WindowID: "main",
		Type:     schema.TabEventCreated,
		Tab:      schema.TabSnapshot{ID: "tab1", Title: "shell"},
	}
	bus.OnTabEvent(event)

	select {
	case got := <-ch:
		if got.Type != EventTab {
			t.Fatalf("expected tab event, got %v", got.Type)
		}
		if got.Tab.WindowID != event.WindowID || got.Tab.Tab.ID != event.Tab.ID {
			t.Fatalf("unexpected payload: %+v", got.Tab)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for event")
	}
}

func TestWorkspaceEventDelivered(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("main")
	defer cancel()

	bus.OnWorkspaceEvent(schema.WorkspaceEvent{
		WindowID: "main",
		Type:     schema.WorkspaceEventAllTabsClosed,
	})

	select {
	case got := <-ch:
		if got.Type != EventWorkspace {
			t.Fatalf("expected workspace event, got %v", got.Type)
		}
		if got.Workspace.Type != schema.WorkspaceEventAllTabsClosed {
			t.Fatalf("unexpected payload: %+v", got.Workspace)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("main")
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel to be closed")
	}
}

func TestPublishDoesNotBlockWhenFull(t *testing.T) {
	bus := New(nil)
	bus.depth = 1
	_, cancel := bus.Subscribe("main")
	defer cancel()

	var sendCh chan Event
	bus.mu.Lock()
	for ch := range bus.subs["main"] {
		sendCh = ch
		break
	}
	bus.mu.Unlock()
	if sendCh == nil {
		t.Fatalf("expected subscriber channel")
	}
	sendCh <- Event{Type: EventTab}
	done := make(chan struct{})
	go func() {
		bus.OnTabEvent(schema.TabEvent{WindowID: "main"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("publish blocked on full channel")
	}
}
