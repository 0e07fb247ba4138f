package eventbus

import (
	"context"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/schema"
)

// EventType identifies the event payload.
type EventType string

const (
	// EventTab carries tab lifecycle updates.
	EventTab EventType = "tab"
	// EventWorkspace carries window-level updates.
	EventWorkspace EventType = "workspace"
)

// Event represents a UI-facing event emitted by the core service.
type Event struct {
	Type      EventType
	Tab       schema.TabEvent
	Workspace schema.WorkspaceEvent
}

// Bus fanouts events to per-window subscribers.
type Bus struct {
	mu    sync.Mutex
	subs  map[schema.WindowID]map[chan Event]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		subs:  make(map[schema.WindowID]map[chan Event]struct{}),
		log:   logger,
		depth: 256,
	}
}

// Subscribe registers a subscriber for the window and returns a channel + cancel.
func (b *Bus) Subscribe(windowID schema.WindowID) (<-chan Event, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan Event, b.depth)
	b.mu.Lock()
	windowSubs := b.subs[windowID]
	if windowSubs == nil {
		windowSubs = make(map[chan Event]struct{})
		b.subs[windowID] = windowSubs
	}
	windowSubs[ch] = struct{}{}
	count := len(windowSubs)
	b.mu.Unlock()
	if b.log != nil {
		b.log.With("window", windowID).Debug("eventbus subscribe", "subs", count)
	}
	return ch, func() {
		b.mu.Lock()
		if subs := b.subs[windowID]; subs != nil {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(b.subs, windowID)
			}
		}
		b.mu.Unlock()
		close(ch)
		if b.log != nil {
			b.log.With("window", windowID).Debug("eventbus unsubscribe")
		}
	}
}

// OnTabEvent publishes a tab event.
func (b *Bus) OnTabEvent(event schema.TabEvent) {
	b.publish(event.WindowID, Event{Type: EventTab, Tab: event})
}

// OnWorkspaceEvent publishes a window-level event.
func (b *Bus) OnWorkspaceEvent(event schema.WorkspaceEvent) {
	b.publish(event.WindowID, Event{Type: EventWorkspace, Workspace: event})
}

func (b *Bus) publish(windowID schema.WindowID, event Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	windowSubs := b.subs[windowID]
	subs := make([]chan Event, 0, len(windowSubs))
	for sub := range windowSubs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	dropped := 0
	for _, sub := range subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 && b.log != nil {
		b.log.With("window", windowID).Trace("eventbus dropped", "count", dropped)
	}
}
