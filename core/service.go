package core

import (
	"context"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/internal/persist"
	"pkt.systems/tabdeck/schema"
)

// service implements the core service behavior.
type service struct {
	cfg     schema.ServiceConfig
	factory ContentFactory
	sink    EventSink
	store   *persist.Store
	logger  pslog.Logger
	mu      sync.Mutex
	windows map[schema.WindowID]*workspaceState
}

// workspaceState is one window's tab collection: the ordered list, the MRU
// list (front = most recently focused), and the focused tab. Both lists
// always contain exactly the same set of tab ids.
type workspaceState struct {
	tabs    map[schema.TabID]*tab
	order   []schema.TabID
	mru     []schema.TabID
	focused schema.TabID
	// switching marks an MRU switcher walk in progress; the pending MRU
	// promotion lands on CommitSelection.
	switching bool
}

// NewService constructs the core service implementation.
func NewService(cfg schema.ServiceConfig, deps ServiceDeps) (Service, error) {
	normalized, err := schema.NormalizeServiceConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg = normalized
	var store *persist.Store
	if cfg.StateDir != "" {
		store, err = persist.NewStoreWithLogger(cfg.StateDir, deps.Logger)
		if err != nil {
			return nil, err
		}
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &service{
		cfg:     cfg,
		factory: deps.ContentFactory,
		sink:    deps.EventSink,
		store:   store,
		logger:  logger,
		windows: make(map[schema.WindowID]*workspaceState),
	}, nil
}

func (s *service) getOrCreateWindowLocked(windowID schema.WindowID) *workspaceState {
	state := s.windows[windowID]
	if state == nil {
		state = s.loadWindowStateLocked(windowID)
		s.windows[windowID] = state
	}
	return state
}

func (s *service) emitTabEvents(events []schema.TabEvent) {
	if s.sink == nil {
		return
	}
	for _, event := range events {
		s.sink.OnTabEvent(event)
	}
}

func (s *service) emitWorkspaceEvent(event schema.WorkspaceEvent) {
	if s.sink == nil {
		return
	}
	s.sink.OnWorkspaceEvent(event)
}

// snapshotTabLocked builds a TabSnapshot with the tab's current ordinal.
func (s *service) snapshotTabLocked(state *workspaceState, t *tab) schema.TabSnapshot {
	return t.Snapshot(indexOfTab(state.order, t.ID), state.focused == t.ID)
}

// selectLocked focuses the tab and, when promote is set, bumps it to the MRU
// front. Returns the selected event to emit after unlock.
func (s *service) selectLocked(windowID schema.WindowID, state *workspaceState, id schema.TabID, promote bool) schema.TabEvent {
	state.focused = id
	if promote {
		promoteMRU(state, id)
		state.switching = false
	}
	t := state.tabs[id]
	return schema.TabEvent{
		WindowID:   windowID,
		Type:       schema.TabEventSelected,
		Tab:        s.snapshotTabLocked(state, t),
		FocusedTab: state.focused,
	}
}

// deriveTitleLocked recomputes the tab's title and returns a title event
// when it changed.
func (s *service) deriveTitleLocked(windowID schema.WindowID, state *workspaceState, t *tab) (schema.TabEvent, bool) {
	if !t.deriveTitle(s.cfg.TabTitleMax, s.cfg.TabTitleSuffix) {
		return schema.TabEvent{}, false
	}
	return schema.TabEvent{
		WindowID:   windowID,
		Type:       schema.TabEventTitle,
		Tab:        s.snapshotTabLocked(state, t),
		FocusedTab: state.focused,
	}, true
}

// removeTabLocked takes the tab out of both lists, selects a replacement
// when it was focused, and returns the events to emit after unlock along
// with the contents to close. The closed event is always events[0].
func (s *service) removeTabLocked(windowID schema.WindowID, state *workspaceState, t *tab) ([]schema.TabEvent, *schema.WorkspaceEvent, []Content) {
	removed := s.snapshotTabLocked(state, t)
	wasFocused := state.focused == t.ID

	delete(state.tabs, t.ID)
	state.order = removeTabID(state.order, t.ID)
	state.mru = removeTabID(state.mru, t.ID)
	contents := t.panes.closeAll()

	events := []schema.TabEvent{{
		WindowID: windowID,
		Type:     schema.TabEventClosed,
		Tab:      removed,
	}}
	var workspaceEvent *schema.WorkspaceEvent
	if len(state.order) == 0 {
		state.focused = ""
		state.switching = false
		workspaceEvent = &schema.WorkspaceEvent{
			WindowID: windowID,
			Type:     schema.WorkspaceEventAllTabsClosed,
		}
	} else if wasFocused {
		var next schema.TabID
		if s.cfg.SwitchMode == schema.SwitchMostRecentlyUsed {
			next = state.mru[0]
		} else {
			next = state.order[clampIndex(removed.Index-1, 0, len(state.order)-1)]
		}
		events = append(events, s.selectLocked(windowID, state, next, true))
	}
	events[0].FocusedTab = state.focused
	return events, workspaceEvent, contents
}

// promoteMRU bumps the tab to the front of the MRU list.
func promoteMRU(state *workspaceState, id schema.TabID) {
	idx := indexOfTab(state.mru, id)
	if idx <= 0 {
		return
	}
	state.mru = append(state.mru[:idx], state.mru[idx+1:]...)
	state.mru = append([]schema.TabID{id}, state.mru...)
}

func indexOfTab(list []schema.TabID, id schema.TabID) int {
	for i, current := range list {
		if current == id {
			return i
		}
	}
	return -1
}

func removeTabID(list []schema.TabID, id schema.TabID) []schema.TabID {
	for i, current := range list {
		if current == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func clampIndex(index, low, high int) int {
	if index < low {
		return low
	}
	if index > high {
		return high
	}
	return index
}

func normalizeWindowID(windowID schema.WindowID) (schema.WindowID, error) {
	if err := schema.ValidateWindowID(windowID); err != nil {
		return "", err
	}
	return windowID, nil
}

func closeContents(contents []Content) {
	for _, content := range contents {
		if content != nil {
			_ = content.Close()
		}
	}
}
