package core

import (
	"context"

	"pkt.systems/tabdeck/schema"
)

// NewTab opens a tab hosting content for the requested profile. The tab is
// appended to the ordered list and put at the MRU front; focus only changes
// when the collection was empty.
func (s *service) NewTab(ctx context.Context, req schema.NewTabRequest) (schema.NewTabResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.NewTabResponse{}, err
	}
	profile := req.Profile
	if profile == "" {
		profile = s.cfg.DefaultProfile
	}
	var content Content
	if s.factory != nil {
		content, err = s.factory.Create(ctx, profile)
		if err != nil {
			return schema.NewTabResponse{}, err
		}
	}
	title := string(req.Title)
	if title == "" && content != nil {
		title = content.Title()
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	t := &tab{
		ID:       schema.TabID(newID()),
		ReadOnly: req.ReadOnly,
		panes:    newPaneTree(profile, title, content),
	}
	t.deriveTitle(s.cfg.TabTitleMax, s.cfg.TabTitleSuffix)
	state.tabs[t.ID] = t
	state.order = append(state.order, t.ID)
	state.mru = append([]schema.TabID{t.ID}, state.mru...)
	events := []schema.TabEvent{{
		WindowID:   windowID,
		Type:       schema.TabEventCreated,
		Tab:        s.snapshotTabLocked(state, t),
		FocusedTab: state.focused,
	}}
	if state.focused == "" {
		events = append(events, s.selectLocked(windowID, state, t.ID, true))
	}
	snapshot := s.snapshotTabLocked(state, t)
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	s.emitTabEvents(events)
	s.logger.Debug("tab created", "window", windowID, "tab", t.ID, "profile", profile)
	return schema.NewTabResponse{Tab: snapshot}, nil
}

// CloseTab removes the tab from both lists and closes its pane contents.
// Closing the focused tab selects a replacement: in MRU switch mode the most
// recently focused survivor, otherwise the tab left of the removed slot.
func (s *service) CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.CloseTabResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	id := req.TabID
	if id == "" {
		id = state.focused
	}
	t := state.tabs[id]
	if t == nil {
		s.mu.Unlock()
		return schema.CloseTabResponse{}, schema.ErrTabNotFound
	}
	if t.ReadOnly && !req.Force {
		s.mu.Unlock()
		return schema.CloseTabResponse{}, schema.ErrTabReadOnly
	}
	events, workspaceEvent, contents := s.removeTabLocked(windowID, state, t)
	removed := events[0].Tab
	remaining := len(state.order)
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	closeContents(contents)
	s.emitTabEvents(events)
	if workspaceEvent != nil {
		s.emitWorkspaceEvent(*workspaceEvent)
	}
	s.logger.Debug("tab closed", "window", windowID, "tab", id, "remaining", remaining)
	return schema.CloseTabResponse{Tab: removed, Remaining: remaining}, nil
}

// DuplicateTab opens a new tab from the given tab's focused pane profile.
// A profile that no longer resolves leaves the collection unchanged.
func (s *service) DuplicateTab(ctx context.Context, req schema.DuplicateTabRequest) (schema.DuplicateTabResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.DuplicateTabResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	id := req.TabID
	if id == "" {
		id = state.focused
	}
	t := state.tabs[id]
	if t == nil {
		s.mu.Unlock()
		return schema.DuplicateTabResponse{}, schema.ErrTabNotFound
	}
	leaf := t.panes.focusedLeaf()
	if leaf == nil {
		s.mu.Unlock()
		return schema.DuplicateTabResponse{}, schema.ErrNoFocusedPane
	}
	profile := leaf.profile
	readOnly := t.ReadOnly
	s.mu.Unlock()

	resp, err := s.NewTab(ctx, schema.NewTabRequest{
		WindowID: windowID,
		Profile:  profile,
		ReadOnly: readOnly,
	})
	if err != nil {
		return schema.DuplicateTabResponse{}, err
	}
	return schema.DuplicateTabResponse{Tab: resp.Tab}, nil
}

// SelectTab focuses the tab at an ordered-list index and promotes it to the
// MRU front.
func (s *service) SelectTab(ctx context.Context, req schema.SelectTabRequest) (schema.SelectTabResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.SelectTabResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	if req.Index < 0 || req.Index >= len(state.order) {
		s.mu.Unlock()
		return schema.SelectTabResponse{}, schema.ErrIndexOutOfRange
	}
	event := s.selectLocked(windowID, state, state.order[req.Index], true)
	snapshot := event.Tab
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	s.emitTabEvents([]schema.TabEvent{event})
	return schema.SelectTabResponse{Tab: snapshot}, nil
}

// SelectAdjacent advances tab focus. InOrder and Disabled walk the ordered
// list with wraparound and promote immediately; MRU walks the MRU list
// without reordering it, leaving the promotion for CommitSelection.
func (s *service) SelectAdjacent(ctx context.Context, req schema.SelectAdjacentRequest) (schema.SelectAdjacentResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.SelectAdjacentResponse{}, err
	}
	mode := req.Mode
	if mode == "" {
		mode = s.cfg.SwitchMode
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	size := len(state.order)
	if size == 0 {
		s.mu.Unlock()
		return schema.SelectAdjacentResponse{}, schema.ErrTabNotFound
	}
	step := -1
	if req.MoveRight {
		step = 1
	}
	var event schema.TabEvent
	transient := false
	if mode == schema.SwitchMostRecentlyUsed {
		pos := indexOfTab(state.mru, state.focused)
		if pos < 0 {
			pos = 0
		}
		next := state.mru[(size+pos+step)%size]
		state.focused = next
		state.switching = true
		transient = true
		event = schema.TabEvent{
			WindowID:   windowID,
			Type:       schema.TabEventSelected,
			Tab:        s.snapshotTabLocked(state, state.tabs[next]),
			FocusedTab: next,
		}
	} else {
		idx := indexOfTab(state.order, state.focused)
		if idx < 0 {
			idx = 0
		}
		event = s.selectLocked(windowID, state, state.order[(size+idx+step)%size], true)
	}
	snapshot := event.Tab
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	s.emitTabEvents([]schema.TabEvent{event})
	return schema.SelectAdjacentResponse{Tab: snapshot, Transient: transient}, nil
}

// CommitSelection applies the MRU promotion deferred by an MRU switcher
// walk. Safe to call when no walk is in progress.
func (s *service) CommitSelection(ctx context.Context, req schema.CommitSelectionRequest) (schema.CommitSelectionResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.CommitSelectionResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	t := state.tabs[state.focused]
	if t == nil {
		s.mu.Unlock()
		return schema.CommitSelectionResponse{}, schema.ErrTabNotFound
	}
	promoteMRU(state, state.focused)
	state.switching = false
	snapshot := s.snapshotTabLocked(state, t)
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	return schema.CommitSelectionResponse{Tab: snapshot}, nil
}

// MoveTab relocates a tab within the ordered list. The MRU list and focus
// are untouched by pure reordering.
func (s *service) MoveTab(ctx context.Context, req schema.MoveTabRequest) (schema.MoveTabResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.MoveTabResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	size := len(state.order)
	if req.FromIndex < 0 || req.FromIndex >= size {
		s.mu.Unlock()
		return schema.MoveTabResponse{}, schema.ErrIndexOutOfRange
	}
	to := clampIndex(req.ToIndex, 0, size-1)
	id := state.order[req.FromIndex]
	if to != req.FromIndex {
		state.order = append(state.order[:req.FromIndex], state.order[req.FromIndex+1:]...)
		rest := append([]schema.TabID{id}, state.order[to:]...)
		state.order = append(state.order[:to], rest...)
	}
	event := schema.TabEvent{
		WindowID:   windowID,
		Type:       schema.TabEventMoved,
		Tab:        s.snapshotTabLocked(state, state.tabs[id]),
		FocusedTab: state.focused,
	}
	snapshot := event.Tab
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	s.emitTabEvents([]schema.TabEvent{event})
	return schema.MoveTabResponse{Tab: snapshot}, nil
}

// ListTabs returns the window's full workspace snapshot.
func (s *service) ListTabs(ctx context.Context, req schema.ListTabsRequest) (schema.ListTabsResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.ListTabsResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.getOrCreateWindowLocked(windowID)
	workspace := schema.WorkspaceSnapshot{
		Tabs:       make([]schema.TabSnapshot, 0, len(state.order)),
		MRUOrder:   append([]schema.TabID(nil), state.mru...),
		FocusedTab: state.focused,
	}
	for _, id := range state.order {
		workspace.Tabs = append(workspace.Tabs, s.snapshotTabLocked(state, state.tabs[id]))
	}
	return schema.ListTabsResponse{Workspace: workspace}, nil
}
