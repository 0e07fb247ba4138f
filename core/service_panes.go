package core

import (
	"context"

	"pkt.systems/tabdeck/schema"
)

// focusedTabLocked resolves the window's focused tab.
func (s *service) focusedTabLocked(state *workspaceState) (*tab, error) {
	t := state.tabs[state.focused]
	if t == nil {
		return nil, schema.ErrTabNotFound
	}
	return t, nil
}

// SplitPane divides the focused tab's focused pane in two. The content is
// constructed before any mutation; a profile that no longer resolves leaves
// the tree unchanged.
func (s *service) SplitPane(ctx context.Context, req schema.SplitPaneRequest) (schema.SplitPaneResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.SplitPaneResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	t, err := s.focusedTabLocked(state)
	if err != nil {
		s.mu.Unlock()
		return schema.SplitPaneResponse{}, err
	}
	leaf := t.panes.focusedLeaf()
	if leaf == nil {
		s.mu.Unlock()
		return schema.SplitPaneResponse{}, schema.ErrNoFocusedPane
	}
	profile := req.Profile
	if req.Duplicate {
		profile = leaf.profile
	} else if profile == "" {
		profile = s.cfg.DefaultProfile
	}
	tabID := t.ID
	s.mu.Unlock()

	var content Content
	if s.factory != nil {
		content, err = s.factory.Create(ctx, profile)
		if err != nil {
			return schema.SplitPaneResponse{}, err
		}
	}
	title := ""
	if content != nil {
		title = content.Title()
	}

	// The tab may have closed while the content was being constructed.
	s.mu.Lock()
	state = s.getOrCreateWindowLocked(windowID)
	t = state.tabs[tabID]
	if t == nil {
		s.mu.Unlock()
		if content != nil {
			_ = content.Close()
		}
		return schema.SplitPaneResponse{}, schema.ErrTabNotFound
	}
	direction := req.Direction
	if direction == "" {
		direction = schema.SplitAutomatic
	}
	ratio := req.Ratio
	if ratio <= 0 || ratio >= 1 {
		ratio = s.cfg.DefaultSplitRatio
	}
	ratio = clampRatio(ratio, s.cfg.MinSplitRatio)
	paneID, err := t.panes.split(direction, ratio, profile, title, content)
	if err != nil {
		s.mu.Unlock()
		if content != nil {
			_ = content.Close()
		}
		return schema.SplitPaneResponse{}, err
	}
	events := []schema.TabEvent{{
		WindowID:   windowID,
		Type:       schema.TabEventUpdated,
		Tab:        s.snapshotTabLocked(state, t),
		FocusedTab: state.focused,
	}}
	if event, changed := s.deriveTitleLocked(windowID, state, t); changed {
		events = append(events, event)
	}
	snapshot := s.snapshotTabLocked(state, t)
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	s.emitTabEvents(events)
	s.logger.Debug("pane split", "window", windowID, "tab", tabID, "pane", paneID, "direction", direction)
	return schema.SplitPaneResponse{Pane: paneID, Tab: snapshot}, nil
}

// ClosePane closes the focused tab's focused pane. Closing the last pane
// closes the tab itself with the usual replacement policy.
func (s *service) ClosePane(ctx context.Context, req schema.ClosePaneRequest) (schema.ClosePaneResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.ClosePaneResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	t, err := s.focusedTabLocked(state)
	if err != nil {
		s.mu.Unlock()
		return schema.ClosePaneResponse{}, err
	}
	if t.ReadOnly {
		s.mu.Unlock()
		return schema.ClosePaneResponse{}, schema.ErrTabReadOnly
	}
	content, empty, err := t.panes.closeLeaf(t.panes.focused)
	if err != nil {
		s.mu.Unlock()
		return schema.ClosePaneResponse{}, err
	}
	var (
		events         []schema.TabEvent
		workspaceEvent *schema.WorkspaceEvent
		contents       []Content
		snapshot       schema.TabSnapshot
	)
	if empty {
		events, workspaceEvent, contents = s.removeTabLocked(windowID, state, t)
		snapshot = events[0].Tab
	} else {
		events = []schema.TabEvent{{
			WindowID:   windowID,
			Type:       schema.TabEventUpdated,
			Tab:        s.snapshotTabLocked(state, t),
			FocusedTab: state.focused,
		}}
		if event, changed := s.deriveTitleLocked(windowID, state, t); changed {
			events = append(events, event)
		}
		snapshot = s.snapshotTabLocked(state, t)
	}
	contents = append(contents, content)
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	closeContents(contents)
	s.emitTabEvents(events)
	if workspaceEvent != nil {
		s.emitWorkspaceEvent(*workspaceEvent)
	}
	return schema.ClosePaneResponse{Tab: snapshot, TabClosed: empty}, nil
}

// ToggleZoom flips zoom on the focused tab's focused pane. A lone pane
// stays unzoomed.
func (s *service) ToggleZoom(ctx context.Context, req schema.ToggleZoomRequest) (schema.ToggleZoomResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.ToggleZoomResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	t, err := s.focusedTabLocked(state)
	if err != nil {
		s.mu.Unlock()
		return schema.ToggleZoomResponse{}, err
	}
	if t.panes.focusedLeaf() == nil {
		s.mu.Unlock()
		return schema.ToggleZoomResponse{}, schema.ErrNoFocusedPane
	}
	zoomed := t.panes.toggleZoom()
	event := schema.TabEvent{
		WindowID:   windowID,
		Type:       schema.TabEventZoom,
		Tab:        s.snapshotTabLocked(state, t),
		FocusedTab: state.focused,
	}
	snapshot := event.Tab
	s.mu.Unlock()

	s.emitTabEvents([]schema.TabEvent{event})
	return schema.ToggleZoomResponse{Tab: snapshot, Zoomed: zoomed}, nil
}

// MoveFocus moves pane focus to the adjacent leaf in the given direction
// within the focused tab. Moving focus unzooms first.
func (s *service) MoveFocus(ctx context.Context, req schema.MoveFocusRequest) (schema.MoveFocusResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.MoveFocusResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	t, err := s.focusedTabLocked(state)
	if err != nil {
		s.mu.Unlock()
		return schema.MoveFocusResponse{}, err
	}
	if t.panes.focusedLeaf() == nil {
		s.mu.Unlock()
		return schema.MoveFocusResponse{}, schema.ErrNoFocusedPane
	}
	t.panes.clearZoom()
	moved := t.panes.moveFocus(req.Direction)
	var events []schema.TabEvent
	if moved {
		if event, changed := s.deriveTitleLocked(windowID, state, t); changed {
			events = append(events, event)
		}
	}
	pane := t.panes.focused
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	s.emitTabEvents(events)
	return schema.MoveFocusResponse{Pane: pane, Moved: moved}, nil
}

// ResizePane moves the separator facing the given direction by the
// configured step. Resizing unzooms first.
func (s *service) ResizePane(ctx context.Context, req schema.ResizePaneRequest) (schema.ResizePaneResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.ResizePaneResponse{}, err
	}

	s.mu.Lock()
	state := s.getOrCreateWindowLocked(windowID)
	t, err := s.focusedTabLocked(state)
	if err != nil {
		s.mu.Unlock()
		return schema.ResizePaneResponse{}, err
	}
	if t.panes.focusedLeaf() == nil {
		s.mu.Unlock()
		return schema.ResizePaneResponse{}, schema.ErrNoFocusedPane
	}
	t.panes.clearZoom()
	resized := t.panes.resize(req.Direction, s.cfg.ResizeStep, s.cfg.MinSplitRatio)
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	return schema.ResizePaneResponse{Resized: resized}, nil
}

// SetPaneTitle records a content title change reported by the hosting layer
// and re-derives the tab title when the focused pane changed.
func (s *service) SetPaneTitle(ctx context.Context, req schema.SetPaneTitleRequest) (schema.SetPaneTitleResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.SetPaneTitleResponse{}, err
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
		return schema.SetPaneTitleResponse{}, schema.ErrTabNotFound
	}
	paneID := req.PaneID
	if paneID == "" {
		paneID = t.panes.focused
	}
	if !t.panes.setTitle(paneID, req.Title) {
		s.mu.Unlock()
		return schema.SetPaneTitleResponse{}, schema.ErrPaneNotFound
	}
	var events []schema.TabEvent
	if event, changed := s.deriveTitleLocked(windowID, state, t); changed {
		events = append(events, event)
	}
	snapshot := s.snapshotTabLocked(state, t)
	s.persistWindowLocked(windowID, state)
	s.mu.Unlock()

	s.emitTabEvents(events)
	return schema.SetPaneTitleResponse{Tab: snapshot}, nil
}

// GetPaneTree returns a snapshot of a tab's split tree.
func (s *service) GetPaneTree(ctx context.Context, req schema.GetPaneTreeRequest) (schema.GetPaneTreeResponse, error) {
	windowID, err := normalizeWindowID(req.WindowID)
	if err != nil {
		return schema.GetPaneTreeResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.getOrCreateWindowLocked(windowID)
	id := req.TabID
	if id == "" {
		id = state.focused
	}
	t := state.tabs[id]
	if t == nil {
		return schema.GetPaneTreeResponse{}, schema.ErrTabNotFound
	}
	if t.panes.root == "" {
		return schema.GetPaneTreeResponse{}, schema.ErrPaneNotFound
	}
	return schema.GetPaneTreeResponse{Root: t.panes.snapshot(t.panes.root)}, nil
}
