package core

import (
	"context"

	"pkt.systems/tabdeck/internal/persist"
	"pkt.systems/tabdeck/schema"
)

// persistWindowLocked writes the window's state through the store, when one
// is configured. Persistence failures are logged and otherwise ignored.
func (s *service) persistWindowLocked(windowID schema.WindowID, state *workspaceState) {
	if s.store == nil {
		return
	}
	snapshot := persist.WindowSnapshot{
		Order:   append([]schema.TabID(nil), state.order...),
		MRU:     append([]schema.TabID(nil), state.mru...),
		Focused: state.focused,
		Tabs:    make([]persist.TabSnapshot, 0, len(state.order)),
	}
	for _, id := range state.order {
		t := state.tabs[id]
		if t == nil || t.panes.root == "" {
			continue
		}
		snapshot.Tabs = append(snapshot.Tabs, persist.TabSnapshot{
			ID:       t.ID,
			Title:    t.Title,
			ReadOnly: t.ReadOnly,
			Layout:   layoutFromTree(t.panes, t.panes.root),
		})
	}
	if err := s.store.Save(windowID, snapshot); err != nil {
		s.logger.Warn("window state save failed", "window", windowID, "err", err)
	}
}

func layoutFromTree(t *paneTree, id schema.PaneID) persist.PaneLayout {
	n := t.node(id)
	if n.isLeaf() {
		return persist.PaneLayout{
			Direction: schema.SplitNone,
			Profile:   n.profile,
			Title:     n.title,
			Focused:   t.focused == id,
		}
	}
	return persist.PaneLayout{
		Direction: n.direction,
		Ratio:     n.ratio,
		Children: []persist.PaneLayout{
			layoutFromTree(t, n.first),
			layoutFromTree(t, n.second),
		},
	}
}

// loadWindowStateLocked restores a window's state from the store. Tabs whose
// content cannot be reconstructed are dropped; a branch with one restorable
// child collapses into that child.
func (s *service) loadWindowStateLocked(windowID schema.WindowID) *workspaceState {
	state := &workspaceState{tabs: make(map[schema.TabID]*tab)}
	if s.store == nil {
		return state
	}
	snapshot, ok, err := s.store.Load(windowID)
	if err != nil || !ok {
		return state
	}
	byID := make(map[schema.TabID]persist.TabSnapshot, len(snapshot.Tabs))
	for _, ts := range snapshot.Tabs {
		byID[ts.ID] = ts
	}
	for _, id := range snapshot.Order {
		ts, found := byID[id]
		if !found {
			continue
		}
		tree := s.rebuildTree(ts.Layout)
		if tree == nil {
			s.logger.Warn("tab restore skipped", "window", windowID, "tab", id)
			continue
		}
		t := &tab{ID: ts.ID, Title: ts.Title, ReadOnly: ts.ReadOnly, panes: tree}
		t.deriveTitle(s.cfg.TabTitleMax, s.cfg.TabTitleSuffix)
		state.tabs[t.ID] = t
		state.order = append(state.order, t.ID)
	}
	for _, id := range snapshot.MRU {
		if state.tabs[id] != nil && indexOfTab(state.mru, id) < 0 {
			state.mru = append(state.mru, id)
		}
	}
	for _, id := range state.order {
		if indexOfTab(state.mru, id) < 0 {
			state.mru = append(state.mru, id)
		}
	}
	if state.tabs[snapshot.Focused] != nil {
		state.focused = snapshot.Focused
	} else if len(state.mru) > 0 {
		state.focused = state.mru[0]
	}
	if len(state.order) > 0 {
		s.logger.Info("window state restored", "window", windowID, "tabs", len(state.order))
	}
	return state
}

func (s *service) rebuildTree(layout persist.PaneLayout) *paneTree {
	t := &paneTree{nodes: make(map[schema.PaneID]*paneNode)}
	root, focused, ok := s.rebuildNode(t, "", layout)
	if !ok {
		return nil
	}
	t.root = root
	if focused == "" {
		focused = t.firstLeaf(root)
	}
	t.focused = focused
	return t
}

func (s *service) rebuildNode(t *paneTree, parent schema.PaneID, layout persist.PaneLayout) (schema.PaneID, schema.PaneID, bool) {
	if layout.Direction == schema.SplitNone || len(layout.Children) != 2 {
		var content Content
		if s.factory != nil {
			created, err := s.factory.Create(context.Background(), layout.Profile)
			if err != nil {
				return "", "", false
			}
			content = created
		}
		leaf := &paneNode{
			id:        schema.PaneID(newID()),
			parent:    parent,
			direction: schema.SplitNone,
			profile:   layout.Profile,
			title:     layout.Title,
			content:   content,
		}
		t.nodes[leaf.id] = leaf
		var focused schema.PaneID
		if layout.Focused {
			focused = leaf.id
		}
		return leaf.id, focused, true
	}

	branch := &paneNode{
		id:        schema.PaneID(newID()),
		parent:    parent,
		direction: layout.Direction,
		ratio:     layout.Ratio,
	}
	if branch.ratio <= 0 || branch.ratio >= 1 {
		branch.ratio = 0.5
	}
	firstID, firstFocus, firstOK := s.rebuildNode(t, branch.id, layout.Children[0])
	secondID, secondFocus, secondOK := s.rebuildNode(t, branch.id, layout.Children[1])
	switch {
	case firstOK && secondOK:
		branch.first = firstID
		branch.second = secondID
		t.nodes[branch.id] = branch
		focused := firstFocus
		if focused == "" {
			focused = secondFocus
		}
		return branch.id, focused, true
	case firstOK:
		t.node(firstID).parent = parent
		return firstID, firstFocus, true
	case secondOK:
		t.node(secondID).parent = parent
		return secondID, secondFocus, true
	default:
		return "", "", false
	}
}
