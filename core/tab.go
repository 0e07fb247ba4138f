package core

import (
	"pkt.systems/tabdeck/schema"
)

// tab owns one pane tree and the state derived from it.
type tab struct {
	ID       schema.TabID
	Title    schema.TabTitle
	ReadOnly bool
	panes    *paneTree
}

// Snapshot returns a transport-friendly view of the tab.
func (t *tab) Snapshot(index int, focused bool) schema.TabSnapshot {
	return schema.TabSnapshot{
		ID:       t.ID,
		Title:    t.Title,
		Index:    index,
		ReadOnly: t.ReadOnly,
		Focused:  focused,
		Zoomed:   t.panes != nil && t.panes.zoomed != "",
		Panes:    t.panes.leafCount(),
	}
}

// deriveTitle recomputes the tab title from the focused pane, truncating to
// max with suffix. Returns true when the title changed.
func (t *tab) deriveTitle(max int, suffix string) bool {
	title := ""
	if leaf := t.panes.focusedLeaf(); leaf != nil {
		title = leaf.title
		if title == "" {
			title = string(leaf.profile)
		}
	}
	next := schema.TabTitle(truncateTitle(title, max, suffix))
	if next == t.Title {
		return false
	}
	t.Title = next
	return true
}

func truncateTitle(title string, max int, suffix string) string {
	if max <= 0 {
		return title
	}
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	cut := max - len([]rune(suffix))
	if cut < 1 {
		return string(runes[:max])
	}
	return string(runes[:cut]) + suffix
}
