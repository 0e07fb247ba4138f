package schema

// PaneSnapshot is a transport-friendly view of one node in a tab's split tree.
// Leaves carry a profile and title; internal nodes carry a direction, ratio,
// and exactly two children.
type PaneSnapshot struct {
	ID        PaneID         `json:"id"`
	Direction SplitDirection `json:"direction"`
	Ratio     float64        `json:"ratio,omitempty"`
	Profile   ProfileID      `json:"profile,omitempty"`
	Title     string         `json:"title,omitempty"`
	Focused   bool           `json:"focused,omitempty"`
	Zoomed    bool           `json:"zoomed,omitempty"`
	Children  []PaneSnapshot `json:"children,omitempty"`
}

// LeafCount returns the number of leaf panes under this snapshot.
func (p PaneSnapshot) LeafCount() int {
	if len(p.Children) == 0 {
		return 1
	}
	count := 0
	for _, child := range p.Children {
		count += child.LeafCount()
	}
	return count
}

// TabSnapshot is a transport-friendly view of a tab.
type TabSnapshot struct {
	ID       TabID    `json:"id"`
	Title    TabTitle `json:"title"`
	Index    int      `json:"index"`
	ReadOnly bool     `json:"read_only,omitempty"`
	Focused  bool     `json:"focused,omitempty"`
	Zoomed   bool     `json:"zoomed,omitempty"`
	Panes    int      `json:"panes"`
}

// WorkspaceSnapshot captures a window's full tab state: the ordered list, the
// MRU list (front = most recently focused), and the focused tab.
type WorkspaceSnapshot struct {
	Tabs       []TabSnapshot `json:"tabs"`
	MRUOrder   []TabID       `json:"mru_order"`
	FocusedTab TabID         `json:"focused_tab,omitempty"`
}
