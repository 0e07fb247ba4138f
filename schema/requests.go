package schema

// Tab lifecycle.

// NewTabRequest describes a request to open a tab.
type NewTabRequest struct {
	WindowID WindowID
	Profile  ProfileID
	Title    TabTitle
	ReadOnly bool
}

// NewTabResponse reports the created tab.
type NewTabResponse struct {
	Tab TabSnapshot
}

// CloseTabRequest describes a request to close a tab. Force bypasses the
// read-only guard after the UI layer has confirmed with the user.
type CloseTabRequest struct {
	WindowID WindowID
	TabID    TabID
	Force    bool
}

// CloseTabResponse reports the closed tab and how many remain.
type CloseTabResponse struct {
	Tab       TabSnapshot
	Remaining int
}

// DuplicateTabRequest describes a request to duplicate a tab from its
// focused pane's profile.
type DuplicateTabRequest struct {
	WindowID WindowID
	TabID    TabID
}

// DuplicateTabResponse reports the new tab.
type DuplicateTabResponse struct {
	Tab TabSnapshot
}

// Selection.

// SelectTabRequest describes a request to focus the tab at an ordered-list
// index.
type SelectTabRequest struct {
	WindowID WindowID
	Index    int
}

// SelectTabResponse reports the newly focused tab.
type SelectTabResponse struct {
	Tab TabSnapshot
}

// SelectAdjacentRequest describes a request to advance focus. Mode overrides
// the configured switch mode when non-empty.
type SelectAdjacentRequest struct {
	WindowID  WindowID
	MoveRight bool
	Mode      SwitchMode
}

// SelectAdjacentResponse reports the newly focused tab. Transient is true
// when the move was an MRU-switcher step whose promotion is still pending.
type SelectAdjacentResponse struct {
	Tab       TabSnapshot
	Transient bool
}

// CommitSelectionRequest describes a request to commit a pending MRU
// promotion of the focused tab.
type CommitSelectionRequest struct {
	WindowID WindowID
}

// CommitSelectionResponse reports the committed tab.
type CommitSelectionResponse struct {
	Tab TabSnapshot
}

// MoveTabRequest describes a request to relocate a tab in the ordered list.
// ToIndex is clamped to the list bounds.
type MoveTabRequest struct {
	WindowID  WindowID
	FromIndex int
	ToIndex   int
}

// MoveTabResponse reports the moved tab at its new index.
type MoveTabResponse struct {
	Tab TabSnapshot
}

// ListTabsRequest describes a request for a window's workspace snapshot.
type ListTabsRequest struct {
	WindowID WindowID
}

// ListTabsResponse reports the ordered list, MRU order, and focus.
type ListTabsResponse struct {
	Workspace WorkspaceSnapshot
}

// Pane operations. All act on the window's focused tab.

// SplitPaneRequest describes a request to split the focused pane. When
// Duplicate is set the new pane reuses the focused pane's profile and
// Profile is ignored.
type SplitPaneRequest struct {
	WindowID  WindowID
	Direction SplitDirection
	Ratio     float64
	Profile   ProfileID
	Duplicate bool
}

// SplitPaneResponse reports the created pane.
type SplitPaneResponse struct {
	Pane PaneID
	Tab  TabSnapshot
}

// ClosePaneRequest describes a request to close the focused pane.
type ClosePaneRequest struct {
	WindowID WindowID
}

// ClosePaneResponse reports the updated tab. TabClosed is set when the last
// pane closed and the tab was removed.
type ClosePaneResponse struct {
	Tab       TabSnapshot
	TabClosed bool
}

// ToggleZoomRequest describes a request to toggle zoom on the focused pane.
type ToggleZoomRequest struct {
	WindowID WindowID
}

// ToggleZoomResponse reports the resulting zoom state.
type ToggleZoomResponse struct {
	Tab    TabSnapshot
	Zoomed bool
}

// MoveFocusRequest describes a request to move pane focus directionally.
type MoveFocusRequest struct {
	WindowID  WindowID
	Direction FocusDirection
}

// MoveFocusResponse reports the focused pane. Moved is false when no
// neighbor exists in the requested direction.
type MoveFocusResponse struct {
	Pane  PaneID
	Moved bool
}

// ResizePaneRequest describes a request to move the separator facing the
// given direction.
type ResizePaneRequest struct {
	WindowID  WindowID
	Direction FocusDirection
}

// ResizePaneResponse reports whether any separator moved.
type ResizePaneResponse struct {
	Resized bool
}

// SetPaneTitleRequest reports a content title change from the hosting layer.
type SetPaneTitleRequest struct {
	WindowID WindowID
	TabID    TabID
	PaneID   PaneID
	Title    string
}

// SetPaneTitleResponse reports the tab with its derived title.
type SetPaneTitleResponse struct {
	Tab TabSnapshot
}

// GetPaneTreeRequest describes a request for a tab's pane tree snapshot.
type GetPaneTreeRequest struct {
	WindowID WindowID
	TabID    TabID
}

// GetPaneTreeResponse reports the tree rooted at the tab's root pane.
type GetPaneTreeResponse struct {
	Root PaneSnapshot
}
