package schema

// WindowID identifies a workspace window. Each window owns its own tab
// collection; operations on different windows are independent.
type WindowID string

// TabID identifies a tab within a window.
type TabID string

// PaneID identifies a pane within a tab's split tree.
type PaneID string

// ProfileID identifies a content source descriptor. A profile may disappear
// from configuration while tabs created from it are still open; operations
// against such a stale profile silently no-op.
type ProfileID string

// TabTitle is the user-facing title of a tab, derived from its focused pane.
type TabTitle string

// SplitDirection describes how a pane is divided into two children.
type SplitDirection string

const (
	// SplitNone marks a leaf pane.
	SplitNone SplitDirection = "none"
	// SplitHorizontal stacks children top/bottom.
	SplitHorizontal SplitDirection = "horizontal"
	// SplitVertical places children side by side.
	SplitVertical SplitDirection = "vertical"
	// SplitAutomatic picks the direction from the pane's aspect ratio.
	SplitAutomatic SplitDirection = "automatic"
)

// FocusDirection is a direction for pane focus movement and resizing.
type FocusDirection string

const (
	// FocusLeft moves toward the left edge.
	FocusLeft FocusDirection = "left"
	// FocusRight moves toward the right edge.
	FocusRight FocusDirection = "right"
	// FocusUp moves toward the top edge.
	FocusUp FocusDirection = "up"
	// FocusDown moves toward the bottom edge.
	FocusDown FocusDirection = "down"
)

// SwitchMode selects the ordering used by adjacent-tab navigation and by the
// replacement policy when the focused tab closes.
type SwitchMode string

const (
	// SwitchInOrder navigates the ordered tab list with wraparound.
	SwitchInOrder SwitchMode = "in-order"
	// SwitchMostRecentlyUsed navigates tabs by recency of focus.
	SwitchMostRecentlyUsed SwitchMode = "mru"
	// SwitchDisabled behaves like SwitchInOrder.
	SwitchDisabled SwitchMode = "disabled"
)
