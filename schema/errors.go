package schema

import "errors"

var (
	// ErrInvalidWindow indicates an invalid window identifier.
	ErrInvalidWindow = errors.New("invalid window")
	// ErrTabNotFound indicates a requested tab could not be found.
	ErrTabNotFound = errors.New("tab not found")
	// ErrPaneNotFound indicates a requested pane could not be found.
	ErrPaneNotFound = errors.New("pane not found")
	// ErrNoFocusedPane indicates the focused tab has no focused leaf pane.
	ErrNoFocusedPane = errors.New("no focused pane")
	// ErrSourceUnavailable indicates a content profile no longer resolves.
	ErrSourceUnavailable = errors.New("content source unavailable")
	// ErrIndexOutOfRange indicates a tab index outside the ordered list.
	ErrIndexOutOfRange = errors.New("tab index out of range")
	// ErrTabReadOnly indicates a close was refused on a read-only tab.
	ErrTabReadOnly = errors.New("tab is read-only")
	// ErrNoSplit indicates a split request with no direction.
	ErrNoSplit = errors.New("no split direction")
)
