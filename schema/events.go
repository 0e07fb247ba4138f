package schema

// TabEventType classifies tab lifecycle events.
type TabEventType string

const (
	// TabEventCreated indicates a tab was created.
	TabEventCreated TabEventType = "created"
	// TabEventClosed indicates a tab was closed.
	TabEventClosed TabEventType = "closed"
	// TabEventSelected indicates tab focus changed.
	TabEventSelected TabEventType = "selected"
	// TabEventTitle indicates the tab's derived title changed.
	TabEventTitle TabEventType = "title"
	// TabEventZoom indicates the tab's zoom state changed.
	TabEventZoom TabEventType = "zoom"
	// TabEventMoved indicates the tab changed position in the ordered list.
	TabEventMoved TabEventType = "moved"
	// TabEventUpdated indicates the tab's pane layout changed.
	TabEventUpdated TabEventType = "updated"
)

// TabEvent reports a tab lifecycle change to the UI layer.
type TabEvent struct {
	WindowID   WindowID
	Type       TabEventType
	Tab        TabSnapshot
	FocusedTab TabID
}

// WorkspaceEventType classifies window-level events.
type WorkspaceEventType string

const (
	// WorkspaceEventAllTabsClosed indicates the last tab of a window closed.
	WorkspaceEventAllTabsClosed WorkspaceEventType = "all_tabs_closed"
)

// WorkspaceEvent reports a window-level change to the UI layer.
type WorkspaceEvent struct {
	WindowID WindowID
	Type     WorkspaceEventType
}
