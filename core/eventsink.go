package core

import "pkt.systems/tabdeck/schema"

// EventSink receives tab and workspace events from the core service.
type EventSink interface {
	OnTabEvent(event schema.TabEvent)
	OnWorkspaceEvent(event schema.WorkspaceEvent)
}
