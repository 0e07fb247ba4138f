package core

import "pkt.systems/pslog"

// ServiceDeps captures optional dependencies for the core service.
type ServiceDeps struct {
	ContentFactory ContentFactory
	EventSink      EventSink
	Logger         pslog.Logger
}
