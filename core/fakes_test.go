package core

import (
	"context"
	"sync"
	"testing"

	"pkt.systems/tabdeck/schema"
)

type fakeContent struct {
	profile schema.ProfileID
	title   string
	mu      sync.Mutex
	closed  bool
}

func (c *fakeContent) Title() string {
	return c.title
}

func (c *fakeContent) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeContent) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type fakeFactory struct {
	mu      sync.Mutex
	removed map[schema.ProfileID]bool
	titles  map[schema.ProfileID]string
	created []*fakeContent
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		removed: make(map[schema.ProfileID]bool),
		titles:  make(map[schema.ProfileID]string),
	}
}

func (f *fakeFactory) Create(ctx context.Context, profile schema.ProfileID) (Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removed[profile] {
		return nil, schema.ErrSourceUnavailable
	}
	title := f.titles[profile]
	if title == "" {
		title = string(profile)
	}
	content := &fakeContent{profile: profile, title: title}
	f.created = append(f.created, content)
	return content, nil
}

func (f *fakeFactory) remove(profile schema.ProfileID) {
	f.mu.Lock()
	f.removed[profile] = true
	f.mu.Unlock()
}

type recordingSink struct {
	mu         sync.Mutex
	tabs       []schema.TabEvent
	workspaces []schema.WorkspaceEvent
}

func (r *recordingSink) OnTabEvent(event schema.TabEvent) {
	r.mu.Lock()
	r.tabs = append(r.tabs, event)
	r.mu.Unlock()
}

func (r *recordingSink) OnWorkspaceEvent(event schema.WorkspaceEvent) {
	r.mu.Lock()
	r.workspaces = append(r.workspaces, event)
	r.mu.Unlock()
}

func (r *recordingSink) tabEvents(kind schema.TabEventType) []schema.TabEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []schema.TabEvent
	for _, event := range r.tabs {
		if event.Type == kind {
			out = append(out, event)
		}
	}
	return out
}

func (r *recordingSink) workspaceEvents() []schema.WorkspaceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]schema.WorkspaceEvent(nil), r.workspaces...)
}

func newTestService(t *testing.T, cfg schema.ServiceConfig) (Service, *fakeFactory, *recordingSink) {
	t.Helper()
	factory := newFakeFactory()
	sink := &recordingSink{}
	svc, err := NewService(cfg, ServiceDeps{ContentFactory: factory, EventSink: sink})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, factory, sink
}

const testWindow = schema.WindowID("main")

func openTabs(t *testing.T, svc Service, profiles ...schema.ProfileID) []schema.TabID {
	t.Helper()
	ids := make([]schema.TabID, 0, len(profiles))
	for _, profile := range profiles {
		resp, err := svc.NewTab(context.Background(), schema.NewTabRequest{
			WindowID: testWindow,
			Profile:  profile,
		})
		if err != nil {
			t.Fatalf("new tab %s: %v", profile, err)
		}
		ids = append(ids, resp.Tab.ID)
	}
	return ids
}

func listWorkspace(t *testing.T, svc Service) schema.WorkspaceSnapshot {
	t.Helper()
	resp, err := svc.ListTabs(context.Background(), schema.ListTabsRequest{WindowID: testWindow})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	return resp.Workspace
}

func orderedIDs(workspace schema.WorkspaceSnapshot) []schema.TabID {
	ids := make([]schema.TabID, 0, len(workspace.Tabs))
	for _, tab := range workspace.Tabs {
		ids = append(ids, tab.ID)
	}
	return ids
}

func sameIDs(a, b []schema.TabID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameIDSets(a, b []schema.TabID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[schema.TabID]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
