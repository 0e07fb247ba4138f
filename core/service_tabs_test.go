package core

import (
	"context"
	"errors"
	"testing"

	"pkt.systems/tabdeck/schema"
)

func TestNewTabAppendsOrderAndPrependsMRU(t *testing.T) {
	svc, _, sink := newTestService(t, schema.ServiceConfig{})
	ids := openTabs(t, svc, "a", "b", "c", "d")

	workspace := listWorkspace(t, svc)
	if !sameIDs(orderedIDs(workspace), ids) {
		t.Fatalf("unexpected order: %v", orderedIDs(workspace))
	}
	wantMRU := []schema.TabID{ids[3], ids[2], ids[1], ids[0]}
	if !sameIDs(workspace.MRUOrder, wantMRU) {
		t.Fatalf("expected MRU %v, got %v", wantMRU, workspace.MRUOrder)
	}
	if workspace.FocusedTab != ids[0] {
		t.Fatalf("expected first tab focused, got %v", workspace.FocusedTab)
	}
	if got := len(sink.tabEvents(schema.TabEventCreated)); got != 4 {
		t.Fatalf("expected 4 created events, got %d", got)
	}
}

func TestOrderAndMRUHoldSameSet(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	ids := openTabs(t, svc, "a", "b", "c", "d", "e")
	ctx := context.Background()

	steps := []func() error{
		func() error {
			_, err := svc.SelectTab(ctx, schema.SelectTabRequest{WindowID: testWindow, Index: 3})
			return err
		},
		func() error {
			_, err := svc.CloseTab(ctx, schema.CloseTabRequest{WindowID: testWindow, TabID: ids[1]})
			return err
		},
		func() error {
			_, err := svc.MoveTab(ctx, schema.MoveTabRequest{WindowID: testWindow, FromIndex: 0, ToIndex: 2})
			return err
		},
		func() error {
			_, err := svc.CloseTab(ctx, schema.CloseTabRequest{WindowID: testWindow})
			return err
		},
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		workspace := listWorkspace(t, svc)
		if !sameIDSets(orderedIDs(workspace), workspace.MRUOrder) {
			t.Fatalf("step %d: order %v and MRU %v diverged", i, orderedIDs(workspace), workspace.MRUOrder)
		}
	}
}

func TestSelectTabPromotesMRUFront(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	ids := openTabs(t, svc, "a", "b", "c", "d")

	if _, err := svc.SelectTab(context.Background(), schema.SelectTabRequest{WindowID: testWindow, Index: 1}); err != nil {
		t.Fatalf("select: %v", err)
	}
	workspace := listWorkspace(t, svc)
	wantMRU := []schema.TabID{ids[1], ids[3], ids[2], ids[0]}
	if !sameIDs(workspace.MRUOrder, wantMRU) {
		t.Fatalf("expected MRU %v, got %v", wantMRU, workspace.MRUOrder)
	}
	if workspace.FocusedTab != ids[1] {
		t.Fatalf("expected tab B focused, got %v", workspace.FocusedTab)
	}
}

func TestSelectTabOutOfRangeLeavesStateUntouched(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	ids := openTabs(t, svc, "a", "b")

	before := listWorkspace(t, svc)
	for _, index := range []int{-1, 2, 99} {
		_, err := svc.SelectTab(context.Background(), schema.SelectTabRequest{WindowID: testWindow, Index: index})
		if !errors.Is(err, schema.ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
	after := listWorkspace(t, svc)
	if !sameIDs(after.MRUOrder, before.MRUOrder) || after.FocusedTab != before.FocusedTab {
		t.Fatalf("state changed on failed select: %+v", after)
	}
	if after.FocusedTab != ids[0] {
		t.Fatalf("expected first tab focused, got %v", after.FocusedTab)
	}
}

func TestCloseFocusedTabInOrderSelectsLeftNeighbor(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	ids := openTabs(t, svc, "a", "b", "c", "d")
	ctx := context.Background()

	if _, err := svc.SelectTab(ctx, schema.SelectTabRequest{WindowID: testWindow, Index: 2}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := svc.CloseTab(ctx, schema.CloseTabRequest{WindowID: testWindow, TabID: ids[2]}); err != nil {
		t.Fatalf("close: %v", err)
	}
	workspace := listWorkspace(t, svc)
	if workspace.FocusedTab != ids[1] {
		t.Fatalf("expected left neighbor focused, got %v", workspace.FocusedTab)
	}

	// Closing the focused tab at index 0 clamps to the new index 0.
	if _, err := svc.SelectTab(ctx, schema.SelectTabRequest{WindowID: testWindow, Index: 0}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := svc.CloseTab(ctx, schema.CloseTabRequest{WindowID: testWindow, TabID: ids[0]}); err != nil {
		t.Fatalf("close: %v", err)
	}
	workspace = listWorkspace(t, svc)
	if workspace.FocusedTab != ids[1] {
		t.Fatalf("expected new index 0 focused, got %v", workspace.FocusedTab)
	}
}

func TestCloseFocusedTabMRUSelectsMostRecentSurvivor(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{SwitchMode: schema.SwitchMostRecentlyUsed})
	ids := openTabs(t, svc, "a", "b", "c", "d")
	ctx := context.Background()

	if _, err := svc.SelectTab(ctx, schema.SelectTabRequest{WindowID: testWindow, Index: 0}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := svc.SelectTab(ctx, schema.SelectTabRequest{WindowID: testWindow, Index: 2}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := svc.CloseTab(ctx, schema.CloseTabRequest{WindowID: testWindow, TabID: ids[2]}); err != nil {
		t.Fatalf("close: %v", err)
	}
	workspace := listWorkspace(t, svc)
	if workspace.FocusedTab != ids[0] {
		t.Fatalf("expected most recently focused survivor, got %v", workspace.FocusedTab)
	}
}

func TestCloseUnfocusedTabKeepsFocus(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	ids := openTabs(t, svc, "a", "b", "c")

	if _, err := svc.CloseTab(context.Background(), schema.CloseTabRequest{WindowID: testWindow, TabID: ids[2]}); err != nil {
		t.Fatalf("close: %v", err)
	}
	workspace := listWorkspace(t, svc)
	if workspace.FocusedTab != ids[0] {
		t.Fatalf("expected focus unchanged, got %v", workspace.FocusedTab)
	}
}

func TestCloseLastTabEmitsAllTabsClosed(t *testing.T) {
	svc, factory, sink := newTestService(t, schema.ServiceConfig{})
	openTabs(t, svc, "a")

	resp, err := svc.CloseTab(context.Background(), schema.CloseTabRequest{WindowID: testWindow})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if resp.Remaining != 0 {
		t.Fatalf("expected no tabs remaining, got %d", resp.Remaining)
	}
	workspace := listWorkspace(t, svc)
	if len(workspace.Tabs) != 0 || workspace.FocusedTab != "" {
		t.Fatalf("expected empty workspace, got %+v", workspace)
	}
	events := sink.workspaceEvents()
	if len(events) != 1 || events[0].Type != schema.WorkspaceEventAllTabsClosed {
		t.Fatalf("expected AllTabsClosed event, got %+v", events)
	}
	if len(factory.created) != 1 || !factory.created[0].isClosed() {
		t.Fatalf("expected content closed")
	}
}

func TestCloseReadOnlyTabRequiresForce(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	ctx := context.Background()
	if _, err := svc.NewTab(ctx, schema.NewTabRequest{WindowID: testWindow, Profile: "a", ReadOnly: true}); err != nil {
		t.Fatalf("new tab: %v", err)
	}
	_, err := svc.CloseTab(ctx, schema.CloseTabRequest{WindowID: testWindow})
	if !errors.Is(err, schema.ErrTabReadOnly) {
		t.Fatalf("expected ErrTabReadOnly, got %v", err)
	}
	if len(listWorkspace(t, svc).Tabs) != 1 {
		t.Fatalf("expected tab to survive refused close")
	}
	if _, err := svc.CloseTab(ctx, schema.CloseTabRequest{WindowID: testWindow, Force: true}); err != nil {
		t.Fatalf("forced close: %v", err)
	}
}

func TestDuplicateTabUsesFocusedPaneProfile(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	openTabs(t, svc, "work")

	resp, err := svc.DuplicateTab(context.Background(), schema.DuplicateTabRequest{WindowID: testWindow})
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if resp.Tab.Title != "work" {
		t.Fatalf("expected duplicated title, got %q", resp.Tab.Title)
	}
	if len(listWorkspace(t, svc).Tabs) != 2 {
		t.Fatalf("expected two tabs")
	}
}

func TestDuplicateTabStaleProfileIsNoOp(t *testing.T) {
	svc, factory, _ := newTestService(t, schema.ServiceConfig{})
	openTabs(t, svc, "work")
	factory.remove("work")

	_, err := svc.DuplicateTab(context.Background(), schema.DuplicateTabRequest{WindowID: testWindow})
	if !errors.Is(err, schema.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if len(listWorkspace(t, svc).Tabs) != 1 {
		t.Fatalf("expected collection unchanged")
	}
}

func TestMoveTabClampsTargetAndKeepsMRU(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	ids := openTabs(t, svc, "a", "b", "c")

	before := listWorkspace(t, svc)
	resp, err := svc.MoveTab(context.Background(), schema.MoveTabRequest{WindowID: testWindow, FromIndex: 0, ToIndex: 99})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if resp.Tab.Index != 2 {
		t.Fatalf("expected clamped index 2, got %d", resp.Tab.Index)
	}
	workspace := listWorkspace(t, svc)
	want := []schema.TabID{ids[1], ids[2], ids[0]}
	if !sameIDs(orderedIDs(workspace), want) {
		t.Fatalf("expected order %v, got %v", want, orderedIDs(workspace))
	}
	if !sameIDs(workspace.MRUOrder, before.MRUOrder) {
		t.Fatalf("expected MRU untouched, got %v", workspace.MRUOrder)
	}
	if workspace.FocusedTab != before.FocusedTab {
		t.Fatalf("expected focus untouched, got %v", workspace.FocusedTab)
	}
}

func TestMoveTabInvalidFromIndex(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	openTabs(t, svc, "a", "b")

	_, err := svc.MoveTab(context.Background(), schema.MoveTabRequest{WindowID: testWindow, FromIndex: 5, ToIndex: 0})
	if !errors.Is(err, schema.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestInvalidWindowIDRejected(t *testing.T) {
	svc, _, _ := newTestService(t, schema.ServiceConfig{})
	_, err := svc.NewTab(context.Background(), schema.NewTabRequest{})
	if !errors.Is(err, schema.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}
