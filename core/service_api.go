package core

import (
	"context"

	"pkt.systems/tabdeck/schema"
)

// Service is the transport-agnostic API for managing a window's tabs and
// panes. All operations are synchronous; failures listed in schema's error
// taxonomy leave state untouched.
type Service interface {
	NewTab(ctx context.Context, req schema.NewTabRequest) (schema.NewTabResponse, error)
	CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error)
	DuplicateTab(ctx context.Context, req schema.DuplicateTabRequest) (schema.DuplicateTabResponse, error)
	SelectTab(ctx context.Context, req schema.SelectTabRequest) (schema.SelectTabResponse, error)
	SelectAdjacent(ctx context.Context, req schema.SelectAdjacentRequest) (schema.SelectAdjacentResponse, error)
	CommitSelection(ctx context.Context, req schema.CommitSelectionRequest) (schema.CommitSelectionResponse, error)
	MoveTab(ctx context.Context, req schema.MoveTabRequest) (schema.MoveTabResponse, error)
	ListTabs(ctx context.Context, req schema.ListTabsRequest) (schema.ListTabsResponse, error)

	SplitPane(ctx context.Context, req schema.SplitPaneRequest) (schema.SplitPaneResponse, error)
	ClosePane(ctx context.Context, req schema.ClosePaneRequest) (schema.ClosePaneResponse, error)
	ToggleZoom(ctx context.Context, req schema.ToggleZoomRequest) (schema.ToggleZoomResponse, error)
	MoveFocus(ctx context.Context, req schema.MoveFocusRequest) (schema.MoveFocusResponse, error)
	ResizePane(ctx context.Context, req schema.ResizePaneRequest) (schema.ResizePaneResponse, error)
	SetPaneTitle(ctx context.Context, req schema.SetPaneTitleRequest) (schema.SetPaneTitleResponse, error)
	GetPaneTree(ctx context.Context, req schema.GetPaneTreeRequest) (schema.GetPaneTreeResponse, error)
}
