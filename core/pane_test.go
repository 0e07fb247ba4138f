package core

import (
	"testing"

	"pkt.systems/tabdeck/schema"
)

func newTestTree() *paneTree {
	return newPaneTree("default", "shell", nil)
}

func TestSplitFocusesNewLeaf(t *testing.T) {
	tree := newTestTree()
	first := tree.focused

	id, err := tree.split(schema.SplitVertical, 0.5, "default", "right", nil)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if tree.focused != id {
		t.Fatalf("expected new leaf focused")
	}
	if tree.leafCount() != 2 {
		t.Fatalf("expected 2 leaves, got %d", tree.leafCount())
	}
	root := tree.node(tree.root)
	if root.isLeaf() || root.first == "" || root.second != id {
		t.Fatalf("unexpected root shape: %+v", root)
	}
	if tree.node(first).parent != tree.root {
		t.Fatalf("expected original leaf reparented under root")
	}
}

func TestSplitRatioIsNewPaneShare(t *testing.T) {
	tree := newTestTree()
	if _, err := tree.split(schema.SplitVertical, 0.3, "default", "", nil); err != nil {
		t.Fatalf("split: %v", err)
	}
	root := tree.node(tree.root)
	// The surviving first child keeps 1 - requested share.
	if root.ratio != 0.7 {
		t.Fatalf("expected first-child ratio 0.7, got %v", root.ratio)
	}
}

func TestCloseLeafCollapsesIntoSibling(t *testing.T) {
	tree := newTestTree()
	original := tree.focused
	added, err := tree.split(schema.SplitVertical, 0.5, "default", "", nil)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	_, empty, err := tree.closeLeaf(added)
	if err != nil {
		t.Fatalf("close leaf: %v", err)
	}
	if empty {
		t.Fatalf("tree should not be empty")
	}
	if tree.root != original || tree.focused != original {
		t.Fatalf("expected sibling to become root and take focus")
	}
	if len(tree.nodes) != 1 {
		t.Fatalf("expected branch node removed, have %d nodes", len(tree.nodes))
	}
}

func TestCloseLastLeafEmptiesTree(t *testing.T) {
	tree := newTestTree()
	_, empty, err := tree.closeLeaf(tree.focused)
	if err != nil {
		t.Fatalf("close leaf: %v", err)
	}
	if !empty {
		t.Fatalf("expected empty tree")
	}
	if tree.root != "" || tree.focused != "" {
		t.Fatalf("expected cleared tree state")
	}
}

func TestToggleZoomLonePaneStaysUnzoomed(t *testing.T) {
	tree := newTestTree()
	if tree.toggleZoom() {
		t.Fatalf("lone pane must not zoom")
	}
	if tree.zoomed != "" {
		t.Fatalf("expected no zoom state")
	}
}

func TestToggleZoomRoundTrip(t *testing.T) {
	tree := newTestTree()
	if _, err := tree.split(schema.SplitVertical, 0.5, "default", "", nil); err != nil {
		t.Fatalf("split: %v", err)
	}
	if !tree.toggleZoom() {
		t.Fatalf("expected zoom on")
	}
	if tree.zoomed != tree.focused {
		t.Fatalf("expected focused leaf zoomed")
	}
	if tree.toggleZoom() {
		t.Fatalf("expected zoom off")
	}
	if tree.zoomed != "" {
		t.Fatalf("expected zoom cleared")
	}
}

func TestSplitClearsZoom(t *testing.T) {
	tree := newTestTree()
	if _, err := tree.split(schema.SplitVertical, 0.5, "default", "", nil); err != nil {
		t.Fatalf("split: %v", err)
	}
	tree.toggleZoom()
	if _, err := tree.split(schema.SplitHorizontal, 0.5, "default", "", nil); err != nil {
		t.Fatalf("split: %v", err)
	}
	if tree.zoomed != "" {
		t.Fatalf("structural change must clear zoom")
	}
}

func TestMoveFocusAcrossVerticalSplit(t *testing.T) {
	tree := newTestTree()
	left := tree.focused
	right, err := tree.split(schema.SplitVertical, 0.5, "default", "", nil)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	if !tree.moveFocus(schema.FocusLeft) {
		t.Fatalf("expected focus to move left")
	}
	if tree.focused != left {
		t.Fatalf("expected left pane focused, got %v", tree.focused)
	}
	if !tree.moveFocus(schema.FocusRight) {
		t.Fatalf("expected focus to move right")
	}
	if tree.focused != right {
		t.Fatalf("expected right pane focused, got %v", tree.focused)
	}
	if tree.moveFocus(schema.FocusRight) {
		t.Fatalf("no neighbor beyond the right edge")
	}
	if tree.moveFocus(schema.FocusUp) {
		t.Fatalf("no neighbor above a side-by-side split")
	}
}

func TestMoveFocusPrefersLargestSharedEdge(t *testing.T) {
	// Left pane beside a right column split into two rows; moving right from
	// the left pane lands on the row with the larger shared edge.
	tree := newTestTree()
	left := tree.focused
	if _, err := tree.split(schema.SplitVertical, 0.5, "default", "", nil); err != nil {
		t.Fatalf("split: %v", err)
	}
	topRight := tree.focused
	bottomRight, err := tree.split(schema.SplitHorizontal, 0.3, "default", "", nil)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	_ = bottomRight

	tree.focused = left
	if !tree.moveFocus(schema.FocusRight) {
		t.Fatalf("expected focus to move right")
	}
	// Top right holds 70% of the column height, bottom right 30%.
	if tree.focused != topRight {
		t.Fatalf("expected larger neighbor focused, got %v", tree.focused)
	}
}

func TestResizeMovesSeparatorAndClamps(t *testing.T) {
	tree := newTestTree()
	if _, err := tree.split(schema.SplitVertical, 0.5, "default", "", nil); err != nil {
		t.Fatalf("split: %v", err)
	}
	root := tree.node(tree.root)

	if !tree.resize(schema.FocusRight, 0.05, 0.1) {
		t.Fatalf("expected resize to apply")
	}
	if root.ratio != 0.55 {
		t.Fatalf("expected ratio 0.55, got %v", root.ratio)
	}
	for range 20 {
		tree.resize(schema.FocusRight, 0.05, 0.1)
	}
	if root.ratio != 0.9 {
		t.Fatalf("expected ratio clamped at 0.9, got %v", root.ratio)
	}
	if tree.resize(schema.FocusUp, 0.05, 0.1) {
		t.Fatalf("no horizontal separator to move")
	}
}

func TestAutoDirectionFollowsAspect(t *testing.T) {
	tree := newTestTree()
	// The unit square root is as wide as tall; ties split vertically.
	if got := tree.autoDirection(tree.focused); got != schema.SplitVertical {
		t.Fatalf("expected vertical, got %v", got)
	}
	if _, err := tree.split(schema.SplitVertical, 0.5, "default", "", nil); err != nil {
		t.Fatalf("split: %v", err)
	}
	// Each half is now taller than wide, so the next auto split is horizontal.
	if got := tree.autoDirection(tree.focused); got != schema.SplitHorizontal {
		t.Fatalf("expected horizontal, got %v", got)
	}
}

func TestLayoutRectsPartitionUnitSquare(t *testing.T) {
	tree := newTestTree()
	if _, err := tree.split(schema.SplitVertical, 0.25, "default", "", nil); err != nil {
		t.Fatalf("split: %v", err)
	}
	if _, err := tree.split(schema.SplitHorizontal, 0.5, "default", "", nil); err != nil {
		t.Fatalf("split: %v", err)
	}
	rects := tree.layoutRects()
	total := 0.0
	for _, leaf := range tree.leaves() {
		r := rects[leaf.id]
		total += r.w * r.h
	}
	if total < 0.999 || total > 1.001 {
		t.Fatalf("leaf areas should cover the unit square, got %v", total)
	}
}
