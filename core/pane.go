package core

import (
	"pkt.systems/tabdeck/schema"
)

// paneNode is one node in a tab's split tree, stored in the tree's arena and
// linked to its parent by id rather than by pointer.
type paneNode struct {
	id        schema.PaneID
	parent    schema.PaneID
	direction schema.SplitDirection
	// ratio is the share of the first child, in (0,1). Meaningless on leaves.
	ratio  float64
	first  schema.PaneID
	second schema.PaneID

	// Leaf fields.
	profile schema.ProfileID
	title   string
	content Content
}

func (n *paneNode) isLeaf() bool {
	return n.direction == schema.SplitNone
}

// paneTree is the binary split tree of one tab. Exactly one leaf is focused
// at any time while the tree is non-empty; at most one leaf is zoomed.
type paneTree struct {
	nodes   map[schema.PaneID]*paneNode
	root    schema.PaneID
	focused schema.PaneID
	zoomed  schema.PaneID
}

func newPaneTree(profile schema.ProfileID, title string, content Content) *paneTree {
	leaf := &paneNode{
		id:        schema.PaneID(newID()),
		direction: schema.SplitNone,
		profile:   profile,
		title:     title,
		content:   content,
	}
	return &paneTree{
		nodes:   map[schema.PaneID]*paneNode{leaf.id: leaf},
		root:    leaf.id,
		focused: leaf.id,
	}
}

func (t *paneTree) node(id schema.PaneID) *paneNode {
	if t == nil || id == "" {
		return nil
	}
	return t.nodes[id]
}

func (t *paneTree) focusedLeaf() *paneNode {
	n := t.node(t.focused)
	if n == nil || !n.isLeaf() {
		return nil
	}
	return n
}

func (t *paneTree) leafCount() int {
	if t == nil {
		return 0
	}
	count := 0
	for _, n := range t.nodes {
		if n.isLeaf() {
			count++
		}
	}
	return count
}

// clearZoom unzooms the tree. Returns true when a pane was zoomed. Every
// structural mutation calls this first so the full tree is visible again.
func (t *paneTree) clearZoom() bool {
	if t.zoomed == "" {
		return false
	}
	t.zoomed = ""
	return true
}

// toggleZoom flips the zoom state of the focused leaf and returns the new
// state. A lone pane never zooms: there are no siblings to hide.
func (t *paneTree) toggleZoom() bool {
	if t.zoomed != "" {
		t.zoomed = ""
		return false
	}
	if t.focusedLeaf() == nil || t.leafCount() < 2 {
		return false
	}
	t.zoomed = t.focused
	return true
}

// split divides the focused leaf in two. The leaf keeps its slot as the
// first child of a new internal node; the new content becomes the second
// child and takes focus. ratio is the share given to the new pane.
func (t *paneTree) split(direction schema.SplitDirection, ratio float64, profile schema.ProfileID, title string, content Content) (schema.PaneID, error) {
	leaf := t.focusedLeaf()
	if leaf == nil {
		return "", schema.ErrNoFocusedPane
	}
	if direction == schema.SplitAutomatic {
		direction = t.autoDirection(leaf.id)
	}
	if direction != schema.SplitHorizontal && direction != schema.SplitVertical {
		return "", schema.ErrNoSplit
	}
	t.clearZoom()

	newLeaf := &paneNode{
		id:        schema.PaneID(newID()),
		direction: schema.SplitNone,
		profile:   profile,
		title:     title,
		content:   content,
	}
	branch := &paneNode{
		id:        schema.PaneID(newID()),
		parent:    leaf.parent,
		direction: direction,
		ratio:     1 - ratio,
		first:     leaf.id,
		second:    newLeaf.id,
	}
	if parent := t.node(leaf.parent); parent != nil {
		if parent.first == leaf.id {
			parent.first = branch.id
		} else {
			parent.second = branch.id
		}
	} else {
		t.root = branch.id
	}
	leaf.parent = branch.id
	newLeaf.parent = branch.id
	t.nodes[branch.id] = branch
	t.nodes[newLeaf.id] = newLeaf
	t.focused = newLeaf.id
	return newLeaf.id, nil
}

// closeLeaf removes a leaf and collapses its parent into the surviving
// sibling. Returns the removed content and whether the tree is now empty.
func (t *paneTree) closeLeaf(id schema.PaneID) (Content, bool, error) {
	leaf := t.node(id)
	if leaf == nil || !leaf.isLeaf() {
		return nil, false, schema.ErrPaneNotFound
	}
	t.clearZoom()

	content := leaf.content
	if id == t.root {
		delete(t.nodes, id)
		t.root = ""
		t.focused = ""
		return content, true, nil
	}
	parent := t.node(leaf.parent)
	siblingID := parent.first
	if siblingID == id {
		siblingID = parent.second
	}
	sibling := t.node(siblingID)
	sibling.parent = parent.parent
	if grand := t.node(parent.parent); grand != nil {
		if grand.first == parent.id {
			grand.first = siblingID
		} else {
			grand.second = siblingID
		}
	} else {
		t.root = siblingID
	}
	delete(t.nodes, id)
	delete(t.nodes, parent.id)
	if t.focused == id {
		t.focused = t.firstLeaf(siblingID)
	}
	return content, false, nil
}

// firstLeaf descends first-child links from id down to a leaf.
func (t *paneTree) firstLeaf(id schema.PaneID) schema.PaneID {
	n := t.node(id)
	for n != nil && !n.isLeaf() {
		n = t.node(n.first)
	}
	if n == nil {
		return ""
	}
	return n.id
}

type paneRect struct {
	x, y, w, h float64
}

// layoutRects assigns every node a rectangle in the unit square. Vertical
// splits divide width, horizontal splits divide height.
func (t *paneTree) layoutRects() map[schema.PaneID]paneRect {
	rects := make(map[schema.PaneID]paneRect, len(t.nodes))
	var place func(id schema.PaneID, r paneRect)
	place = func(id schema.PaneID, r paneRect) {
		n := t.node(id)
		if n == nil {
			return
		}
		rects[id] = r
		if n.isLeaf() {
			return
		}
		if n.direction == schema.SplitVertical {
			firstW := r.w * n.ratio
			place(n.first, paneRect{r.x, r.y, firstW, r.h})
			place(n.second, paneRect{r.x + firstW, r.y, r.w - firstW, r.h})
		} else {
			firstH := r.h * n.ratio
			place(n.first, paneRect{r.x, r.y, r.w, firstH})
			place(n.second, paneRect{r.x, r.y + firstH, r.w, r.h - firstH})
		}
	}
	if t.root != "" {
		place(t.root, paneRect{0, 0, 1, 1})
	}
	return rects
}

// autoDirection picks a split direction from the leaf's aspect ratio: wide
// panes split vertically, tall panes horizontally.
func (t *paneTree) autoDirection(id schema.PaneID) schema.SplitDirection {
	rects := t.layoutRects()
	r, ok := rects[id]
	if !ok || r.w >= r.h {
		return schema.SplitVertical
	}
	return schema.SplitHorizontal
}

const adjacencyEpsilon = 1e-9

// moveFocus shifts focus to the nearest leaf adjacent to the focused leaf in
// the given direction, preferring the neighbor with the largest shared edge.
// Returns false when no neighbor exists.
func (t *paneTree) moveFocus(direction schema.FocusDirection) bool {
	focused := t.focusedLeaf()
	if focused == nil {
		return false
	}
	rects := t.layoutRects()
	from := rects[focused.id]
	bestID := schema.PaneID("")
	bestOverlap := 0.0
	for id, n := range t.nodes {
		if !n.isLeaf() || id == focused.id {
			continue
		}
		r := rects[id]
		var touching bool
		var overlap float64
		switch direction {
		case schema.FocusLeft:
			touching = edgesTouch(r.x+r.w, from.x)
			overlap = spanOverlap(r.y, r.h, from.y, from.h)
		case schema.FocusRight:
			touching = edgesTouch(from.x+from.w, r.x)
			overlap = spanOverlap(r.y, r.h, from.y, from.h)
		case schema.FocusUp:
			touching = edgesTouch(r.y+r.h, from.y)
			overlap = spanOverlap(r.x, r.w, from.x, from.w)
		case schema.FocusDown:
			touching = edgesTouch(from.y+from.h, r.y)
			overlap = spanOverlap(r.x, r.w, from.x, from.w)
		default:
			return false
		}
		if touching && overlap > bestOverlap {
			bestOverlap = overlap
			bestID = id
		}
	}
	if bestID == "" || bestOverlap <= adjacencyEpsilon {
		return false
	}
	t.clearZoom()
	t.focused = bestID
	return true
}

func edgesTouch(a, b float64) bool {
	d := a - b
	return d < adjacencyEpsilon && d > -adjacencyEpsilon
}

func spanOverlap(a, aLen, b, bLen float64) float64 {
	low := a
	if b > low {
		low = b
	}
	high := a + aLen
	if b+bLen < high {
		high = b + bLen
	}
	if high <= low {
		return 0
	}
	return high - low
}

// resize moves the separator of the nearest ancestor whose orientation faces
// the given direction. The ratio is clamped so neither side shrinks below
// min. Returns false when no separator moved.
func (t *paneTree) resize(direction schema.FocusDirection, step, min float64) bool {
	focused := t.focusedLeaf()
	if focused == nil {
		return false
	}
	var want schema.SplitDirection
	delta := step
	switch direction {
	case schema.FocusLeft:
		want, delta = schema.SplitVertical, -step
	case schema.FocusRight:
		want = schema.SplitVertical
	case schema.FocusUp:
		want, delta = schema.SplitHorizontal, -step
	case schema.FocusDown:
		want = schema.SplitHorizontal
	default:
		return false
	}
	for id := focused.parent; id != ""; {
		n := t.node(id)
		if n == nil {
			return false
		}
		if n.direction == want {
			next := clampRatio(n.ratio+delta, min)
			if next == n.ratio {
				return false
			}
			t.clearZoom()
			n.ratio = next
			return true
		}
		id = n.parent
	}
	return false
}

func clampRatio(ratio, min float64) float64 {
	if ratio < min {
		return min
	}
	if ratio > 1-min {
		return 1 - min
	}
	return ratio
}

// setTitle updates a leaf's title. Returns false when the pane is unknown.
func (t *paneTree) setTitle(id schema.PaneID, title string) bool {
	n := t.node(id)
	if n == nil || !n.isLeaf() {
		return false
	}
	n.title = title
	return true
}

// leaves returns all leaf nodes in first-child order.
func (t *paneTree) leaves() []*paneNode {
	var out []*paneNode
	var walk func(id schema.PaneID)
	walk = func(id schema.PaneID) {
		n := t.node(id)
		if n == nil {
			return
		}
		if n.isLeaf() {
			out = append(out, n)
			return
		}
		walk(n.first)
		walk(n.second)
	}
	if t != nil && t.root != "" {
		walk(t.root)
	}
	return out
}

// snapshot returns a transport-friendly view of the subtree rooted at id.
func (t *paneTree) snapshot(id schema.PaneID) schema.PaneSnapshot {
	n := t.node(id)
	if n == nil {
		return schema.PaneSnapshot{}
	}
	snap := schema.PaneSnapshot{
		ID:        n.id,
		Direction: n.direction,
	}
	if n.isLeaf() {
		snap.Profile = n.profile
		snap.Title = n.title
		snap.Focused = n.id == t.focused
		snap.Zoomed = n.id == t.zoomed
		return snap
	}
	snap.Ratio = n.ratio
	snap.Children = []schema.PaneSnapshot{
		t.snapshot(n.first),
		t.snapshot(n.second),
	}
	return snap
}

// closeAll releases every leaf's content and returns the contents closed.
func (t *paneTree) closeAll() []Content {
	var contents []Content
	for _, leaf := range t.leaves() {
		if leaf.content != nil {
			contents = append(contents, leaf.content)
		}
	}
	t.nodes = map[schema.PaneID]*paneNode{}
	t.root = ""
	t.focused = ""
	t.zoomed = ""
	return contents
}
