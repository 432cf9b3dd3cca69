package core

import (
	"slices"
	"sort"

	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/spatial"
	"github.com/bethropolis/tidecanvas/internal/types"
)

// Node returns a copy of the node.
func (d *Document) Node(id string) (scene.Node, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, false
	}
	return scene.Clone(n), true
}

// Nodes returns a deep copy of the whole node mapping.
func (d *Document) Nodes() map[string]scene.Node { return scene.CloneMap(d.nodes) }

// NodeIDs returns every node id, sorted.
func (d *Document) NodeIDs() []string {
	ids := make([]string, 0, len(d.nodes))
	for id := range d.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (d *Document) NodeCount() int { return len(d.nodes) }

func (d *Document) RootIDs() []string { return slices.Clone(d.rootIDs) }

// Children returns the child ids of id; "" returns the roots.
func (d *Document) Children(id string) []string { return slices.Clone(d.siblings(id)) }

// ParentOf returns the parent id, or "" for roots and unknown ids.
func (d *Document) ParentOf(id string) string {
	n, ok := d.nodes[id]
	if !ok {
		return ""
	}
	p := n.ParentID()
	if !d.exists(p) {
		return ""
	}
	return p
}

// IndexInParent returns the position of id among its siblings, or -1.
func (d *Document) IndexInParent(id string) int {
	if !d.exists(id) {
		return -1
	}
	return slices.Index(d.siblings(d.ParentOf(id)), id)
}

// GetNodePosition reads the node position, preferring the transform.
func (d *Document) GetNodePosition(id string) (types.Point, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return types.Point{}, false
	}
	return scene.Position(n)
}

// GetNodeBounds reads position and size.
func (d *Document) GetNodeBounds(id string) (types.Rect, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return types.Rect{}, false
	}
	return scene.Bounds(n)
}

// GetSelectionBounds is the union of the selected nodes' bounds.
func (d *Document) GetSelectionBounds() (types.Rect, bool) {
	return d.unionBounds(d.selection.Selected())
}

func (d *Document) unionBounds(ids []string) (types.Rect, bool) {
	var out types.Rect
	found := false
	for _, id := range ids {
		b, ok := d.GetNodeBounds(id)
		if !ok {
			continue
		}
		if found {
			out = out.Union(b)
		} else {
			out, found = b.Normalize(), true
		}
	}
	return out, found
}

// ScopeIDs lists the nodes the user is editing among: the entered group's
// children, else the active page's children, else the roots.
func (d *Document) ScopeIDs() []string {
	if g := d.selection.EnteredGroup(); d.exists(g) {
		return d.Children(g)
	}
	if d.exists(d.activePage) {
		return d.Children(d.activePage)
	}
	return d.RootIDs()
}

// ScopeParent is the parent new content goes under.
func (d *Document) ScopeParent() string {
	if g := d.selection.EnteredGroup(); d.exists(g) {
		return g
	}
	if d.exists(d.activePage) {
		return d.activePage
	}
	return ""
}

func (d *Document) scopeIndex() *spatial.Index {
	idx := spatial.New()
	for _, id := range d.ScopeIDs() {
		if b, ok := d.GetNodeBounds(id); ok {
			idx.Insert(id, b)
		}
	}
	return idx
}

// NodesInRect returns scope nodes intersecting r, in stacking order.
func (d *Document) NodesInRect(r types.Rect) []string {
	return d.scopeIndex().Query(r)
}

// HitTest returns the topmost scope node containing p.
func (d *Document) HitTest(p types.Point) (string, bool) {
	return d.scopeIndex().At(p)
}
