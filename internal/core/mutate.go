package core

import (
	"slices"

	"github.com/bethropolis/tidecanvas/internal/core/command"
	"github.com/bethropolis/tidecanvas/internal/core/selection"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/types"
)

// Positions are absolute canvas coordinates, so moving a container moves
// its whole subtree. Missing ids are skipped in every bulk mutator.

// MoveNodes translates each node and its descendants by delta.
func (d *Document) MoveNodes(ids []string, delta types.Point) {
	moved := 0
	for _, id := range d.topmost(ids) {
		for _, member := range d.subtree(id) {
			if scene.Translate(d.nodes[member], delta) {
				moved++
			}
		}
	}
	if moved > 0 {
		d.mutated()
	}
}

// UpdateNode shallow-merges partial into the node. The id key is ignored.
func (d *Document) UpdateNode(id string, partial map[string]any) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	for k, v := range partial {
		if k == scene.KeyID {
			continue
		}
		n[k] = v
	}
	d.mutated()
}

// SetProperty sets one property; a nil value deletes it.
func (d *Document) SetProperty(id, key string, value any) {
	n, ok := d.nodes[id]
	if !ok || key == scene.KeyID {
		return
	}
	if value == nil {
		delete(n, key)
	} else {
		n[key] = value
	}
	d.mutated()
}

// SetNodeBounds writes position and size.
func (d *Document) SetNodeBounds(id string, r types.Rect) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	scene.SetBounds(n, r)
	d.mutated()
}

// SetRotation sets the absolute rotation in degrees.
func (d *Document) SetRotation(id string, angle float64) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	n[scene.KeyRotation] = angle
	d.mutated()
}

// DeleteNodes removes nodes with their subtrees and detaches them from
// their parents. The selection is cleared even if it held none of them.
func (d *Document) DeleteNodes(ids []string) {
	d.batch(func() {
		removed := 0
		for _, id := range d.topmost(ids) {
			d.detach(id)
			for _, member := range d.subtree(id) {
				delete(d.nodes, member)
				removed++
			}
			if id == d.activePage {
				d.activePage = ""
			}
		}
		if d.activePage == "" && len(d.rootIDs) > 0 {
			d.activePage = d.rootIDs[0]
		}
		if g := d.selection.EnteredGroup(); g != "" && !d.exists(g) {
			d.selection.ExitAllGroups()
		}
		d.selection.Clear()
		if removed > 0 {
			logger.DebugTagf("document", "Deleted %d node(s)", removed)
			d.mutated()
		}
	})
}

// InsertNode adds node under parentID at index (-1 appends). An existing
// node with the same id is replaced.
func (d *Document) InsertNode(node scene.Node, parentID string, index int) {
	d.RestoreNode(command.Removed{Node: node, ParentID: parentID, Index: index})
}

// RestoreNode puts a removed node and its descendants back. Descendants keep
// their own parent links; only the root is attached under r.ParentID.
func (d *Document) RestoreNode(r command.Removed) {
	id := r.Node.ID()
	if id == "" {
		logger.WarnTagf("document", "RestoreNode: node has no id")
		return
	}
	if d.exists(id) {
		d.detach(id)
	}
	d.nodes[id] = scene.Clone(r.Node)
	for _, child := range r.Descendants {
		if cid := child.ID(); cid != "" {
			d.nodes[cid] = scene.Clone(child)
		}
	}
	d.attach(id, r.ParentID, r.Index)
	d.mutated()
}

// ReparentNode moves id under parentID at index. Moving a node into itself
// or its own subtree is refused.
func (d *Document) ReparentNode(id, parentID string, index int) {
	if !d.exists(id) || (parentID != "" && !d.exists(parentID)) {
		return
	}
	if parentID == id || d.isAncestor(id, parentID) {
		logger.WarnTagf("document", "Refusing to move %s into its own subtree", id)
		return
	}
	d.detach(id)
	d.attach(id, parentID, index)
	d.mutated()
}

// ReparentNodes moves ids under parentID, consecutively from index.
func (d *Document) ReparentNodes(ids []string, parentID string, index int) {
	d.batch(func() {
		for i, id := range ids {
			at := -1
			if index >= 0 {
				at = index + i
			}
			d.ReparentNode(id, parentID, at)
		}
	})
}

// ReorderNode moves id to index among its siblings.
func (d *Document) ReorderNode(id string, index int) {
	if !d.exists(id) {
		return
	}
	parentID, _ := d.detach(id)
	d.attach(id, parentID, index)
	d.mutated()
}

// GroupNodes wraps ids into a new GROUP node with id groupID, placed in the
// first node's parent where the earliest member sat. Members keep their
// stacking order inside the group and the group becomes the selection.
func (d *Document) GroupNodes(ids []string, groupID string) {
	members := d.topmost(ids)
	if len(members) == 0 || groupID == "" || d.exists(groupID) {
		return
	}
	parentID := d.ParentOf(members[0])
	slices.SortStableFunc(members, func(a, b string) int {
		return d.IndexInParent(a) - d.IndexInParent(b)
	})

	index := -1
	var bounds types.Rect
	hasBounds := false
	for _, id := range members {
		if d.ParentOf(id) == parentID {
			if i := d.IndexInParent(id); index < 0 || i < index {
				index = i
			}
		}
		if b, ok := scene.Bounds(d.nodes[id]); ok {
			if hasBounds {
				bounds = bounds.Union(b)
			} else {
				bounds, hasBounds = b, true
			}
		}
	}

	d.batch(func() {
		group := scene.Node{
			scene.KeyID:   groupID,
			scene.KeyType: string(scene.TypeGroup),
			scene.KeyName: "Group",
		}
		if hasBounds {
			scene.SetBounds(group, bounds)
		}
		d.nodes[groupID] = group
		d.attach(groupID, parentID, index)
		for _, id := range members {
			d.detach(id)
			d.attach(id, groupID, -1)
		}
		d.selection.Select(groupID, false)
		logger.DebugTagf("document", "Grouped %d node(s) into %s", len(members), groupID)
		d.mutated()
	})
}

// UngroupNode dissolves a group, promoting its children to the group's
// position in its parent. The promoted children become the selection.
func (d *Document) UngroupNode(groupID string) {
	g, ok := d.nodes[groupID]
	if !ok || !g.HasChildren() {
		return
	}
	d.batch(func() {
		kids := g.Children()
		parentID, index := d.detach(groupID)
		delete(d.nodes, groupID)
		if index < 0 {
			index = len(d.siblings(parentID))
		}
		for i, kid := range kids {
			d.attach(kid, parentID, index+i)
		}
		if d.selection.EnteredGroup() == groupID {
			d.selection.ExitGroup()
		}
		d.selection.SelectMultiple(kids, false)
		d.mutated()
	})
}

// Regroup recreates a dissolved group around childIDs.
func (d *Document) Regroup(group scene.Node, childIDs []string, parentID string, index int) {
	id := group.ID()
	if id == "" {
		return
	}
	d.batch(func() {
		g := scene.Clone(group)
		g.SetChildren(nil)
		d.nodes[id] = g
		d.attach(id, parentID, index)
		for _, kid := range childIDs {
			if !d.exists(kid) {
				continue
			}
			d.detach(kid)
			d.attach(kid, id, -1)
		}
		d.selection.Select(id, false)
		d.mutated()
	})
}

// DuplicateNodes copies each node's subtree with fresh ids, offset by the
// duplicate offset, inserted right after the original. The copies become
// the selection and their ids are returned.
func (d *Document) DuplicateNodes(ids []string) []string {
	var created []string
	d.batch(func() {
		for _, id := range d.topmost(ids) {
			root, descendants := d.cloneSubtree(id)
			copyRoot, copyDescendants := d.remap(root, descendants, d.opts.DuplicateOffset)
			parentID := d.ParentOf(id)
			d.RestoreNode(command.Removed{
				Node:        copyRoot,
				Descendants: copyDescendants,
				ParentID:    parentID,
				Index:       d.IndexInParent(id) + 1,
			})
			created = append(created, copyRoot.ID())
		}
		if len(created) > 0 {
			d.selection.SelectMultiple(created, false)
		}
	})
	return created
}

// remap gives a copied subtree fresh ids, rewrites the links inside it and
// translates every member by offset. The root's parent link is dropped;
// attach sets it.
func (d *Document) remap(root scene.Node, descendants []scene.Node, offset types.Point) (scene.Node, []scene.Node) {
	fresh := make(map[string]string, len(descendants)+1)
	fresh[root.ID()] = d.opts.NewID()
	for _, n := range descendants {
		fresh[n.ID()] = d.opts.NewID()
	}

	rewrite := func(n scene.Node) scene.Node {
		c := scene.Clone(n)
		c[scene.KeyID] = fresh[n.ID()]
		if p, ok := fresh[n.ParentID()]; ok {
			c.SetParentID(p)
		}
		if c.HasChildren() {
			var kids []string
			for _, k := range c.Children() {
				if nk, ok := fresh[k]; ok {
					kids = append(kids, nk)
				}
			}
			c.SetChildren(kids)
		}
		scene.Translate(c, offset)
		return c
	}

	newRoot := rewrite(root)
	newRoot.SetParentID("")
	out := make([]scene.Node, 0, len(descendants))
	for _, n := range descendants {
		out = append(out, rewrite(n))
	}
	return newRoot, out
}

// ApplySelection replaces the selection.
func (d *Document) ApplySelection(s selection.Snapshot) {
	d.selection.RestoreFromSnapshot(s)
}
