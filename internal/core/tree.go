package core

import (
	"slices"

	"github.com/bethropolis/tidecanvas/internal/scene"
)

func (d *Document) exists(id string) bool {
	_, ok := d.nodes[id]
	return ok && id != ""
}

// siblings returns the live child list of parentID; "" means the roots.
func (d *Document) siblings(parentID string) []string {
	if parentID == "" {
		return d.rootIDs
	}
	if p, ok := d.nodes[parentID]; ok {
		return p.Children()
	}
	return nil
}

// detach removes id from its parent's child list (or the roots) and returns
// where it was. The node itself stays in the mapping.
func (d *Document) detach(id string) (parentID string, index int) {
	n, ok := d.nodes[id]
	if !ok {
		return "", -1
	}
	parentID = n.ParentID()
	if p, ok := d.nodes[parentID]; ok {
		return parentID, p.RemoveChild(id)
	}
	index = slices.Index(d.rootIDs, id)
	if index >= 0 {
		d.rootIDs = slices.Delete(d.rootIDs, index, index+1)
	}
	return "", index
}

// attach inserts id under parentID at index (-1 or out of range appends).
// An empty or unknown parent makes the node a root.
func (d *Document) attach(id, parentID string, index int) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	if p, ok := d.nodes[parentID]; ok && parentID != "" {
		p.InsertChild(id, index)
		n.SetParentID(parentID)
		return
	}
	n.SetParentID("")
	if index < 0 || index > len(d.rootIDs) {
		index = len(d.rootIDs)
	}
	d.rootIDs = slices.Insert(d.rootIDs, index, id)
}

// subtree returns id and all its descendants in pre-order. Each node is
// listed once even if a malformed scene links children in a cycle.
func (d *Document) subtree(id string) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(id string)
	walk = func(id string) {
		n, ok := d.nodes[id]
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(id)
	return out
}

// isAncestor reports whether ancestor is above id in the tree.
func (d *Document) isAncestor(ancestor, id string) bool {
	seen := make(map[string]bool)
	for cur := d.ParentOf(id); cur != "" && !seen[cur]; cur = d.ParentOf(cur) {
		if cur == ancestor {
			return true
		}
		seen[cur] = true
	}
	return false
}

// topmost keeps existing ids whose ancestors are not also listed, in order,
// without duplicates.
func (d *Document) topmost(ids []string) []string {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if d.exists(id) {
			set[id] = true
		}
	}
	out := make([]string, 0, len(set))
	seen := make(map[string]bool, len(set))
	for _, id := range ids {
		if !set[id] || seen[id] {
			continue
		}
		seen[id] = true
		covered := false
		visited := map[string]bool{id: true}
		for cur := d.ParentOf(id); cur != "" && !visited[cur]; cur = d.ParentOf(cur) {
			if set[cur] {
				covered = true
				break
			}
			visited[cur] = true
		}
		if !covered {
			out = append(out, id)
		}
	}
	return out
}

// cloneSubtree copies id and its descendants out of the live document.
func (d *Document) cloneSubtree(id string) (root scene.Node, descendants []scene.Node) {
	ids := d.subtree(id)
	if len(ids) == 0 {
		return nil, nil
	}
	root = scene.Clone(d.nodes[id])
	for _, child := range ids[1:] {
		descendants = append(descendants, scene.Clone(d.nodes[child]))
	}
	return root, descendants
}
