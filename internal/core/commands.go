package core

import (
	"fmt"
	"sort"

	"github.com/bethropolis/tidecanvas/internal/core/command"
	"github.com/bethropolis/tidecanvas/internal/core/selection"
	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/types"
)

// Builders capture originals from live state and wire the document's
// mutators in as callbacks.

func (d *Document) NewMoveCommand(ids []string, delta types.Point) *command.Move {
	originals := make(map[string]types.Point, len(ids))
	for _, id := range ids {
		if p, ok := d.GetNodePosition(id); ok {
			originals[id] = p
		}
	}
	return command.NewMove(ids, delta, originals, d.MoveNodes)
}

func (d *Document) NewResizeCommand(bounds map[string]types.Rect) *command.Resize {
	ids := make([]string, 0, len(bounds))
	old := make(map[string]types.Rect, len(bounds))
	for id := range bounds {
		ids = append(ids, id)
		if b, ok := d.GetNodeBounds(id); ok {
			old[id] = b
		}
	}
	sort.Strings(ids)
	return command.NewResize(bounds, old, ids, d.SetNodeBounds)
}

func (d *Document) NewRotateCommand(id string, angle float64) *command.Rotate {
	n, ok := d.nodes[id]
	if !ok {
		return command.NewRotate(id, angle, 0, d.SetRotation)
	}
	c := command.NewRotate(id, angle, n.Rotation(), d.SetRotation)
	if _, had := n[scene.KeyRotation]; !had {
		c.Unset = func(id string) { d.SetProperty(id, scene.KeyRotation, nil) }
	}
	return c
}

func (d *Document) NewUpdatePropertyCommand(id, key string, value any) *command.UpdateProperty {
	var original any
	if n, ok := d.nodes[id]; ok {
		if v, ok := n[key]; ok {
			original = scene.CloneValue(v)
		}
	}
	return command.NewUpdateProperty(id, key, value, original, d.SetProperty)
}

// NewDeleteCommand captures each topmost node with its subtree, parent and index.
func (d *Document) NewDeleteCommand(ids []string) *command.Delete {
	targets := d.topmost(ids)
	removed := make([]command.Removed, 0, len(targets))
	for _, id := range targets {
		root, descendants := d.cloneSubtree(id)
		removed = append(removed, command.Removed{
			Node:        root,
			Descendants: descendants,
			ParentID:    d.ParentOf(id),
			Index:       d.IndexInParent(id),
		})
	}
	return command.NewDelete(targets, removed, d.DeleteNodes, d.RestoreNode)
}

// NewCreateCommand assigns an id when node has none.
func (d *Document) NewCreateCommand(node scene.Node, parentID string, index int) *command.Create {
	node = scene.Clone(node)
	if node == nil {
		node = scene.Node{}
	}
	if node.ID() == "" {
		node[scene.KeyID] = d.opts.NewID()
	}
	return command.NewCreate(node, nil, parentID, index, d.RestoreNode, d.DeleteNodes)
}

func (d *Document) NewDuplicateCommand(ids []string) *command.Duplicate {
	return command.NewDuplicate(d.topmost(ids), d.DuplicateNodes, d.DeleteNodes)
}

func (d *Document) NewGroupCommand(ids []string) *command.Group {
	members := d.topmost(ids)
	origins := make([]command.Origin, 0, len(members))
	for _, id := range members {
		origins = append(origins, command.Origin{ID: id, ParentID: d.ParentOf(id), Index: d.IndexInParent(id)})
	}
	return command.NewGroup(members, d.opts.NewID(), origins, d.GroupNodes, d.UngroupNode, d.ReparentNode)
}

func (d *Document) NewUngroupCommand(groupID string) (*command.Ungroup, error) {
	g, ok := d.nodes[groupID]
	if !ok {
		return nil, fmt.Errorf("ungroup '%s': %w", groupID, ErrNodeNotFound)
	}
	if !g.HasChildren() || len(g.Children()) == 0 {
		return nil, fmt.Errorf("ungroup '%s': %w", groupID, ErrNotAGroup)
	}
	return command.NewUngroup(scene.Clone(g), g.Children(), d.ParentOf(groupID), d.IndexInParent(groupID),
		d.UngroupNode, d.Regroup), nil
}

// NewReorderCommand moves id to target among its siblings, clamped.
func (d *Document) NewReorderCommand(id string, target int) (*command.Reorder, error) {
	original := d.IndexInParent(id)
	if original < 0 {
		return nil, fmt.Errorf("reorder '%s': %w", id, ErrNodeNotFound)
	}
	last := len(d.siblings(d.ParentOf(id))) - 1
	target = max(0, min(target, last))
	return command.NewReorder(id, original, target, d.ReorderNode), nil
}

func (d *Document) NewReparentCommand(ids []string, parentID string, index int) *command.Reparent {
	members := d.topmost(ids)
	origins := make([]command.Origin, 0, len(members))
	for _, id := range members {
		origins = append(origins, command.Origin{ID: id, ParentID: d.ParentOf(id), Index: d.IndexInParent(id)})
	}
	return command.NewReparent(members, parentID, index, origins, d.ReparentNode)
}

func (d *Document) NewSelectionChangeCommand(ids []string) *command.SelectionChange {
	next := selection.Snapshot{IDs: ids}
	if len(ids) > 0 {
		next.Primary = ids[len(ids)-1]
	}
	return command.NewSelectionChange(next, d.selection.Snapshot(), d.ApplySelection)
}
