package command

import (
	"cmp"
	"slices"

	"github.com/bethropolis/tidecanvas/internal/scene"
)

// Removed is a node taken out of the tree, with enough context to put it back.
type Removed struct {
	Node        scene.Node
	Descendants []scene.Node
	ParentID    string
	Index       int
}

// Origin is where a node sat before it was moved to another parent.
type Origin struct {
	ID       string
	ParentID string
	Index    int
}

// byIndex orders restorations so earlier siblings are reinserted first,
// which rebuilds the original order under each parent.
func byIndex[T any](items []T, index func(T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int { return cmp.Compare(index(a), index(b)) })
	return out
}

// Delete removes nodes and their subtrees.
type Delete struct {
	NoMerge
	IDs     []string
	Removed []Removed
	Remove  func(ids []string)
	Restore func(r Removed)
}

func NewDelete(ids []string, removed []Removed, remove func([]string), restore func(Removed)) *Delete {
	return &Delete{IDs: ids, Removed: removed, Remove: remove, Restore: restore}
}

func (c *Delete) Describe() string { return plural("Delete", len(c.IDs)) }

func (c *Delete) Execute() { c.Remove(c.IDs) }

func (c *Delete) Undo() {
	for _, r := range byIndex(c.Removed, func(r Removed) int { return r.Index }) {
		c.Restore(r)
	}
}

// Create inserts one node (with optional descendants) under ParentID at
// Index; -1 appends and an empty parent makes it a root.
type Create struct {
	NoMerge
	Node        scene.Node
	Descendants []scene.Node
	ParentID    string
	Index       int
	Insert      func(r Removed)
	Remove      func(ids []string)
}

func NewCreate(node scene.Node, descendants []scene.Node, parentID string, index int, insert func(Removed), remove func([]string)) *Create {
	return &Create{Node: node, Descendants: descendants, ParentID: parentID, Index: index, Insert: insert, Remove: remove}
}

func (c *Create) Describe() string {
	if t := c.Node.Type(); t != "" {
		return "Create " + string(t)
	}
	return "Create node"
}

func (c *Create) Execute() {
	c.Insert(Removed{Node: c.Node, Descendants: c.Descendants, ParentID: c.ParentID, Index: c.Index})
}

func (c *Create) Undo() { c.Remove([]string{c.Node.ID()}) }

// Duplicate clones nodes with an offset. Created holds the ids of the
// copies from the most recent Execute.
type Duplicate struct {
	NoMerge
	SourceIDs []string
	Created   []string
	Apply     func(ids []string) []string
	Remove    func(ids []string)
}

func NewDuplicate(ids []string, apply func([]string) []string, remove func([]string)) *Duplicate {
	return &Duplicate{SourceIDs: ids, Apply: apply, Remove: remove}
}

func (c *Duplicate) Describe() string { return plural("Duplicate", len(c.SourceIDs)) }

func (c *Duplicate) Execute() { c.Created = c.Apply(c.SourceIDs) }

func (c *Duplicate) Undo() {
	if len(c.Created) > 0 {
		c.Remove(c.Created)
	}
}

// Group wraps nodes into a new group node.
type Group struct {
	NoMerge
	IDs      []string
	GroupID  string
	Origins  []Origin
	Apply    func(ids []string, groupID string)
	Ungroup  func(groupID string)
	Reparent func(id, parentID string, index int)
}

func NewGroup(ids []string, groupID string, origins []Origin,
	apply func([]string, string), ungroup func(string), reparent func(string, string, int)) *Group {
	return &Group{IDs: ids, GroupID: groupID, Origins: origins, Apply: apply, Ungroup: ungroup, Reparent: reparent}
}

func (c *Group) Describe() string { return plural("Group", len(c.IDs)) }

func (c *Group) Execute() { c.Apply(c.IDs, c.GroupID) }

// Undo dissolves the group, then puts each member back where it was.
func (c *Group) Undo() {
	c.Ungroup(c.GroupID)
	for _, o := range byIndex(c.Origins, func(o Origin) int { return o.Index }) {
		c.Reparent(o.ID, o.ParentID, o.Index)
	}
}

// Ungroup dissolves a group, promoting its children into the group's parent.
type Ungroup struct {
	NoMerge
	GroupID  string
	Data     scene.Node
	ChildIDs []string
	ParentID string
	Index    int
	Apply    func(groupID string)
	Regroup  func(group scene.Node, childIDs []string, parentID string, index int)
}

func NewUngroup(data scene.Node, childIDs []string, parentID string, index int,
	apply func(string), regroup func(scene.Node, []string, string, int)) *Ungroup {
	return &Ungroup{GroupID: data.ID(), Data: data, ChildIDs: childIDs, ParentID: parentID, Index: index, Apply: apply, Regroup: regroup}
}

func (c *Ungroup) Describe() string { return "Ungroup" }

func (c *Ungroup) Execute() { c.Apply(c.GroupID) }

func (c *Ungroup) Undo() {
	c.Regroup(scene.Clone(c.Data), c.ChildIDs, c.ParentID, c.Index)
}

// Reorder moves a node to another index among its siblings.
type Reorder struct {
	NoMerge
	ID       string
	Original int
	Target   int
	Apply    func(id string, index int)
}

func NewReorder(id string, original, target int, apply func(string, int)) *Reorder {
	return &Reorder{ID: id, Original: original, Target: target, Apply: apply}
}

func (c *Reorder) Describe() string {
	if c.Target > c.Original {
		return "Bring forward"
	}
	return "Send backward"
}

func (c *Reorder) Execute() { c.Apply(c.ID, c.Target) }

func (c *Reorder) Undo() { c.Apply(c.ID, c.Original) }

// Reparent moves nodes under a new parent. Index -1 appends; otherwise the
// nodes are inserted consecutively starting at Index.
type Reparent struct {
	NoMerge
	IDs       []string
	NewParent string
	Index     int
	Origins   []Origin
	Apply     func(id, parentID string, index int)
}

func NewReparent(ids []string, newParent string, index int, origins []Origin, apply func(string, string, int)) *Reparent {
	return &Reparent{IDs: ids, NewParent: newParent, Index: index, Origins: origins, Apply: apply}
}

func (c *Reparent) Describe() string { return plural("Reparent", len(c.IDs)) }

func (c *Reparent) Execute() {
	for i, id := range c.IDs {
		index := -1
		if c.Index >= 0 {
			index = c.Index + i
		}
		c.Apply(id, c.NewParent, index)
	}
}

// Undo restores each node on its own to its former parent and index.
func (c *Reparent) Undo() {
	for _, o := range byIndex(c.Origins, func(o Origin) int { return o.Index }) {
		c.Apply(o.ID, o.ParentID, o.Index)
	}
}
