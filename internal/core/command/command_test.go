package command

import (
	"reflect"
	"slices"
	"testing"

	"github.com/bethropolis/tidecanvas/internal/core/selection"
	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/types"
)

// fakeTree is a minimal target for command callbacks.
type fakeTree struct {
	pos      map[string]types.Point
	bounds   map[string]types.Rect
	rotation map[string]float64
	props    map[string]map[string]any
	children map[string][]string // "" holds roots
	parent   map[string]string
	sel      selection.Snapshot
}

func newFakeTree() *fakeTree {
	return &fakeTree{
		pos:      map[string]types.Point{"a": {}, "b": {X: 5, Y: 5}},
		bounds:   map[string]types.Rect{"a": {Width: 10, Height: 10}},
		rotation: map[string]float64{"a": 0},
		props:    map[string]map[string]any{"a": {"name": "A"}},
		children: map[string][]string{"": {"p", "q"}, "p": {"a", "b", "c"}, "q": {}},
		parent:   map[string]string{"p": "", "q": "", "a": "p", "b": "p", "c": "p"},
	}
}

func (f *fakeTree) move(ids []string, d types.Point) {
	for _, id := range ids {
		if p, ok := f.pos[id]; ok {
			f.pos[id] = p.Add(d)
		}
	}
}

func (f *fakeTree) detach(id string) int {
	parent := f.parent[id]
	idx := slices.Index(f.children[parent], id)
	if idx >= 0 {
		f.children[parent] = slices.Delete(f.children[parent], idx, idx+1)
	}
	return idx
}

func (f *fakeTree) attach(id, parent string, index int) {
	kids := f.children[parent]
	if index < 0 || index > len(kids) {
		index = len(kids)
	}
	f.children[parent] = slices.Insert(kids, index, id)
	f.parent[id] = parent
}

func (f *fakeTree) reparent(id, parent string, index int) {
	if _, ok := f.parent[id]; !ok {
		return
	}
	f.detach(id)
	f.attach(id, parent, index)
}

func (f *fakeTree) remove(ids []string) {
	for _, id := range ids {
		if _, ok := f.parent[id]; !ok {
			continue
		}
		f.detach(id)
		delete(f.parent, id)
	}
}

func (f *fakeTree) restore(r Removed) {
	f.attach(r.Node.ID(), r.ParentID, r.Index)
}

func (f *fakeTree) snapshotChildren() map[string][]string {
	out := make(map[string][]string, len(f.children))
	for k, v := range f.children {
		out[k] = slices.Clone(v)
	}
	return out
}

func TestMoveRoundTrip(t *testing.T) {
	f := newFakeTree()
	cmd := NewMove([]string{"a", "missing"}, types.Point{X: 10, Y: 20}, nil, f.move)
	cmd.Execute()
	if f.pos["a"] != (types.Point{X: 10, Y: 20}) {
		t.Fatalf("after Execute pos = %+v", f.pos["a"])
	}
	cmd.Undo()
	if f.pos["a"] != (types.Point{}) {
		t.Errorf("after Undo pos = %+v", f.pos["a"])
	}
	if cmd.Describe() != "Move 2 nodes" {
		t.Errorf("Describe() = %q", cmd.Describe())
	}
}

func TestMoveMerge(t *testing.T) {
	f := newFakeTree()
	first := NewMove([]string{"a", "b"}, types.Point{X: 1}, map[string]types.Point{"a": {}}, f.move)
	second := NewMove([]string{"b", "a"}, types.Point{X: 2, Y: 3}, nil, f.move)
	other := NewMove([]string{"a"}, types.Point{X: 1}, nil, f.move)

	if !first.CanMergeWith(second) {
		t.Fatal("moves over the same id set should merge")
	}
	if first.CanMergeWith(other) {
		t.Error("moves over different id sets should not merge")
	}
	merged := first.MergeWith(second).(*Move)
	if merged.Delta != (types.Point{X: 3, Y: 3}) {
		t.Errorf("merged delta = %+v", merged.Delta)
	}
	if _, ok := merged.Originals["a"]; !ok {
		t.Error("merged move should keep the first originals")
	}
	if first.MergeWith(other) != nil {
		t.Error("MergeWith should return nil for incompatible commands")
	}
	if first.CanMergeWith(NewRotate("a", 1, 0, func(string, float64) {})) {
		t.Error("different command types should not merge")
	}
}

func TestResizeRoundTrip(t *testing.T) {
	f := newFakeTree()
	set := func(id string, r types.Rect) { f.bounds[id] = r }
	old := map[string]types.Rect{"a": f.bounds["a"]}
	cmd := NewResize(map[string]types.Rect{"a": {X: 1, Y: 1, Width: 20, Height: 30}}, old, []string{"a"}, set)
	cmd.Execute()
	if f.bounds["a"].Width != 20 {
		t.Fatalf("bounds = %+v", f.bounds["a"])
	}
	cmd.Undo()
	if f.bounds["a"] != (types.Rect{Width: 10, Height: 10}) {
		t.Errorf("after Undo bounds = %+v", f.bounds["a"])
	}
}

func TestRotateRoundTripAndMerge(t *testing.T) {
	f := newFakeTree()
	set := func(id string, a float64) { f.rotation[id] = a }
	first := NewRotate("a", 15, 0, set)
	second := NewRotate("a", 45, 15, set)

	merged := first.MergeWith(second).(*Rotate)
	if merged.Angle != 45 || merged.Original != 0 {
		t.Errorf("merged = %+v", merged)
	}
	merged.Execute()
	merged.Undo()
	if f.rotation["a"] != 0 {
		t.Errorf("rotation = %v", f.rotation["a"])
	}
	if first.CanMergeWith(NewRotate("b", 1, 0, set)) {
		t.Error("rotations of different nodes should not merge")
	}
}

func TestRotateUndoUnsetsMissingRotation(t *testing.T) {
	f := newFakeTree()
	set := func(id string, a float64) { f.rotation[id] = a }
	first := NewRotate("a", 15, 0, set)
	first.Unset = func(id string) { delete(f.rotation, id) }

	merged := first.MergeWith(NewRotate("a", 30, 15, set)).(*Rotate)
	merged.Execute()
	if f.rotation["a"] != 30 {
		t.Fatalf("rotation = %v, want 30", f.rotation["a"])
	}
	merged.Undo()
	if _, ok := f.rotation["a"]; ok {
		t.Errorf("Undo should remove the rotation, got %v", f.rotation["a"])
	}
}

func TestUpdatePropertyRoundTripAndMerge(t *testing.T) {
	f := newFakeTree()
	set := func(id, key string, v any) {
		if v == nil {
			delete(f.props[id], key)
			return
		}
		f.props[id][key] = v
	}
	first := NewUpdateProperty("a", "name", "B", "A", set)
	second := NewUpdateProperty("a", "name", "C", "B", set)
	merged := first.MergeWith(second).(*UpdateProperty)
	merged.Execute()
	if f.props["a"]["name"] != "C" {
		t.Fatalf("name = %v", f.props["a"]["name"])
	}
	merged.Undo()
	if f.props["a"]["name"] != "A" {
		t.Errorf("name = %v", f.props["a"]["name"])
	}

	added := NewUpdateProperty("a", "opacity", 0.5, nil, set)
	added.Execute()
	added.Undo()
	if _, ok := f.props["a"]["opacity"]; ok {
		t.Error("undoing a new property should remove it")
	}
	if first.CanMergeWith(NewUpdateProperty("a", "visible", false, true, set)) {
		t.Error("different properties should not merge")
	}
}

func TestDeleteRoundTrip(t *testing.T) {
	f := newFakeTree()
	before := f.snapshotChildren()
	removed := []Removed{
		{Node: scene.Node{"id": "c"}, ParentID: "p", Index: 2},
		{Node: scene.Node{"id": "a"}, ParentID: "p", Index: 0},
	}
	cmd := NewDelete([]string{"c", "a"}, removed, f.remove, f.restore)
	cmd.Execute()
	if got := f.children["p"]; !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("after delete children = %v", got)
	}
	cmd.Undo()
	if !reflect.DeepEqual(f.children, before) {
		t.Errorf("after undo children = %v, want %v", f.children, before)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	f := newFakeTree()
	cmd := NewCreate(scene.Node{"id": "n", "type": "RECTANGLE"}, nil, "q", -1, f.restore, f.remove)
	cmd.Execute()
	if got := f.children["q"]; !reflect.DeepEqual(got, []string{"n"}) {
		t.Fatalf("children = %v", got)
	}
	cmd.Undo()
	if len(f.children["q"]) != 0 {
		t.Errorf("children after undo = %v", f.children["q"])
	}
	if cmd.Describe() != "Create RECTANGLE" {
		t.Errorf("Describe() = %q", cmd.Describe())
	}
}

func TestDuplicateRoundTrip(t *testing.T) {
	f := newFakeTree()
	dup := func(ids []string) []string {
		var out []string
		for _, id := range ids {
			copyID := id + "-copy"
			f.attach(copyID, f.parent[id], slices.Index(f.children[f.parent[id]], id)+1)
			out = append(out, copyID)
		}
		return out
	}
	before := f.snapshotChildren()
	cmd := NewDuplicate([]string{"a"}, dup, f.remove)
	cmd.Execute()
	if got := f.children["p"]; !reflect.DeepEqual(got, []string{"a", "a-copy", "b", "c"}) {
		t.Fatalf("children = %v", got)
	}
	cmd.Undo()
	if !reflect.DeepEqual(f.children, before) {
		t.Errorf("children after undo = %v", f.children)
	}
}

func TestGroupRoundTrip(t *testing.T) {
	f := newFakeTree()
	before := f.snapshotChildren()
	group := func(ids []string, gid string) {
		idx := slices.Index(f.children["p"], ids[0])
		f.attach(gid, "p", idx)
		for _, id := range ids {
			f.reparent(id, gid, -1)
		}
	}
	ungroup := func(gid string) {
		parent := f.parent[gid]
		idx := f.detach(gid)
		for i, id := range f.children[gid] {
			f.attach(id, parent, idx+i)
		}
		delete(f.children, gid)
		delete(f.parent, gid)
	}
	origins := []Origin{{ID: "a", ParentID: "p", Index: 0}, {ID: "c", ParentID: "p", Index: 2}}
	cmd := NewGroup([]string{"a", "c"}, "g", origins, group, ungroup, f.reparent)
	cmd.Execute()
	if got := f.children["p"]; !reflect.DeepEqual(got, []string{"g", "b"}) {
		t.Fatalf("children = %v", got)
	}
	cmd.Undo()
	if !reflect.DeepEqual(f.children, before) {
		t.Errorf("after undo children = %v, want %v", f.children, before)
	}
}

func TestUngroupRoundTrip(t *testing.T) {
	f := newFakeTree()
	// p acts as the group under the root.
	before := f.snapshotChildren()
	ungroup := func(gid string) {
		idx := f.detach(gid)
		for i, id := range f.children[gid] {
			f.attach(id, "", idx+i)
		}
		delete(f.children, gid)
	}
	var regrouped scene.Node
	regroup := func(g scene.Node, kids []string, parent string, index int) {
		regrouped = g
		f.attach(g.ID(), parent, index)
		for _, id := range kids {
			f.reparent(id, g.ID(), -1)
		}
	}
	data := scene.Node{"id": "p", "type": "GROUP", "children": []string{"a", "b", "c"}}
	cmd := NewUngroup(data, []string{"a", "b", "c"}, "", 0, ungroup, regroup)
	cmd.Execute()
	if got := f.children[""]; !reflect.DeepEqual(got, []string{"a", "b", "c", "q"}) {
		t.Fatalf("roots = %v", got)
	}
	cmd.Undo()
	if !reflect.DeepEqual(f.children, before) {
		t.Errorf("after undo children = %v, want %v", f.children, before)
	}
	regrouped["name"] = "changed"
	if _, ok := cmd.Data["name"]; ok {
		t.Error("Undo should hand out a copy of the group data")
	}
}

func TestReorderDescribeAndRoundTrip(t *testing.T) {
	f := newFakeTree()
	apply := func(id string, index int) { f.reparent(id, f.parent[id], index) }
	fwd := NewReorder("a", 0, 2, apply)
	if fwd.Describe() != "Bring forward" {
		t.Errorf("Describe() = %q", fwd.Describe())
	}
	if NewReorder("c", 2, 1, apply).Describe() != "Send backward" {
		t.Error("lower target should describe as Send backward")
	}
	fwd.Execute()
	if got := f.children["p"]; !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Fatalf("children = %v", got)
	}
	fwd.Undo()
	if got := f.children["p"]; !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("children after undo = %v", got)
	}
}

func TestReparentRestoresEachNode(t *testing.T) {
	f := newFakeTree()
	f.attach("r", "", -1) // root-level node with its own origin
	before := f.snapshotChildren()

	var calls []string
	apply := func(id, parent string, index int) {
		calls = append(calls, id+">"+parent)
		f.reparent(id, parent, index)
	}
	origins := []Origin{
		{ID: "c", ParentID: "p", Index: 2},
		{ID: "r", ParentID: "", Index: 2},
		{ID: "a", ParentID: "p", Index: 0},
	}
	cmd := NewReparent([]string{"c", "r", "a"}, "q", -1, origins, apply)
	cmd.Execute()
	if got := f.children["q"]; !reflect.DeepEqual(got, []string{"c", "r", "a"}) {
		t.Fatalf("q children = %v", got)
	}
	calls = nil
	cmd.Undo()
	if len(calls) != 3 {
		t.Errorf("undo should restore nodes one at a time, got %v", calls)
	}
	if !reflect.DeepEqual(f.children, before) {
		t.Errorf("after undo children = %v, want %v", f.children, before)
	}
}

func TestSelectionChangeRoundTrip(t *testing.T) {
	f := newFakeTree()
	apply := func(s selection.Snapshot) { f.sel = s }
	prev := selection.Snapshot{IDs: []string{"a"}, Primary: "a"}
	next := selection.Snapshot{IDs: []string{"b", "c"}, Primary: "c"}
	f.sel = prev

	cmd := NewSelectionChange(next, prev, apply)
	next.IDs[0] = "mutated"
	cmd.Execute()
	if !reflect.DeepEqual(f.sel.IDs, []string{"b", "c"}) {
		t.Fatalf("selection = %+v", f.sel)
	}
	cmd.Undo()
	if !reflect.DeepEqual(f.sel, prev) {
		t.Errorf("selection after undo = %+v", f.sel)
	}
}

func TestCompoundUndoesInReverse(t *testing.T) {
	var log []string
	rec := func(name string) Command {
		return &recorder{name: name, log: &log}
	}
	c := NewCompound("Paste 2 nodes", rec("one"), rec("two"))
	c.Execute()
	c.Undo()
	want := []string{"do one", "do two", "undo two", "undo one"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
	if c.Describe() != "Paste 2 nodes" || c.CanMergeWith(c) {
		t.Error("compound describe/merge defaults wrong")
	}
}

type recorder struct {
	NoMerge
	name string
	log  *[]string
}

func (r *recorder) Describe() string { return r.name }
func (r *recorder) Execute()         { *r.log = append(*r.log, "do "+r.name) }
func (r *recorder) Undo()            { *r.log = append(*r.log, "undo "+r.name) }
