// Package scene describes scene-graph nodes as open property bags.
//
// The node schema is owned by the file format, not by the editor, so a node is
// kept as a heterogeneous map. The helpers in this package read and write the
// handful of keys the editor core depends on and leave everything else alone.
package scene

import (
	"fmt"
	"strconv"
)

// Well-known property keys.
const (
	KeyID          = "id"
	KeyType        = "type"
	KeyName        = "name"
	KeyChildren    = "children"
	KeyParentID    = "parentId"
	KeyTransform   = "transform"
	KeyBoundingBox = "boundingBox"
	KeySize        = "size"
	KeyRotation    = "rotation"
	KeyVisible     = "visible"
	KeyCharacters  = "characters"
)

// Node is a single scene-graph entry.
type Node map[string]any

// ID returns the node identifier, or "" when absent.
func (n Node) ID() string { return stringValue(n[KeyID]) }

// Name returns the display name.
func (n Node) Name() string { return stringValue(n[KeyName]) }

// Type returns the node type.
func (n Node) Type() NodeType { return NodeType(stringValue(n[KeyType])) }

// ParentID returns the parent identifier, or "" for roots.
func (n Node) ParentID() string { return stringValue(n[KeyParentID]) }

// SetParentID sets the parent reference. An empty id removes the key.
func (n Node) SetParentID(id string) {
	if id == "" {
		delete(n, KeyParentID)
		return
	}
	n[KeyParentID] = id
}

// Children returns a copy of the ordered child id list.
// Decoded documents store children as []any, nodes built in code use []string.
func (n Node) Children() []string {
	switch v := n[KeyChildren].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// HasChildren reports whether the node carries a children list at all.
func (n Node) HasChildren() bool {
	_, ok := n[KeyChildren]
	return ok
}

// SetChildren replaces the child list.
func (n Node) SetChildren(ids []string) {
	out := make([]string, len(ids))
	copy(out, ids)
	n[KeyChildren] = out
}

// IndexOfChild returns the position of childID within the node's children, or -1.
func (n Node) IndexOfChild(childID string) int {
	for i, id := range n.Children() {
		if id == childID {
			return i
		}
	}
	return -1
}

// InsertChild places childID at index. Out of range indexes (including -1) append.
func (n Node) InsertChild(childID string, index int) {
	children := n.Children()
	if index < 0 || index > len(children) {
		index = len(children)
	}
	children = append(children, "")
	copy(children[index+1:], children[index:])
	children[index] = childID
	n.SetChildren(children)
}

// RemoveChild drops childID from the child list and returns its former index.
func (n Node) RemoveChild(childID string) int {
	children := n.Children()
	for i, id := range children {
		if id == childID {
			n.SetChildren(append(children[:i], children[i+1:]...))
			return i
		}
	}
	return -1
}

// Rotation returns the rotation in degrees (0 when absent).
func (n Node) Rotation() float64 {
	f, _ := ToFloat(n[KeyRotation])
	return f
}

// Visible reports the visible flag; nodes without one are visible.
func (n Node) Visible() bool {
	v, ok := n[KeyVisible].(bool)
	return !ok || v
}

// Characters returns the text content of a TEXT node.
func (n Node) Characters() string { return stringValue(n[KeyCharacters]) }

// AsMap returns v as a property map when it is one.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Node:
		return m, true
	}
	return nil, false
}

// ToFloat coerces the numeric representations produced by the decoders.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case fmt.Stringer:
		// json.Number and friends
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	}
	return 0, false
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}
	return ""
}
