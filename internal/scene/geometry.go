package scene

import "github.com/bethropolis/tidecanvas/internal/types"

// PositionSource identifies which property a node's position is read from.
type PositionSource int

const (
	SourceNone PositionSource = iota
	SourceTransform
	SourceBoundingBox
)

func (s PositionSource) String() string {
	switch s {
	case SourceTransform:
		return "transform"
	case SourceBoundingBox:
		return "boundingBox"
	}
	return "none"
}

// PositionSourceOf resolves where the node's position lives. The transform
// translation wins over the bounding box when both are present.
func PositionSourceOf(n Node) PositionSource {
	if t, ok := AsMap(n[KeyTransform]); ok {
		if _, hasX := ToFloat(t["m02"]); hasX {
			return SourceTransform
		}
	}
	if bb, ok := AsMap(n[KeyBoundingBox]); ok {
		if _, hasX := ToFloat(bb["x"]); hasX {
			return SourceBoundingBox
		}
	}
	return SourceNone
}

// Position returns the node's top-left position.
func Position(n Node) (types.Point, bool) {
	switch PositionSourceOf(n) {
	case SourceTransform:
		t, _ := AsMap(n[KeyTransform])
		x, _ := ToFloat(t["m02"])
		y, _ := ToFloat(t["m12"])
		return types.Point{X: x, Y: y}, true
	case SourceBoundingBox:
		bb, _ := AsMap(n[KeyBoundingBox])
		x, _ := ToFloat(bb["x"])
		y, _ := ToFloat(bb["y"])
		return types.Point{X: x, Y: y}, true
	}
	return types.Point{}, false
}

// Size returns width/height, preferring the size vector over the bounding box.
func Size(n Node) (types.Point, bool) {
	if s, ok := AsMap(n[KeySize]); ok {
		w, okW := ToFloat(s["x"])
		h, okH := ToFloat(s["y"])
		if okW && okH {
			return types.Point{X: w, Y: h}, true
		}
	}
	if bb, ok := AsMap(n[KeyBoundingBox]); ok {
		w, okW := ToFloat(bb["width"])
		h, okH := ToFloat(bb["height"])
		if okW && okH {
			return types.Point{X: w, Y: h}, true
		}
	}
	return types.Point{}, false
}

// Bounds combines Position and Size. A node without a position has no bounds;
// a node without a size is treated as a point.
func Bounds(n Node) (types.Rect, bool) {
	pos, ok := Position(n)
	if !ok {
		return types.Rect{}, false
	}
	size, _ := Size(n)
	return types.Rect{X: pos.X, Y: pos.Y, Width: size.X, Height: size.Y}, true
}

// Translate adds delta to every position representation the node carries.
// Transform and bounding box are treated as mirrored views of the same
// position, so both move together. Returns false if the node has neither.
func Translate(n Node, delta types.Point) bool {
	moved := false
	if t, ok := AsMap(n[KeyTransform]); ok {
		x, okX := ToFloat(t["m02"])
		y, okY := ToFloat(t["m12"])
		if okX || okY {
			t["m02"] = x + delta.X
			t["m12"] = y + delta.Y
			moved = true
		}
	}
	if bb, ok := AsMap(n[KeyBoundingBox]); ok {
		x, okX := ToFloat(bb["x"])
		y, okY := ToFloat(bb["y"])
		if okX || okY {
			bb["x"] = x + delta.X
			bb["y"] = y + delta.Y
			moved = true
		}
	}
	return moved
}

// SetBounds writes r into the node. Position goes to every position source the
// node has and size to every size source. A node with no geometry at all gets
// a bounding box.
func SetBounds(n Node, r types.Rect) {
	r = r.Normalize()
	wrote := false
	if t, ok := AsMap(n[KeyTransform]); ok {
		t["m02"] = r.X
		t["m12"] = r.Y
		wrote = true
	}
	if s, ok := AsMap(n[KeySize]); ok {
		s["x"] = r.Width
		s["y"] = r.Height
		wrote = true
	}
	if bb, ok := AsMap(n[KeyBoundingBox]); ok {
		bb["x"] = r.X
		bb["y"] = r.Y
		bb["width"] = r.Width
		bb["height"] = r.Height
		wrote = true
	}
	if !wrote {
		n[KeyBoundingBox] = map[string]any{"x": r.X, "y": r.Y, "width": r.Width, "height": r.Height}
		return
	}
	// A transform-only node still needs somewhere to keep its size.
	if _, ok := Size(n); !ok {
		n[KeySize] = map[string]any{"x": r.Width, "y": r.Height}
	}
}

// NewTransform returns an identity transform translated to p.
func NewTransform(p types.Point) map[string]any {
	return map[string]any{
		"m00": 1.0, "m01": 0.0, "m02": p.X,
		"m10": 0.0, "m11": 1.0, "m12": p.Y,
	}
}
