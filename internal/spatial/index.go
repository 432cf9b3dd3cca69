// Package spatial answers rectangle and point queries over node bounds.
package spatial

import (
	"github.com/bethropolis/tidecanvas/internal/types"
)

type item struct {
	id     string
	bounds types.Rect
}

// Index keeps bounds in insertion order. Later items are treated as drawn
// on top of earlier ones.
type Index struct {
	items []item
	pos   map[string]int
}

func New() *Index {
	return &Index{pos: make(map[string]int)}
}

// Insert adds id or replaces its bounds, keeping its original position.
func (x *Index) Insert(id string, bounds types.Rect) {
	bounds = bounds.Normalize()
	if i, ok := x.pos[id]; ok {
		x.items[i].bounds = bounds
		return
	}
	x.pos[id] = len(x.items)
	x.items = append(x.items, item{id: id, bounds: bounds})
}

// Remove drops id. Unknown ids are ignored.
func (x *Index) Remove(id string) {
	i, ok := x.pos[id]
	if !ok {
		return
	}
	x.items = append(x.items[:i], x.items[i+1:]...)
	delete(x.pos, id)
	for j := i; j < len(x.items); j++ {
		x.pos[x.items[j].id] = j
	}
}

func (x *Index) Len() int { return len(x.items) }

// Bounds returns the stored bounds of id.
func (x *Index) Bounds(id string) (types.Rect, bool) {
	i, ok := x.pos[id]
	if !ok {
		return types.Rect{}, false
	}
	return x.items[i].bounds, true
}

// Query returns ids whose bounds intersect r, in insertion order.
func (x *Index) Query(r types.Rect) []string {
	var out []string
	for _, it := range x.items {
		if it.bounds.Intersects(r) {
			out = append(out, it.id)
		}
	}
	return out
}

// At returns the topmost id whose bounds contain p.
func (x *Index) At(p types.Point) (string, bool) {
	for i := len(x.items) - 1; i >= 0; i-- {
		if x.items[i].bounds.ContainsPoint(p) {
			return x.items[i].id, true
		}
	}
	return "", false
}
