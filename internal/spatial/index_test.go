package spatial

import (
	"reflect"
	"testing"

	"github.com/bethropolis/tidecanvas/internal/types"
)

func TestQueryAndAt(t *testing.T) {
	x := New()
	x.Insert("a", types.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	x.Insert("b", types.Rect{X: 5, Y: 5, Width: 10, Height: 10})
	x.Insert("c", types.Rect{X: 100, Y: 100, Width: -10, Height: -10})

	tests := []struct {
		name string
		r    types.Rect
		want []string
	}{
		{"overlap both", types.Rect{X: 6, Y: 6, Width: 1, Height: 1}, []string{"a", "b"}},
		{"touching edge", types.Rect{X: 15, Y: 15, Width: 5, Height: 5}, []string{"b"}},
		{"normalized bounds", types.Rect{X: 95, Y: 95, Width: 1, Height: 1}, []string{"c"}},
		{"empty", types.Rect{X: 50, Y: 50, Width: 1, Height: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := x.Query(tt.r); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Query(%+v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}

	if id, ok := x.At(types.Point{X: 7, Y: 7}); !ok || id != "b" {
		t.Errorf("At() = %q,%v, want topmost b", id, ok)
	}
	if _, ok := x.At(types.Point{X: -1, Y: -1}); ok {
		t.Error("At() outside every node should miss")
	}
}

func TestInsertReplaceAndRemove(t *testing.T) {
	x := New()
	x.Insert("a", types.Rect{Width: 1, Height: 1})
	x.Insert("b", types.Rect{Width: 1, Height: 1})
	x.Insert("a", types.Rect{X: 50, Y: 50, Width: 1, Height: 1})

	if id, _ := x.At(types.Point{X: 0.5, Y: 0.5}); id != "b" {
		t.Errorf("At() = %q, want b", id)
	}
	x.Remove("a")
	x.Remove("missing")
	if x.Len() != 1 {
		t.Errorf("Len() = %d, want 1", x.Len())
	}
	if r, ok := x.Bounds("b"); !ok || r.Width != 1 {
		t.Errorf("Bounds(b) = %+v,%v", r, ok)
	}
}
