package scenefile

import (
	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/types"
)

// Sample returns a small starter scene: one page with a frame holding two
// shapes, and a loose text node.
func Sample() *File {
	box := func(x, y, w, h float64) map[string]any {
		return map[string]any{"x": x, "y": y, "width": w, "height": h}
	}
	return &File{
		ID:    "sample",
		Name:  "Untitled",
		Roots: []string{"page-1"},
		Nodes: map[string]scene.Node{
			"page-1": {
				scene.KeyID: "page-1", scene.KeyType: string(scene.TypeCanvas), scene.KeyName: "Page 1",
				scene.KeyChildren: []string{"frame-1", "text-1"},
			},
			"frame-1": {
				scene.KeyID: "frame-1", scene.KeyType: string(scene.TypeFrame), scene.KeyName: "Card",
				scene.KeyParentID: "page-1", scene.KeyChildren: []string{"rect-1", "ellipse-1"},
				scene.KeyBoundingBox: box(4, 2, 40, 14),
			},
			"rect-1": {
				scene.KeyID: "rect-1", scene.KeyType: string(scene.TypeRectangle), scene.KeyName: "Header",
				scene.KeyParentID: "frame-1", scene.KeyBoundingBox: box(6, 3, 20, 4),
			},
			"ellipse-1": {
				scene.KeyID: "ellipse-1", scene.KeyType: string(scene.TypeEllipse), scene.KeyName: "Avatar",
				scene.KeyParentID: "frame-1", scene.KeyBoundingBox: box(30, 8, 8, 6),
			},
			"text-1": {
				scene.KeyID: "text-1", scene.KeyType: string(scene.TypeText), scene.KeyName: "Caption",
				scene.KeyParentID: "page-1",
				scene.KeyTransform: scene.NewTransform(types.Point{X: 50, Y: 4}),
				scene.KeySize:      map[string]any{"x": 16.0, "y": 2.0},
			},
		},
	}
}
