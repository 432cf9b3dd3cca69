package modehandler

import (
	"fmt"

	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/core/command"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/types"
	"github.com/gdamore/tcell/v2"
)

type dragKind int

const (
	dragNone dragKind = iota
	dragMove
	dragMarquee
	dragPan
	dragCreate
)

// drag tracks a primary-button gesture from press to release.
type drag struct {
	kind     dragKind
	origin   types.Point // canvas point of the press
	last     types.Point // canvas point (screen point for dragPan)
	additive bool
	moved    bool
}

func (d drag) active() bool { return d.kind != dragNone }

// Dragging reports whether a mouse gesture is in progress.
func (mh *ModeHandler) Dragging() bool { return mh.drag.active() }

// Default sizes for shapes created with a click instead of a drag.
var defaultShapeSize = map[core.Tool]types.Point{
	core.ToolFrame:     {X: 30, Y: 12},
	core.ToolRectangle: {X: 12, Y: 5},
	core.ToolEllipse:   {X: 10, Y: 5},
	core.ToolText:      {X: 12, Y: 1},
}

var toolNodeType = map[core.Tool]scene.NodeType{
	core.ToolFrame:     scene.TypeFrame,
	core.ToolRectangle: scene.TypeRectangle,
	core.ToolEllipse:   scene.TypeEllipse,
	core.ToolText:      scene.TypeText,
}

// HandleMouseEvent handles a mouse event whose coordinates are relative to
// the canvas area. Returns true if a redraw is needed.
func (mh *ModeHandler) HandleMouseEvent(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	screenPt := types.Point{X: float64(x), Y: float64(y)}
	p := mh.doc.View().ScreenToCanvas(screenPt)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		mh.doc.View().ZoomAt(zoomStep, screenPt)
		return true
	case buttons&tcell.WheelDown != 0:
		mh.doc.View().ZoomAt(1/zoomStep, screenPt)
		return true
	case buttons&tcell.Button1 != 0:
		if !mh.drag.active() {
			mh.press(p, screenPt, ev.Modifiers()&tcell.ModShift != 0)
		} else {
			mh.dragTo(p, screenPt)
		}
		return true
	case mh.drag.active():
		mh.release(p)
		return true
	}

	// Plain motion updates the hover highlight.
	hovered, _ := mh.doc.HitTest(p)
	if hovered == mh.doc.Selection().Hovered() {
		return false
	}
	mh.doc.Selection().SetHovered(hovered)
	return true
}

func (mh *ModeHandler) press(p, screenPt types.Point, shift bool) {
	doc := mh.doc
	sel := doc.Selection()
	mh.drag = drag{origin: p, last: p, additive: shift}

	switch tool := doc.ActiveTool(); tool {
	case core.ToolHand:
		mh.drag.kind = dragPan
		mh.drag.last = screenPt
	case core.ToolSelect:
		hit, ok := doc.HitTest(p)
		if !ok {
			mh.drag.kind = dragMarquee
			sel.StartMarquee(p)
			return
		}
		switch {
		case shift:
			sel.Toggle(hit)
		case !sel.IsSelected(hit):
			sel.Select(hit, false)
		}
		if sel.Len() == 0 {
			mh.drag = drag{}
			return
		}
		mh.drag.kind = dragMove
		doc.StartCommandGroup(fmt.Sprintf("Move %d node%s", sel.Len(), plural(sel.Len())))
	default:
		mh.drag.kind = dragCreate
	}
}

func (mh *ModeHandler) dragTo(p, screenPt types.Point) {
	doc := mh.doc
	switch mh.drag.kind {
	case dragPan:
		doc.View().PanBy(screenPt.Sub(mh.drag.last))
		mh.drag.last = screenPt
	case dragMarquee:
		doc.Selection().UpdateMarquee(p)
	case dragMove:
		delta := p.Sub(mh.drag.last)
		if delta.IsZero() {
			return
		}
		if err := doc.ExecuteCommand(doc.NewMoveCommand(doc.Selection().Selected(), delta)); err != nil {
			mh.statusBar.SetTemporaryMessage("Move failed: %v", err)
			return
		}
		mh.drag.last = p
		mh.drag.moved = true
	case dragCreate:
		mh.drag.last = p
	}
}

func (mh *ModeHandler) release(p types.Point) {
	doc := mh.doc
	d := mh.drag
	mh.drag = drag{}

	switch d.kind {
	case dragMarquee:
		doc.Selection().UpdateMarquee(p)
		doc.EndMarquee(d.additive)
	case dragMove:
		doc.EndCommandGroup()
		if d.moved {
			logger.DebugTagf("mode", "drag moved selection by %v", p.Sub(d.origin))
		}
	case dragCreate:
		mh.createShape(types.RectFromPoints(d.origin, p))
	}
}

// cancelDrag abandons the current gesture. A move that already ran stays in
// history as one entry.
func (mh *ModeHandler) cancelDrag() {
	switch mh.drag.kind {
	case dragMarquee:
		mh.doc.Selection().CancelMarquee()
	case dragMove:
		mh.doc.EndCommandGroup()
	}
	mh.drag = drag{}
}

// createShape adds a node of the active tool's type covering r, selects it
// and returns to the select tool.
func (mh *ModeHandler) createShape(r types.Rect) {
	doc := mh.doc
	tool := doc.ActiveTool()
	nodeType, ok := toolNodeType[tool]
	if !ok {
		return
	}
	if r.Width < 1 || r.Height < 1 {
		size := defaultShapeSize[tool]
		r.Width, r.Height = size.X, size.Y
	}

	node := scene.Node{
		scene.KeyType: string(nodeType),
		scene.KeyName: defaultName(nodeType),
	}
	if nodeType == scene.TypeText {
		node[scene.KeyCharacters] = "Text"
	}
	scene.SetBounds(node, r)

	create := doc.NewCreateCommand(node, doc.ScopeParent(), -1)
	selectIt := doc.NewSelectionChangeCommand([]string{create.Node.ID()})
	if err := doc.ExecuteCommand(command.NewCompound(create.Describe(), create, selectIt)); err != nil {
		mh.statusBar.SetTemporaryMessage("Create failed: %v", err)
		return
	}
	mh.setTool(core.ToolSelect)
}

func defaultName(t scene.NodeType) string {
	switch t {
	case scene.TypeFrame:
		return "Frame"
	case scene.TypeRectangle:
		return "Rectangle"
	case scene.TypeEllipse:
		return "Ellipse"
	case scene.TypeText:
		return "Text"
	}
	return string(t)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
