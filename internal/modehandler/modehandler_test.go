package modehandler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/idgen"
	"github.com/bethropolis/tidecanvas/internal/input"
	"github.com/bethropolis/tidecanvas/internal/scenefile"
	"github.com/bethropolis/tidecanvas/internal/statusbar"
	"github.com/bethropolis/tidecanvas/internal/types"
	"github.com/gdamore/tcell/v2"
)

type harness struct {
	mh     *ModeHandler
	doc    *core.Document
	sb     *statusbar.StatusBar
	quits  int
	saved  []string
	saveFn func(string) error
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}
	h.doc = core.NewDocument(core.Options{NewID: idgen.Sequential("n")})
	f := scenefile.Sample()
	h.doc.LoadDocument(f.Nodes, f.Roots, f.Name, f.ID)
	h.sb = statusbar.New(statusbar.DefaultConfig())
	h.mh = New(Config{
		Document:       h.doc,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   event.NewManager(),
		StatusBar:      h.sb,
		Quit:           func() { h.quits++ },
		Save: func(path string) error {
			h.saved = append(h.saved, path)
			if h.saveFn != nil {
				return h.saveFn(path)
			}
			h.doc.MarkSaved()
			return nil
		},
		CanvasSize: func() (int, int) { return 80, 23 },
	})
	return h
}

func (h *harness) key(k tcell.Key) bool {
	return h.mh.HandleKeyEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) shiftKey(k tcell.Key) bool {
	return h.mh.HandleKeyEvent(tcell.NewEventKey(k, 0, tcell.ModShift))
}

func (h *harness) runes(s string) {
	for _, r := range s {
		h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (h *harness) mouse(x, y int, buttons tcell.ButtonMask) {
	h.mh.HandleMouseEvent(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

func (h *harness) pos(t *testing.T, id string) types.Point {
	t.Helper()
	p, ok := h.doc.GetNodePosition(id)
	if !ok {
		t.Fatalf("node %s has no position", id)
	}
	return p
}

func (h *harness) message() string {
	text, _ := h.sb.Text()
	return text
}

func TestNudgeAndUndo(t *testing.T) {
	h := newHarness(t)
	h.doc.Selection().Select("frame-1", false)

	h.key(tcell.KeyRight)
	h.shiftKey(tcell.KeyDown)
	if got := h.pos(t, "frame-1"); got != (types.Point{X: 5, Y: 12}) {
		t.Fatalf("after nudges frame at %v, want (5,12)", got)
	}
	if h.doc.HistoryLen() != 2 {
		t.Errorf("HistoryLen() = %d, want one entry per nudge", h.doc.HistoryLen())
	}

	h.runes("u")
	if got := h.pos(t, "frame-1"); got != (types.Point{X: 5, Y: 2}) {
		t.Errorf("after undo frame at %v, want (5,2)", got)
	}
	if h.message() != "Undo: Move 1 node" {
		t.Errorf("message = %q", h.message())
	}
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl))
	if got := h.pos(t, "frame-1"); got != (types.Point{X: 5, Y: 12}) {
		t.Errorf("after redo frame at %v", got)
	}
}

func TestNudgeWithoutSelection(t *testing.T) {
	h := newHarness(t)
	h.key(tcell.KeyLeft)
	if h.message() != "Nothing selected" {
		t.Errorf("message = %q", h.message())
	}
	if h.doc.HistoryLen() != 0 {
		t.Error("no history entry expected")
	}
}

func TestEscapeChain(t *testing.T) {
	h := newHarness(t)
	sel := h.doc.Selection()
	sel.Select("frame-1", false)
	h.key(tcell.KeyEnter)
	if sel.EnteredGroup() != "frame-1" {
		t.Fatalf("EnteredGroup() = %q", sel.EnteredGroup())
	}
	sel.Select("rect-1", false)

	h.key(tcell.KeyEscape)
	if sel.EnteredGroup() != "" {
		t.Error("first Esc should leave the group")
	}
	sel.Select("text-1", false)
	h.key(tcell.KeyEscape)
	if sel.Len() != 0 {
		t.Error("second Esc should clear the selection")
	}
	h.key(tcell.KeyEscape)
	if h.quits != 1 {
		t.Errorf("quits = %d, want 1 for a clean document", h.quits)
	}
}

func TestQuitWarnsWhenDirty(t *testing.T) {
	h := newHarness(t)
	h.doc.Selection().Select("text-1", false)
	h.key(tcell.KeyDelete)
	if !h.doc.IsDirty() {
		t.Fatal("delete should dirty the document")
	}
	h.runes("q")
	if h.quits != 0 {
		t.Fatal("first quit should only warn")
	}
	h.runes("q")
	if h.quits != 1 {
		t.Errorf("second quit should go ahead, quits = %d", h.quits)
	}
}

func TestSaveReportsErrors(t *testing.T) {
	h := newHarness(t)
	h.saveFn = func(string) error { return errors.New("disk full") }
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	if h.message() != "Save FAILED: disk full" {
		t.Errorf("message = %q", h.message())
	}
}

func TestCycleAndSelectAll(t *testing.T) {
	h := newHarness(t)
	sel := h.doc.Selection()
	h.key(tcell.KeyTab)
	if sel.Primary() != "frame-1" {
		t.Errorf("Tab selected %q", sel.Primary())
	}
	h.key(tcell.KeyTab)
	if sel.Primary() != "text-1" {
		t.Errorf("second Tab selected %q", sel.Primary())
	}
	h.key(tcell.KeyTab)
	if sel.Primary() != "frame-1" {
		t.Errorf("Tab should wrap, got %q", sel.Primary())
	}
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl))
	if !reflect.DeepEqual(sel.Selected(), []string{"frame-1", "text-1"}) {
		t.Errorf("select all = %v", sel.Selected())
	}
}

func TestGroupUngroupKeys(t *testing.T) {
	h := newHarness(t)
	h.doc.Selection().SelectMultiple([]string{"frame-1", "text-1"}, false)
	h.runes("g")
	roots := h.doc.Children("page-1")
	if len(roots) != 1 {
		t.Fatalf("page children after group = %v", roots)
	}
	group := roots[0]
	h.doc.Selection().Select(group, false)
	h.runes("G")
	if got := h.doc.Children("page-1"); !reflect.DeepEqual(got, []string{"frame-1", "text-1"}) {
		t.Errorf("page children after ungroup = %v", got)
	}
}

func TestReorderKeys(t *testing.T) {
	h := newHarness(t)
	h.doc.Selection().Select("frame-1", false)
	h.runes("]")
	if got := h.doc.Children("page-1"); !reflect.DeepEqual(got, []string{"text-1", "frame-1"}) {
		t.Errorf("after bring forward = %v", got)
	}
	before := h.doc.HistoryLen()
	h.runes("]")
	if h.doc.HistoryLen() != before {
		t.Error("bringing the top node forward should not add history")
	}
}

func TestCopyPasteKeys(t *testing.T) {
	h := newHarness(t)
	h.runes("p")
	if h.message() != "Clipboard empty" {
		t.Errorf("message = %q", h.message())
	}
	h.doc.Selection().Select("text-1", false)
	h.runes("yp")
	if got := h.doc.Children("page-1"); len(got) != 3 {
		t.Errorf("page children after paste = %v", got)
	}
}

func TestCommandMode(t *testing.T) {
	h := newHarness(t)
	var got []string
	if err := h.mh.RegisterCommand("echo", func(args []string) error {
		got = args
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := h.mh.RegisterCommand("echo", nil); err == nil {
		t.Error("duplicate registration should fail")
	}

	h.runes(":echo a bx")
	if h.mh.GetCurrentMode() != ModeCommand {
		t.Fatal("':' should enter command mode")
	}
	h.key(tcell.KeyBackspace2)
	if h.mh.GetCommandBuffer() != "echo a b" {
		t.Errorf("buffer = %q", h.mh.GetCommandBuffer())
	}
	h.key(tcell.KeyEnter)
	if h.mh.GetCurrentMode() != ModeNormal {
		t.Error("Enter should return to normal mode")
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("args = %v", got)
	}

	h.runes(":nope")
	h.key(tcell.KeyEnter)
	if h.message() != "Unknown command: nope" {
		t.Errorf("message = %q", h.message())
	}
}

func TestMouseDragMovesAsOneStep(t *testing.T) {
	h := newHarness(t)
	h.mouse(10, 5, tcell.Button1)
	if h.doc.Selection().Primary() != "frame-1" {
		t.Fatalf("click selected %q", h.doc.Selection().Primary())
	}
	h.mouse(11, 6, tcell.Button1)
	h.mouse(13, 7, tcell.Button1)
	h.mouse(13, 7, tcell.ButtonNone)

	if got := h.pos(t, "frame-1"); got != (types.Point{X: 7, Y: 4}) {
		t.Errorf("frame at %v, want (7,4)", got)
	}
	if got := h.pos(t, "rect-1"); got != (types.Point{X: 9, Y: 5}) {
		t.Errorf("child at %v, want (9,5)", got)
	}
	if h.doc.HistoryLen() != 1 {
		t.Fatalf("HistoryLen() = %d, want 1", h.doc.HistoryLen())
	}
	h.doc.Undo()
	if got := h.pos(t, "frame-1"); got != (types.Point{X: 4, Y: 2}) {
		t.Errorf("after undo frame at %v", got)
	}
}

func TestMouseMarquee(t *testing.T) {
	h := newHarness(t)
	h.mouse(0, 0, tcell.Button1)
	h.mouse(70, 20, tcell.Button1)
	if _, ok := h.doc.Selection().Marquee(); !ok {
		t.Fatal("marquee should be open while dragging")
	}
	h.mouse(70, 20, tcell.ButtonNone)
	if got := h.doc.Selection().Selected(); !reflect.DeepEqual(got, []string{"frame-1", "text-1"}) {
		t.Errorf("marquee selected %v", got)
	}
	if h.doc.HistoryLen() != 0 {
		t.Error("marquee selection should not be recorded in history")
	}
}

func TestMouseCreateShape(t *testing.T) {
	h := newHarness(t)
	h.runes("r")
	if h.doc.ActiveTool() != core.ToolRectangle {
		t.Fatalf("tool = %v", h.doc.ActiveTool())
	}
	h.mouse(60, 10, tcell.Button1)
	h.mouse(70, 15, tcell.Button1)
	h.mouse(70, 15, tcell.ButtonNone)

	b, ok := h.doc.GetNodeBounds("n-1")
	if !ok || b != (types.Rect{X: 60, Y: 10, Width: 10, Height: 5}) {
		t.Fatalf("created bounds = %+v, %v", b, ok)
	}
	if h.doc.ParentOf("n-1") != "page-1" {
		t.Errorf("parent = %q", h.doc.ParentOf("n-1"))
	}
	if h.doc.Selection().Primary() != "n-1" || h.doc.ActiveTool() != core.ToolSelect {
		t.Error("new shape should be selected with the select tool active")
	}
	h.doc.Undo()
	if _, ok := h.doc.Node("n-1"); ok {
		t.Error("undo should remove the created shape")
	}
}

func TestMouseWheelZoomAndHover(t *testing.T) {
	h := newHarness(t)
	h.mouse(10, 10, tcell.WheelUp)
	if z := h.doc.View().Zoom(); z != zoomStep {
		t.Errorf("zoom = %v, want %v", z, zoomStep)
	}
	h.doc.View().Reset()

	if !h.mh.HandleMouseEvent(tcell.NewEventMouse(52, 4, tcell.ButtonNone, tcell.ModNone)) {
		t.Error("hover change should request a redraw")
	}
	if h.doc.Selection().Hovered() != "text-1" {
		t.Errorf("Hovered() = %q", h.doc.Selection().Hovered())
	}
}
