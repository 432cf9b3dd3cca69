package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/idgen"
	"github.com/bethropolis/tidecanvas/internal/plugin"
	"github.com/bethropolis/tidecanvas/internal/scenefile"
	"github.com/bethropolis/tidecanvas/internal/theme"
)

// fakeAPI implements the parts of plugin.EditorAPI the commands use.
type fakeAPI struct {
	plugin.EditorAPI
	doc      *core.Document
	commands map[string]plugin.CommandFunc
	message  string
	path     string
	saveErr  error
	quits    []bool
	events   []event.Type
	theme    string
}

func newFakeAPI() *fakeAPI {
	doc := core.NewDocument(core.Options{NewID: idgen.Sequential("n")})
	f := scenefile.Sample()
	doc.LoadDocument(f.Nodes, f.Roots, f.Name, f.ID)
	api := &fakeAPI{doc: doc, commands: map[string]plugin.CommandFunc{}, path: "scene.json", theme: theme.CanvasDark.Name}
	RegisterAppCommands(api)
	return api
}

func (f *fakeAPI) Document() *core.Document { return f.doc }
func (f *fakeAPI) DocumentPath() string     { return f.path }
func (f *fakeAPI) SaveDocument(path ...string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if len(path) > 0 {
		f.path = path[0]
	}
	f.doc.MarkSaved()
	return nil
}
func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, ok := f.commands[name]; ok {
		return fmt.Errorf("command '%s' already registered", name)
	}
	f.commands[name] = fn
	return nil
}
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.message = fmt.Sprintf(format, args...)
}
func (f *fakeAPI) RequestQuit(force bool) bool {
	f.quits = append(f.quits, force)
	return true
}
func (f *fakeAPI) DispatchEvent(t event.Type, data interface{}) { f.events = append(f.events, t) }
func (f *fakeAPI) GetTheme() *theme.Theme                       { return &theme.Theme{Name: f.theme} }
func (f *fakeAPI) ListThemes() []string {
	return []string{theme.CanvasDark.Name, theme.CanvasLight.Name}
}
func (f *fakeAPI) SetTheme(name string) error {
	for _, n := range f.ListThemes() {
		if n == name {
			f.theme = name
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeAPI) run(t *testing.T, name string, args ...string) error {
	t.Helper()
	fn, ok := f.commands[name]
	if !ok {
		t.Fatalf("command %q not registered", name)
	}
	return fn(args)
}

func TestWriteAndQuit(t *testing.T) {
	api := newFakeAPI()
	api.doc.SetName("Renamed")
	if err := api.run(t, "w", "other.yaml"); err != nil {
		t.Fatal(err)
	}
	if api.path != "other.yaml" || api.doc.IsDirty() {
		t.Errorf("path = %q, dirty = %v", api.path, api.doc.IsDirty())
	}
	if api.message != "Saved other.yaml" {
		t.Errorf("message = %q", api.message)
	}

	api.saveErr = errors.New("read-only")
	if err := api.run(t, "wq"); err == nil {
		t.Error("wq should report the save error")
	}
	if len(api.quits) != 0 {
		t.Error("wq must not quit when the save fails")
	}
	api.run(t, "q")
	api.run(t, "q!")
	if len(api.quits) != 2 || api.quits[0] || !api.quits[1] {
		t.Errorf("quits = %v", api.quits)
	}
}

func TestHistoryCommands(t *testing.T) {
	api := newFakeAPI()
	doc := api.doc
	doc.ExecuteCommand(doc.NewDeleteCommand([]string{"text-1"}))
	doc.ExecuteCommand(doc.NewDeleteCommand([]string{"frame-1"}))

	api.run(t, "history")
	if api.message != "History 2/2: Delete 1 node" {
		t.Errorf("message = %q", api.message)
	}
	if err := api.run(t, "jump", "0"); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.Node("text-1"); !ok {
		t.Error("jump 0 should restore the original scene")
	}
	if api.message != "History 0/2: original" {
		t.Errorf("message = %q", api.message)
	}
	if err := api.run(t, "jump", "3"); err == nil {
		t.Error("jump past the end should fail")
	}
	if err := api.run(t, "jump", "x"); err == nil {
		t.Error("non-numeric jump should fail")
	}
	api.run(t, "redo")
	if doc.HistoryIndex() != 0 {
		t.Errorf("HistoryIndex() = %d after redo", doc.HistoryIndex())
	}
	api.run(t, "undo")
	api.run(t, "undo")
	if api.message != "Nothing to undo" {
		t.Errorf("message = %q", api.message)
	}
}

func TestRenameAndSet(t *testing.T) {
	api := newFakeAPI()
	doc := api.doc

	api.run(t, "rename", "My", "Scene")
	if doc.Name() != "My Scene" {
		t.Errorf("Name() = %q", doc.Name())
	}

	doc.Selection().Select("rect-1", false)
	api.run(t, "rename", "Banner")
	if n, _ := doc.Node("rect-1"); n.Name() != "Banner" {
		t.Errorf("node name = %q", n.Name())
	}

	if err := api.run(t, "set", "visible", "false"); err != nil {
		t.Fatal(err)
	}
	if n, _ := doc.Node("rect-1"); n.Visible() {
		t.Error("set visible false should hide the node")
	}
	doc.Selection().SelectMultiple([]string{"rect-1", "ellipse-1"}, false)
	before := doc.HistoryLen()
	api.run(t, "set", "opacity", "0.5")
	if doc.HistoryLen() != before+1 {
		t.Errorf("set on two nodes added %d entries, want 1", doc.HistoryLen()-before)
	}
	if n, _ := doc.Node("ellipse-1"); n["opacity"] != 0.5 {
		t.Errorf("opacity = %v", n["opacity"])
	}

	doc.Selection().Clear()
	if err := api.run(t, "set", "opacity", "1"); !errors.Is(err, core.ErrNothingSelected) {
		t.Errorf("err = %v, want ErrNothingSelected", err)
	}
}

func TestPageToolZoom(t *testing.T) {
	api := newFakeAPI()
	doc := api.doc

	if err := api.run(t, "page", "nope"); !errors.Is(err, core.ErrNodeNotFound) {
		t.Errorf("page nope err = %v", err)
	}
	api.run(t, "page")
	if api.message != "Active page: page-1" {
		t.Errorf("message = %q", api.message)
	}

	if err := api.run(t, "tool", "ellipse"); err != nil {
		t.Fatal(err)
	}
	if doc.ActiveTool() != core.ToolEllipse {
		t.Errorf("ActiveTool() = %v", doc.ActiveTool())
	}
	if len(api.events) != 1 || api.events[0] != event.TypeToolChanged {
		t.Errorf("events = %v", api.events)
	}
	if err := api.run(t, "tool", "lasso"); err == nil {
		t.Error("unknown tool should fail")
	}

	if err := api.run(t, "zoom", "200%"); err != nil {
		t.Fatal(err)
	}
	if doc.View().Zoom() != 2 {
		t.Errorf("Zoom() = %v", doc.View().Zoom())
	}
	if err := api.run(t, "zoom", "-5"); err == nil {
		t.Error("negative zoom should fail")
	}
}

func TestThemeCommands(t *testing.T) {
	api := newFakeAPI()
	if err := api.run(t, "theme", "Canvas", "Light"); err != nil {
		t.Fatal(err)
	}
	if api.theme != theme.CanvasLight.Name {
		t.Errorf("theme = %q", api.theme)
	}
	if err := api.run(t, "theme", "Solarized"); err == nil {
		t.Error("unknown theme should fail")
	}
	api.run(t, "themes")
	if api.message != "Available themes: Canvas Dark, Canvas Light" {
		t.Errorf("message = %q", api.message)
	}
	if err := api.run(t, "theme", "next"); err != nil || api.theme != theme.CanvasDark.Name {
		t.Errorf(":theme next -> %q, err = %v", api.theme, err)
	}
	if api.message != "Theme: Canvas Dark" {
		t.Errorf("message = %q", api.message)
	}
}

func TestNextTheme(t *testing.T) {
	names := []string{"A", "B", "C"}
	if got := nextTheme(names, "b"); got != "C" {
		t.Errorf("nextTheme(b) = %q", got)
	}
	if got := nextTheme(names, "C"); got != "A" {
		t.Errorf("nextTheme(C) = %q, want wrap", got)
	}
	if got := nextTheme(names, "zzz"); got != "A" {
		t.Errorf("nextTheme(unknown) = %q", got)
	}
}

func TestParseValue(t *testing.T) {
	cases := map[string]interface{}{
		"true":  true,
		"false": false,
		"1":     1.0,
		"2.5":   2.5,
		"null":  nil,
		"red":   "red",
	}
	for in, want := range cases {
		if got := ParseValue(in); got != want {
			t.Errorf("ParseValue(%q) = %v, want %v", in, got, want)
		}
	}
}
