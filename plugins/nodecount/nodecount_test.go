package nodecount

import (
	"fmt"
	"testing"

	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/plugin"
	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/scenefile"
)

type fakeAPI struct {
	plugin.EditorAPI
	doc     *core.Document
	cmds    map[string]plugin.CommandFunc
	message string
}

func (f *fakeAPI) Document() *core.Document { return f.doc }
func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, ok := f.cmds[name]; ok {
		return fmt.Errorf("command '%s' already registered", name)
	}
	f.cmds[name] = fn
	return nil
}
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.message = fmt.Sprintf(format, args...)
}

func TestCountCommand(t *testing.T) {
	doc := core.NewDocument(core.Options{})
	f := scenefile.Sample()
	doc.LoadDocument(f.Nodes, f.Roots, f.Name, f.ID)
	doc.Selection().Select("frame-1", false)

	api := &fakeAPI{doc: doc, cmds: map[string]plugin.CommandFunc{}}
	p := New()
	if err := p.Initialize(api); err != nil {
		t.Fatal(err)
	}
	if err := p.Initialize(api); err == nil {
		t.Error("registering :count twice should fail")
	}
	if err := api.cmds["count"](nil); err != nil {
		t.Fatal(err)
	}
	want := "5 nodes: 1 CANVAS, 1 ELLIPSE, 1 FRAME, 1 RECTANGLE, 1 TEXT | 1 selected"
	if api.message != want {
		t.Errorf("message = %q, want %q", api.message, want)
	}
}

func TestCountByTypeUnknown(t *testing.T) {
	counts := CountByType(map[string]scene.Node{
		"a": {scene.KeyID: "a"},
		"b": {scene.KeyID: "b", scene.KeyType: string(scene.TypeText)},
	})
	if counts["UNKNOWN"] != 1 || counts[scene.TypeText] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
