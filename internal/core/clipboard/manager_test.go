package clipboard

import (
	"errors"
	"testing"

	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/types"
)

type fakeSystem struct {
	text string
	err  error
}

func (f *fakeSystem) WriteAll(text string) error { f.text = text; return f.err }
func (f *fakeSystem) ReadAll() (string, error)   { return f.text, f.err }

func sample() Content {
	return Content{
		Roots: []scene.Node{{"id": "a", "children": []string{"b"}}},
		Descendants: map[string]scene.Node{
			"b": {"id": "b", "parentId": "a"},
		},
		Origin: types.Point{X: 5, Y: 6},
	}
}

func TestSetGetIsolation(t *testing.T) {
	m := NewManager(nil)
	c := sample()
	m.Set(c)
	c.Roots[0]["id"] = "mutated"

	got, ok := m.Get()
	if !ok || got.Roots[0].ID() != "a" {
		t.Fatalf("Get() = %+v,%v", got, ok)
	}
	got.Descendants["b"]["parentId"] = "x"
	again, _ := m.Get()
	if again.Descendants["b"].ParentID() != "a" {
		t.Error("Get should return independent copies")
	}
}

func TestEmpty(t *testing.T) {
	m := NewManager(nil)
	if _, ok := m.Get(); ok {
		t.Error("empty clipboard should report no content")
	}
	m.Set(sample())
	m.Clear()
	if m.HasContent() {
		t.Error("Clear should empty the buffer")
	}
}

func TestSystemMirror(t *testing.T) {
	sys := &fakeSystem{}
	m := NewManager(sys)
	m.Set(sample())
	if sys.text == "" {
		t.Fatal("content was not mirrored")
	}

	other := NewManager(sys)
	got, ok := other.Get()
	if !ok {
		t.Fatal("expected import from system clipboard")
	}
	if got.Roots[0].ID() != "a" || got.Origin != (types.Point{X: 5, Y: 6}) {
		t.Errorf("imported %+v", got)
	}
	if kids := got.Roots[0].Children(); len(kids) != 1 || kids[0] != "b" {
		t.Errorf("children = %v", kids)
	}
}

func TestForeignSystemText(t *testing.T) {
	m := NewManager(&fakeSystem{text: "hello"})
	if err := m.Import(); !errors.Is(err, ErrNotOurs) {
		t.Errorf("Import() = %v, want ErrNotOurs", err)
	}
}

func TestPasteCounter(t *testing.T) {
	m := NewManager(nil)
	m.Set(sample())
	m.NextPaste()
	if m.NextPaste() != 2 {
		t.Error("NextPaste should count up")
	}
	m.Set(sample())
	if m.NextPaste() != 1 {
		t.Error("Set should reset the paste counter")
	}
}
