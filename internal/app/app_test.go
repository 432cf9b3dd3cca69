package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bethropolis/tidecanvas/internal/config"
	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/scenefile"
	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T, path string) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := NewAppWithScreen(config.NewDefaultConfig(), path, screen)
	if err != nil {
		t.Fatalf("NewAppWithScreen() error = %v", err)
	}
	screen.SetSize(80, 24)
	return a, screen
}

func runApp(t *testing.T, a *App) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- a.Run() }()
	return done
}

func waitForExit(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}
}

func TestMissingFileStartsFromSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")
	a, screen := newTestApp(t, path)
	defer screen.Fini()

	if _, ok := a.Document().Node("frame-1"); !ok {
		t.Fatal("sample scene should be loaded")
	}
	if a.FilePath() != path {
		t.Errorf("FilePath() = %q", a.FilePath())
	}
	if err := a.saveDocument(""); err != nil {
		t.Fatal(err)
	}
	f, err := scenefile.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Nodes) != 5 {
		t.Errorf("saved %d nodes, want 5", len(f.Nodes))
	}
}

func TestLoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	err := scenefile.Save(path, &scenefile.File{
		Name:  "Tiny",
		Roots: []string{"p"},
		Nodes: map[string]scene.Node{
			"p": {scene.KeyID: "p", scene.KeyType: string(scene.TypeCanvas), scene.KeyChildren: []string{"r"}},
			"r": {scene.KeyID: "r", scene.KeyType: string(scene.TypeRectangle), scene.KeyParentID: "p"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	a, screen := newTestApp(t, path)
	defer screen.Fini()

	doc := a.Document()
	if doc.Name() != "Tiny" || doc.NodeCount() != 2 || doc.ActivePage() != "p" {
		t.Errorf("loaded name=%q count=%d page=%q", doc.Name(), doc.NodeCount(), doc.ActivePage())
	}
	if doc.IsDirty() {
		t.Error("freshly loaded document should be clean")
	}
}

func TestRejectsUnknownExtension(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if _, err := NewAppWithScreen(nil, "scene.txt", screen); err == nil {
		t.Error("unknown extension should fail")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	a, screen := newTestApp(t, "")
	defer screen.Fini()
	if err := a.saveDocument(""); err == nil {
		t.Error("saving without a path should fail")
	}
	if a.FilePath() != "" {
		t.Error("a failed save must not change the path")
	}
}

func TestRunEditsSavesAndQuits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	a, screen := newTestApp(t, path)
	done := runApp(t, a)

	screen.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyDelete, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	waitForExit(t, done)

	f, err := scenefile.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Nodes["frame-1"]; ok {
		t.Error("deleted frame should not be in the saved scene")
	}
	if _, ok := f.Nodes["text-1"]; !ok {
		t.Error("text-1 should survive")
	}
}

func TestScheduleRunsOnMainLoop(t *testing.T) {
	a, _ := newTestApp(t, "")
	done := runApp(t, a)

	ran := make(chan string, 1)
	go a.Schedule(func() {
		ran <- a.Document().Name()
		a.requestQuit()
	})
	waitForExit(t, done)

	select {
	case name := <-ran:
		if name != scenefile.Sample().Name {
			t.Errorf("scheduled func saw name %q", name)
		}
	default:
		t.Fatal("scheduled func never ran")
	}
}

func TestMouseOnStatusBarIgnored(t *testing.T) {
	a, screen := newTestApp(t, "")
	defer screen.Fini()

	if a.handleEvent(tcell.NewEventMouse(10, 23, tcell.Button1, tcell.ModNone)) {
		t.Error("click on the status bar should be ignored")
	}
	if !a.handleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)) {
		t.Error("click on the canvas should be handled")
	}
	if a.Document().Selection().Primary() != "frame-1" {
		t.Errorf("Primary() = %q", a.Document().Selection().Primary())
	}
}

func TestDrawShowsStatusBar(t *testing.T) {
	a, screen := newTestApp(t, "")
	defer screen.Fini()

	a.statusBar.ResetTemporaryMessage()
	a.draw()
	cells, w, h := screen.GetContents()
	if w != 80 || h != 24 {
		t.Fatalf("screen size %dx%d", w, h)
	}
	var row []rune
	for x := 0; x < w; x++ {
		if r := cells[(h-1)*w+x].Runes; len(r) > 0 {
			row = append(row, r[0])
		}
	}
	if got := string(row); len(got) < 8 || got[:8] != "[No Name" {
		t.Errorf("status row = %q", got)
	}
}
