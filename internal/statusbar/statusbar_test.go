package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/tidecanvas/internal/theme"
	"github.com/gdamore/tcell/v2"
)

func TestDefaultText(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetInfo(Info{
		FilePath: "scene.json", Modified: true, Tool: "select",
		Selected: 2, NodeCount: 5, Zoom: 1.5, HistoryIndex: 2, HistoryLen: 4,
		Scope: "Card",
	})
	sb.SetEditorMode("NORMAL")

	text, style := sb.Text()
	want := "scene.json [+] -- select -- 2/5 selected in Card -- 150% -- history 3/4 -- NORMAL"
	if text != want {
		t.Errorf("Text() = %q\nwant     %q", text, want)
	}
	if style != theme.StyleStatusBarModified {
		t.Errorf("style = %q, want modified", style)
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	now := time.Unix(100, 0)
	sb := New(Config{MessageTimeout: time.Second})
	sb.now = func() time.Time { return now }

	sb.SetTemporaryMessage("Saved %s", "x.json")
	if text, style := sb.Text(); text != "Saved x.json" || style != theme.StyleStatusBarMessage {
		t.Errorf("Text() = %q, %q", text, style)
	}

	now = now.Add(2 * time.Second)
	if text, _ := sb.Text(); !strings.HasPrefix(text, "[No Name]") {
		t.Errorf("expired message still shown: %q", text)
	}
}

func TestPromptWins(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("hello")
	sb.SetPrompt(":jump 3")
	if text, style := sb.Text(); text != ":jump 3" || style != theme.StyleStatusBarCommand {
		t.Errorf("Text() = %q, %q", text, style)
	}
	sb.SetPrompt("")
	if text, _ := sb.Text(); text != "hello" {
		t.Errorf("after clearing prompt Text() = %q", text)
	}
}

func TestDraw(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(30, 5)

	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("Undo: Move 1 node")
	sb.Draw(s, 30, 5, 1, &theme.CanvasDark)

	r, _, style, _ := s.GetContent(0, 4)
	if r != 'U' {
		t.Errorf("first cell = %q, want 'U'", r)
	}
	if style != theme.CanvasDark.GetStyle(theme.StyleStatusBarMessage) {
		t.Error("message style not applied")
	}
}
