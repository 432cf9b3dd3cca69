// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI owns the terminal screen and splits it into the canvas area on top and
// a fixed number of footer rows (the status bar) at the bottom.
type TUI struct {
	screen tcell.Screen
	footer int
}

// New opens the real terminal.
func New(defStyle tcell.Style, footerRows int) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, defStyle, footerRows)
}

// NewWithScreen initializes s (a tcell.SimulationScreen in tests) with mouse
// motion reporting and a hidden cursor.
func NewWithScreen(s tcell.Screen, defStyle tcell.Style, footerRows int) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	if footerRows < 0 {
		footerRows = 0
	}
	s.SetStyle(defStyle)
	s.EnableMouse(tcell.MouseMotionEvents)
	s.HideCursor()
	return &TUI{screen: s, footer: footerRows}, nil
}

// Close restores the terminal.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent blocks for the next terminal event; nil after Close.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// SetStyle changes the style empty cells are cleared to.
func (t *TUI) SetStyle(style tcell.Style) {
	t.screen.SetStyle(style)
}

// Sync repaints everything, used after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the full screen size.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// FooterRows is the height reserved below the canvas.
func (t *TUI) FooterRows() int {
	return t.footer
}

// CanvasSize is the screen area above the footer.
func (t *TUI) CanvasSize() (int, int) {
	w, h := t.screen.Size()
	h -= t.footer
	if h < 0 {
		h = 0
	}
	return w, h
}

// InFooter reports whether screen row y belongs to the footer.
func (t *TUI) InFooter(y int) bool {
	_, h := t.CanvasSize()
	return y >= h
}

// Frame clears the screen, lets draw paint it and shows the result.
func (t *TUI) Frame(draw func(s tcell.Screen, width, height int)) {
	t.screen.Clear()
	w, h := t.screen.Size()
	draw(t.screen, w, h)
	t.screen.Show()
}
