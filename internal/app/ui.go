package app

import (
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/render"
	"github.com/bethropolis/tidecanvas/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// draw repaints the canvas and the status bar.
func (a *App) draw() {
	a.updateStatusBarContent()
	activeTheme := a.themeManager.Current()
	a.tuiManager.Frame(func(screen tcell.Screen, width, height int) {
		canvasWidth, canvasHeight := a.tuiManager.CanvasSize()
		logger.DebugTagf("draw", "draw: screen %dx%d, canvas %dx%d", width, height, canvasWidth, canvasHeight)
		render.Canvas(screen, a.doc, activeTheme, render.Area{Width: canvasWidth, Height: canvasHeight})
		a.statusBar.Draw(screen, width, height, a.tuiManager.FooterRows(), activeTheme)
	})
}

// updateStatusBarContent pushes current document state to the status bar.
func (a *App) updateStatusBarContent() {
	doc := a.doc
	sel := doc.Selection()

	scope := ""
	if g := sel.EnteredGroup(); g != "" {
		scope = g
		if n, ok := doc.Node(g); ok && n.Name() != "" {
			scope = n.Name()
		}
	}

	a.statusBar.SetInfo(statusbar.Info{
		FilePath:     a.filePath,
		Modified:     doc.IsDirty(),
		Tool:         doc.ActiveTool().String(),
		Selected:     sel.Len(),
		NodeCount:    doc.NodeCount(),
		Zoom:         doc.View().Zoom(),
		HistoryIndex: doc.HistoryIndex(),
		HistoryLen:   doc.HistoryLen(),
		Scope:        scope,
	})
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentModeString())
}
