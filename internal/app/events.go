package app

import (
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/logger"
)

func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeDocumentSaved, a.handleDocumentSaved)
	a.eventManager.Subscribe(event.TypeSelectionChanged, a.handleSelectionChanged)
	a.eventManager.Subscribe(event.TypeToolChanged, a.handleToolChanged)
}

// handleDocumentSaved logs the write; the status bar picks up the clean flag on redraw.
func (a *App) handleDocumentSaved(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentSavedData); ok {
		logger.Infof("App: Saved '%s'", data.FilePath)
	}
	return false
}

func (a *App) handleSelectionChanged(e event.Event) bool {
	if data, ok := e.Data.(event.SelectionChangedData); ok {
		logger.DebugTagf("selection", "App: %d node(s) selected", len(data.IDs))
	}
	return false
}

// handleToolChanged announces the new tool in the status bar.
func (a *App) handleToolChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ToolChangedData); ok {
		a.statusBar.SetTemporaryMessage("Tool: %s", data.Tool)
	}
	return false
}
