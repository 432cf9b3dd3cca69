// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Document events
	TypeDocumentChanged  // Any observable change to nodes, selection, view or history
	TypeDocumentLoaded   // Fired after a scene is loaded into the document
	TypeDocumentSaved    // Fired after the document is written to disk
	TypeSelectionChanged // Fired when the selected node set changes
	TypeToolChanged      // Fired when the active tool changes

	// Input Events (useful for plugins reacting to raw keys)
	TypeKeyPressed

	// Application Lifecycle Events
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

func (t Type) String() string {
	switch t {
	case TypeDocumentChanged:
		return "DocumentChanged"
	case TypeDocumentLoaded:
		return "DocumentLoaded"
	case TypeDocumentSaved:
		return "DocumentSaved"
	case TypeSelectionChanged:
		return "SelectionChanged"
	case TypeToolChanged:
		return "ToolChanged"
	case TypeKeyPressed:
		return "KeyPressed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	case TypeThemeChanged:
		return "ThemeChanged"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// Source names the sub-component that produced a document change.
type Source string

const (
	SourceNodes     Source = "nodes"
	SourceSelection Source = "selection"
	SourceHistory   Source = "history"
	SourceView      Source = "view"
	SourceTool      Source = "tool"
	SourceLoad      Source = "load"
)

// DocumentChangedData says which part of the document changed.
type DocumentChangedData struct {
	Source Source
}

// DocumentLoadedData contains info about the loaded scene.
type DocumentLoadedData struct {
	FilePath  string
	NodeCount int
}

// DocumentSavedData contains info about the saved scene.
type DocumentSavedData struct {
	FilePath string
}

// SelectionChangedData carries the selected ids in insertion order.
type SelectionChangedData struct {
	IDs []string
}

// ToolChangedData names the newly active tool.
type ToolChangedData struct {
	Tool string
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
