// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from user input) and returns an error.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor.
//
// Everything except Schedule must be called from the main loop: command
// functions, event handlers and Initialize already run there. Goroutines
// owned by a plugin reach the document through Schedule.
type EditorAPI interface {
	// --- Document Access ---
	Document() *core.Document
	DocumentPath() string
	IsDocumentModified() bool
	// SaveDocument writes the scene; an optional path replaces the current one.
	SaveDocument(path ...string) error

	// Schedule runs fn on the main loop. Safe from any goroutine.
	Schedule(fn func())

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	GetThemeStyle(styleName string) tcell.Style
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)

	// RequestQuit quits unless there are unsaved changes and force is false.
	RequestQuit(force bool) bool
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Used for
	// subscribing to events and registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
