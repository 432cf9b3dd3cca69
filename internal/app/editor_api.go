// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/plugin"
	"github.com/bethropolis/tidecanvas/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Document Access ---

func (api *appEditorAPI) Document() *core.Document {
	return api.app.doc
}

func (api *appEditorAPI) DocumentPath() string {
	return api.app.filePath
}

func (api *appEditorAPI) IsDocumentModified() bool {
	return api.app.doc.IsDirty()
}

// SaveDocument saves the scene, optionally to a new path.
func (api *appEditorAPI) SaveDocument(filePath ...string) error {
	path := ""
	if len(filePath) > 0 {
		path = filePath[0]
	}
	return api.app.saveDocument(path)
}

func (api *appEditorAPI) Schedule(fn func()) {
	api.app.Schedule(fn)
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.GetModeHandler() == nil {
		logger.Errorf("appEditorAPI cannot register command '%s', app or modeHandler is nil", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.themeManager.Current().GetStyle(styleName)
}

func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.SetTheme(name); err != nil {
		return err
	}
	logger.DebugTagf("theme", "Theme changed to '%s', redraw requested", name)
	return nil
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}

func (api *appEditorAPI) RequestQuit(force bool) bool {
	return api.app.modeHandler.RequestQuit(force)
}
