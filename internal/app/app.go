// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/tidecanvas/internal/commands"
	"github.com/bethropolis/tidecanvas/internal/config"
	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/input"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/modehandler"
	"github.com/bethropolis/tidecanvas/internal/plugin"
	"github.com/bethropolis/tidecanvas/internal/scenefile"
	"github.com/bethropolis/tidecanvas/internal/statusbar"
	"github.com/bethropolis/tidecanvas/internal/theme"
	"github.com/bethropolis/tidecanvas/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// statusRefresh is how often the screen is redrawn while idle, so that
// temporary messages expire.
const statusRefresh = time.Second

// App encapsulates the core components and main loop of the editor.
//
// The document is owned by the goroutine running Run. Terminal events are
// read on a separate goroutine and handed over through a channel; other
// goroutines reach the document through Schedule.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	doc           *core.Document
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	editorAPI     plugin.EditorAPI
	filePath      string

	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
	scheduled     chan func()
}

// NewApp creates an application on the real terminal.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	return newApp(cfg, filePath, nil)
}

// NewAppWithScreen creates an application drawing to screen, e.g. a
// tcell.SimulationScreen.
func NewAppWithScreen(cfg *config.Config, filePath string, screen tcell.Screen) (*App, error) {
	return newApp(cfg, filePath, screen)
}

func newApp(cfg *config.Config, filePath string, screen tcell.Screen) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	// --- Load the scene before touching the terminal ---
	file, fresh, err := loadScene(filePath)
	if err != nil {
		return nil, err
	}

	themeManager := theme.NewManager(themesDir(), cfg.Canvas.Theme)
	defStyle := themeManager.Current().GetStyle(theme.StyleDefault)

	var tuiManager *tui.TUI
	if screen != nil {
		tuiManager, err = tui.NewWithScreen(screen, defStyle, cfg.Canvas.StatusBarHeight)
	} else {
		tuiManager, err = tui.New(defStyle, cfg.Canvas.StatusBarHeight)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	doc := core.NewDocument(core.OptionsFromConfig(cfg.Canvas))
	doc.SetEventManager(eventManager)
	doc.LoadDocument(file.Nodes, file.Roots, file.Name, file.ID)

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		doc:           doc,
		statusBar:     statusbar.New(statusbar.DefaultConfig()),
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		themeManager:  themeManager,
		filePath:      filePath,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
		scheduled:     make(chan func(), 16),
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Document:       doc,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      a.statusBar,
		Quit:           a.requestQuit,
		Save:           a.saveDocument,
		CanvasSize:     tuiManager.CanvasSize,
		Nudge:          cfg.Canvas.Nudge,
		LargeNudge:     cfg.Canvas.LargeNudge,
	})
	a.editorAPI = newEditorAPI(a)

	// --- Subscribe Core Components (App level wiring) ---
	doc.OnChange(a.requestRedraw)
	a.subscribeEvents()

	// --- Commands and plugins (plugins register commands via the API) ---
	commands.RegisterAppCommands(a.editorAPI)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	eventManager.Dispatch(event.TypeDocumentLoaded, event.DocumentLoadedData{FilePath: filePath, NodeCount: doc.NodeCount()})
	if fresh && filePath != "" {
		a.statusBar.SetTemporaryMessage("New file: %s", filePath)
	} else {
		a.statusBar.SetTemporaryMessage("tidecanvas - : commands | Ctrl+S Save | q Quit")
	}
	return a, nil
}

// loadScene reads filePath, or returns the sample scene when there is no
// path or the file does not exist yet. fresh reports the latter.
func loadScene(filePath string) (file *scenefile.File, fresh bool, err error) {
	if filePath == "" {
		return scenefile.Sample(), true, nil
	}
	if _, err := scenefile.FormatFromPath(filePath); err != nil {
		return nil, false, err
	}
	file, err = scenefile.Load(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof("App: '%s' does not exist yet, starting from the sample scene", filePath)
		return scenefile.Sample(), true, nil
	}
	if err != nil {
		return nil, false, err
	}
	logger.Infof("App: Loaded '%s' (%d nodes)", filePath, len(file.Nodes))
	return file, false, nil
}

func themesDir() string {
	path := config.DefaultPath()
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), config.ThemesDirName)
}

// Run starts the main loop and blocks until the application quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	events := make(chan tcell.Event, 16)
	go a.pollEvents(events)

	ticker := time.NewTicker(statusRefresh)
	defer ticker.Stop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.doc.IsDirty() {
				logger.Warnf("App: Exited with unsaved changes.")
			}
			a.doc.Close()
			logger.Infof("Exiting application.")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case fn := <-a.scheduled:
			fn()
			a.requestRedraw()
		case <-ticker.C:
			a.requestRedraw()
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized.
func (a *App) pollEvents(out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent routes one terminal event. Returns true if a redraw is needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(e)
	case *tcell.EventMouse:
		_, y := e.Position()
		// Clicks on the status bar are ignored unless a drag is under way.
		if a.tuiManager.InFooter(y) && !a.modeHandler.Dragging() {
			return false
		}
		return a.modeHandler.HandleMouseEvent(e)
	}
	return false
}

// Schedule runs fn on the main loop. Safe from any goroutine; dropped once
// the application is quitting.
func (a *App) Schedule(fn func()) {
	select {
	case a.scheduled <- fn:
	case <-a.quit:
	}
}

// requestQuit stops Run. Safe to call more than once.
func (a *App) requestQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// saveDocument writes the scene to path, or to the current path when path
// is empty. The current path only changes when the write succeeds.
func (a *App) saveDocument(path string) error {
	target := path
	if target == "" {
		target = a.filePath
	}
	if target == "" {
		return fmt.Errorf("no file name (use :w FILE)")
	}
	f := &scenefile.File{
		ID:    a.doc.ID(),
		Name:  a.doc.Name(),
		Roots: a.doc.RootIDs(),
		Nodes: a.doc.Nodes(),
	}
	if err := scenefile.Save(target, f); err != nil {
		return err
	}
	a.filePath = target
	a.doc.MarkSaved()
	a.eventManager.Dispatch(event.TypeDocumentSaved, event.DocumentSavedData{FilePath: target})
	return nil
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// Document returns the document. Main loop only.
func (a *App) Document() *core.Document { return a.doc }

// FilePath returns the path the document saves to.
func (a *App) FilePath() string { return a.filePath }

// GetModeHandler allows the API adapter to access the mode handler for command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// SetTheme activates a theme by name and redraws.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	current := a.themeManager.Current()
	a.tuiManager.SetStyle(current.GetStyle(theme.StyleDefault))
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: current.Name})
	a.requestRedraw()
	return nil
}
