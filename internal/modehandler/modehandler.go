// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"

	"github.com/bethropolis/tidecanvas/internal/config"
	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/input"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/plugin"
	"github.com/bethropolis/tidecanvas/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeCommand:
		return "COMMAND"
	}
	return "UNKNOWN"
}

// ModeHandler turns keyboard and mouse input into document operations.
// All methods run on the application's main loop.
type ModeHandler struct {
	doc            *core.Document
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quit           func()
	save           func(path string) error
	canvasSize     func() (int, int)

	nudge      float64
	largeNudge float64

	currentMode      InputMode
	cmdBuffer        string
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool

	drag drag
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Document       *core.Document
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	// Quit ends the application; it may be called more than once.
	Quit func()
	// Save writes the document; "" keeps the current path.
	Save func(path string) error
	// CanvasSize reports the drawable area in cells.
	CanvasSize func() (int, int)
	Nudge      float64
	LargeNudge float64
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Document == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.Quit == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.Save == nil {
		cfg.Save = func(string) error { return fmt.Errorf("saving is not available") }
	}
	if cfg.CanvasSize == nil {
		cfg.CanvasSize = func() (int, int) { return 0, 0 }
	}
	if cfg.Nudge <= 0 {
		cfg.Nudge = config.DefaultNudge
	}
	if cfg.LargeNudge <= 0 {
		cfg.LargeNudge = config.DefaultLargeNudge
	}
	return &ModeHandler{
		doc:            cfg.Document,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quit:           cfg.Quit,
		save:           cfg.Save,
		canvasSize:     cfg.CanvasSize,
		nudge:          cfg.Nudge,
		largeNudge:     cfg.LargeNudge,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	// Plugins may watch raw keys.
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	switch mh.currentMode {
	case ModeNormal:
		return mh.executeAction(mh.inputProcessor.ProcessEvent(ev))
	case ModeCommand:
		return mh.handleActionCommand(mh.inputProcessor.ProcessCommandEvent(ev))
	}
	logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
	return false
}

// RegisterCommand adds a command to the registry.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.DebugTagf("command", "Registered command ':%s'", name)
	return nil
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns the mode name shown in the status bar.
func (mh *ModeHandler) GetCurrentModeString() string {
	return mh.currentMode.String()
}

// GetCommandBuffer returns the command line being typed.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}

// RequestQuit quits unless there are unsaved changes and force is false.
// Returns whether the quit went ahead.
func (mh *ModeHandler) RequestQuit(force bool) bool {
	if !force && mh.doc.IsDirty() {
		mh.statusBar.SetTemporaryMessage("No write since last change (use :q! or Ctrl+Q to force quit)")
		return false
	}
	mh.quit()
	return true
}
