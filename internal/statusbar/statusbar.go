// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidecanvas/internal/config"
	"github.com/bethropolis/tidecanvas/internal/render"
	"github.com/bethropolis/tidecanvas/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{MessageTimeout: config.MessageTimeout}
}

// Info is the document state shown when no message is active.
type Info struct {
	FilePath     string
	Modified     bool
	Tool         string
	Selected     int
	NodeCount    int
	Zoom         float64
	HistoryIndex int // -1 when at the baseline
	HistoryLen   int
	Scope        string // entered group, if any
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	info       Info
	editorMode string

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
	// prompt, when set, replaces everything (command-line input).
	prompt string

	now func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(cfg Config) *StatusBar {
	if cfg.MessageTimeout <= 0 {
		cfg.MessageTimeout = config.MessageTimeout
	}
	return &StatusBar{config: cfg, now: time.Now}
}

// SetInfo replaces the document summary.
func (sb *StatusBar) SetInfo(info Info) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.info = info
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// SetPrompt shows command-line input until cleared with "".
func (sb *StatusBar) SetPrompt(prompt string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = prompt
}

// defaultText builds the summary line. Caller holds the lock.
func (sb *StatusBar) defaultText() string {
	info := sb.info
	path := info.FilePath
	if path == "" {
		path = "[No Name]"
	}
	modified := ""
	if info.Modified {
		modified = " [+]"
	}
	scope := ""
	if info.Scope != "" {
		scope = " in " + info.Scope
	}
	mode := ""
	if sb.editorMode != "" {
		mode = fmt.Sprintf(" -- %s", sb.editorMode)
	}
	return fmt.Sprintf("%s%s -- %s -- %d/%d selected%s -- %.0f%% -- history %d/%d%s",
		path, modified, info.Tool, info.Selected, info.NodeCount, scope,
		info.Zoom*100, info.HistoryIndex+1, info.HistoryLen, mode)
}

// Text returns the line Draw would render and its style name.
func (sb *StatusBar) Text() (string, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.prompt != "" {
		return sb.prompt, theme.StyleStatusBarCommand
	}
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, theme.StyleStatusBarMessage
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if sb.info.Modified {
		return sb.defaultText(), theme.StyleStatusBarModified
	}
	return sb.defaultText(), theme.StyleStatusBar
}

// Draw renders the status bar on the last height rows of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height, barHeight int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 || barHeight <= 0 {
		return
	}
	if activeTheme == nil {
		activeTheme = &theme.CanvasDark
	}
	text, styleName := sb.Text()
	style := activeTheme.GetStyle(styleName)

	top := height - barHeight
	if top < 0 {
		top = 0
	}
	for y := top; y < height; y++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
	render.DrawText(screen, 0, height-1, width, text, style)
}
