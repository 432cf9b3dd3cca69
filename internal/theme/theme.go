// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the canvas renderer and status bar.
const (
	StyleDefault           = "Default"
	StyleNode              = "Node"
	StyleNodeLabel         = "Node.label"
	StyleContainer         = "Node.container"
	StyleText              = "Node.text"
	StyleSelection         = "Selection"
	StyleHover             = "Hover"
	StyleMarquee           = "Marquee"
	StyleEnteredGroup      = "EnteredGroup"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarCommand  = "StatusBarCommand"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks up name, falling back to the part before the first dot and
// then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- Built-in themes ---

var CanvasDark Theme
var CanvasLight Theme

func init() {
	// --- Palette for Canvas Dark ---
	bg := tcell.NewHexColor(0x1e1e1e)
	panel := tcell.NewHexColor(0x2c2c2c)
	fg := tcell.NewHexColor(0xe0e0e0)
	muted := tcell.NewHexColor(0x8a8a8a)
	blue := tcell.NewHexColor(0x0d99ff)
	purple := tcell.NewHexColor(0x9747ff)
	yellow := tcell.NewHexColor(0xffc700)

	base := tcell.StyleDefault.Background(bg).Foreground(fg)
	CanvasDark = Theme{
		Name:   "Canvas Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleNode:              base.Foreground(muted),
			StyleNodeLabel:         base.Foreground(fg),
			StyleContainer:         base.Foreground(purple),
			StyleText:              base.Foreground(fg).Italic(true),
			StyleSelection:         base.Foreground(blue).Bold(true),
			StyleHover:             base.Foreground(Blend(muted, blue, 0.5)),
			StyleMarquee:           base.Foreground(blue).Dim(true),
			StyleEnteredGroup:      base.Foreground(purple).Bold(true),
			StyleStatusBar:         tcell.StyleDefault.Background(panel).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(panel).Foreground(yellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(panel).Foreground(fg).Bold(true),
			StyleStatusBarCommand:  tcell.StyleDefault.Background(panel).Foreground(blue).Bold(true),
		},
	}

	// --- Palette for Canvas Light ---
	lbg := tcell.NewHexColor(0xf5f5f5)
	lpanel := tcell.NewHexColor(0xe6e6e6)
	lfg := tcell.NewHexColor(0x1e1e1e)
	lmuted := tcell.NewHexColor(0x6e6e6e)

	lbase := tcell.StyleDefault.Background(lbg).Foreground(lfg)
	CanvasLight = Theme{
		Name: "Canvas Light",
		Styles: map[string]tcell.Style{
			StyleDefault:           lbase,
			StyleNode:              lbase.Foreground(lmuted),
			StyleNodeLabel:         lbase.Foreground(lfg),
			StyleContainer:         lbase.Foreground(purple),
			StyleText:              lbase.Foreground(lfg).Italic(true),
			StyleSelection:         lbase.Foreground(blue).Bold(true),
			StyleHover:             lbase.Foreground(Blend(lmuted, blue, 0.5)),
			StyleMarquee:           lbase.Foreground(blue),
			StyleEnteredGroup:      lbase.Foreground(purple).Bold(true),
			StyleStatusBar:         tcell.StyleDefault.Background(lpanel).Foreground(lfg),
			StyleStatusBarModified: tcell.StyleDefault.Background(lpanel).Foreground(tcell.NewHexColor(0xb86200)),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(lpanel).Foreground(lfg).Bold(true),
			StyleStatusBarCommand:  tcell.StyleDefault.Background(lpanel).Foreground(blue).Bold(true),
		},
	}
}
