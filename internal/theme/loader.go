// internal/theme/loader.go
package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// styleDef is one entry of a theme file's [styles] table. Nil fields keep
// whatever the style inherits.
type styleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
	Dim       *bool   `toml:"dim"`
}

// themeFile is the on-disk layout:
//
//	name = "Blueprint"
//	extends = "Canvas Dark"
//	[palette]
//	accent = "#3aa0ff"
//	[styles.Selection]
//	fg = "$accent"
type themeFile struct {
	Name    string              `toml:"name"`
	IsDark  *bool               `toml:"is_dark"`
	Extends string              `toml:"extends"`
	Palette map[string]string   `toml:"palette"`
	Styles  map[string]styleDef `toml:"styles"`
}

// BaseLookup resolves the theme named by a file's "extends" key.
type BaseLookup func(name string) (*Theme, bool)

// LoadThemeFromFile parses a TOML theme. Styles start from the extended theme
// when there is one; a style the file leaves out is copied from it, and a
// style the base lacks inherits from the file's Default.
func LoadThemeFromFile(filePath string, lookup BaseLookup) (*Theme, error) {
	var tf themeFile
	meta, err := toml.DecodeFile(filePath, &tf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file '%s': %w", filePath, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme file '%s': unrecognized keys %v", filePath, undecoded)
	}
	if tf.Name == "" {
		tf.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	var base *Theme
	if tf.Extends != "" {
		if lookup == nil {
			return nil, fmt.Errorf("theme '%s' extends '%s' but no base themes are available", tf.Name, tf.Extends)
		}
		b, ok := lookup(tf.Extends)
		if !ok {
			return nil, fmt.Errorf("theme '%s' extends unknown theme '%s'", tf.Name, tf.Extends)
		}
		base = b
	}

	palette, err := resolvePalette(tf.Palette)
	if err != nil {
		return nil, fmt.Errorf("theme '%s': %w", tf.Name, err)
	}

	th := &Theme{Name: tf.Name, Styles: make(map[string]tcell.Style)}
	if base != nil {
		th.IsDark = base.IsDark
		for name, style := range base.Styles {
			th.Styles[name] = style
		}
	}
	if tf.IsDark != nil {
		th.IsDark = *tf.IsDark
	}

	def := tcell.StyleDefault
	if s, ok := th.Styles[StyleDefault]; ok {
		def = s
	}
	if d, ok := tf.Styles[StyleDefault]; ok {
		if def, err = d.apply(def, palette); err != nil {
			return nil, fmt.Errorf("theme '%s': style '%s': %w", tf.Name, StyleDefault, err)
		}
	}
	th.Styles[StyleDefault] = def

	for name, d := range tf.Styles {
		if name == StyleDefault {
			continue
		}
		start, ok := th.Styles[name]
		if !ok {
			start = def
		}
		style, err := d.apply(start, palette)
		if err != nil {
			logger.Warnf("Theme '%s': skipping style '%s': %v", tf.Name, name, err)
			continue
		}
		th.Styles[name] = style
	}

	logger.DebugTagf("theme", "Loaded theme '%s' from '%s' (extends %q)", th.Name, filePath, tf.Extends)
	return th, nil
}

func resolvePalette(raw map[string]string) (map[string]tcell.Color, error) {
	palette := make(map[string]tcell.Color, len(raw))
	for name, value := range raw {
		c, err := ParseColor(value)
		if err != nil {
			return nil, fmt.Errorf("palette entry '%s': %w", name, err)
		}
		palette[strings.ToLower(name)] = c
	}
	return palette, nil
}

// lookupColor resolves "$name" against the palette and anything else with
// ParseColor.
func lookupColor(value string, palette map[string]tcell.Color) (tcell.Color, error) {
	v := strings.TrimSpace(value)
	if ref, ok := strings.CutPrefix(v, "$"); ok {
		c, found := palette[strings.ToLower(ref)]
		if !found {
			return tcell.ColorDefault, fmt.Errorf("undefined palette color '%s'", ref)
		}
		return c, nil
	}
	return ParseColor(v)
}

func (d styleDef) apply(style tcell.Style, palette map[string]tcell.Color) (tcell.Style, error) {
	if d.Fg != nil {
		c, err := lookupColor(*d.Fg, palette)
		if err != nil {
			return style, fmt.Errorf("fg: %w", err)
		}
		style = style.Foreground(c)
	}
	if d.Bg != nil {
		c, err := lookupColor(*d.Bg, palette)
		if err != nil {
			return style, fmt.Errorf("bg: %w", err)
		}
		style = style.Background(c)
	}
	for _, attr := range []struct {
		set *bool
		fn  func(tcell.Style, bool) tcell.Style
	}{
		{d.Bold, tcell.Style.Bold},
		{d.Italic, tcell.Style.Italic},
		{d.Underline, func(s tcell.Style, on bool) tcell.Style { return s.Underline(on) }},
		{d.Reverse, tcell.Style.Reverse},
		{d.Dim, tcell.Style.Dim},
	} {
		if attr.set != nil {
			style = attr.fn(style, *attr.set)
		}
	}
	return style, nil
}
