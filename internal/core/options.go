package core

import (
	"github.com/bethropolis/tidecanvas/internal/config"
	"github.com/bethropolis/tidecanvas/internal/core/clipboard"
	"github.com/bethropolis/tidecanvas/internal/core/history"
	"github.com/bethropolis/tidecanvas/internal/core/view"
	"github.com/bethropolis/tidecanvas/internal/idgen"
	"github.com/bethropolis/tidecanvas/internal/types"
)

// Options tunes a Document. Zero values select defaults.
type Options struct {
	MaxHistory      int
	MinZoom         float64
	MaxZoom         float64
	PasteOffset     types.Point
	DuplicateOffset types.Point
	// NewID generates identifiers for pasted, duplicated and grouped nodes.
	NewID idgen.Generator
	// SystemClipboard, when set, mirrors copies to the OS clipboard.
	SystemClipboard clipboard.System
}

// DefaultOptions returns the stock settings.
func DefaultOptions() Options {
	return Options{
		MaxHistory:      history.DefaultMaxHistory,
		MinZoom:         view.DefaultMinZoom,
		MaxZoom:         view.DefaultMaxZoom,
		PasteOffset:     types.Point{X: config.DefaultPasteOffset, Y: config.DefaultPasteOffset},
		DuplicateOffset: types.Point{X: config.DefaultPasteOffset, Y: config.DefaultPasteOffset},
		NewID:           idgen.UUIDv7(),
	}
}

// OptionsFromConfig maps the [canvas] config section onto Options.
func OptionsFromConfig(c config.CanvasConfig) Options {
	opts := DefaultOptions()
	opts.MaxHistory = c.MaxHistory
	opts.MinZoom = c.MinZoom
	opts.MaxZoom = c.MaxZoom
	opts.PasteOffset = types.Point{X: c.PasteOffset[0], Y: c.PasteOffset[1]}
	opts.DuplicateOffset = types.Point{X: c.DuplicateOffset[0], Y: c.DuplicateOffset[1]}
	if c.SystemClipboard && clipboard.Available() {
		opts.SystemClipboard = clipboard.SystemClipboard{}
	}
	return opts
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxHistory <= 0 {
		o.MaxHistory = d.MaxHistory
	}
	if o.MinZoom <= 0 {
		o.MinZoom = d.MinZoom
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = d.MaxZoom
	}
	if o.PasteOffset.IsZero() {
		o.PasteOffset = d.PasteOffset
	}
	if o.DuplicateOffset.IsZero() {
		o.DuplicateOffset = d.DuplicateOffset
	}
	if o.NewID == nil {
		o.NewID = d.NewID
	}
	return o
}
