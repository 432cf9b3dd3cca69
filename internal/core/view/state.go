// Package view holds the canvas camera: zoom and pan.
package view

import (
	"math"

	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/types"
)

const (
	DefaultMinZoom = 0.01
	DefaultMaxZoom = 256.0
)

// State maps canvas coordinates to screen coordinates:
// screen = canvas*zoom + pan.
type State struct {
	zoom    float64
	pan     types.Point
	minZoom float64
	maxZoom float64
	changes event.Notifier
}

// NewState creates a view at zoom 1 and no pan. Invalid limits fall back
// to the defaults.
func NewState(minZoom, maxZoom float64) *State {
	if minZoom <= 0 {
		minZoom = DefaultMinZoom
	}
	if maxZoom <= 0 || maxZoom < minZoom {
		maxZoom = DefaultMaxZoom
	}
	return &State{zoom: 1, minZoom: minZoom, maxZoom: maxZoom}
}

func (s *State) OnChange(fn func()) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

func (s *State) Zoom() float64    { return s.zoom }
func (s *State) Pan() types.Point { return s.pan }
func (s *State) MinZoom() float64 { return s.minZoom }
func (s *State) MaxZoom() float64 { return s.maxZoom }

func (s *State) clamp(z float64) float64 {
	if math.IsNaN(z) {
		return s.zoom
	}
	return math.Max(s.minZoom, math.Min(s.maxZoom, z))
}

// SetZoom sets the zoom level, clamped to the configured range.
func (s *State) SetZoom(z float64) {
	z = s.clamp(z)
	if z == s.zoom {
		return
	}
	s.zoom = z
	s.changes.Notify()
}

// ZoomAt multiplies the zoom by factor keeping the screen point anchor fixed
// over the same canvas point.
func (s *State) ZoomAt(factor float64, anchor types.Point) {
	if factor <= 0 {
		return
	}
	before := s.ScreenToCanvas(anchor)
	z := s.clamp(s.zoom * factor)
	if z == s.zoom {
		return
	}
	s.zoom = z
	// Solve anchor = before*zoom + pan for pan.
	s.pan = anchor.Sub(before.Scale(z))
	s.changes.Notify()
}

// SetPan sets the pan offset in screen units.
func (s *State) SetPan(p types.Point) {
	if p == s.pan {
		return
	}
	s.pan = p
	s.changes.Notify()
}

// PanBy shifts the pan offset.
func (s *State) PanBy(delta types.Point) {
	s.SetPan(s.pan.Add(delta))
}

// Reset restores zoom 1 and no pan.
func (s *State) Reset() {
	if s.zoom == 1 && s.pan.IsZero() {
		return
	}
	s.zoom = 1
	s.pan = types.Point{}
	s.changes.Notify()
}

func (s *State) ScreenToCanvas(p types.Point) types.Point {
	return p.Sub(s.pan).Scale(1 / s.zoom)
}

func (s *State) CanvasToScreen(p types.Point) types.Point {
	return p.Scale(s.zoom).Add(s.pan)
}

// VisibleRect returns the canvas area covered by a screen of the given size.
func (s *State) VisibleRect(width, height float64) types.Rect {
	return types.RectFromPoints(s.ScreenToCanvas(types.Point{}), s.ScreenToCanvas(types.Point{X: width, Y: height}))
}
