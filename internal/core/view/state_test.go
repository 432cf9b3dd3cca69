package view

import (
	"testing"

	"github.com/bethropolis/tidecanvas/internal/types"
)

func TestZoomClamps(t *testing.T) {
	s := NewState(0, 0)
	s.SetZoom(1000)
	if s.Zoom() != DefaultMaxZoom {
		t.Errorf("Zoom() = %v, want %v", s.Zoom(), DefaultMaxZoom)
	}
	s.SetZoom(-5)
	if s.Zoom() != DefaultMinZoom {
		t.Errorf("Zoom() = %v, want %v", s.Zoom(), DefaultMinZoom)
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	s := NewState(0.1, 10)
	s.SetPan(types.Point{X: 5, Y: -3})
	if s.Pan() != (types.Point{X: 5, Y: -3}) {
		t.Errorf("Pan() = %+v", s.Pan())
	}
	anchor := types.Point{X: 40, Y: 20}
	before := s.ScreenToCanvas(anchor)

	s.ZoomAt(2, anchor)
	after := s.ScreenToCanvas(anchor)
	if !before.ApproxEqual(after, 1e-9) {
		t.Errorf("anchor drifted from %+v to %+v", before, after)
	}
	if s.Zoom() != 2 {
		t.Errorf("Zoom() = %v, want 2", s.Zoom())
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	s := NewState(0, 0)
	s.SetZoom(4)
	s.PanBy(types.Point{X: 10, Y: 10})
	p := types.Point{X: 3, Y: 7}
	if got := s.ScreenToCanvas(s.CanvasToScreen(p)); !got.ApproxEqual(p, 1e-9) {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestNotifyOnlyOnChange(t *testing.T) {
	s := NewState(0, 0)
	n := 0
	s.OnChange(func() { n++ })
	s.SetZoom(1)
	s.SetPan(types.Point{})
	s.Reset()
	s.SetZoom(2)
	s.Reset()
	if n != 2 {
		t.Errorf("notifications = %d, want 2", n)
	}
}
