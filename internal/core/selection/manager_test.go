package selection

import (
	"reflect"
	"testing"

	"github.com/bethropolis/tidecanvas/internal/types"
)

func TestSelectAdditive(t *testing.T) {
	m := NewManager()
	m.Select("a", false)
	m.Select("b", true)

	if got := m.Selected(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Selected() = %v", got)
	}
	if m.Primary() != "b" {
		t.Errorf("Primary() = %q, want b", m.Primary())
	}

	m.Select("c", false)
	if got := m.Selected(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("non-additive Select left %v", got)
	}
}

func TestToggleReassignsPrimary(t *testing.T) {
	m := NewManager()
	m.Select("b", false)
	m.Select("a", true)
	if m.Primary() != "a" {
		t.Fatalf("Primary() = %q, want a", m.Primary())
	}

	m.Toggle("a")
	if got := m.Selected(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Selected() = %v", got)
	}
	if m.Primary() != "b" {
		t.Errorf("Primary() = %q, want b", m.Primary())
	}

	m.Toggle("b")
	if m.Len() != 0 || m.Primary() != "" {
		t.Errorf("toggling the last member left len %d primary %q", m.Len(), m.Primary())
	}

	m.Toggle("z")
	if !m.IsSelected("z") || m.Primary() != "z" {
		t.Error("toggling in should select and set primary")
	}
}

func TestSelectMultiplePrimaryIsLast(t *testing.T) {
	m := NewManager()
	m.SelectMultiple([]string{"x", "y", "z"}, false)
	if m.Primary() != "z" || m.Len() != 3 {
		t.Errorf("primary %q len %d", m.Primary(), m.Len())
	}
	m.SelectMultiple([]string{"y", "w"}, true)
	if got := m.Selected(); !reflect.DeepEqual(got, []string{"x", "y", "z", "w"}) {
		t.Errorf("Selected() = %v", got)
	}
}

func TestMarquee(t *testing.T) {
	m := NewManager()
	m.Select("a", false)

	m.StartMarquee(types.Point{X: 10, Y: 10})
	if r, ok := m.Marquee(); !ok || r.Width != 0 || r.Height != 0 {
		t.Fatalf("Marquee() = %+v,%v", r, ok)
	}
	m.UpdateMarquee(types.Point{X: 0, Y: 30})
	want := types.Rect{X: 0, Y: 10, Width: 10, Height: 20}
	if r, _ := m.Marquee(); r != want {
		t.Errorf("Marquee() = %+v, want %+v", r, want)
	}

	m.EndMarquee(nil, false)
	if m.Len() != 0 {
		t.Errorf("empty marquee should clear selection, have %v", m.Selected())
	}
	if _, ok := m.Marquee(); ok {
		t.Error("marquee should be closed")
	}
}

func TestMarqueeAdditiveEmptyKeepsSelection(t *testing.T) {
	m := NewManager()
	m.Select("a", false)
	m.StartMarquee(types.Point{})
	m.EndMarquee(nil, true)
	if !m.IsSelected("a") {
		t.Error("additive empty marquee should keep selection")
	}

	m.StartMarquee(types.Point{})
	m.EndMarquee([]string{"b", "c"}, false)
	if got := m.Selected(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Selected() = %v", got)
	}
}

func TestCancelMarquee(t *testing.T) {
	m := NewManager()
	m.Select("a", false)
	m.StartMarquee(types.Point{X: 1, Y: 1})
	m.CancelMarquee()
	if _, ok := m.Marquee(); ok || !m.IsSelected("a") {
		t.Error("CancelMarquee should close the marquee and keep the selection")
	}
}

func TestGroupNavigation(t *testing.T) {
	m := NewManager()
	m.Select("g1", false)
	m.EnterGroup("g1")
	if m.Len() != 0 || m.EnteredGroup() != "g1" {
		t.Fatalf("after EnterGroup: len %d group %q", m.Len(), m.EnteredGroup())
	}
	m.Select("g2", false)
	m.EnterGroup("g2")
	if got := m.GroupStack(); !reflect.DeepEqual(got, []string{"g1"}) {
		t.Errorf("GroupStack() = %v", got)
	}

	m.Select("leaf", false)
	m.ExitGroup()
	if m.EnteredGroup() != "g1" || m.Len() != 0 {
		t.Errorf("ExitGroup: group %q len %d", m.EnteredGroup(), m.Len())
	}
	m.EnterGroup("g3")
	m.ExitAllGroups()
	if m.EnteredGroup() != "" || len(m.GroupStack()) != 0 {
		t.Error("ExitAllGroups should return to root scope")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := NewManager()
	m.SelectMultiple([]string{"a", "b"}, false)
	m.SetHovered("h")
	snap := m.Snapshot()

	m.Select("c", false)
	m.RestoreFromSnapshot(snap)
	if got := m.Selected(); !reflect.DeepEqual(got, []string{"a", "b"}) || m.Primary() != "b" {
		t.Errorf("restored %v primary %q", got, m.Primary())
	}
	if m.Hovered() != "h" {
		t.Error("hover is not part of the snapshot and should be kept")
	}

	snap.IDs[0] = "mutated"
	if m.Selected()[0] != "a" {
		t.Error("snapshot aliases live state")
	}
}

func TestNotifications(t *testing.T) {
	m := NewManager()
	count := 0
	unsub := m.OnChange(func() { count++ })
	m.Select("a", false)
	m.SetHovered("a")
	m.SetHovered("a")
	m.Clear()
	m.Clear()
	unsub()
	m.Select("b", false)
	if count != 3 {
		t.Errorf("notifications = %d, want 3", count)
	}
}
