// Package selection tracks which nodes are selected, hovered and marqueed,
// and which group scope the user has entered.
package selection

import (
	"slices"

	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/types"
)

// Snapshot is the undoable part of the selection.
type Snapshot struct {
	IDs     []string
	Primary string
}

// Clone returns a copy that shares no backing array with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{IDs: slices.Clone(s.IDs), Primary: s.Primary}
}

// Manager handles node selection state.
type Manager struct {
	order   []string // insertion order
	members map[string]struct{}
	primary string
	hovered string

	marquee       *types.Rect
	marqueeOrigin types.Point

	enteredGroup string
	groupStack   []string

	changes event.Notifier
}

// NewManager creates an empty selection.
func NewManager() *Manager {
	return &Manager{members: make(map[string]struct{})}
}

// OnChange registers fn to run after every state change.
func (m *Manager) OnChange(fn func()) (unsubscribe func()) {
	return m.changes.Subscribe(fn)
}

func (m *Manager) notify() { m.changes.Notify() }

func (m *Manager) add(id string) {
	if _, ok := m.members[id]; ok {
		return
	}
	m.members[id] = struct{}{}
	m.order = append(m.order, id)
}

func (m *Manager) remove(id string) bool {
	if _, ok := m.members[id]; !ok {
		return false
	}
	delete(m.members, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return true
}

func (m *Manager) reset() {
	clear(m.members)
	m.order = m.order[:0]
	m.primary = ""
}

// Select makes id the primary selection, replacing the selection unless additive.
func (m *Manager) Select(id string, additive bool) {
	if !additive {
		m.reset()
	}
	m.add(id)
	m.primary = id
	logger.DebugTagf("selection", "Select %s (additive=%v), %d selected", id, additive, len(m.order))
	m.notify()
}

// Toggle flips membership of id. Adding makes it primary; removing the
// primary falls back to the most recently inserted remaining member.
func (m *Manager) Toggle(id string) {
	if m.remove(id) {
		if m.primary == id {
			m.primary = ""
			if n := len(m.order); n > 0 {
				m.primary = m.order[n-1]
			}
		}
	} else {
		m.add(id)
		m.primary = id
	}
	m.notify()
}

// SelectMultiple selects ids in order; the last one becomes primary.
func (m *Manager) SelectMultiple(ids []string, additive bool) {
	if !additive {
		m.reset()
	}
	for _, id := range ids {
		m.add(id)
	}
	if len(ids) > 0 {
		m.primary = ids[len(ids)-1]
	}
	logger.DebugTagf("selection", "SelectMultiple %d ids (additive=%v)", len(ids), additive)
	m.notify()
}

// Deselect removes id, reassigning primary like Toggle.
func (m *Manager) Deselect(id string) {
	if !m.remove(id) {
		return
	}
	if m.primary == id {
		m.primary = ""
		if n := len(m.order); n > 0 {
			m.primary = m.order[n-1]
		}
	}
	m.notify()
}

// Clear empties the selection.
func (m *Manager) Clear() {
	if len(m.order) == 0 && m.primary == "" {
		return
	}
	m.reset()
	m.notify()
}

// SetHovered records the node under the pointer; "" clears it.
func (m *Manager) SetHovered(id string) {
	if m.hovered == id {
		return
	}
	m.hovered = id
	m.notify()
}

// StartMarquee opens a zero-size marquee at origin.
func (m *Manager) StartMarquee(origin types.Point) {
	m.marqueeOrigin = origin
	r := types.Rect{X: origin.X, Y: origin.Y}
	m.marquee = &r
	m.notify()
}

// UpdateMarquee stretches the marquee from its origin to p.
func (m *Manager) UpdateMarquee(p types.Point) {
	if m.marquee == nil {
		return
	}
	r := types.RectFromPoints(m.marqueeOrigin, p)
	m.marquee = &r
	m.notify()
}

// EndMarquee closes the marquee and selects idsInRect. An empty result
// clears the selection unless additive.
func (m *Manager) EndMarquee(idsInRect []string, additive bool) {
	m.marquee = nil
	if len(idsInRect) == 0 {
		if !additive {
			m.reset()
		}
		m.notify()
		return
	}
	m.SelectMultiple(idsInRect, additive)
}

// CancelMarquee discards the marquee without touching the selection.
func (m *Manager) CancelMarquee() {
	if m.marquee == nil {
		return
	}
	m.marquee = nil
	m.notify()
}

// EnterGroup scopes editing to the group id and clears the selection.
func (m *Manager) EnterGroup(id string) {
	if m.enteredGroup != "" {
		m.groupStack = append(m.groupStack, m.enteredGroup)
	}
	m.enteredGroup = id
	m.reset()
	logger.DebugTagf("selection", "Entered group %s (depth %d)", id, len(m.groupStack)+1)
	m.notify()
}

// ExitGroup returns to the previously entered group, or the root scope.
func (m *Manager) ExitGroup() {
	if m.enteredGroup == "" {
		return
	}
	m.enteredGroup = ""
	if n := len(m.groupStack); n > 0 {
		m.enteredGroup = m.groupStack[n-1]
		m.groupStack = m.groupStack[:n-1]
	}
	m.reset()
	m.notify()
}

// ExitAllGroups returns to the root scope and clears the selection.
func (m *Manager) ExitAllGroups() {
	m.groupStack = nil
	m.enteredGroup = ""
	m.reset()
	m.notify()
}

// Snapshot captures the selected ids and primary.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{IDs: slices.Clone(m.order), Primary: m.primary}
}

// RestoreFromSnapshot replaces the selected ids and primary. Hover, marquee
// and group scope are left alone.
func (m *Manager) RestoreFromSnapshot(s Snapshot) {
	m.reset()
	for _, id := range s.IDs {
		m.add(id)
	}
	m.primary = s.Primary
	m.notify()
}

// Reset returns the manager to its initial state.
func (m *Manager) Reset() {
	m.reset()
	m.hovered = ""
	m.marquee = nil
	m.enteredGroup = ""
	m.groupStack = nil
	m.notify()
}

// Selected returns the selected ids in insertion order.
func (m *Manager) Selected() []string { return slices.Clone(m.order) }

func (m *Manager) IsSelected(id string) bool {
	_, ok := m.members[id]
	return ok
}

func (m *Manager) Len() int { return len(m.order) }

func (m *Manager) Primary() string { return m.primary }

func (m *Manager) Hovered() string { return m.hovered }

// Marquee returns the current marquee rectangle, if one is open.
func (m *Manager) Marquee() (types.Rect, bool) {
	if m.marquee == nil {
		return types.Rect{}, false
	}
	return *m.marquee, true
}

// EnteredGroup returns the group the user is editing inside, or "".
func (m *Manager) EnteredGroup() string { return m.enteredGroup }

// GroupStack returns previously entered groups, outermost first.
func (m *Manager) GroupStack() []string { return slices.Clone(m.groupStack) }
