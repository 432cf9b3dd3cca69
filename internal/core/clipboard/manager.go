// Package clipboard holds the in-memory copy buffer for nodes.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/segmentio/encoding/json"

	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/types"
)

// mimeTag marks clipboard text written by this program.
const mimeTag = "tidecanvas/nodes"

var ErrNotOurs = errors.New("clipboard text does not contain nodes")

// System is the OS clipboard. github.com/atotto/clipboard satisfies it
// through SystemClipboard.
type System interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

// Content is one copy: root nodes in selection order, every descendant
// keyed by id, and the point the copy was taken around.
type Content struct {
	Roots       []scene.Node
	Descendants map[string]scene.Node
	Origin      types.Point
}

type payload struct {
	Kind        string                    `json:"kind"`
	Roots       []map[string]any          `json:"roots"`
	Descendants map[string]map[string]any `json:"descendants"`
	Origin      types.Point               `json:"origin"`
}

// Manager handles clipboard operations
type Manager struct {
	content    *Content
	system     System
	pasteCount int
}

// NewManager creates a clipboard. system may be nil.
func NewManager(system System) *Manager {
	return &Manager{system: system}
}

// Set replaces the buffer wholesale with a deep copy of c.
func (m *Manager) Set(c Content) {
	stored := cloneContent(c)
	m.content = &stored
	m.pasteCount = 0
	logger.DebugTagf("clipboard", "Stored %d root(s), %d descendant(s)", len(c.Roots), len(c.Descendants))

	if m.system == nil {
		return
	}
	if err := m.system.WriteAll(encode(stored)); err != nil {
		logger.WarnTagf("clipboard", "System clipboard write failed: %v", err)
	}
}

// Get returns a deep copy of the buffer. When empty, it tries the system
// clipboard first.
func (m *Manager) Get() (Content, bool) {
	if m.content == nil {
		if err := m.Import(); err != nil {
			return Content{}, false
		}
	}
	return cloneContent(*m.content), true
}

// Import loads nodes previously exported to the system clipboard.
func (m *Manager) Import() error {
	if m.system == nil {
		return ErrNotOurs
	}
	text, err := m.system.ReadAll()
	if err != nil {
		return fmt.Errorf("read system clipboard: %w", err)
	}
	c, err := decode(text)
	if err != nil {
		return err
	}
	m.content = &c
	m.pasteCount = 0
	return nil
}

// NextPaste increments and returns how many times the current content has
// been pasted, used to cascade paste offsets.
func (m *Manager) NextPaste() int {
	m.pasteCount++
	return m.pasteCount
}

func (m *Manager) HasContent() bool { return m.content != nil }

// Clear empties the buffer. The system clipboard is left alone.
func (m *Manager) Clear() {
	m.content = nil
	m.pasteCount = 0
}

func cloneContent(c Content) Content {
	out := Content{
		Roots:       make([]scene.Node, len(c.Roots)),
		Descendants: scene.CloneMap(c.Descendants),
		Origin:      c.Origin,
	}
	for i, n := range c.Roots {
		out.Roots[i] = scene.Clone(n)
	}
	return out
}

func encode(c Content) string {
	p := payload{Kind: mimeTag, Origin: c.Origin, Descendants: make(map[string]map[string]any, len(c.Descendants))}
	for _, n := range c.Roots {
		p.Roots = append(p.Roots, map[string]any(n))
	}
	for id, n := range c.Descendants {
		p.Descendants[id] = map[string]any(n)
	}
	b, err := json.Marshal(p)
	if err != nil {
		logger.WarnTagf("clipboard", "Encode failed: %v", err)
		return ""
	}
	return string(b)
}

func decode(text string) (Content, error) {
	var p payload
	if err := json.Unmarshal([]byte(text), &p); err != nil || p.Kind != mimeTag {
		return Content{}, ErrNotOurs
	}
	c := Content{Origin: p.Origin, Descendants: make(map[string]scene.Node, len(p.Descendants))}
	for _, r := range p.Roots {
		c.Roots = append(c.Roots, scene.Node(r))
	}
	for id, n := range p.Descendants {
		c.Descendants[id] = scene.Node(n)
	}
	return c, nil
}
