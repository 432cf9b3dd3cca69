// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/tidecanvas/internal/logger"
)

// ErrThemeNotFound is returned when a theme name matches nothing loaded.
var ErrThemeNotFound = errors.New("theme not found")

// Manager is the registry of built-in and user themes plus the active one.
// Names are matched case-insensitively.
type Manager struct {
	mu     sync.RWMutex
	themes map[string]*Theme
	active *Theme
}

// NewManager registers the built-in themes, loads every *.toml under
// themesDir ("" skips the directory) and activates initial. An unknown
// initial theme falls back to Canvas Dark.
func NewManager(themesDir, initial string) *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	for _, t := range []*Theme{&CanvasDark, &CanvasLight} {
		m.themes[themeKey(t.Name)] = t
	}

	if themesDir != "" {
		n, err := m.loadDir(themesDir)
		if err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		} else if n > 0 {
			logger.Infof("Loaded %d custom theme(s) from '%s'", n, themesDir)
		}
	}

	if err := m.SetTheme(initial); err != nil {
		logger.Warnf("Theme '%s' unavailable (%v), using '%s'", initial, err, CanvasDark.Name)
		m.active = &CanvasDark
	}
	return m
}

func themeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// loadDir loads theme files in filename order. A file whose base theme is
// defined by a later file is retried until a pass makes no progress.
func (m *Manager) loadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		logger.DebugTagf("theme", "Theme directory '%s' does not exist", dir)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	var pending []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".toml") {
			pending = append(pending, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(pending)

	m.mu.Lock()
	defer m.mu.Unlock()
	lookup := func(name string) (*Theme, bool) {
		t, ok := m.themes[themeKey(name)]
		return t, ok
	}

	loaded := 0
	lastErr := make(map[string]error)
	for len(pending) > 0 {
		var retry []string
		for _, path := range pending {
			t, err := LoadThemeFromFile(path, lookup)
			if err != nil {
				lastErr[path] = err
				retry = append(retry, path)
				continue
			}
			if prev, ok := m.themes[themeKey(t.Name)]; ok {
				logger.Warnf("Theme '%s' from '%s' replaces '%s'", t.Name, path, prev.Name)
			}
			m.themes[themeKey(t.Name)] = t
			loaded++
		}
		if len(retry) == len(pending) {
			for _, path := range retry {
				logger.Warnf("Failed to load theme from '%s': %v", path, lastErr[path])
			}
			break
		}
		pending = retry
	}
	return loaded, nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return &CanvasDark
	}
	return m.active
}

// SetTheme activates the theme called name.
func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.themes[themeKey(name)]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrThemeNotFound, name)
	}
	m.active = t
	logger.DebugTagf("theme", "Active theme set to: %s", t.Name)
	return nil
}

// ListThemes returns the display names of all themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
