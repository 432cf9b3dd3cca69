// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/tidecanvas/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu          sync.RWMutex
	plugins     map[string]Plugin
	initialized []string // names whose Initialize succeeded, in order
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	logger.DebugTagf("plugin", "Registered plugin '%s'", name)
	return nil
}

// sorted returns the registered plugins ordered by name.
func (m *Manager) sorted() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Plugin, len(names))
	for i, name := range names {
		out[i] = m.plugins[name]
	}
	return out
}

// InitializePlugins calls Initialize on every plugin in name order. A plugin
// that fails is logged and skipped; the rest still load. Returns the
// number of failures.
func (m *Manager) InitializePlugins(api EditorAPI) int {
	plugins := m.sorted()
	logger.Infof("Plugin Manager: Initializing %d plugins...", len(plugins))

	failed := 0
	for _, plugin := range plugins {
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
			failed++
			continue
		}
		m.mu.Lock()
		m.initialized = append(m.initialized, plugin.Name())
		m.mu.Unlock()
		logger.DebugTagf("plugin", "Initialized plugin '%s'", plugin.Name())
	}
	return failed
}

// ShutdownPlugins calls Shutdown on initialized plugins in reverse order.
func (m *Manager) ShutdownPlugins() {
	m.mu.Lock()
	names := m.initialized
	m.initialized = nil
	m.mu.Unlock()

	logger.Infof("Plugin Manager: Shutting down %d plugins...", len(names))
	for i := len(names) - 1; i >= 0; i-- {
		plugin, ok := m.GetPlugin(names[i])
		if !ok {
			continue
		}
		if err := plugin.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugin.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name. Use cautiously.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// Names lists registered plugins in name order.
func (m *Manager) Names() []string {
	plugins := m.sorted()
	names := make([]string, len(plugins))
	for i, p := range plugins {
		names[i] = p.Name()
	}
	return names
}
