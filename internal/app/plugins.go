package app

import (
	"fmt"

	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/plugin"
	"github.com/bethropolis/tidecanvas/plugins/autosave"
	"github.com/bethropolis/tidecanvas/plugins/nodecount"
)

// pluginConstructors lists the built-in plugins. Adding a new plugin means
// adding its constructor here.
var pluginConstructors = []func() plugin.Plugin{
	func() plugin.Plugin { return nodecount.New() },
	autosave.New,
}

// registerPlugins registers all known plugins with the manager. It keeps
// going past failures and returns the first one.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}
