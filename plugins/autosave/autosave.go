package autosave

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/plugin"
	"github.com/bethropolis/tidecanvas/internal/utils"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave saves the document once edits have been quiet for the
// configured interval.
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex
	enabled  bool
	interval time.Duration

	debouncer utils.Debouncer
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads [plugins.autosave], watches for node edits and registers
// the :autosave command.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api

	p.mutex.Lock()
	p.enabled = configBool(api, p.Name(), "enabled", p.enabled)
	p.interval = configDuration(api, p.Name(), "interval", p.interval)
	enabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	api.SubscribeEvent(event.TypeDocumentChanged, p.handleChange)
	if err := api.RegisterCommand("autosave", p.command); err != nil {
		return fmt.Errorf("%s: %w", p.Name(), err)
	}
	logger.Infof("%s initialized. Enabled: %v, Interval: %v", p.Name(), enabled, interval)
	return nil
}

// command implements ":autosave [on|off]".
func (p *AutoSave) command(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: autosave [on|off]")
	}
	p.mutex.Lock()
	if len(args) == 1 {
		switch args[0] {
		case "on":
			p.enabled = true
		case "off":
			p.enabled = false
			p.debouncer.Stop()
		default:
			p.mutex.Unlock()
			return fmt.Errorf("autosave: expected on or off, got %q", args[0])
		}
	}
	enabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	if enabled {
		p.api.SetStatusMessage("Auto-save on (%v)", interval)
	} else {
		p.api.SetStatusMessage("Auto-save off")
	}
	return nil
}

func configBool(api plugin.EditorAPI, name, key string, def bool) bool {
	v, ok := api.GetPluginConfigValue(name, key)
	if !ok {
		logger.Debugf("%s: Config '%s' not found, using default (%v)", name, key, def)
		return def
	}
	b, isBool := v.(bool)
	if !isBool {
		logger.Warnf("%s: Invalid type for '%s' config (%T), using default (%v)", name, key, v, def)
		return def
	}
	return b
}

func configDuration(api plugin.EditorAPI, name, key string, def time.Duration) time.Duration {
	v, ok := api.GetPluginConfigValue(name, key)
	if !ok {
		return def
	}
	str, isStr := v.(string)
	if !isStr {
		logger.Warnf("%s: Invalid type for '%s' config (%T), using default (%v)", name, key, v, def)
		return def
	}
	d, err := time.ParseDuration(str)
	if err != nil || d <= 0 {
		logger.Warnf("%s: '%s' must be a positive duration, got %q; using default (%v)", name, key, str, def)
		return def
	}
	return d
}

// Shutdown drops any pending save.
func (p *AutoSave) Shutdown() error {
	if p.debouncer.Stop() {
		logger.Debugf("%s: Dropped pending auto-save on shutdown.", p.Name())
	}
	return nil
}

// handleChange restarts the quiet-period timer on node edits.
func (p *AutoSave) handleChange(e event.Event) bool {
	data, ok := e.Data.(event.DocumentChangedData)
	if !ok || (data.Source != event.SourceNodes && data.Source != event.SourceHistory) {
		return false
	}
	p.mutex.RLock()
	enabled, interval := p.enabled, p.interval
	p.mutex.RUnlock()
	if !enabled {
		return false
	}

	p.debouncer.Debounce(interval, func() {
		// The timer fires on its own goroutine; the document belongs to the main loop.
		p.api.Schedule(p.saveIfModified)
	})
	return false
}

// saveIfModified saves the document if it has unsaved changes and a path.
func (p *AutoSave) saveIfModified() {
	if !p.api.IsDocumentModified() {
		logger.Debugf("%s: Document not modified, skipping auto-save.", p.Name())
		return
	}
	filePath := p.api.DocumentPath()
	if filePath == "" {
		logger.Debugf("%s: Document is modified but has no path, skipping auto-save.", p.Name())
		return
	}

	logger.Infof("%s: Auto-saving %s", p.Name(), filePath)
	if err := p.api.SaveDocument(); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
		p.api.SetStatusMessage("Auto-save failed: %v", err)
		return
	}
	logger.Debugf("%s: Auto-save successful for '%s'", p.Name(), filePath)
}
