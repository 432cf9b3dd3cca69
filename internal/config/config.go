// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/tidecanvas/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // [logger] table
	Canvas CanvasConfig  `toml:"canvas"` // [canvas] table
	// Plugins holds free-form [plugins.<name>] tables.
	Plugins map[string]map[string]any `toml:"plugins"`
}

// CanvasConfig holds editing and view settings.
type CanvasConfig struct {
	MaxHistory      int        `toml:"max_history"`
	MinZoom         float64    `toml:"min_zoom"`
	MaxZoom         float64    `toml:"max_zoom"`
	Nudge           float64    `toml:"nudge"`
	LargeNudge      float64    `toml:"large_nudge"`
	PasteOffset     [2]float64 `toml:"paste_offset"`
	DuplicateOffset [2]float64 `toml:"duplicate_offset"`
	SystemClipboard bool       `toml:"system_clipboard"`
	StatusBarHeight int        `toml:"status_bar_height"`
	Theme           string     `toml:"theme"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Canvas: CanvasConfig{
			MaxHistory:      DefaultMaxHistory,
			MinZoom:         DefaultMinZoom,
			MaxZoom:         DefaultMaxZoom,
			Nudge:           DefaultNudge,
			LargeNudge:      DefaultLargeNudge,
			PasteOffset:     [2]float64{DefaultPasteOffset, DefaultPasteOffset},
			DuplicateOffset: [2]float64{DefaultPasteOffset, DefaultPasteOffset},
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
			Theme:           DefaultTheme,
		},
		Plugins: make(map[string]map[string]any),
	}
}

// DefaultPath returns ~/.config/tidecanvas/config.toml, or "" if the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// decodeFile overlays the TOML file onto cfg. Keys absent from the file keep
// their current values. A missing file is not an error.
func decodeFile(filePath string, cfg *Config) error {
	if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// Plugin tables are free-form; only report keys outside them.
		var unknown []toml.Key
		for _, k := range undecoded {
			if len(k) > 0 && k[0] == "plugins" {
				continue
			}
			unknown = append(unknown, k)
		}
		if len(unknown) > 0 {
			logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, unknown)
		}
	}
	return nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Canvas.MaxHistory <= 0 {
		c.Canvas.MaxHistory = defaults.Canvas.MaxHistory
	}
	if c.Canvas.MinZoom <= 0 {
		c.Canvas.MinZoom = defaults.Canvas.MinZoom
	}
	if c.Canvas.MaxZoom < c.Canvas.MinZoom {
		c.Canvas.MinZoom = defaults.Canvas.MinZoom
		c.Canvas.MaxZoom = defaults.Canvas.MaxZoom
	}
	if c.Canvas.Nudge <= 0 {
		c.Canvas.Nudge = defaults.Canvas.Nudge
	}
	if c.Canvas.LargeNudge <= 0 {
		c.Canvas.LargeNudge = defaults.Canvas.LargeNudge
	}
	if c.Canvas.StatusBarHeight <= 0 {
		c.Canvas.StatusBarHeight = defaults.Canvas.StatusBarHeight
	}
	if c.Canvas.Theme == "" {
		c.Canvas.Theme = defaults.Canvas.Theme
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Plugins == nil {
		c.Plugins = make(map[string]map[string]any)
	}
}

// Load builds a configuration: defaults, then the file at path ("" tries
// DefaultPath), then flag overrides, then validation.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	var err error
	if path != "" {
		err = decodeFile(path, cfg)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads once per process and remembers the result for Get.
func LoadConfig(path string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(path, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// PluginValue returns one key of a [plugins.<name>] table.
func (c *Config) PluginValue(plugin, key string) (any, bool) {
	table, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}
