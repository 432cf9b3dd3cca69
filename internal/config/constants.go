package config

import "time"

// Base application details
const AppName = "tidecanvas"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tidecanvas.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Canvas defaults
const DefaultMaxHistory = 50
const DefaultMinZoom = 0.01
const DefaultMaxZoom = 256.0
const DefaultNudge = 1.0
const DefaultLargeNudge = 10.0
const DefaultPasteOffset = 10.0
const DefaultTheme = "Canvas Dark"
const SystemClipboard = false
