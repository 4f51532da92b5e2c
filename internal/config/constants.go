package config

import "time"

// Base application details
const AppName = "footsteps"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "footsteps.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Editor defaults
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true

// Footsteps defaults
const (
	DefaultMaxChunksToRemember      = 10
	DefaultMaxChunksConsideredMerge = 6
	DefaultMinDistance              = 0
	DefaultHighlightColor           = "rgb(255, 99, 72)"
	DefaultHighlightMaxOpacity      = 0.6
	DefaultMaxChunksToHighlight     = 6
)

// ReloadDebounce is how long the config watcher waits for writes to settle.
const ReloadDebounce = 150 * time.Millisecond
