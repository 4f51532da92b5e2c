package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/footsteps/internal/logger"
)

// ErrNoConfigPath is returned when no config file location can be determined.
var ErrNoConfigPath = errors.New("no config file path")

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	Editor    EditorConfig    `toml:"editor"`
	Footsteps FootstepsConfig `toml:"footsteps"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int    `toml:"tab_width"`
	ScrollOff       int    `toml:"scroll_off"`
	SystemClipboard bool   `toml:"system_clipboard"`
	StatusBarHeight int    `toml:"status_bar_height"`
	Theme           string `toml:"theme"`
}

// FootstepsConfig controls the edit history and how it is highlighted.
type FootstepsConfig struct {
	MaxChunksToRemember         int `toml:"max_chunks_to_remember"`
	MaxChunksConsideredForMerge int `toml:"max_chunks_considered_for_merge"`
	// MinDistanceFromCursor hides highlights closer than this many lines to
	// the cursor. Zero never hides anything.
	MinDistanceFromCursor int     `toml:"min_distance_from_cursor_to_highlight"`
	HighlightEmptyLines   bool    `toml:"highlight_empty_lines"`
	ClearOnSave           bool    `toml:"clear_on_save"`
	HighlightChanges      bool    `toml:"highlight_changes"`
	HighlightColor        string  `toml:"highlight_color"`
	HighlightMaxOpacity   float64 `toml:"highlight_max_opacity"`
	MaxChunksToHighlight  int     `toml:"max_chunks_to_highlight"`
	HighlightFocusedChunk bool    `toml:"highlight_focused_chunk"`
	IgnoreBlankEdits      bool    `toml:"ignore_blank_edits"`
}

var (
	mu           sync.RWMutex
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
		Footsteps: FootstepsConfig{
			MaxChunksToRemember:         DefaultMaxChunksToRemember,
			MaxChunksConsideredForMerge: DefaultMaxChunksConsideredMerge,
			MinDistanceFromCursor:       DefaultMinDistance,
			HighlightEmptyLines:         true,
			ClearOnSave:                 false,
			HighlightChanges:            true,
			HighlightColor:              DefaultHighlightColor,
			HighlightMaxOpacity:         DefaultHighlightMaxOpacity,
			MaxChunksToHighlight:        DefaultMaxChunksToHighlight,
			HighlightFocusedChunk:       true,
			IgnoreBlankEdits:            true,
		},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigPath, err)
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName), nil
}

// ResolvePath returns path, or the default location when path is empty.
func ResolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultPath()
}

// loadFromFile decodes filePath over cfg. Keys absent from the file keep
// their current values. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config, verbose bool) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.DebugTagf("config", "Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	if verbose {
		logger.Infof("Loaded configuration from: %s", filePath)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	fs := &c.Footsteps
	if fs.MaxChunksToRemember <= 0 {
		fs.MaxChunksToRemember = defaults.Footsteps.MaxChunksToRemember
	}
	if fs.MaxChunksConsideredForMerge <= 0 {
		fs.MaxChunksConsideredForMerge = defaults.Footsteps.MaxChunksConsideredForMerge
	}
	if fs.MinDistanceFromCursor < 0 {
		fs.MinDistanceFromCursor = defaults.Footsteps.MinDistanceFromCursor
	}
	if fs.HighlightColor == "" {
		fs.HighlightColor = defaults.Footsteps.HighlightColor
	}
	if fs.HighlightMaxOpacity < 0 || fs.HighlightMaxOpacity > 1 {
		fs.HighlightMaxOpacity = defaults.Footsteps.HighlightMaxOpacity
	}
	if fs.MaxChunksToHighlight <= 0 {
		fs.MaxChunksToHighlight = defaults.Footsteps.MaxChunksToHighlight
	}
}

// Load builds a configuration from defaults, the file at path and flag
// overrides. An empty path means the default location. It does not touch
// the global configuration.
func Load(path string, flags *Flags, verbose bool) (*Config, error) {
	cfg := NewDefaultConfig()

	var fileErr error
	effectivePath, err := ResolvePath(path)
	if err == nil {
		fileErr = loadFromFile(effectivePath, cfg, verbose)
	}
	if fileErr != nil {
		// Keep going with defaults so the editor still starts.
		cfg = NewDefaultConfig()
	}

	if flags != nil {
		flags.ApplyOverrides(cfg, verbose)
	}
	cfg.validate()
	return cfg, fileErr
}

// LoadConfig loads the configuration once and stores it globally. The
// logger is usually not initialised yet, so nothing is logged.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		var cfg *Config
		cfg, loadErr = Load(configFilePath, flags, false)
		Set(cfg)
	})
	return Get(), loadErr
}

// Reload re-reads the configuration and replaces the global one. On a parse
// error the previous configuration is kept.
func Reload(configFilePath string, flags *Flags) (*Config, error) {
	cfg, err := Load(configFilePath, flags, true)
	if err != nil {
		mu.RLock()
		prev := loadedConfig
		mu.RUnlock()
		return prev, err
	}
	Set(cfg)
	return cfg, nil
}

// Set replaces the global configuration.
func Set(cfg *Config) {
	mu.Lock()
	loadedConfig = cfg
	mu.Unlock()
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
