package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/footsteps/internal/logger"
)

// Manager holds the known themes and the active one. Names are matched
// case-insensitively.
type Manager struct {
	mu     sync.RWMutex
	themes map[string]*Theme
	active *Theme
}

// NewManager creates a manager holding the built-in theme, active.
func NewManager() *Manager {
	builtin := TrailDark
	return &Manager{
		themes: map[string]*Theme{strings.ToLower(builtin.Name): &builtin},
		active: &builtin,
	}
}

// LoadDir loads every .toml file in dir. A missing directory is not an
// error. Files that fail to parse are logged and skipped.
func (m *Manager) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.DebugTagf("theme", "Theme directory '%s' does not exist", dir)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading theme directory '%s': %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		t, err := LoadFile(path)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		m.Add(t)
		loaded++
	}
	logger.Infof("Loaded %d themes from %s", loaded, dir)
	return loaded, nil
}

// Add registers t, replacing any theme with the same name.
func (m *Manager) Add(t *Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(t.Name)
	if _, exists := m.themes[key]; exists {
		logger.DebugTagf("theme", "Theme '%s' replaced", t.Name)
	}
	m.themes[key] = t
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// SetTheme makes the named theme active.
func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.active != t {
		m.active = t
		logger.Infof("Active theme set to: %s", t.Name)
	}
	return nil
}

// Names returns the theme names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
