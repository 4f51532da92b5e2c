package commands

import "github.com/bethropolis/footsteps/internal/theme"

// AppAPI is what the built-in commands need from the application.
type AppAPI interface {
	SaveBuffer() error
	RequestQuit(force bool) error
	OpenFile(path string) error
	SwitchBuffer(index int) error
	BufferNames() []string
}

// ThemeAPI gives access to the theme manager.
type ThemeAPI interface {
	GetTheme() *theme.Theme
	SetTheme(name string) error
	ListThemes() []string
}
