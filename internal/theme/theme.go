package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/logger"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style. Dotted names fall back to their base
// name ("StatusBar.Steps" -> "StatusBar"), then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dot := strings.Index(name, "."); dot != -1 {
		if style, ok := t.Styles[name[:dot]]; ok {
			return style
		}
	}

	if def, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': style '%s' not found, using 'Default'", t.Name, name)
		}
		return def
	}

	logger.Warnf("Theme '%s': neither '%s' nor 'Default' defined, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// Background returns the background colour of the Default style.
func (t *Theme) Background() tcell.Color {
	_, bg, _ := t.GetStyle("Default").Decompose()
	return bg
}

// TrailDark is the built-in theme.
var TrailDark = newTrailDark()

func newTrailDark() Theme {
	bg := tcell.NewHexColor(0x1e2127)
	bar := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	orange := tcell.NewHexColor(0xd19a66)

	base := tcell.StyleDefault.Background(bg).Foreground(fg)
	status := tcell.StyleDefault.Background(bar).Foreground(fg)

	return Theme{
		Name:   "Trail Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":           base,
			"LineNumber":        base.Foreground(muted),
			"LineNumberCurrent": base.Foreground(yellow),
			"StatusBar":         status,
			"StatusBarModified": status.Foreground(yellow),
			"StatusBarMessage":  status.Bold(true),
			"StatusBarCommand":  status.Foreground(green).Bold(true),
			"StatusBarSteps":    status.Foreground(orange),
		},
	}
}
