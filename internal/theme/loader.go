package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/logger"
)

// styleDef is one style in a theme file. Pointers tell unset apart from false.
type styleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Styles map[string]styleDef `toml:"styles"`
}

// LoadFile parses a TOML theme file. Styles inherit unset attributes from
// the file's "Default" style.
func LoadFile(filePath string) (*Theme, error) {
	var tf themeFile
	md, err := toml.DecodeFile(filePath, &tf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file '%s': %w", filePath, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	if tf.Name == "" {
		tf.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	t := &Theme{
		Name:   tf.Name,
		IsDark: tf.IsDark,
		Styles: make(map[string]tcell.Style, len(tf.Styles)+1),
	}

	base := tcell.StyleDefault
	if def, ok := tf.Styles["Default"]; ok {
		if base, err = def.apply(tcell.StyleDefault); err != nil {
			return nil, fmt.Errorf("theme '%s': Default style: %w", t.Name, err)
		}
	}
	t.Styles["Default"] = base

	for name, def := range tf.Styles {
		if name == "Default" {
			continue
		}
		style, err := def.apply(base)
		if err != nil {
			logger.Warnf("Theme '%s': skipping style '%s': %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}

	logger.DebugTagf("theme", "Loaded theme '%s' from '%s'", t.Name, filePath)
	return t, nil
}

func (d styleDef) apply(style tcell.Style) (tcell.Style, error) {
	if d.Fg != nil {
		c, err := ParseColor(*d.Fg)
		if err != nil {
			return style, fmt.Errorf("foreground: %w", err)
		}
		style = style.Foreground(c)
	}
	if d.Bg != nil {
		c, err := ParseColor(*d.Bg)
		if err != nil {
			return style, fmt.Errorf("background: %w", err)
		}
		style = style.Background(c)
	}
	if d.Bold != nil {
		style = style.Bold(*d.Bold)
	}
	if d.Italic != nil {
		style = style.Italic(*d.Italic)
	}
	if d.Underline != nil {
		style = style.Underline(*d.Underline)
	}
	if d.Reverse != nil {
		style = style.Reverse(*d.Reverse)
	}
	return style, nil
}

// ParseColor accepts "#rrggbb", "reset", "default" or a colour name known to
// tcell ("red", "darkslategray").
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color '%s', must be #RRGGBB", s)
		}
		c := tcell.GetColor(s)
		if c == tcell.ColorDefault {
			return c, fmt.Errorf("invalid hex color '%s'", s)
		}
		return c, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color '%s'", s)
}
