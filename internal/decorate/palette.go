package decorate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// fallbackBackground is blended against when the terminal background is
// the default colour and its RGB value is unknown.
var fallbackBackground = colorful.Color{R: 0x1e / 255.0, G: 0x1e / 255.0, B: 0x1e / 255.0}

// ParseColor accepts "rgb(r, g, b)", "rgba(r, g, b, a)" (alpha ignored) or
// "#rrggbb".
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return c, nil
	}

	lower := strings.ToLower(s)
	var body string
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		body = s[5 : len(s)-1]
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		body = s[4 : len(s)-1]
	default:
		return colorful.Color{}, fmt.Errorf("unsupported color %q", s)
	}

	parts := strings.Split(body, ",")
	if len(parts) < 3 {
		return colorful.Color{}, fmt.Errorf("color %q needs three components", s)
	}
	var rgb [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return colorful.Color{}, fmt.Errorf("color %q: component %d out of range", s, i+1)
		}
		rgb[i] = float64(v) / 255
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// Palette blends the highlight colour into the background at a given
// opacity, emulating a translucent line highlight on a terminal.
type Palette struct {
	highlight  colorful.Color
	background colorful.Color
}

// NewPalette parses color and prepares blending against background.
func NewPalette(color string, background tcell.Color) (*Palette, error) {
	hl, err := ParseColor(color)
	if err != nil {
		return nil, err
	}
	bg := fallbackBackground
	if background.Valid() && background != tcell.ColorDefault {
		r, g, b := background.RGB()
		if r >= 0 {
			bg = colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		}
	}
	return &Palette{highlight: hl, background: bg}, nil
}

// Color returns the blended colour for opacity in [0, 1].
func (p *Palette) Color(opacity float64) tcell.Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	r, g, b := p.background.BlendRgb(p.highlight, opacity).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Style applies the blended background for opacity to base.
func (p *Palette) Style(base tcell.Style, opacity float64) tcell.Style {
	return base.Background(p.Color(opacity))
}

// Styles maps each decoration's line to its style.
func (p *Palette) Styles(base tcell.Style, decorations []Decoration) map[int]tcell.Style {
	out := make(map[int]tcell.Style, len(decorations))
	for _, d := range decorations {
		out[d.Line] = p.Style(base, d.Opacity)
	}
	return out
}
