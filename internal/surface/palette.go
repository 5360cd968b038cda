package surface

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/fracsim/internal/fractal"
)

// Palette maps palette indices to colors. Index 0 is the background and
// index 7 is white.
type Palette [fractal.PaletteSize]color.RGBA

// Resolve converts a fractal color to RGBA.
func (p Palette) Resolve(c fractal.Color) color.RGBA {
	if c.Mono {
		v := uint8(math.Round(clamp01(c.Level) * 255))
		return color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	if c.Index < 0 || c.Index >= len(p) {
		return p[fractal.IndexBackground]
	}
	return p[c.Index]
}

// Hex returns the color of c as "#rrggbb".
func (p Palette) Hex(c fractal.Color) string {
	rgba := p.Resolve(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// wheelPalette spaces the six cycle colors around the HSV hue wheel in the
// order red, green, blue, magenta, yellow, cyan.
func wheelPalette() Palette {
	hues := []float64{0, 120, 240, 300, 60, 180}
	var p Palette
	p[0] = color.RGBA{A: 0xff}
	for i, h := range hues {
		p[i+1] = toRGBA(colorful.Hsv(h, 1, 1))
	}
	p[fractal.IndexWhite] = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	return p
}

// blendPalette interpolates the six cycle colors from start to end in HCL.
func blendPalette(background, start, end string) Palette {
	bg := mustHex(background)
	from, to := mustHex(start), mustHex(end)

	var p Palette
	p[0] = toRGBA(bg)
	for i := 1; i < fractal.IndexWhite; i++ {
		t := float64(i-1) / float64(fractal.IndexWhite-2)
		p[i] = toRGBA(from.BlendHcl(to, t))
	}
	p[fractal.IndexWhite] = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	return p
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("surface: bad palette color %q: %v", s, err))
	}
	return c
}

var palettes = map[string]Palette{
	"classic": wheelPalette(),
	"ocean":   blendPalette("#001a33", "#0077be", "#ffd700"),
	"sunset":  blendPalette("#2d1b2e", "#ff6b6b", "#feca57"),
	"ember":   blendPalette("#0a0a0a", "#8b0000", "#ffcc00"),
	"retro":   blendPalette("#001100", "#005500", "#88ff88"),
}

// GetPalette returns a named palette, or classic for unknown names.
func GetPalette(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["classic"]
}

// HasPalette reports whether name is a known palette.
func HasPalette(name string) bool {
	_, ok := palettes[name]
	return ok
}

func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
