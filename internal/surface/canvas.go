package surface

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/fracsim/internal/fractal"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// litLevel is the gray level from which a monochrome point sets its dot.
const litLevel = 0.5

// Canvas is a terminal surface of Width x Height braille cells. A point is
// drawn as a dot when its color is lit: any non-background palette index,
// or a gray level of at least one half.
type Canvas struct {
	viewports
	Width, Height int
	Grid          [][]rune
	Colors        [][]fractal.Color

	palette Palette
	lit     [][]bool
}

func NewCanvas(w, h int, p Palette) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		Colors:  make([][]fractal.Color, h),
		palette: p,
		lit:     make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]fractal.Color, w)
		c.lit[i] = make([]bool, w)
	}
	c.Clear()
	return c
}

// SetPalette changes the colors used by String and SVG.
func (c *Canvas) SetPalette(p Palette) { c.palette = p }

func (c *Canvas) Palette() Palette { return c.palette }

// Set sets a dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a dot
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = fractal.Background
			c.lit[i][j] = false
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) Open(width, height float64) error {
	c.Clear()
	return c.reset(width, height)
}

func (c *Canvas) DefineViewport(id int, vp fractal.Viewport) error {
	return c.define(id, vp)
}

// subPixel maps a plane point to sub-pixel coordinates.
func (c *Canvas) subPixel(vp fractal.Viewport, re, im float64) (int, int) {
	sx, sy := vp.ToScreen(re, im)
	fx := float64(c.Width*2) / c.width
	fy := float64(c.Height*4) / c.height
	return int(math.Floor(sx*fx + pixelEps)), int(math.Ceil(sy*fy-pixelEps)) - 1
}

func (c *Canvas) Plot(id int, re, im float64, col fractal.Color) error {
	vp, err := c.get(id)
	if err != nil {
		return err
	}
	x, y := c.subPixel(vp, re, im)
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return nil
	}

	if !isLit(col) {
		c.Unset(x, y)
		return nil
	}
	c.Set(x, y)
	c.Colors[y/4][x/2] = col
	c.lit[y/4][x/2] = true
	return nil
}

func isLit(c fractal.Color) bool {
	if c.Mono {
		return c.Level >= litLevel
	}
	return c.Index != fractal.IndexBackground
}

func (c *Canvas) Box(id int, r fractal.Region) error {
	vp, err := c.get(id)
	if err != nil {
		return err
	}
	x0, y0 := c.subPixel(vp, r.RealMin, r.ImagMax)
	x1, y1 := c.subPixel(vp, r.RealMax, r.ImagMin)
	top, right := y0+1, x1-1
	c.DrawLine(x0, top, right, top)
	c.DrawLine(right, top, right, y1)
	c.DrawLine(right, y1, x0, y1)
	c.DrawLine(x0, y1, x0, top)
	return nil
}

func (c *Canvas) Close() error { return nil }

// Plain returns the dots without color.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// String renders the canvas with each cell in the color of its last lit
// point.
func (c *Canvas) String() string {
	styles := make(map[string]lipgloss.Style)
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if !c.lit[i][j] {
				b.WriteRune(r)
				continue
			}
			hex := c.palette.Hex(c.Colors[i][j])
			st, ok := styles[hex]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
				styles[hex] = st
			}
			b.WriteString(st.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
