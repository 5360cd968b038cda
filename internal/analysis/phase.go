package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Point is a complex number as a pair of plane coordinates.
type Point struct {
	Re, Im float64
}

func (p Point) Abs() float64 { return math.Hypot(p.Re, p.Im) }

// Orbit is the sequence of iterates z, z^2+c, ... of one point.
type Orbit struct {
	C       Point
	Points  []Point
	Escaped bool
}

// TraceOrbit iterates z -> z^2 + c from z0 until |z| exceeds 2 or
// maxIterations iterates have been recorded. The escaping iterate is kept.
// A Mandelbrot pixel starts at z0 = 0 with c at the pixel; a Julia pixel
// starts at the pixel with c at the parameter.
func TraceOrbit(z0, c Point, maxIterations int) *Orbit {
	o := &Orbit{C: c, Points: make([]Point, 0, 64)}
	z := z0
	for k := 0; k < maxIterations; k++ {
		o.Points = append(o.Points, z)
		if z.Re*z.Re+z.Im*z.Im > 4 {
			o.Escaped = true
			break
		}
		z = Point{Re: z.Re*z.Re - z.Im*z.Im + c.Re, Im: 2*z.Re*z.Im + c.Im}
	}
	return o
}

// Magnitudes returns |z| for every iterate.
func (o *Orbit) Magnitudes() []float64 {
	out := make([]float64, len(o.Points))
	for i, p := range o.Points {
		out[i] = p.Abs()
	}
	return out
}

// PlotMagnitudes graphs |z| against the iterate index.
func PlotMagnitudes(o *Orbit, width, height int) string {
	if o == nil || len(o.Points) == 0 {
		return ""
	}
	return asciigraph.Plot(o.Magnitudes(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("|z| for c = %g%+gi", o.C.Re, o.C.Im)),
	)
}

// OrbitToASCII plots the iterates in the plane, with axes when they cross
// the visible area.
func OrbitToASCII(o *Orbit, width, height int) string {
	if o == nil || len(o.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := o.Points[0].Re, o.Points[0].Re
	minY, maxY := o.Points[0].Im, o.Points[0].Im
	for _, p := range o.Points {
		minX = math.Min(minX, p.Re)
		maxX = math.Max(maxX, p.Re)
		minY = math.Min(minY, p.Im)
		maxY = math.Max(maxY, p.Im)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	toCell := func(x, y float64) (int, int) {
		col := int((x - minX) / rangeX * float64(width-1))
		row := height - 1 - int((y-minY)/rangeY*float64(height-1))
		return row, col
	}

	if minX <= 0 && maxX >= 0 {
		_, col := toCell(0, 0)
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row, _ := toCell(0, 0)
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for i, p := range o.Points {
		row, col := toCell(p.Re, p.Im)
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch {
		case i == 0:
			canvas[row][col] = 'o'
		case i == len(o.Points)-1 && o.Escaped:
			canvas[row][col] = 'x'
		case canvas[row][col] != 'o':
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
