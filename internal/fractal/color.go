package fractal

import "math"

const (
	// paletteCycle is the number of colors cycled through by divergence steps.
	paletteCycle = 7

	// IndexBackground is the palette index of converged points in colorful mode.
	IndexBackground = 0
	// IndexWhite is the palette index of pure white.
	IndexWhite = 7

	// PaletteSize is the number of entries a palette must provide.
	PaletteSize = 8

	// mandelbrotSaturation is the step at which the Mandelbrot gray curve
	// reaches white.
	mandelbrotSaturation = 5000.0
)

// Color is either a discrete palette index or a grayscale level.
type Color struct {
	Mono  bool
	Index int
	Level float64
}

var (
	White      = Color{Mono: true, Index: IndexWhite, Level: 1}
	Background = Color{Index: IndexBackground}
)

// Gray returns a monochrome color of the given level.
func Gray(level float64) Color {
	return Color{Mono: true, Level: level}
}

// Indexed returns a palette color.
func Indexed(i int) Color {
	return Color{Index: i}
}

// ColorFor maps an evaluation result to a color.
func ColorFor(r Result, maxIterations int, monochrome, mandelbrot bool) Color {
	if !monochrome {
		if !r.Escaped {
			return Background
		}
		return Indexed(-r.Code())
	}

	if !r.Escaped {
		return White
	}

	if mandelbrot {
		if float64(r.Step) > mandelbrotSaturation {
			return White
		}
		return Gray(math.Sin(float64(r.Step) / mandelbrotSaturation * math.Pi / 2))
	}

	return Gray(float64(r.Step) / float64(maxIterations))
}
