// Package fractal provides the escape-time primitives for Mandelbrot and
// Julia set rendering.
//
// The package defines the numeric core shared by every renderer:
//
//   - [Evaluate]: the per-point divergence test
//   - [ColorFor]: monochrome and colorful coloring policies
//   - [Clamp] and [Zoom]: zoom windows kept inside [-2, 2]²
//   - [Resolution], [SingleLayout], [MultiLayout]: pixel grids and tiling
//
// # Example
//
//	r := fractal.Evaluate(0, 0, -0.75, 0.1, fractal.MaxIterations)
//	c := fractal.ColorFor(r, fractal.MaxIterations, false, true)
//
// # Thread Safety
//
// Everything in this package is a pure function of its arguments except the
// tile parameter draw, which consumes the caller's *rand.Rand.
package fractal
