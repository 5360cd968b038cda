package fractal

import "fmt"

// MaxIterations is the default iteration cap for a single point.
const MaxIterations = 1000

// Bound is the half-width of the plane window every zoom is clamped into.
const Bound = 2.0

// Region is a rectangle of the complex plane.
type Region struct {
	RealMin float64 `yaml:"real_min" json:"real_min"`
	RealMax float64 `yaml:"real_max" json:"real_max"`
	ImagMin float64 `yaml:"imag_min" json:"imag_min"`
	ImagMax float64 `yaml:"imag_max" json:"imag_max"`
}

// FullPlane is the default view, [-2, 2] on both axes.
var FullPlane = Region{RealMin: -Bound, RealMax: Bound, ImagMin: -Bound, ImagMax: Bound}

func (r Region) Validate() error {
	if !(r.RealMin < r.RealMax) || !(r.ImagMin < r.ImagMax) {
		return fmt.Errorf("%w: %s", ErrInvalidRegion, r)
	}
	return nil
}

func (r Region) Width() float64  { return r.RealMax - r.RealMin }
func (r Region) Height() float64 { return r.ImagMax - r.ImagMin }

// Center returns the midpoint of the region.
func (r Region) Center() (float64, float64) {
	return (r.RealMin + r.RealMax) / 2, (r.ImagMin + r.ImagMax) / 2
}

// Expand widens every side by margin.
func (r Region) Expand(margin float64) Region {
	return Region{
		RealMin: r.RealMin - margin,
		RealMax: r.RealMax + margin,
		ImagMin: r.ImagMin - margin,
		ImagMax: r.ImagMax + margin,
	}
}

// Contains reports whether (re, im) lies inside the closed rectangle.
func (r Region) Contains(re, im float64) bool {
	return re >= r.RealMin && re <= r.RealMax && im >= r.ImagMin && im <= r.ImagMax
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", r.RealMin, r.RealMax, r.ImagMin, r.ImagMax)
}

// Param is the constant c = A + Bi added on every iteration.
type Param struct {
	A float64 `yaml:"a" json:"a"`
	B float64 `yaml:"b" json:"b"`
}

func (p Param) String() string {
	return fmt.Sprintf("%f + %f i", p.A, p.B)
}

// Result is the outcome of one escape-time evaluation.
type Result struct {
	Escaped bool
	Step    int
}

// Converged is the result of a point that never escaped.
var Converged = Result{}

// Code returns the signed form of the result: 1 for convergence, or
// -(Step mod 7) - 1 for divergence.
func (r Result) Code() int {
	if !r.Escaped {
		return 1
	}
	return -(r.Step % paletteCycle) - 1
}

// Viewport maps a region of the plane onto a rectangle of the surface's
// logical screen.
type Viewport struct {
	Bounds Region
	X, Y   float64
	W, H   float64
}

// ToScreen maps a plane coordinate to logical screen units with the
// imaginary axis pointing up.
func (v Viewport) ToScreen(re, im float64) (float64, float64) {
	sx := v.X + (re-v.Bounds.RealMin)/v.Bounds.Width()*v.W
	sy := v.Y + (v.Bounds.ImagMax-im)/v.Bounds.Height()*v.H
	return sx, sy
}

// Tile is one independent viewport of a layout.
type Tile struct {
	ID       int
	Param    Param
	Viewport Viewport
}

// Layout is the logical surface size plus its tiles.
type Layout struct {
	Width, Height float64
	Resolution    int
	Tiles         []Tile
	// Outline is drawn as a box in every tile when set.
	Outline *Region
}

// PixelScale returns the raster pixels per logical unit at which one
// rendered pixel covers one raster pixel.
func (l Layout) PixelScale() float64 {
	if len(l.Tiles) == 0 || l.Tiles[0].Viewport.W == 0 {
		return 1
	}
	return float64(l.Resolution) / l.Tiles[0].Viewport.W
}
