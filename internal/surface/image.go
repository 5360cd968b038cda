package surface

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/san-kum/fracsim/internal/fractal"
)

// pixelEps absorbs rounding in plane-to-screen mapping so grid points land
// on the pixel they start.
const pixelEps = 1e-6

// Image is an in-memory raster surface.
type Image struct {
	viewports
	scale   float64
	palette Palette
	img     *image.RGBA
}

// NewImage returns a raster surface with scale pixels per logical unit.
func NewImage(scale float64, p Palette) *Image {
	if scale <= 0 {
		scale = 1
	}
	return &Image{scale: scale, palette: p}
}

func (s *Image) Open(width, height float64) error {
	if err := s.reset(width, height); err != nil {
		return err
	}
	w := int(math.Ceil(width * s.scale))
	h := int(math.Ceil(height * s.scale))
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: s.palette[fractal.IndexBackground]}, image.Point{}, draw.Src)
	return nil
}

func (s *Image) DefineViewport(id int, vp fractal.Viewport) error {
	return s.define(id, vp)
}

// pixel maps a plane point into raster coordinates. Points on the lower or
// right edge of the viewport fall into the last row or column.
func (s *Image) pixel(vp fractal.Viewport, re, im float64) (int, int, bool) {
	sx, sy := vp.ToScreen(re, im)
	px := int(math.Floor(sx*s.scale + pixelEps))
	py := int(math.Ceil(sy*s.scale-pixelEps)) - 1

	minX, minY := int(math.Floor(vp.X*s.scale)), int(math.Floor(vp.Y*s.scale))
	maxX, maxY := int(math.Ceil((vp.X+vp.W)*s.scale)), int(math.Ceil((vp.Y+vp.H)*s.scale))
	if px < minX || py < minY || px >= maxX || py >= maxY {
		return 0, 0, false
	}
	return px, py, image.Pt(px, py).In(s.img.Bounds())
}

func (s *Image) Plot(id int, re, im float64, c fractal.Color) error {
	vp, err := s.get(id)
	if err != nil {
		return err
	}
	if px, py, ok := s.pixel(vp, re, im); ok {
		s.img.SetRGBA(px, py, s.palette.Resolve(c))
	}
	return nil
}

func (s *Image) Box(id int, r fractal.Region) error {
	vp, err := s.get(id)
	if err != nil {
		return err
	}
	stroke := s.palette[fractal.IndexWhite]
	x0, y0 := vp.ToScreen(r.RealMin, r.ImagMax)
	x1, y1 := vp.ToScreen(r.RealMax, r.ImagMin)
	ix0, iy0 := int(x0*s.scale), int(y0*s.scale)
	ix1, iy1 := int(x1*s.scale), int(y1*s.scale)
	for x := ix0; x <= ix1; x++ {
		s.set(x, iy0, stroke)
		s.set(x, iy1, stroke)
	}
	for y := iy0; y <= iy1; y++ {
		s.set(ix0, y, stroke)
		s.set(ix1, y, stroke)
	}
	return nil
}

func (s *Image) set(x, y int, c color.RGBA) {
	if image.Pt(x, y).In(s.img.Bounds()) {
		s.img.SetRGBA(x, y, c)
	}
}

func (s *Image) Close() error { return nil }

// RGBA returns the raster, or nil before Open.
func (s *Image) RGBA() *image.RGBA { return s.img }

func (s *Image) EncodePNG(w io.Writer) error {
	if s.img == nil {
		return ErrNotOpen
	}
	return png.Encode(w, s.img)
}
