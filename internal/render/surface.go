package render

import "github.com/san-kum/fracsim/internal/fractal"

// Surface receives the draw calls of a render. Every call names the
// viewport it targets; colors travel with the point.
type Surface interface {
	Open(width, height float64) error
	DefineViewport(id int, vp fractal.Viewport) error
	Plot(id int, re, im float64, c fractal.Color) error
	Box(id int, r fractal.Region) error
	Close() error
}

// Observer sees every evaluated pixel before it is drawn.
type Observer interface {
	OnPixel(tile int, re, im float64, r fractal.Result)
}
