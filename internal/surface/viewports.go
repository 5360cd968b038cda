package surface

import (
	"fmt"

	"github.com/san-kum/fracsim/internal/fractal"
)

// viewports tracks the viewport table shared by every surface.
type viewports struct {
	open   bool
	width  float64
	height float64
	byID   map[int]fractal.Viewport
}

func (v *viewports) reset(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("surface: invalid size %gx%g", width, height)
	}
	v.open = true
	v.width, v.height = width, height
	v.byID = make(map[int]fractal.Viewport)
	return nil
}

func (v *viewports) define(id int, vp fractal.Viewport) error {
	if !v.open {
		return ErrNotOpen
	}
	if err := vp.Bounds.Validate(); err != nil {
		return err
	}
	v.byID[id] = vp
	return nil
}

func (v *viewports) get(id int) (fractal.Viewport, error) {
	if !v.open {
		return fractal.Viewport{}, ErrNotOpen
	}
	vp, ok := v.byID[id]
	if !ok {
		return fractal.Viewport{}, fmt.Errorf("%w: %d", ErrUnknownViewport, id)
	}
	return vp, nil
}
