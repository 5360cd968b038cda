package fractal

import (
	"fmt"
	"math/rand"
)

const (
	// SingleResolution is the pixel count per axis of a single-set render.
	SingleResolution = 400

	MinSize = 1
	MaxSize = 8

	singleSurface = 100.0
	multiSurface  = 180.0

	// tileMargin widens each tile's plane bounds around the outlined region.
	tileMargin = 0.1
)

// Resolution returns the pixel count per axis. Multi-set renders use a
// quadratic fit that keeps the total work roughly flat as size grows; the
// value is truncated toward zero.
func Resolution(size int, random bool) int {
	if !random {
		return SingleResolution
	}
	s := float64(size)
	return int(9.3*s*s - 165*s + 810)
}

// SingleLayout maps region onto the whole of a 100x100 logical surface.
func SingleLayout(region Region) (Layout, error) {
	if err := region.Validate(); err != nil {
		return Layout{}, err
	}
	return Layout{
		Width:      singleSurface,
		Height:     singleSurface,
		Resolution: SingleResolution,
		Tiles: []Tile{{
			ID:       1,
			Viewport: Viewport{Bounds: region, W: singleSurface, H: singleSurface},
		}},
	}, nil
}

// MultiLayout splits a 180x180 logical surface into size x size square tiles,
// each showing region with a small margin and its own random parameter.
// Tile IDs are row-major and start at 1.
func MultiLayout(region Region, size int, rng *rand.Rand) (Layout, error) {
	if err := region.Validate(); err != nil {
		return Layout{}, err
	}
	if size < MinSize || size > MaxSize {
		return Layout{}, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidSize, size, MinSize, MaxSize)
	}

	edge := float64(int(multiSurface / float64(size)))
	bounds := region.Expand(tileMargin)
	params := RandomParams(size*size, rng)

	tiles := make([]Tile, 0, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			id := r*size + c + 1
			tiles = append(tiles, Tile{
				ID:    id,
				Param: params[id-1],
				Viewport: Viewport{
					Bounds: bounds,
					X:      float64(c) * edge,
					Y:      float64(r) * edge,
					W:      edge,
					H:      edge,
				},
			})
		}
	}

	outline := region
	return Layout{
		Width:      multiSurface,
		Height:     multiSurface,
		Resolution: Resolution(size, true),
		Tiles:      tiles,
		Outline:    &outline,
	}, nil
}

// RandomParams draws n parameters uniformly from [-1, 1]², real part first.
func RandomParams(n int, rng *rand.Rand) []Param {
	params := make([]Param, n)
	for i := range params {
		params[i].A = rng.Float64()*2 - 1
		params[i].B = rng.Float64()*2 - 1
	}
	return params
}
