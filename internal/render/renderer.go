package render

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/fracsim/internal/config"
	"github.com/san-kum/fracsim/internal/fractal"
)

// Job is a fully laid out render request.
type Job struct {
	Settings      config.Settings
	Layout        fractal.Layout
	MaxIterations int
}

// NewJob validates the settings and computes the layout. rng is consumed
// only in multi mode.
func NewJob(s config.Settings, maxIterations int, rng *rand.Rand) (*Job, error) {
	if maxIterations <= 0 {
		return nil, fractal.ErrInvalidIterations
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	layout, err := s.Layout(rng)
	if err != nil {
		return nil, err
	}
	return &Job{Settings: s, Layout: layout, MaxIterations: maxIterations}, nil
}

// Pixels returns the number of evaluations the job performs.
func (j *Job) Pixels() int {
	return j.Layout.Resolution * j.Layout.Resolution * len(j.Layout.Tiles)
}

type Renderer struct {
	observers []Observer
}

func New() *Renderer {
	return &Renderer{observers: make([]Observer, 0)}
}

func (r *Renderer) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Render opens the surface, defines every viewport and draws every pixel.
// The surface is left open; closing it is up to the caller.
func (r *Renderer) Render(s Surface, job *Job) error {
	if err := r.Setup(s, job); err != nil {
		return err
	}
	return r.Draw(s, job)
}

// Setup opens the surface and defines one viewport per tile, outlining the
// region in each tile when the layout asks for it.
func (r *Renderer) Setup(s Surface, job *Job) error {
	l := job.Layout
	if err := s.Open(l.Width, l.Height); err != nil {
		return fmt.Errorf("open surface: %w", err)
	}
	for _, tile := range l.Tiles {
		if err := s.DefineViewport(tile.ID, tile.Viewport); err != nil {
			return fmt.Errorf("define viewport %d: %w", tile.ID, err)
		}
		if l.Outline != nil {
			if err := s.Box(tile.ID, *l.Outline); err != nil {
				return fmt.Errorf("outline viewport %d: %w", tile.ID, err)
			}
		}
	}
	return nil
}

// Draw evaluates and plots every pixel in row-major order, imaginary rows
// outermost. With several tiles every tile is drawn at a pixel position
// before moving to the next position.
func (r *Renderer) Draw(s Surface, job *Job) error {
	region := job.Settings.Region
	width, height := job.Layout.Resolution, job.Layout.Resolution
	mandelbrot := !job.Settings.Julia
	mono := job.Settings.Monochrome

	deltaR := region.Width() / float64(width)
	deltaI := region.Height() / float64(height)

	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			x0 := float64(j)*deltaR + region.RealMin
			y0 := float64(i)*deltaI + region.ImagMin

			for _, tile := range job.Layout.Tiles {
				var res fractal.Result
				if mandelbrot {
					res = fractal.Mandelbrot(x0, y0, job.MaxIterations)
				} else {
					res = fractal.Julia(x0, y0, tile.Param, job.MaxIterations)
				}

				for _, o := range r.observers {
					o.OnPixel(tile.ID, x0, y0, res)
				}

				c := fractal.ColorFor(res, job.MaxIterations, mono, mandelbrot)
				if err := s.Plot(tile.ID, x0, y0, c); err != nil {
					return &DrawError{Tile: tile.ID, Row: i, Col: j, Err: err}
				}
			}
		}
	}
	return nil
}
