package config

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/fracsim/internal/fractal"
)

// Settings is everything needed to reproduce a render.
type Settings struct {
	Region     fractal.Region `yaml:"region" json:"region"`
	Param      fractal.Param  `yaml:"param" json:"param"`
	Size       int            `yaml:"size" json:"size"`
	Random     bool           `yaml:"random" json:"random"`
	Monochrome bool           `yaml:"monochrome" json:"monochrome"`
	Julia      bool           `yaml:"julia" json:"julia"`
}

// DefaultSettings is the full-plane colorful Mandelbrot set.
func DefaultSettings() Settings {
	return Settings{Region: fractal.FullPlane}
}

// Multi reports whether the settings describe a grid of random Julia sets.
func (s Settings) Multi() bool {
	return s.Julia && s.Random
}

// Mode names the kind of render for display and run IDs.
func (s Settings) Mode() string {
	switch {
	case s.Multi():
		return "multi"
	case s.Julia:
		return "julia"
	default:
		return "mandelbrot"
	}
}

func (s Settings) Validate() error {
	if err := s.Region.Validate(); err != nil {
		return err
	}
	if s.Multi() && (s.Size < fractal.MinSize || s.Size > fractal.MaxSize) {
		return fmt.Errorf("%w: %d", fractal.ErrInvalidSize, s.Size)
	}
	return nil
}

// Layout returns the tiling for these settings. Single Julia renders carry
// the fixed parameter on their only tile.
func (s Settings) Layout(rng *rand.Rand) (fractal.Layout, error) {
	if s.Multi() {
		return fractal.MultiLayout(s.Region, s.Size, rng)
	}
	l, err := fractal.SingleLayout(s.Region)
	if err != nil {
		return l, err
	}
	if s.Julia {
		l.Tiles[0].Param = s.Param
	}
	return l, nil
}
