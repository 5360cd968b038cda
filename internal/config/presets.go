package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/fracsim/internal/fractal"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Landmark regions of the Mandelbrot set.
var (
	// Seahorse Valley: dense filaments and repeating curls.
	SeahorseValley = fractal.Region{RealMin: -0.8, RealMax: -0.7, ImagMin: 0.05, ImagMax: 0.15}

	// Elephant Valley: large bulb with trunk-like tendrils.
	ElephantValley = fractal.Region{RealMin: -1.85, RealMax: -1.75, ImagMin: -0.10, ImagMax: -0.02}

	SpiralMinibrot = fractal.Region{RealMin: -0.7435, RealMax: -0.7420, ImagMin: 0.1310, ImagMax: 0.1325}
	TripleSpiral   = fractal.Region{RealMin: -0.7480, RealMax: -0.7450, ImagMin: 0.0950, ImagMax: 0.0980}

	// Valley of the Dragon: deep spiral filaments.
	ValleyOfTheDragon = fractal.Region{RealMin: -0.7400, RealMax: -0.7350, ImagMin: 0.1800, ImagMax: 0.1850}

	// Minibrot inside a spiral arm.
	MinibrotInMiniSpiral = fractal.Region{RealMin: -1.7390, RealMax: -1.7375, ImagMin: -0.0235, ImagMax: -0.0220}
)

// sampleCodes are known-good secret codes.
var sampleCodes = map[string]string{
	"julia-dendrite": "-2.0 2.0 -2.0 2.0 0.102732 0.618093 0 0 1 1",
	"julia-zoom":     "-0.015 -0.01 0.01 0.015 -0.867123 0.264830 0 0 0 1",
	"julia-grid":     "-2 2 -2 2 0 0 8 1 0 1",
	"mandel-zoom":    "-0.801309 -0.701309 0.021923 0.121923 0 0 0 0 1 0",
}

var landmarks = map[string]fractal.Region{
	"full":          fractal.FullPlane,
	"seahorse":      SeahorseValley,
	"elephant":      ElephantValley,
	"spiral":        SpiralMinibrot,
	"triple-spiral": TripleSpiral,
	"dragon":        ValleyOfTheDragon,
	"minibrot":      MinibrotInMiniSpiral,
}

// GetPreset returns the settings of a named preset.
func GetPreset(name string) (Settings, error) {
	if r, ok := landmarks[name]; ok {
		return Settings{Region: r}, nil
	}
	if code, ok := sampleCodes[name]; ok {
		return ParseCode(code)
	}
	return Settings{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
}

// ListPresets returns all preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(landmarks)+len(sampleCodes))
	for name := range landmarks {
		names = append(names, name)
	}
	for name := range sampleCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
