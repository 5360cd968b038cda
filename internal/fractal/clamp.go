package fractal

import "fmt"

// Clamp shrinks a requested zoom length so the square window centered on
// (centerReal, centerImag) stays inside [-2, 2]².
//
// The four one-sided corrections are applied independently, so for
// off-center windows near a corner a later correction can undo an earlier
// one. Callers get the same window the interactive prompt always produced.
func Clamp(length, centerReal, centerImag float64) float64 {
	half := length / 2

	if centerReal+half > Bound {
		half = Bound - centerReal
	}
	if centerReal-half < -Bound {
		half = centerReal + Bound
	}
	if centerImag+half > Bound {
		half = Bound - centerImag
	}
	if centerImag-half < -Bound {
		half = centerImag + Bound
	}

	return 2 * half
}

// Zoom returns the clamped square window of the given length centered on
// (centerReal, centerImag).
func Zoom(centerReal, centerImag, length float64) (Region, error) {
	l := Clamp(length, centerReal, centerImag)
	if !(l > 0) {
		return Region{}, fmt.Errorf("%w: zoom length %g at (%g, %g) clamps to %g",
			ErrInvalidRegion, length, centerReal, centerImag, l)
	}

	half := l / 2
	r := Region{
		RealMin: centerReal - half,
		RealMax: centerReal + half,
		ImagMin: centerImag - half,
		ImagMax: centerImag + half,
	}
	return r, r.Validate()
}
