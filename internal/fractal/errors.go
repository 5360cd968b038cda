package fractal

import "errors"

// Domain errors for layout and region operations.
var (
	// ErrInvalidRegion indicates a region whose lower bound is not below its upper bound.
	ErrInvalidRegion = errors.New("fractal: invalid region (min must be below max)")

	// ErrInvalidSize indicates a multi-set grid size outside [MinSize, MaxSize].
	ErrInvalidSize = errors.New("fractal: grid size out of range")

	// ErrInvalidIterations indicates a non-positive iteration cap.
	ErrInvalidIterations = errors.New("fractal: iteration cap must be positive")
)
