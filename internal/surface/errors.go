package surface

import "errors"

var (
	ErrNotOpen         = errors.New("surface: not open")
	ErrUnknownViewport = errors.New("surface: unknown viewport")
	ErrUnknownFormat   = errors.New("surface: unknown output format")
)
