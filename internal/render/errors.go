package render

import "fmt"

// DrawError wraps a surface failure with the pixel that triggered it.
type DrawError struct {
	Tile int
	Row  int
	Col  int
	Err  error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("render: draw tile %d pixel (%d, %d): %v", e.Tile, e.Row, e.Col, e.Err)
}

func (e *DrawError) Unwrap() error {
	return e.Err
}
