// Package viz provides the interactive terminal explorer.
//
// The explorer is a Bubble Tea program that renders the current view onto a
// braille [surface.Canvas] sized to the terminal, with a side panel showing
// the view, escape statistics and the secret code:
//
//   - [Model]: the explorer state and key handling
//   - [Recorder]: collects rendered views as an animated GIF
//   - Theme selection with 5 built-in color schemes, each with a palette
//
// # Key Bindings
//
//	Arrows/HJKL - Pan a quarter window
//	+ / -       - Zoom in / out
//	F           - Toggle Julia / Mandelbrot
//	M           - Toggle monochrome
//	X           - Toggle the random Julia grid, [ ] to resize it
//	R           - Draw new random parameters
//	T           - Cycle color themes
//	C           - Show the secret code
//	S           - Save the view to the render store
//	G           - Toggle GIF recording
//	?           - Show help overlay
package viz
