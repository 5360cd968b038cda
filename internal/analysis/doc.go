// Package analysis provides statistics over escape-time renders.
//
//   - [Histogram]: escape-step and palette-class counts, collected as a
//     render observer or from a precomputed [fractal.Grid]
//   - [TraceOrbit]: the iterates of a single point, the phase portrait of
//     one pixel
//
// # Histograms
//
// Attach a histogram to a renderer to summarise what was drawn:
//
//	h := analysis.NewHistogram()
//	r := render.New()
//	r.AddObserver(h)
//	r.Render(surface, job)
//	fmt.Println(h.Plot(60, 10, "escape steps"))
package analysis
