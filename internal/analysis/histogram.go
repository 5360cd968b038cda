package analysis

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fracsim/internal/fractal"
)

// Histogram counts escape results. It is not safe for concurrent use.
type Histogram struct {
	Pixels    int
	Converged int
	// Steps maps an escape step to the number of pixels that escaped there.
	Steps map[int]int
	// Classes counts pixels per palette index: 0 for converged points,
	// 1 to 7 for the escape classes.
	Classes [fractal.PaletteSize]int
	// Tiles counts converged pixels per tile ID.
	Tiles map[int]int

	stepSum int
	maxStep int
}

func NewHistogram() *Histogram {
	return &Histogram{
		Steps: make(map[int]int),
		Tiles: make(map[int]int),
	}
}

// OnPixel records one evaluated pixel.
func (h *Histogram) OnPixel(tile int, re, im float64, r fractal.Result) {
	h.Add(tile, r)
}

func (h *Histogram) Add(tile int, r fractal.Result) {
	h.Pixels++
	if _, ok := h.Tiles[tile]; !ok {
		h.Tiles[tile] = 0
	}
	if !r.Escaped {
		h.Converged++
		h.Classes[fractal.IndexBackground]++
		h.Tiles[tile]++
		return
	}
	h.Steps[r.Step]++
	h.Classes[-r.Code()]++
	h.stepSum += r.Step
	if r.Step > h.maxStep {
		h.maxStep = r.Step
	}
}

// FromSteps rebuilds the escaped part of a histogram from stored step
// counts.
func FromSteps(steps map[int]int) *Histogram {
	h := NewHistogram()
	for step, n := range steps {
		if n <= 0 {
			continue
		}
		r := fractal.Result{Escaped: true, Step: step}
		h.Pixels += n
		h.Steps[step] += n
		h.Classes[-r.Code()] += n
		h.stepSum += step * n
		if step > h.maxStep {
			h.maxStep = step
		}
	}
	return h
}

// AddGrid records every result of a grid under one tile ID.
func (h *Histogram) AddGrid(tile int, g *fractal.Grid) {
	for _, r := range g.Results {
		h.Add(tile, r)
	}
}

func (h *Histogram) Reset() {
	*h = *NewHistogram()
}

// ConvergedFraction returns the share of pixels inside the set.
func (h *Histogram) ConvergedFraction() float64 {
	if h.Pixels == 0 {
		return 0
	}
	return float64(h.Converged) / float64(h.Pixels)
}

// MeanStep returns the average escape step of the escaped pixels.
func (h *Histogram) MeanStep() float64 {
	escaped := h.Pixels - h.Converged
	if escaped == 0 {
		return 0
	}
	return float64(h.stepSum) / float64(escaped)
}

func (h *Histogram) MaxStep() int { return h.maxStep }

// Buckets folds the escape steps 0..MaxStep into n equal-width buckets.
func (h *Histogram) Buckets(n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	span := h.maxStep + 1
	for step, count := range h.Steps {
		b := step * n / span
		if b >= n {
			b = n - 1
		}
		out[b] += float64(count)
	}
	return out
}

// Summary returns the headline numbers keyed the way they are stored with
// saved renders.
func (h *Histogram) Summary() map[string]float64 {
	return map[string]float64{
		"pixels":             float64(h.Pixels),
		"converged_fraction": h.ConvergedFraction(),
		"mean_step":          h.MeanStep(),
		"max_step":           float64(h.maxStep),
	}
}

// Plot draws the step distribution as an ASCII graph.
func (h *Histogram) Plot(width, height int, caption string) string {
	if h.Pixels == 0 {
		return "no pixels recorded"
	}
	return asciigraph.Plot(h.Buckets(width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s (0..%d)", caption, h.maxStep)),
	)
}
