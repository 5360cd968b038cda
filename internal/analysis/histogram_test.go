package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/fracsim/internal/fractal"
)

func TestHistogram_Add(t *testing.T) {
	h := NewHistogram()
	h.OnPixel(1, 0, 0, fractal.Converged)
	h.OnPixel(1, 3, 0, fractal.Result{Escaped: true, Step: 2})
	h.OnPixel(2, 1, 1, fractal.Result{Escaped: true, Step: 4})
	h.OnPixel(2, 1, 1, fractal.Result{Escaped: true, Step: 9})

	if h.Pixels != 4 || h.Converged != 1 {
		t.Errorf("pixels=%d converged=%d", h.Pixels, h.Converged)
	}
	if h.ConvergedFraction() != 0.25 {
		t.Errorf("converged fraction = %f", h.ConvergedFraction())
	}
	if h.MeanStep() != 5 {
		t.Errorf("mean step = %f, want 5", h.MeanStep())
	}
	if h.MaxStep() != 9 {
		t.Errorf("max step = %d, want 9", h.MaxStep())
	}

	// step 2 -> class 3, step 4 -> class 5, step 9 -> class 3
	want := [fractal.PaletteSize]int{1, 0, 0, 2, 0, 1, 0, 0}
	if h.Classes != want {
		t.Errorf("classes = %v, want %v", h.Classes, want)
	}
	if h.Tiles[1] != 1 || h.Tiles[2] != 0 {
		t.Errorf("tiles = %v", h.Tiles)
	}
}

func TestHistogram_Buckets(t *testing.T) {
	h := NewHistogram()
	for step := 0; step < 10; step++ {
		h.Add(1, fractal.Result{Escaped: true, Step: step})
	}

	tests := []struct {
		n    int
		want []float64
	}{
		{1, []float64{10}},
		{2, []float64{5, 5}},
		{5, []float64{2, 2, 2, 2, 2}},
	}
	for _, tt := range tests {
		got := h.Buckets(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("n=%d: got %d buckets", tt.n, len(got))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("n=%d: got %v, want %v", tt.n, got, tt.want)
				break
			}
		}
	}

	if got := NewHistogram().Buckets(3); len(got) != 3 || got[0] != 0 {
		t.Errorf("empty histogram buckets = %v", got)
	}
}

func TestHistogram_AddGrid(t *testing.T) {
	g, err := fractal.EscapeGrid(fractal.FullPlane, 40, 40, nil, 100)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}

	h := NewHistogram()
	h.AddGrid(1, g)

	if h.Pixels != 1600 {
		t.Errorf("pixels = %d", h.Pixels)
	}
	frac := h.ConvergedFraction()
	if frac <= 0.05 || frac >= 0.5 {
		t.Errorf("implausible converged fraction %f for the full plane", frac)
	}

	sum := 0
	for _, c := range h.Classes {
		sum += c
	}
	if sum != h.Pixels {
		t.Errorf("classes sum to %d, want %d", sum, h.Pixels)
	}

	s := h.Summary()
	if s["pixels"] != 1600 || math.Abs(s["converged_fraction"]-frac) > 1e-12 {
		t.Errorf("summary = %v", s)
	}

	h.Reset()
	if h.Pixels != 0 || len(h.Steps) != 0 || h.MaxStep() != 0 {
		t.Error("reset left data behind")
	}
}

func TestHistogram_Plot(t *testing.T) {
	h := NewHistogram()
	if got := h.Plot(20, 5, "steps"); got != "no pixels recorded" {
		t.Errorf("empty plot = %q", got)
	}

	for step := 0; step < 50; step += 2 {
		h.Add(1, fractal.Result{Escaped: true, Step: step})
	}
	out := h.Plot(20, 5, "steps")
	if !strings.Contains(out, "steps (0..48)") {
		t.Errorf("plot missing caption:\n%s", out)
	}
}

func TestFromSteps(t *testing.T) {
	h := FromSteps(map[int]int{2: 3, 8: 1, 5: 0})
	if h.Pixels != 4 || h.Converged != 0 {
		t.Errorf("pixels=%d converged=%d", h.Pixels, h.Converged)
	}
	if h.MeanStep() != 3.5 || h.MaxStep() != 8 {
		t.Errorf("mean=%f max=%d", h.MeanStep(), h.MaxStep())
	}
	// step 2 -> class 3, step 8 -> class 2
	if h.Classes[3] != 3 || h.Classes[2] != 1 {
		t.Errorf("classes = %v", h.Classes)
	}
}
