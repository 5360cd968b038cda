package surface

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/san-kum/fracsim/internal/fractal"
)

func openImage(t *testing.T, scale float64) *Image {
	t.Helper()
	img := NewImage(scale, GetPalette("classic"))
	if err := img.Open(100, 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	vp := fractal.Viewport{Bounds: fractal.FullPlane, W: 100, H: 100}
	if err := img.DefineViewport(1, vp); err != nil {
		t.Fatalf("define failed: %v", err)
	}
	return img
}

func TestImage_OpenSize(t *testing.T) {
	img := openImage(t, 4)
	b := img.RGBA().Bounds()
	if b.Dx() != 400 || b.Dy() != 400 {
		t.Errorf("got %dx%d, want 400x400", b.Dx(), b.Dy())
	}
	if got := img.RGBA().RGBAAt(10, 10); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("background = %v, want black", got)
	}
}

func TestImage_PlotGridPoints(t *testing.T) {
	img := openImage(t, 4)
	delta := 4.0 / 400

	for _, ij := range [][2]int{{0, 0}, {0, 399}, {200, 200}, {399, 0}, {137, 251}} {
		i, j := ij[0], ij[1]
		re := float64(j)*delta - 2
		im := float64(i)*delta - 2
		if err := img.Plot(1, re, im, fractal.Indexed(2)); err != nil {
			t.Fatalf("plot failed: %v", err)
		}
		if got := img.RGBA().RGBAAt(j, 399-i); got != (color.RGBA{0, 255, 0, 255}) {
			t.Errorf("pixel (%d, %d) not drawn at (%d, %d)", i, j, j, 399-i)
		}
	}
}

func TestImage_Errors(t *testing.T) {
	img := NewImage(1, GetPalette("classic"))
	if err := img.Plot(1, 0, 0, fractal.White); !errors.Is(err, ErrNotOpen) {
		t.Errorf("plot before open: expected ErrNotOpen, got %v", err)
	}
	if err := img.EncodePNG(&bytes.Buffer{}); !errors.Is(err, ErrNotOpen) {
		t.Errorf("encode before open: expected ErrNotOpen, got %v", err)
	}

	img = openImage(t, 1)
	if err := img.Plot(2, 0, 0, fractal.White); !errors.Is(err, ErrUnknownViewport) {
		t.Errorf("expected ErrUnknownViewport, got %v", err)
	}
	if err := img.DefineViewport(3, fractal.Viewport{Bounds: fractal.Region{}}); !errors.Is(err, fractal.ErrInvalidRegion) {
		t.Errorf("expected ErrInvalidRegion, got %v", err)
	}
	if err := img.Open(0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestImage_Box(t *testing.T) {
	img := openImage(t, 1)
	if err := img.Box(1, fractal.Region{RealMin: -1, RealMax: 1, ImagMin: -1, ImagMax: 1}); err != nil {
		t.Fatalf("box failed: %v", err)
	}
	white := color.RGBA{255, 255, 255, 255}
	for _, p := range [][2]int{{25, 25}, {75, 25}, {25, 75}, {75, 75}, {50, 25}} {
		if got := img.RGBA().RGBAAt(p[0], p[1]); got != white {
			t.Errorf("outline pixel %v = %v, want white", p, got)
		}
	}
	if got := img.RGBA().RGBAAt(50, 50); got == white {
		t.Error("box interior should not be filled")
	}
}

func TestImage_EncodePNG(t *testing.T) {
	img := openImage(t, 0.5)
	var buf bytes.Buffer
	if err := img.EncodePNG(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Bounds().Dx() != 50 {
		t.Errorf("decoded width %d, want 50", decoded.Bounds().Dx())
	}
}
