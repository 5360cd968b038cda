package surface

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Window draws into an Image and shows it in a desktop window on Close.
type Window struct {
	*Image
	title string
}

func NewWindow(title string, scale float64, p Palette) *Window {
	return &Window{Image: NewImage(scale, p), title: title}
}

// Close opens the window and blocks until it is closed or Esc/Q is pressed.
func (w *Window) Close() error {
	img := w.RGBA()
	if img == nil {
		return ErrNotOpen
	}

	b := img.Bounds()
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetTPS(30)

	err := ebiten.RunGame(&viewer{w: w})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type viewer struct {
	w   *Window
	tex *ebiten.Image
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.tex == nil {
		v.tex = ebiten.NewImageFromImage(v.w.RGBA())
	}
	screen.DrawImage(v.tex, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := v.w.RGBA().Bounds()
	return b.Dx(), b.Dy()
}
