package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"

	"github.com/san-kum/fracsim/internal/fractal"
	"github.com/san-kum/fracsim/internal/surface"
)

const (
	charW, charH = 8, 16
	grayLevels   = 16
	// frameDelay is in hundredths of a second.
	frameDelay = 60
)

var ErrNoFrames = errors.New("viz: no frames recorded")

// Recorder collects explorer frames for an animated GIF.
type Recorder struct {
	frames []*image.Paletted
}

func NewRecorder() *Recorder {
	return &Recorder{frames: make([]*image.Paletted, 0)}
}

func (r *Recorder) Len() int { return len(r.frames) }

// gifPalette holds the eight palette colors followed by a gray ramp for
// monochrome cells.
func gifPalette(p surface.Palette) color.Palette {
	pal := make(color.Palette, 0, len(p)+grayLevels)
	for _, c := range p {
		pal = append(pal, c)
	}
	for i := 0; i < grayLevels; i++ {
		v := uint8(i * 255 / (grayLevels - 1))
		pal = append(pal, color.RGBA{R: v, G: v, B: v, A: 0xff})
	}
	return pal
}

func colorIndex(c fractal.Color) uint8 {
	if c.Mono {
		level := math.Max(0, math.Min(1, c.Level))
		return uint8(fractal.PaletteSize + int(math.Round(level*(grayLevels-1))))
	}
	if c.Index < 0 || c.Index >= fractal.PaletteSize {
		return fractal.IndexBackground
	}
	return uint8(c.Index)
}

// Capture rasterizes the canvas dots, each in the color of its cell.
func (r *Recorder) Capture(c *surface.Canvas) {
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), gifPalette(c.Palette()))

	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - 0x2800)
			if pattern <= 0 {
				continue
			}
			idx := colorIndex(c.Colors[row][col])
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBit(dx, dy) == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func dotBit(dx, dy int) int {
	if dy == 3 {
		if dx == 0 {
			return 0x40
		}
		return 0x80
	}
	return (1 << dy) << (dx * 3)
}

// Save writes the frames as a looping GIF and clears the recorder.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	// Frames differ in size when the terminal was resized mid-recording.
	anim := gif.GIF{LoopCount: 0, Config: image.Config{ColorModel: r.frames[0].Palette}}
	for _, frame := range r.frames {
		anim.Config.Width = max(anim.Config.Width, frame.Rect.Dx())
		anim.Config.Height = max(anim.Config.Height, frame.Rect.Dy())
	}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, frameDelay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	r.frames = r.frames[:0]
	return f.Close()
}
