package render

import (
	"errors"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fracsim/internal/config"
	"github.com/san-kum/fracsim/internal/fractal"
)

type call struct {
	op     string
	id     int
	re, im float64
	color  fractal.Color
}

// recorder is a Surface that keeps every call in order.
type recorder struct {
	calls     []call
	viewports map[int]fractal.Viewport
	failAfter int
}

func newRecorder() *recorder {
	return &recorder{viewports: make(map[int]fractal.Viewport), failAfter: -1}
}

var errSurface = errors.New("surface gone")

func (r *recorder) Open(w, h float64) error {
	r.calls = append(r.calls, call{op: "open", re: w, im: h})
	return nil
}

func (r *recorder) DefineViewport(id int, vp fractal.Viewport) error {
	r.viewports[id] = vp
	r.calls = append(r.calls, call{op: "viewport", id: id})
	return nil
}

func (r *recorder) Plot(id int, re, im float64, c fractal.Color) error {
	if r.failAfter == 0 {
		return errSurface
	}
	r.failAfter--
	r.calls = append(r.calls, call{op: "plot", id: id, re: re, im: im, color: c})
	return nil
}

func (r *recorder) Box(id int, _ fractal.Region) error {
	r.calls = append(r.calls, call{op: "box", id: id})
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) plots() []call {
	out := make([]call, 0, len(r.calls))
	for _, c := range r.calls {
		if c.op == "plot" {
			out = append(out, c)
		}
	}
	return out
}

type counter struct{ n int }

func (c *counter) OnPixel(int, float64, float64, fractal.Result) { c.n++ }

// smallJob builds a job and shrinks it to res x res pixels.
func smallJob(s config.Settings, res int) *Job {
	job, err := NewJob(s, 100, rand.New(rand.NewSource(3)))
	Expect(err).NotTo(HaveOccurred())
	job.Layout.Resolution = res
	return job
}

var _ = Describe("Renderer", func() {
	var (
		surf *recorder
		r    *Renderer
	)

	BeforeEach(func() {
		surf = newRecorder()
		r = New()
	})

	Context("single Mandelbrot set", func() {
		It("opens a 100x100 surface with one viewport", func() {
			Expect(r.Render(surf, smallJob(config.DefaultSettings(), 2))).To(Succeed())

			Expect(surf.calls[0]).To(Equal(call{op: "open", re: 100, im: 100}))
			Expect(surf.calls[1]).To(Equal(call{op: "viewport", id: 1}))
			Expect(surf.viewports[1].Bounds).To(Equal(fractal.FullPlane))
		})

		It("plots pixels row by row from the bottom-left corner", func() {
			Expect(r.Render(surf, smallJob(config.DefaultSettings(), 4))).To(Succeed())

			plots := surf.plots()
			Expect(plots).To(HaveLen(16))
			Expect(plots[0].re).To(Equal(-2.0))
			Expect(plots[0].im).To(Equal(-2.0))
			Expect(plots[1].re).To(Equal(-1.0))
			Expect(plots[1].im).To(Equal(-2.0))
			Expect(plots[4].re).To(Equal(-2.0))
			Expect(plots[4].im).To(Equal(-1.0))
			Expect(plots[15].re).To(Equal(1.0))
			Expect(plots[15].im).To(Equal(1.0))
		})

		It("colors each pixel from its escape result", func() {
			Expect(r.Render(surf, smallJob(config.DefaultSettings(), 4))).To(Succeed())

			for _, p := range surf.plots() {
				want := fractal.ColorFor(fractal.Mandelbrot(p.re, p.im, 100), 100, false, true)
				Expect(p.color).To(Equal(want))
			}
			// The origin is inside the set.
			Expect(surf.plots()[10].color).To(Equal(fractal.Background))
		})
	})

	Context("single Julia set", func() {
		It("evaluates with the fixed parameter and the Julia gray curve", func() {
			s := config.Settings{Region: fractal.FullPlane, Param: fractal.Param{A: -0.8, B: 0.156}, Julia: true, Monochrome: true}
			Expect(r.Render(surf, smallJob(s, 5))).To(Succeed())

			for _, p := range surf.plots() {
				res := fractal.Julia(p.re, p.im, s.Param, 100)
				Expect(p.color).To(Equal(fractal.ColorFor(res, 100, true, false)))
			}
		})
	})

	Context("multiple random Julia sets", func() {
		var s config.Settings

		BeforeEach(func() {
			s = config.Settings{Region: fractal.FullPlane, Size: 2, Random: true, Julia: true}
		})

		It("defines and outlines every tile before drawing", func() {
			Expect(r.Render(surf, smallJob(s, 2))).To(Succeed())

			Expect(surf.calls[0]).To(Equal(call{op: "open", re: 180, im: 180}))
			ops := make([]string, 0, 8)
			for _, c := range surf.calls[1:9] {
				ops = append(ops, c.op)
			}
			Expect(ops).To(Equal([]string{"viewport", "box", "viewport", "box", "viewport", "box", "viewport", "box"}))
		})

		It("draws all tiles at a pixel before advancing", func() {
			Expect(r.Render(surf, smallJob(s, 3))).To(Succeed())

			plots := surf.plots()
			Expect(plots).To(HaveLen(9 * 4))
			for n, p := range plots {
				Expect(p.id).To(Equal(n%4 + 1))
				first := plots[n-n%4]
				Expect(p.re).To(Equal(first.re))
				Expect(p.im).To(Equal(first.im))
			}
		})

		It("uses each tile's own parameter", func() {
			job := smallJob(s, 3)
			Expect(r.Render(surf, job)).To(Succeed())

			for _, p := range surf.plots() {
				param := job.Layout.Tiles[p.id-1].Param
				want := fractal.ColorFor(fractal.Julia(p.re, p.im, param, 100), 100, false, false)
				Expect(p.color).To(Equal(want))
			}
		})
	})

	It("notifies observers once per evaluation", func() {
		c := &counter{}
		r.AddObserver(c)
		job := smallJob(config.Settings{Region: fractal.FullPlane, Size: 3, Random: true, Julia: true}, 4)

		Expect(r.Render(surf, job)).To(Succeed())
		Expect(c.n).To(Equal(job.Pixels()))
		Expect(c.n).To(Equal(4 * 4 * 9))
	})

	It("aborts on the first failed draw call", func() {
		surf.failAfter = 5
		err := r.Render(surf, smallJob(config.DefaultSettings(), 4))

		Expect(err).To(MatchError(errSurface))
		var de *DrawError
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Row).To(Equal(1))
		Expect(de.Col).To(Equal(1))
		Expect(surf.plots()).To(HaveLen(5))
	})

	Describe("NewJob", func() {
		It("uses the fixed resolutions", func() {
			job, err := NewJob(config.DefaultSettings(), fractal.MaxIterations, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(job.Layout.Resolution).To(Equal(400))

			multi := config.Settings{Region: fractal.FullPlane, Size: 8, Random: true, Julia: true}
			job, err = NewJob(multi, fractal.MaxIterations, rand.New(rand.NewSource(1)))
			Expect(err).NotTo(HaveOccurred())
			Expect(job.Layout.Resolution).To(Equal(85))
			Expect(job.Layout.Tiles).To(HaveLen(64))
		})

		It("rejects degenerate input", func() {
			_, err := NewJob(config.Settings{Region: fractal.Region{RealMin: 1, RealMax: -1, ImagMin: -1, ImagMax: 1}}, 10, nil)
			Expect(err).To(MatchError(fractal.ErrInvalidRegion))

			_, err = NewJob(config.DefaultSettings(), 0, nil)
			Expect(err).To(MatchError(fractal.ErrInvalidIterations))
		})
	})
})
