package surface

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/san-kum/fracsim/internal/fractal"
)

// Target is a surface whose Close delivers the finished render: writing a
// file, printing to a terminal or showing a window.
type Target interface {
	Open(width, height float64) error
	DefineViewport(id int, vp fractal.Viewport) error
	Plot(id int, re, im float64, c fractal.Color) error
	Box(id int, r fractal.Region) error
	Close() error
}

// Options configures a Target built by the registry.
type Options struct {
	Path    string
	Scale   float64
	Palette Palette
	Out     io.Writer
	Cols    int
	Rows    int
	Title   string
}

type Registry struct {
	targets map[string]func(Options) Target
}

func NewRegistry() *Registry {
	r := &Registry{targets: make(map[string]func(Options) Target)}

	r.targets["png"] = func(o Options) Target {
		return &pngFile{Image: NewImage(o.Scale, o.Palette), path: o.Path}
	}
	r.targets["svg"] = func(o Options) Target {
		return &svgFile{Canvas: NewCanvas(o.Cols, o.Rows, o.Palette), path: o.Path}
	}
	r.targets["term"] = func(o Options) Target {
		out := o.Out
		if out == nil {
			out = os.Stdout
		}
		return &termOut{Canvas: NewCanvas(o.Cols, o.Rows, o.Palette), out: out}
	}
	r.targets["window"] = func(o Options) Target {
		return NewWindow(o.Title, o.Scale, o.Palette)
	}

	return r
}

func (r *Registry) Get(name string, o Options) (Target, error) {
	fn, ok := r.targets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownFormat, name, r.Names())
	}
	return fn(o), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type pngFile struct {
	*Image
	path string
}

func (p *pngFile) Close() error {
	f, err := os.Create(p.path)
	if err != nil {
		return err
	}
	if err := p.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type svgFile struct {
	*Canvas
	path string
}

func (s *svgFile) Close() error {
	return os.WriteFile(s.path, []byte(s.SVG(4)), 0644)
}

type termOut struct {
	*Canvas
	out io.Writer
}

func (t *termOut) Close() error {
	_, err := io.WriteString(t.out, t.String())
	return err
}
