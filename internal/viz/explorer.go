package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/fracsim/internal/analysis"
	"github.com/san-kum/fracsim/internal/config"
	"github.com/san-kum/fracsim/internal/fractal"
	"github.com/san-kum/fracsim/internal/render"
	"github.com/san-kum/fracsim/internal/storage"
	"github.com/san-kum/fracsim/internal/surface"
)

const (
	panelWidth    = 44
	defaultWidth  = 120
	defaultHeight = 36
	minRows       = 4
	// panFraction is the share of the window a pan key moves the view.
	panFraction = 0.25
	zoomFactor  = 2.0
)

// Options configures an explorer session.
type Options struct {
	Settings      config.Settings
	MaxIterations int
	Theme         string
	Seed          int64
	// Store receives saved renders; nil disables saving.
	Store *storage.Store
	// GIFPath is where recordings are written.
	GIFPath string
}

type renderedMsg struct {
	gen     int
	canvas  *surface.Canvas
	hist    *analysis.Histogram
	elapsed time.Duration
	err     error
}

type savedMsg struct {
	id  string
	err error
}

// Model is the interactive explorer. Every view change lays out a new job
// and renders it onto a fresh canvas off the update loop.
type Model struct {
	settings config.Settings
	maxIter  int
	seed     int64
	rng      *rand.Rand
	theme    Theme
	store    *storage.Store
	gifPath  string

	width, height int
	job           *render.Job
	params        []fractal.Param
	canvas        *surface.Canvas
	hist          *analysis.Histogram
	elapsed       time.Duration
	gen           int
	rendering     bool

	status    string
	err       error
	showHelp  bool
	showCode  bool
	recording bool
	recorder  *Recorder
}

func NewModel(o Options) Model {
	if o.MaxIterations <= 0 {
		o.MaxIterations = fractal.MaxIterations
	}
	if o.GIFPath == "" {
		o.GIFPath = "fractal.gif"
	}
	if err := o.Settings.Validate(); err != nil {
		o.Settings = config.DefaultSettings()
	}
	return Model{
		settings: o.Settings,
		maxIter:  o.MaxIterations,
		seed:     o.Seed,
		rng:      rand.New(rand.NewSource(o.Seed)),
		theme:    GetTheme(o.Theme),
		store:    o.Store,
		gifPath:  o.GIFPath,
		width:    defaultWidth,
		height:   defaultHeight,
		recorder: NewRecorder(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Settings returns the settings of the current view.
func (m Model) Settings() config.Settings { return m.settings }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cmd := m.redraw(false)
		return m, cmd
	case renderedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.rendering = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.canvas, m.hist, m.elapsed = msg.canvas, msg.hist, msg.elapsed
		if m.recording {
			m.recorder.Capture(m.canvas)
		}
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "saved " + msg.id
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.err = nil
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording && m.recorder.Len() > 0 {
			m.recorder.Save(m.gifPath)
		}
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "c":
		m.showCode = !m.showCode
		return m, nil
	case "t":
		m.theme = NextTheme(m.theme.Name)
		if m.canvas != nil {
			m.canvas.SetPalette(surface.GetPalette(m.theme.Palette))
		}
		m.status = "theme " + m.theme.Name
		return m, nil
	case "g":
		return m.toggleRecording(), nil
	case "s":
		return m, m.save()

	case "up", "k":
		return m.pan(0, 1)
	case "down", "j":
		return m.pan(0, -1)
	case "left", "h":
		return m.pan(-1, 0)
	case "right", "l":
		return m.pan(1, 0)
	case "+", "=":
		return m.zoom(1 / zoomFactor)
	case "-", "_":
		return m.zoom(zoomFactor)
	case "0":
		m.settings.Region = fractal.FullPlane
		cmd := m.redraw(false)
		return m, cmd

	case "m":
		m.settings.Monochrome = !m.settings.Monochrome
		cmd := m.redraw(false)
		return m, cmd
	case "f":
		m.settings.Julia = !m.settings.Julia
		cmd := m.redraw(false)
		return m, cmd
	case "x":
		if !m.settings.Julia {
			m.status = "grid needs julia mode"
			return m, nil
		}
		m.settings.Random = !m.settings.Random
		if m.settings.Random && m.settings.Size < fractal.MinSize {
			m.settings.Size = config.DefaultSize
		}
		cmd := m.redraw(true)
		return m, cmd
	case "[":
		return m.resize(-1)
	case "]":
		return m.resize(1)
	case "r":
		return m.reroll()
	}
	return m, nil
}

// pan moves the view a quarter window, keeping it inside the plane.
func (m Model) pan(dx, dy float64) (Model, tea.Cmd) {
	r := m.settings.Region
	length := math.Max(r.Width(), r.Height())
	cr, ci := r.Center()
	cr += dx * length * panFraction
	ci += dy * length * panFraction

	half := math.Min(length/2, fractal.Bound)
	cr = math.Max(-fractal.Bound+half, math.Min(fractal.Bound-half, cr))
	ci = math.Max(-fractal.Bound+half, math.Min(fractal.Bound-half, ci))
	return m.moveTo(cr, ci, length)
}

func (m Model) zoom(factor float64) (Model, tea.Cmd) {
	r := m.settings.Region
	cr, ci := r.Center()
	return m.moveTo(cr, ci, math.Max(r.Width(), r.Height())*factor)
}

func (m Model) moveTo(cr, ci, length float64) (Model, tea.Cmd) {
	region, err := fractal.Zoom(cr, ci, length)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.settings.Region = region
	cmd := m.redraw(false)
	return m, cmd
}

func (m Model) resize(delta int) (Model, tea.Cmd) {
	if !m.settings.Multi() {
		m.status = "grid is off"
		return m, nil
	}
	size := m.settings.Size + delta
	if size < fractal.MinSize || size > fractal.MaxSize {
		m.status = fmt.Sprintf("grid size stays within %d..%d", fractal.MinSize, fractal.MaxSize)
		return m, nil
	}
	m.settings.Size = size
	cmd := m.redraw(true)
	return m, cmd
}

// reroll draws new Julia parameters: one per tile in grid mode, or a single
// new parameter otherwise.
func (m Model) reroll() (Model, tea.Cmd) {
	switch {
	case m.settings.Multi():
		cmd := m.redraw(true)
		return m, cmd
	case m.settings.Julia:
		m.settings.Param = fractal.RandomParams(1, m.rng)[0]
		cmd := m.redraw(false)
		return m, cmd
	default:
		m.status = "random parameters need julia mode"
		return m, nil
	}
}

func (m Model) toggleRecording() Model {
	if !m.recording {
		m.recording = true
		if m.canvas != nil {
			m.recorder.Capture(m.canvas)
		}
		m.status = "recording"
		return m
	}
	m.recording = false
	if err := m.recorder.Save(m.gifPath); err != nil {
		m.err = err
		return m
	}
	m.status = "saved " + m.gifPath
	return m
}

// canvasSize returns a canvas of square dot aspect that fits beside the
// side panel.
func (m Model) canvasSize() (cols, rows int) {
	rows = m.height - 2
	if byWidth := (m.width - panelWidth - 4) / 2; byWidth < rows {
		rows = byWidth
	}
	if rows < minRows {
		rows = minRows
	}
	return rows * 2, rows
}

// fitResolution returns the per-tile pixel count that puts one evaluation on
// each canvas dot.
func fitResolution(l fractal.Layout, dots int) int {
	if len(l.Tiles) == 0 || l.Width <= 0 {
		return dots
	}
	res := int(float64(dots) * l.Tiles[0].Viewport.W / l.Width)
	if res < 1 {
		res = 1
	}
	return res
}

// redraw lays out the current settings and starts a render. Grid tiles keep
// their parameters unless reroll is set.
func (m *Model) redraw(reroll bool) tea.Cmd {
	job, err := render.NewJob(m.settings, m.maxIter, m.rng)
	if err != nil {
		m.err = err
		return nil
	}

	tiles := job.Layout.Tiles
	if m.settings.Multi() && !reroll && len(m.params) == len(tiles) {
		for i := range tiles {
			tiles[i].Param = m.params[i]
		}
	}
	m.params = make([]fractal.Param, len(tiles))
	for i, t := range tiles {
		m.params[i] = t.Param
	}

	cols, rows := m.canvasSize()
	job.Layout.Resolution = fitResolution(job.Layout, rows*4)

	m.job = job
	m.gen++
	m.rendering = true
	return renderCmd(m.gen, job, cols, rows, surface.GetPalette(m.theme.Palette))
}

func renderCmd(gen int, job *render.Job, cols, rows int, p surface.Palette) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		canvas := surface.NewCanvas(cols, rows, p)
		hist := analysis.NewHistogram()

		r := render.New()
		r.AddObserver(hist)
		err := r.Render(canvas, job)
		return renderedMsg{gen: gen, canvas: canvas, hist: hist, elapsed: time.Since(start), err: err}
	}
}

// save renders the current view at full resolution and stores it.
func (m Model) save() tea.Cmd {
	if m.store == nil {
		return func() tea.Msg { return savedMsg{err: fmt.Errorf("viz: saving is disabled")} }
	}
	if m.job == nil {
		return nil
	}

	job := *m.job
	job.Layout.Tiles = append([]fractal.Tile(nil), m.job.Layout.Tiles...)
	job.Layout.Resolution = fractal.Resolution(job.Settings.Size, job.Settings.Multi())
	store, palette, seed := m.store, m.theme.Palette, m.seed

	return func() tea.Msg {
		start := time.Now()
		img := surface.NewImage(job.Layout.PixelScale(), surface.GetPalette(palette))
		hist := analysis.NewHistogram()

		r := render.New()
		r.AddObserver(hist)
		if err := r.Render(img, &job); err != nil {
			return savedMsg{err: err}
		}

		id, err := store.Save(storage.RenderMetadata{
			Settings:      job.Settings,
			MaxIterations: job.MaxIterations,
			Palette:       palette,
			Seed:          seed,
			Resolution:    job.Layout.Resolution,
			Tiles:         storage.TileParams(job.Layout),
			ElapsedMS:     float64(time.Since(start).Microseconds()) / 1000,
			Stats:         hist.Summary(),
		}, img, hist.Steps)
		return savedMsg{id: id, err: err}
	}
}

func (m Model) View() string {
	var canvasView string
	if m.canvas != nil {
		canvasView = canvasStyle.Render(m.canvas.String())
	} else {
		cols, rows := m.canvasSize()
		canvasView = canvasStyle.Render(lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, Subtle.Render("rendering...")))
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(m.panel()))
	if m.showHelp {
		return lipgloss.JoinHorizontal(lipgloss.Top, GlassPanel.Render(helpText), mainView)
	}
	return mainView
}

func (m Model) panel() string {
	t := m.theme
	val := t.value()
	var s strings.Builder

	s.WriteString(GradientText("FRACSIM", t.Primary, t.Secondary) + "  " + Subtle.Render(t.Name) + "\n")
	s.WriteString(t.header().Render(strings.ToUpper(m.settings.Mode())) + "\n")

	switch {
	case m.rendering:
		s.WriteString(StatusRendering.Render("RENDERING"))
	default:
		s.WriteString(StatusReady.Render("READY"))
	}
	if m.recording {
		s.WriteString("  " + StatusRecording.Render(fmt.Sprintf("● REC %d", m.recorder.Len())))
	}
	s.WriteString("\n\n")

	r := m.settings.Region
	cr, ci := r.Center()
	s.WriteString(MetricLabel.Render("Center") + val.Render(fmt.Sprintf("%.6g %+.6gi", cr, ci)) + "\n")
	s.WriteString(MetricLabel.Render("Width") + val.Render(fmt.Sprintf("%.6g", r.Width())) + "\n")
	if m.settings.Julia && !m.settings.Multi() {
		s.WriteString(MetricLabel.Render("c") + val.Render(m.settings.Param.String()) + "\n")
	}
	if m.settings.Multi() {
		s.WriteString(MetricLabel.Render("Grid") + val.Render(fmt.Sprintf("%dx%d", m.settings.Size, m.settings.Size)) + "\n")
	}
	s.WriteString(MetricLabel.Render("Iterations") + val.Render(fmt.Sprintf("%d", m.maxIter)) + "\n")
	if m.job != nil {
		s.WriteString(MetricLabel.Render("Resolution") + val.Render(fmt.Sprintf("%d", m.job.Layout.Resolution)) + "\n")
	}
	if m.hist != nil {
		s.WriteString(MetricLabel.Render("Time") + val.Render(m.elapsed.Round(time.Millisecond).String()) + "\n")
		s.WriteString(MetricLabel.Render("In set") + ProgressBar(m.hist.ConvergedFraction(), 16) +
			val.Render(fmt.Sprintf(" %.1f%%", 100*m.hist.ConvergedFraction())) + "\n")
		s.WriteString(MetricLabel.Render("Mean step") + val.Render(fmt.Sprintf("%.1f", m.hist.MeanStep())) + "\n\n")
		if m.hist.Pixels > m.hist.Converged {
			s.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Render(m.hist.Plot(panelWidth-14, 4, "steps")) + "\n")
		}
	}

	if m.showCode {
		s.WriteString("\n" + Subtle.Render("secret code") + "\n" + val.Render(m.settings.Code()) + "\n")
	}

	s.WriteString("\n" + Separator(panelWidth-6) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(t.errorText().Render(m.err.Error()) + "\n")
	case m.status != "":
		s.WriteString(lipgloss.NewStyle().Foreground(t.Success).Render(m.status) + "\n")
	}
	s.WriteString(KeyHint.Render("hjkl:Pan +/-:Zoom f:Julia m:Mono\nx:Grid r:Random t:Theme ?:Help q:Quit"))
	return s.String()
}

const helpText = `KEYBOARD SHORTCUTS

Arrows/HJKL  Pan a quarter window
+ / -        Zoom in / out
0            Reset to the full plane
F            Toggle Julia / Mandelbrot
M            Toggle monochrome
X            Toggle the random Julia grid
[ / ]        Shrink / grow the grid
R            Draw new random parameters
T            Cycle themes
C            Show the secret code
S            Save the view
G            Toggle GIF recording
?            Toggle this help
Q            Quit`

// Run starts the explorer on the alternate screen and returns the settings
// of the last view.
func Run(o Options) (config.Settings, error) {
	final, err := tea.NewProgram(NewModel(o), tea.WithAltScreen()).Run()
	if err != nil {
		return o.Settings, err
	}
	if m, ok := final.(Model); ok {
		return m.Settings(), nil
	}
	return o.Settings, nil
}
