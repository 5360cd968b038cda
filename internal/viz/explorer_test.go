package viz

import (
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/fracsim/internal/config"
	"github.com/san-kum/fracsim/internal/storage"
	"github.com/san-kum/fracsim/internal/surface"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step applies msg and completes the render it starts, if any.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if out := cmd(); out != nil {
			next, _ = m.Update(out)
			m = next.(Model)
		}
	}
	return m
}

func newTestModel(t *testing.T, o Options) Model {
	t.Helper()
	if o.MaxIterations == 0 {
		o.MaxIterations = 20
	}
	m := NewModel(o)
	return step(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestExplorer_RendersOnResize(t *testing.T) {
	m := newTestModel(t, Options{Seed: 1})

	if m.canvas == nil || m.hist == nil {
		t.Fatal("expected a rendered canvas")
	}
	cols, rows := m.canvasSize()
	if cols != 32 || rows != 16 {
		t.Errorf("canvas %dx%d, want 32x16", cols, rows)
	}
	if m.job.Layout.Resolution != 64 {
		t.Errorf("resolution %d, want 64", m.job.Layout.Resolution)
	}
	if m.hist.Pixels != 64*64 {
		t.Errorf("rendered %d pixels, want %d", m.hist.Pixels, 64*64)
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestExplorer_StaleRenderIgnored(t *testing.T) {
	m := NewModel(Options{MaxIterations: 10})
	next, first := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(Model)
	next, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	next, _ = m.Update(first())
	m = next.(Model)
	if m.canvas != nil {
		t.Error("render from an older layout was accepted")
	}
	if !m.rendering {
		t.Error("expected the newer render to still be pending")
	}
}

func TestExplorer_Zoom(t *testing.T) {
	m := newTestModel(t, Options{})

	m = step(t, m, runes("+"))
	r := m.Settings().Region
	if !near(r.Width(), 2) || !near(r.RealMin, -1) || !near(r.ImagMax, 1) {
		t.Errorf("zoom in gave %v", r)
	}

	m = step(t, m, runes("-"))
	m = step(t, m, runes("-"))
	if got := m.Settings().Region; got != config.DefaultSettings().Region {
		t.Errorf("zoom out should clamp to the full plane, got %v", got)
	}
}

func TestExplorer_PanStaysInPlane(t *testing.T) {
	m := newTestModel(t, Options{})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Settings().Region; got != config.DefaultSettings().Region {
		t.Errorf("panning the full plane moved it to %v", got)
	}

	m = step(t, m, runes("+"))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if cr, _ := m.Settings().Region.Center(); !near(cr, 0.5) {
		t.Errorf("center after pan = %f, want 0.5", cr)
	}

	for i := 0; i < 3; i++ {
		m = step(t, m, runes("l"))
	}
	r := m.Settings().Region
	if !near(r.RealMax, 2) || !near(r.Width(), 2) {
		t.Errorf("pan should stop at the plane edge, got %v", r)
	}

	m = step(t, m, runes("k"))
	if _, ci := m.Settings().Region.Center(); !near(ci, 0.5) {
		t.Errorf("up should move toward positive imaginary, got %f", ci)
	}
}

func TestExplorer_ModeToggles(t *testing.T) {
	m := newTestModel(t, Options{Seed: 7})

	m = step(t, m, runes("x"))
	if m.Settings().Random {
		t.Error("grid should need julia mode")
	}

	m = step(t, m, runes("f"))
	if m.Settings().Mode() != "julia" {
		t.Fatalf("mode = %s, want julia", m.Settings().Mode())
	}

	before := m.Settings().Param
	m = step(t, m, runes("r"))
	if m.Settings().Param == before {
		t.Error("r should draw a new parameter")
	}

	m = step(t, m, runes("x"))
	if !m.Settings().Multi() || m.Settings().Size != config.DefaultSize {
		t.Fatalf("expected a %d grid, got %+v", config.DefaultSize, m.Settings())
	}
	if len(m.job.Layout.Tiles) != 9 {
		t.Errorf("got %d tiles, want 9", len(m.job.Layout.Tiles))
	}

	first, last := m.params[0], m.params[8]
	m = step(t, m, runes("+"))
	if m.params[0] != first || m.params[8] != last {
		t.Error("zooming a grid should keep its parameters")
	}

	m = step(t, m, runes("r"))
	if m.params[0] == first {
		t.Error("r should reroll grid parameters")
	}

	m = step(t, m, runes("]"))
	if m.Settings().Size != 4 || len(m.job.Layout.Tiles) != 16 {
		t.Errorf("size = %d with %d tiles", m.Settings().Size, len(m.job.Layout.Tiles))
	}

	m = step(t, m, runes("m"))
	if !m.Settings().Monochrome {
		t.Error("m should toggle monochrome")
	}
}

func TestExplorer_Theme(t *testing.T) {
	m := newTestModel(t, Options{Theme: "ocean"})
	m = step(t, m, runes("t"))
	if m.theme.Name != "sunset" {
		t.Errorf("theme = %s, want sunset", m.theme.Name)
	}
	if m.canvas.Palette() != surface.GetPalette("sunset") {
		t.Error("theme change should repaint the canvas")
	}
	if m.status != "theme sunset" {
		t.Errorf("status = %q", m.status)
	}
}

func TestExplorer_Save(t *testing.T) {
	st := storage.New(t.TempDir())
	m := newTestModel(t, Options{Store: st, Seed: 3})

	m = step(t, m, runes("s"))
	if m.err != nil {
		t.Fatalf("save failed: %v", m.err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved render, got %d", len(runs))
	}
	if runs[0].Resolution != 400 || runs[0].Stats["pixels"] != 400*400 {
		t.Errorf("saved render should be full resolution: %+v", runs[0])
	}
	if m.status != "saved "+runs[0].ID {
		t.Errorf("status = %q", m.status)
	}
}

func TestExplorer_SaveDisabled(t *testing.T) {
	m := newTestModel(t, Options{})
	m = step(t, m, runes("s"))
	if m.err == nil {
		t.Error("expected an error without a store")
	}
}

func TestExplorer_Recording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoom.gif")
	m := newTestModel(t, Options{GIFPath: path})

	m = step(t, m, runes("g"))
	m = step(t, m, runes("+"))
	m = step(t, m, runes("+"))
	if m.recorder.Len() != 3 {
		t.Fatalf("recorded %d frames, want 3", m.recorder.Len())
	}
	m = step(t, m, runes("g"))
	if m.err != nil {
		t.Fatalf("save gif failed: %v", m.err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("gif has %d frames, want 3", len(anim.Image))
	}
}

func TestExplorer_Quit(t *testing.T) {
	m := NewModel(Options{})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestThemes(t *testing.T) {
	for _, name := range ThemeNames() {
		if GetTheme(name).Name != name {
			t.Errorf("theme %s not found", name)
		}
	}
	if NextTheme("sunset").Name != "cyberpunk" {
		t.Error("themes should wrap around")
	}
	if GetTheme("missing").Name != "cyberpunk" {
		t.Error("unknown theme should fall back to cyberpunk")
	}
}
