package main

import (
	"fmt"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/san-kum/fracsim/internal/analysis"
	"github.com/san-kum/fracsim/internal/config"
	"github.com/san-kum/fracsim/internal/fractal"
	"github.com/san-kum/fracsim/internal/render"
	"github.com/san-kum/fracsim/internal/storage"
	"github.com/san-kum/fracsim/internal/surface"
	"github.com/san-kum/fracsim/internal/viz"
	"github.com/spf13/cobra"
)

func renderFractal(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !surface.HasPalette(cfg.Palette) {
		return fmt.Errorf("unknown palette: %s (available: %v)", cfg.Palette, surface.PaletteNames())
	}

	job, err := render.NewJob(cfg.Settings, cfg.MaxIterations, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	pixelScale := cfg.Output.Scale
	if pixelScale == 0 {
		pixelScale = job.Layout.PixelScale()
	}

	target, err := surface.NewRegistry().Get(cfg.Output.Format, surface.Options{
		Path:    cfg.Output.Path,
		Scale:   pixelScale,
		Palette: surface.GetPalette(cfg.Palette),
		Out:     out,
		Cols:    cols,
		Rows:    rows,
		Title:   "fracsim: " + cfg.Settings.Mode(),
	})
	if err != nil {
		return err
	}

	s := cfg.Settings
	if s.Multi() {
		fmt.Fprintf(out, "rendering %dx%d julia sets at %d pixels...\n", s.Size, s.Size, job.Layout.Resolution)
		for _, tile := range job.Layout.Tiles {
			fmt.Fprintf(out, "  tile %d: c = %s\n", tile.ID, tile.Param)
		}
	} else {
		fmt.Fprintf(out, "rendering %s set at %d pixels...\n", s.Mode(), job.Layout.Resolution)
	}

	hist := analysis.NewHistogram()
	r := render.New()
	r.AddObserver(hist)

	start := time.Now()
	if err := r.Render(target, job); err != nil {
		target.Close()
		return err
	}
	elapsed := time.Since(start)

	if err := target.Close(); err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n", elapsed.Round(time.Millisecond))
	switch cfg.Output.Format {
	case "png", "svg":
		fmt.Fprintf(out, "wrote %s\n", cfg.Output.Path)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		img, _ := target.(storage.PNGEncoder)
		runID, err := st.Save(storage.RenderMetadata{
			Settings:      s,
			MaxIterations: cfg.MaxIterations,
			Palette:       cfg.Palette,
			Seed:          cfg.Seed,
			Resolution:    job.Layout.Resolution,
			Tiles:         storage.TileParams(job.Layout),
			ElapsedMS:     float64(elapsed.Microseconds()) / 1000,
			Stats:         hist.Summary(),
		}, img, hist.Steps)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "render id: %s\n", runID)
	}

	fmt.Fprintf(out, "secret code: %s\n", s.Code())
	return nil
}

func renderStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	layout, err := cfg.Settings.Layout(rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	hist := analysis.NewHistogram()
	start := time.Now()
	for _, tile := range layout.Tiles {
		var param *fractal.Param
		if cfg.Settings.Julia {
			p := tile.Param
			param = &p
		}
		grid, err := fractal.EscapeGrid(cfg.Settings.Region, layout.Resolution, layout.Resolution, param, cfg.MaxIterations)
		if err != nil {
			return err
		}
		hist.AddGrid(tile.ID, grid)
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "%s over %s, %d tiles at %d pixels (%v)\n\n",
		cfg.Settings.Mode(), cfg.Settings.Region, len(layout.Tiles), layout.Resolution, elapsed.Round(time.Millisecond))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "pixels\t%d\n", hist.Pixels)
	fmt.Fprintf(w, "in set\t%d (%.2f%%)\n", hist.Converged, 100*hist.ConvergedFraction())
	fmt.Fprintf(w, "mean step\t%.2f\n", hist.MeanStep())
	fmt.Fprintf(w, "max step\t%d\n", hist.MaxStep())
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\npalette classes:")
	for i, n := range hist.Classes {
		fmt.Fprintf(out, "  %d: %d\n", i, n)
	}
	if len(layout.Tiles) > 1 {
		fmt.Fprintln(out, "\nin-set pixels per tile:")
		for _, tile := range layout.Tiles {
			fmt.Fprintf(out, "  tile %d (c = %s): %d\n", tile.ID, tile.Param, hist.Tiles[tile.ID])
		}
	}

	if hist.Pixels > hist.Converged {
		fmt.Fprintln(out)
		fmt.Fprintln(out, hist.Plot(60, 10, "escape steps"))
	}
	return nil
}

// flagInt reads an int flag of cmd itself. Commands share the package
// variables but not their defaults.
func flagInt(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0
	}
	return v
}

func benchEvaluate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	iterations := flagInt(cmd, "iterations")
	if iterations <= 0 {
		return fractal.ErrInvalidIterations
	}

	fmt.Fprintf(out, "benchmarking mandelbrot over %s at %d iterations\n\n", fractal.FullPlane, iterations)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RESOLUTION\tMODE\tPIXELS\tTIME\tPIXELS/SEC")

	for _, res := range []int{100, 200, 400} {
		start := time.Now()
		serialGrid(fractal.FullPlane, res, iterations)
		serial := time.Since(start)

		start = time.Now()
		if _, err := fractal.EscapeGrid(fractal.FullPlane, res, res, nil, iterations); err != nil {
			return err
		}
		parallel := time.Since(start)

		pixels := res * res
		for _, row := range []struct {
			mode    string
			elapsed time.Duration
		}{{"serial", serial}, {"parallel", parallel}} {
			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.0f\n",
				res, row.mode, pixels, row.elapsed.Round(time.Microsecond), float64(pixels)/row.elapsed.Seconds())
		}
	}

	return w.Flush()
}

func serialGrid(region fractal.Region, res, maxIterations int) []fractal.Result {
	results := make([]fractal.Result, 0, res*res)
	deltaR := region.Width() / float64(res)
	deltaI := region.Height() / float64(res)
	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			results = append(results, fractal.Mandelbrot(float64(j)*deltaR+region.RealMin, float64(i)*deltaI+region.ImagMin, maxIterations))
		}
	}
	return results
}

func traceOrbit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	iterations := flagInt(cmd, "iterations")
	if iterations <= 0 {
		return fractal.ErrInvalidIterations
	}

	point := analysis.Point{Re: orbitRe, Im: orbitIm}
	z0, c := analysis.Point{}, point
	if julia {
		z0, c = point, analysis.Point{Re: paramA, Im: paramB}
	}
	o := analysis.TraceOrbit(z0, c, iterations)

	if o.Escaped {
		fmt.Fprintf(out, "escaped after %d iterates\n", len(o.Points)-1)
	} else {
		fmt.Fprintf(out, "bounded for %d iterates\n", len(o.Points))
	}
	fmt.Fprint(out, analysis.OrbitToASCII(o, 60, 20))
	if len(o.Points) > 1 {
		fmt.Fprintln(out, analysis.PlotMagnitudes(o, 60, 8))
	}
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	final, err := viz.Run(viz.Options{
		Settings:      cfg.Settings,
		MaxIterations: cfg.MaxIterations,
		Theme:         theme,
		Seed:          cfg.Seed,
		Store:         storage.New(dataDir),
		GIFPath:       gifPath,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "secret code: %s\n", final.Code())
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
