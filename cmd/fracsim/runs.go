package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/fracsim/internal/analysis"
	"github.com/san-kum/fracsim/internal/config"
	"github.com/san-kum/fracsim/internal/fractal"
	"github.com/san-kum/fracsim/internal/storage"
	"github.com/spf13/cobra"
)

func decodeCode(cmd *cobra.Command, args []string) error {
	s, err := config.ParseCode(strings.Join(args, " "))
	if err != nil {
		return err
	}
	describeSettings(cmd, s)
	return nil
}

func describeSettings(cmd *cobra.Command, s config.Settings) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mode\t%s\n", s.Mode())
	fmt.Fprintf(w, "region\t%s\n", s.Region)
	cr, ci := s.Region.Center()
	fmt.Fprintf(w, "center\t%g %+gi\n", cr, ci)
	switch {
	case s.Multi():
		fmt.Fprintf(w, "grid\t%dx%d random parameters\n", s.Size, s.Size)
	case s.Julia:
		fmt.Fprintf(w, "c\t%s\n", s.Param)
	}
	fmt.Fprintf(w, "coloring\t%s\n", map[bool]string{true: "monochrome", false: "colorful"}[s.Monochrome])
	fmt.Fprintf(w, "resolution\t%d\n", fractal.Resolution(s.Size, s.Multi()))
	fmt.Fprintf(w, "code\t%s\n", s.Code())
	w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tCODE")
	for _, name := range config.ListPresets() {
		s, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, s.Mode(), s.Code())
	}
	return w.Flush()
}

func listRenders(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no renders found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tRES\tITER\tELAPSED\tPALETTE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1fms\t%s\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Resolution,
			run.MaxIterations,
			run.ElapsedMS,
			run.Palette,
		)
	}

	return w.Flush()
}

func showRender(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	runID := args[0]

	st := storage.New(dataDir)
	if asJSON || exportPath != "" {
		data, err := st.Export(runID)
		if err != nil {
			return err
		}
		if exportPath != "" {
			if err := storage.ExportJSON(exportPath, data); err != nil {
				return err
			}
			fmt.Fprintf(out, "exported to %s\n", exportPath)
			return nil
		}
		return storage.EncodeJSON(out, data)
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%s)\n\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	describeSettings(cmd, meta.Settings)
	fmt.Fprintf(out, "iterations: %d\n", meta.MaxIterations)
	fmt.Fprintf(out, "seed: %d\n", meta.Seed)
	fmt.Fprintf(out, "elapsed: %.1fms\n", meta.ElapsedMS)
	fmt.Fprintf(out, "image: %s\n", st.ImagePath(runID))

	if meta.Settings.Julia && len(meta.Tiles) > 0 {
		fmt.Fprintln(out, "\ntiles:")
		for _, t := range meta.Tiles {
			fmt.Fprintf(out, "  %d: c = %s\n", t.ID, fractal.Param{A: t.A, B: t.B})
		}
	}

	if len(meta.Stats) > 0 {
		fmt.Fprintln(out, "\nstats:")
		for _, name := range []string{"pixels", "converged_fraction", "mean_step", "max_step"} {
			if v, ok := meta.Stats[name]; ok {
				fmt.Fprintf(out, "  %s: %.6g\n", name, v)
			}
		}
	}

	steps, err := st.LoadHistogram(runID)
	if err != nil {
		return err
	}
	if len(steps) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, analysis.FromSteps(steps).Plot(60, 10, "escape steps"))
	}
	return nil
}
