package main

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/fracsim/internal/config"
	"github.com/san-kum/fracsim/internal/fractal"
	"github.com/san-kum/fracsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	// Fractal settings
	julia    bool
	mono     bool
	random   bool
	size     int
	paramA   float64
	paramB   float64
	centerRe float64
	centerIm float64
	length   float64
	// Sources of settings, weakest first
	preset     string
	configFile string
	code       string
	// Render options
	iterations int
	seed       int64
	format     string
	outPath    string
	scale      float64
	palette    string
	cols       int
	rows       int
	save       bool
	// Explorer options
	theme   string
	gifPath string
	// Orbit start point
	orbitRe float64
	orbitIm float64
	// Show options
	asJSON     bool
	exportPath string
)

// main registers the commands and runs the explorer when no subcommand is
// given. It exits with status 1 if the command returns an error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fracsim",
		Short:         "escape-time fractal renderer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runExplore,
	}
	addSettingsFlags(rootCmd)
	addExploreFlags(rootCmd)

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fracsim", "data directory")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a fractal to a file, the terminal or a window",
		Args:  cobra.NoArgs,
		RunE:  renderFractal,
	}
	addSettingsFlags(renderCmd)
	renderCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "output format (png, svg, term, window)")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", config.DefaultOutput, "output file (png, svg)")
	renderCmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "raster pixels per logical unit (0 fits the resolution)")
	renderCmd.Flags().StringVar(&palette, "palette", config.DefaultPalette, "color palette")
	renderCmd.Flags().IntVar(&cols, "cols", 80, "terminal columns (term, svg)")
	renderCmd.Flags().IntVar(&rows, "rows", 40, "terminal rows (term, svg)")
	renderCmd.Flags().BoolVar(&save, "save", false, "save the render to the data directory")

	codeCmd := &cobra.Command{
		Use:   "code [secret code]",
		Short: "decode a secret code",
		Args:  cobra.MinimumNArgs(1),
		RunE:  decodeCode,
		// Codes start with negative numbers.
		DisableFlagParsing: true,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and their secret codes",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved renders",
		Args:  cobra.NoArgs,
		RunE:  listRenders,
	}

	showCmd := &cobra.Command{
		Use:   "show [render_id]",
		Short: "show a saved render",
		Args:  cobra.ExactArgs(1),
		RunE:  showRender,
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	showCmd.Flags().StringVar(&exportPath, "export", "", "write JSON to a file")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "escape step statistics",
		Args:  cobra.NoArgs,
		RunE:  renderStats,
	}
	addSettingsFlags(statsCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark serial and parallel evaluation",
		Args:  cobra.NoArgs,
		RunE:  benchEvaluate,
	}
	benchCmd.Flags().IntVar(&iterations, "iterations", fractal.MaxIterations, "maximum iterations per point")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "trace the orbit of one point",
		Args:  cobra.NoArgs,
		RunE:  traceOrbit,
	}
	orbitCmd.Flags().Float64Var(&orbitRe, "re", 0, "real part of the point")
	orbitCmd.Flags().Float64Var(&orbitIm, "im", 0, "imaginary part of the point")
	orbitCmd.Flags().BoolVar(&julia, "julia", false, "iterate under the julia parameter")
	orbitCmd.Flags().Float64Var(&paramA, "a", 0, "julia parameter real part")
	orbitCmd.Flags().Float64Var(&paramB, "b", 0, "julia parameter imaginary part")
	orbitCmd.Flags().IntVar(&iterations, "iterations", 100, "maximum iterates")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive terminal explorer",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}
	addSettingsFlags(exploreCmd)
	addExploreFlags(exploreCmd)

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file for the given settings",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	addSettingsFlags(initCmd)
	initCmd.Flags().StringVar(&palette, "palette", config.DefaultPalette, "color palette")

	rootCmd.AddCommand(renderCmd, codeCmd, presetsCmd, listCmd, showCmd, statsCmd, benchCmd, orbitCmd, exploreCmd, initCmd)
	return rootCmd
}

func addSettingsFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&julia, "julia", false, "draw a julia set instead of the mandelbrot set")
	f.BoolVar(&mono, "mono", false, "monochrome coloring")
	f.BoolVar(&random, "random", false, "draw a grid of julia sets with random parameters")
	f.IntVar(&size, "size", config.DefaultSize, "grid size (1-8)")
	f.Float64Var(&paramA, "a", 0, "julia parameter real part")
	f.Float64Var(&paramB, "b", 0, "julia parameter imaginary part")
	f.Float64Var(&centerRe, "center-re", 0, "zoom center real part")
	f.Float64Var(&centerIm, "center-im", 0, "zoom center imaginary part")
	f.Float64Var(&length, "length", 2*fractal.Bound, "zoom window side length")
	f.StringVar(&preset, "preset", "", "start from a preset")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&code, "code", "", "secret code (overrides everything)")
	f.IntVar(&iterations, "iterations", fractal.MaxIterations, "maximum iterations per point")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

func addExploreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	cmd.Flags().StringVar(&gifPath, "gif", "fractal.gif", "GIF recording path")
}

// resolveConfig layers preset, config file, explicit flags and secret code,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	cfg := config.DefaultConfig()

	if preset != "" {
		s, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg.Settings = s
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if changed("julia") {
		cfg.Settings.Julia = julia
	}
	if changed("mono") {
		cfg.Settings.Monochrome = mono
	}
	if changed("random") {
		cfg.Settings.Random = random
		if random {
			cfg.Settings.Julia = true
		}
	}
	if changed("size") {
		cfg.Settings.Size = size
	} else if cfg.Settings.Multi() && cfg.Settings.Size == 0 {
		cfg.Settings.Size = config.DefaultSize
	}
	if changed("a") {
		cfg.Settings.Param.A = paramA
	}
	if changed("b") {
		cfg.Settings.Param.B = paramB
	}
	if changed("center-re") || changed("center-im") || changed("length") {
		region, err := fractal.Zoom(centerRe, centerIm, length)
		if err != nil {
			return nil, err
		}
		cfg.Settings.Region = region
	}
	if changed("iterations") {
		cfg.MaxIterations = iterations
	}
	if changed("palette") {
		cfg.Palette = palette
	}
	if changed("format") {
		cfg.Output.Format = format
	}
	if changed("out") {
		cfg.Output.Path = outPath
	}
	if changed("scale") {
		cfg.Output.Scale = scale
	}
	if changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if code != "" {
		s, err := config.ParseCode(code)
		if err != nil {
			return nil, err
		}
		cfg.Settings = s
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
