package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/bezdyn/internal/config"
	"github.com/san-kum/bezdyn/internal/export"
	"github.com/san-kum/bezdyn/internal/gui"
	"github.com/san-kum/bezdyn/internal/logging"
	"github.com/san-kum/bezdyn/internal/session"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       uint64
	logLevel   string

	// run / sweep / snapshot
	frames   int
	dt       float64
	runName  string
	scenario string
	steps    int

	// plot / analyze
	column  string
	svgOut  string
	outPath string

	// snapshot / live
	format string
	theme  string
)

// main registers the commands and flags. With no subcommand it opens the
// desktop window.
func main() {
	rootCmd := &cobra.Command{
		Use:           "bezdyn",
		Short:         "interactive spring-driven bézier curve",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".bezdyn", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "apply a named preset")
	pf.Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the curve in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the curve in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "neon", "color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate headlessly and record the run",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/config.DefaultFPS, "frame delta in seconds")
	runCmd.Flags().StringVar(&runName, "name", "run", "run name")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "scenario file driving the pointer")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "energy", "series to plot")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the P1 trajectory as svg")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a still frame to png or svg",
		Args:  cobra.NoArgs,
		RunE:  takeSnapshot,
	}
	snapshotCmd.Flags().StringVar(&format, "format", "png", "png or svg")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", ".", "output directory")
	snapshotCmd.Flags().IntVar(&frames, "frames", 0, "frames to simulate first")
	snapshotCmd.Flags().Float64Var(&dt, "dt", 1.0/config.DefaultFPS, "frame delta in seconds")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "replay a scripted pointer session and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param] [min] [max]",
		Short: "sweep a parameter across parallel headless runs",
		Args:  cobra.ExactArgs(3),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&steps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per run")
	sweepCmd.Flags().Float64Var(&dt, "dt", 1.0/config.DefaultFPS, "frame delta in seconds")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		analyzeCmd, snapshotCmd, scenarioCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the preset and explicitly
// set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if preset != "" {
		if err := config.Apply(cfg, preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("frames") != nil && flags.Changed("frames") {
		cfg.Run.Frames = frames
	}
	if flags.Lookup("dt") != nil && flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	return cfg, cfg.Validate()
}

func newLogger() (*zap.Logger, error) {
	return logging.New(logLevel)
}

// setup loads the config and builds a logger and a session from it.
func setup(cmd *cobra.Command) (*config.Config, *session.Session, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := newLogger()
	if err != nil {
		return nil, nil, nil, err
	}
	opts := cfg.SessionOptions()
	opts.Logger = log
	return cfg, session.New(opts), log, nil
}

func snapshotter(dir string) func(s *session.Session) (string, error) {
	return func(s *session.Session) (string, error) {
		return export.Snapshot(s, dir, "")
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	_, s, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()
	gui.Run(s, snapshotter("."), log)
	return nil
}
