package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/bezdyn/internal/analysis"
	"github.com/san-kum/bezdyn/internal/automation"
	"github.com/san-kum/bezdyn/internal/config"
	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/export"
	"github.com/san-kum/bezdyn/internal/metrics"
	"github.com/san-kum/bezdyn/internal/session"
	"github.com/san-kum/bezdyn/internal/sim"
	"github.com/san-kum/bezdyn/internal/storage"
	"github.com/san-kum/bezdyn/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	_, s, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()
	return viz.Run(s,
		viz.WithTheme(theme),
		viz.WithSnapshot(snapshotter(".")),
		viz.WithLogger(log))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signalContext()
	defer cancel()

	opts := cfg.SessionOptions()
	opts.Logger = log
	rec := session.NewRecorder(0)
	set := metrics.Standard()

	start := time.Now()
	var s *session.Session
	if scenario != "" {
		sc, err := automation.LoadScenario(scenario)
		if err != nil {
			return err
		}
		sc.Frames, sc.Dt = cfg.Run.Frames, cfg.Run.Dt
		if err := sc.Validate(); err != nil {
			return err
		}
		if s, err = automation.NewRunner(log, rec, set).Run(ctx, sc, opts); err != nil {
			return err
		}
	} else {
		s = session.New(opts)
		s.AddObserver(rec)
		s.AddObserver(set)
		if err := s.Run(ctx, cfg.Run.Frames, cfg.Run.Dt); err != nil {
			return err
		}
	}

	id, err := saveRun(s, cfg, runName, rec, set)
	if err != nil {
		return err
	}
	log.Info("run complete",
		zap.String("id", id),
		zap.Int("frames", s.FrameCount()),
		zap.Duration("elapsed", time.Since(start)))
	printMetrics(os.Stdout, set.Values())
	fmt.Printf("saved run %s\n", id)
	return nil
}

func saveRun(s *session.Session, cfg *config.Config, name string, rec *session.Recorder, set *metrics.Set) (string, error) {
	params := make(map[string]float64)
	for _, k := range sim.ParamNames() {
		params[k], _ = s.Param(k)
	}
	toggles := make(map[string]bool)
	for _, k := range session.ToggleNames() {
		toggles[k], _ = s.Toggle(k)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(storage.RunMetadata{
		Name:    name,
		Preset:  preset,
		Seed:    cfg.Seed,
		Dt:      cfg.Run.Dt,
		Params:  params,
		Toggles: toggles,
		Metrics: set.Values(),
	}, storage.RowsFromRecords(rec.Records()))
}

func printMetrics(w io.Writer, m map[string]float64) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range metricOrder {
		if v, ok := m[k]; ok {
			fmt.Fprintf(tw, "%s\t%.4f\n", k, v)
		}
	}
	tw.Flush()
}

var metricOrder = []string{"mean_energy", "final_length", "peak_particles", "max_speed", "stillness"}

// resolveRun returns the given run id or the latest one.
func resolveRun(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return st.Latest()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tDT\tSEED\tENERGY")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\t%.2f\n",
			run.ID,
			p,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Seed,
			run.Metrics["mean_energy"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	rows, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}
	data, err := storage.Column(rows, column)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d\n\n", len(rows))
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(column+" vs frame")))

	if svgOut != "" {
		path := make([]curve.Vec2, len(rows))
		for i, r := range rows {
			path[i] = r.P1
		}
		doc := export.TrajectoryToSVG(path, 600, 400, "#4cc9f0")
		if err := os.WriteFile(svgOut, []byte(doc), 0o644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func output() (io.Writer, func() error, error) {
	if outPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	in, err := os.Open(st.CSVPath(runID))
	if err != nil {
		return fmt.Errorf("%w: %s", storage.ErrRunNotFound, runID)
	}
	defer in.Close()

	w, done, err := output()
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, in); err != nil {
		done()
		return err
	}
	return done()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	w, done, err := output()
	if err != nil {
		return err
	}
	if err := st.ExportJSON(w, runID); err != nil {
		done()
		return err
	}
	return done()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%d frames, dt %.4fs)\n\n", runID, len(rows), meta.Dt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tFREQ (Hz)\tPERIOD (s)\tPOWER\tCROSSINGS")
	for _, name := range []string{"p1x", "p1y", "p2x", "p2y", "energy"} {
		data, err := storage.Column(rows, name)
		if err != nil {
			return err
		}
		freq, power, err := analysis.DominantFrequency(data, meta.Dt)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\n", name)
			continue
		}
		crossings := analysis.UpCrossings(data, mean(data))
		fmt.Fprintf(w, "%s\t%.4f\t%.3f\t%.3g\t%d\n", name, freq, analysis.Period(freq), power, len(crossings))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	pos, _ := storage.Column(rows, "p1x")
	vel, _ := storage.Column(rows, "v1x")
	fmt.Println("\nP1 phase portrait (x vs vx)")
	fmt.Println(analysis.NewPhasePortrait("p1x", pos, vel).ASCII(60, 16))
	return nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func takeSnapshot(cmd *cobra.Command, args []string) error {
	cfg, s, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()
	if frames > 0 {
		if err := s.Run(context.Background(), frames, cfg.Run.Dt); err != nil {
			return err
		}
	}
	if format != "png" && format != "svg" {
		return fmt.Errorf("unknown format %q (png, svg)", format)
	}
	path, err := export.Snapshot(s, outPath, export.SnapshotName(time.Now(), "."+format))
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	opts, err := sc.Options(cfg)
	if err != nil {
		return err
	}
	opts.Logger = log

	ctx, cancel := signalContext()
	defer cancel()

	rec := session.NewRecorder(0)
	set := metrics.Standard()
	s, err := automation.NewRunner(log, rec, set).Run(ctx, sc, opts)
	if err != nil {
		return err
	}

	cfg.Run.Dt, cfg.Seed = sc.Dt, opts.Seed
	name := sc.Name
	if name == "" {
		name = "scenario"
	}
	id, err := saveRun(s, cfg, name, rec, set)
	if err != nil {
		return err
	}
	printMetrics(os.Stdout, set.Values())
	fmt.Printf("saved run %s\n", id)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	lo, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid min %q: %w", args[1], err)
	}
	hi, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid max %q: %w", args[2], err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	sw := &automation.ParameterSweep{
		Param:  args[0],
		Min:    lo,
		Max:    hi,
		Steps:  steps,
		Frames: cfg.Run.Frames,
		Dt:     cfg.Run.Dt,
		Seed:   cfg.Seed,
		Base:   cfg.SessionOptions(),
	}
	start := time.Now()
	results, err := automation.RunSweep(ctx, sw, log)
	if err != nil {
		return err
	}
	log.Info("sweep complete", zap.Int("members", len(results)), zap.Duration("elapsed", time.Since(start)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN ENERGY\tFINAL LENGTH\tPEAK PARTICLES\tMAX SPEED\n", args[0])
	for _, r := range results {
		m := r.Metrics
		fmt.Fprintf(w, "%.4f\t%.3f\t%.1f\t%.0f\t%.3f\n",
			r.Value, m["mean_energy"], m["final_length"], m["peak_particles"], m["max_speed"])
	}
	return w.Flush()
}
