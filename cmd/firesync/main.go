package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/firesync/internal/analysis"
	"github.com/san-kum/firesync/internal/config"
	"github.com/san-kum/firesync/internal/driver"
	"github.com/san-kum/firesync/internal/export"
	"github.com/san-kum/firesync/internal/gui"
	"github.com/san-kum/firesync/internal/metrics"
	"github.com/san-kum/firesync/internal/storage"
	"github.com/san-kum/firesync/internal/swarm"
	"github.com/san-kum/firesync/internal/tui"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	size       int
	coupling   float64
	freqMin    float64
	freqMax    float64
	configFile string
	preset     string
	frameRate  int
	live       bool
	noSave     bool
	threshold  float64
	useCompute bool
	sound      bool
	svgOut     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "firesync",
		Short: "firefly synchronization lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive TUI when no command given
			return tui.RunInteractive(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".firesync", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a swarm simulation",
		RunE:  runSimulation,
	}
	addSwarmFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "render the swarm while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for live rendering")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")
	runCmd.Flags().Float64Var(&threshold, "threshold", 0.95, "order parameter threshold for sync time")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.RunInteractive(cfg)
		},
	}
	addSwarmFlags(tuiCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "graphical swarm view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg, useCompute, sound)
		},
	}
	addSwarmFlags(guiCmd)
	guiCmd.Flags().BoolVar(&useCompute, "compute", false, "run coupling on the gpu")
	guiCmd.Flags().BoolVar(&sound, "sound", false, "sonify swarm coherence")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's order parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and onset analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&threshold, "threshold", 0.95, "order parameter threshold for onset")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run's trajectories as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-12s n=%-4d k=%-5.2f freq=[%.1f, %.1f]\n",
					name, p.Swarm.Size, p.Swarm.Coupling, p.Swarm.FreqMin, p.Swarm.FreqMax)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, tuiCmd, guiCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addSwarmFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (0 = until interrupted)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = wall clock)")
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "number of fireflies")
	cmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "coupling strength")
	cmd.Flags().Float64Var(&freqMin, "freq-min", config.DefaultFreqMin, "minimum natural frequency")
	cmd.Flags().Float64Var(&freqMax, "freq-max", config.DefaultFreqMax, "maximum natural frequency")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
}

// resolveConfig layers defaults, preset, config file, then CLI flags, so
// an explicit flag always wins.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("size") {
		cfg.Swarm.Size = size
	}
	if flags.Changed("coupling") {
		cfg.Swarm.Coupling = coupling
	}
	if flags.Changed("freq-min") {
		cfg.Swarm.FreqMin = freqMin
	}
	if flags.Changed("freq-max") {
		cfg.Swarm.FreqMax = freqMax
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	params := cfg.SwarmParams()
	ens, err := swarm.New(params)
	if err != nil {
		return err
	}

	rec := storage.NewRecorder(cfg.Dt)
	ms := []metrics.Metric{
		metrics.NewOrder(),
		metrics.NewSyncTime(threshold),
		metrics.NewMeanFrequency(),
	}

	frames := []driver.FrameFunc{rec.Frame(), metrics.Frame(cfg.Dt, ms...)}
	if live {
		renderer := tui.NewLiveRenderer(cfg.FrameRate, cfg.Dt)
		frames = append(frames, renderer.Frame())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d fireflies, k=%.2f...\n", params.Size, params.Coupling)
	start := time.Now()

	result, err := driver.New().Run(ctx, ens, chainFrames(frames...), cfg.DriverConfig(live))
	if result == nil {
		return err
	}
	if err != nil && result.Status != driver.StatusCancelled {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("%s in %v\n", result.Status, elapsed)
	fmt.Printf("ticks: %d (%.2fs simulated)\n", result.Ticks, result.SimTime)
	fmt.Println("\nmetrics:")
	for name, val := range metrics.Collect(ms) {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Seed:     params.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Size:     params.Size,
		Coupling: params.Coupling,
		FreqMin:  params.FreqMin,
		FreqMax:  params.FreqMax,
		Ticks:    result.Ticks,
		Status:   result.Status.String(),
		Metrics:  metrics.Collect(ms),
	}
	runID, err := st.Save(meta, rec)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func chainFrames(fns ...driver.FrameFunc) driver.FrameFunc {
	return func(e *swarm.Ensemble) error {
		for _, fn := range fns {
			if err := fn(e); err != nil {
				return err
			}
		}
		return nil
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("no runs found")
			return nil
		}
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tCOUPLING\tDURATION\tDT\tSTATUS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Coupling,
			run.Duration,
			run.Dt,
			run.Status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, frames, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("fireflies: %d, k=%.2f\n", meta.Size, meta.Coupling)
	fmt.Printf("samples: %d\n\n", len(frames))

	series := orderSeries(frames)
	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("order parameter vs time"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, frames, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("fireflies: %d, k=%.2f\n\n", meta.Size, meta.Coupling)

	series := orderSeries(frames)

	ps := analysis.PowerSpectrum(series)
	plotData := ps[:len(ps)/4]
	if len(plotData) > 1 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (order parameter)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(series, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	onset := analysis.SyncOnset(series, threshold)
	if onset < 0 {
		fmt.Printf("swarm never reached r >= %.2f\n", threshold)
	} else {
		fmt.Printf("sync onset: t=%.2fs (r >= %.2f from there on)\n", times[onset], threshold)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, frames, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, times, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	_, frames, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	svg := export.TrajectoriesToSVG(frames, 800, 600)
	if svg == "" {
		return fmt.Errorf("not enough data to draw trajectories")
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

// orderSeries recomputes the order parameter per frame from stored
// phases.
func orderSeries(frames [][]swarm.Oscillator) []float64 {
	series := make([]float64, len(frames))
	for fi, frame := range frames {
		var sumCos, sumSin float64
		for _, o := range frame {
			sumCos += math.Cos(o.Phase)
			sumSin += math.Sin(o.Phase)
		}
		n := float64(len(frame))
		series[fi] = math.Hypot(sumCos, sumSin) / n
	}
	return series
}
