package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/skalas/pidlab/internal/config"
	"github.com/skalas/pidlab/internal/export"
	"github.com/skalas/pidlab/internal/metrics"
	"github.com/skalas/pidlab/internal/pid"
	"github.com/skalas/pidlab/internal/sim"
	"github.com/skalas/pidlab/internal/store"
	"github.com/skalas/pidlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	kp       float64
	ki       float64
	kd       float64
	setpoint float64
	pv0      float64
	duration float64
	interval float64
	seed     int64
	actuator string
	// Config file and preset
	configFile string
	preset     string
	// Frame rate for live view
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pidlab",
		Short: "closed-loop pid controller lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pidlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a closed-loop simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&kp, "kp", config.DefaultPGain, "proportional gain")
	runCmd.Flags().Float64Var(&ki, "ki", config.DefaultIGain, "integral gain")
	runCmd.Flags().Float64Var(&kd, "kd", config.DefaultDGain, "derivative gain")
	runCmd.Flags().Float64Var(&setpoint, "setpoint", config.DefaultSetpoint, "target value")
	runCmd.Flags().Float64Var(&pv0, "pv0", 0.0, "initial process variable")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	runCmd.Flags().Float64Var(&interval, "interval", config.DefaultInterval, "loop interval in seconds")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&actuator, "actuator", "noisy", "plant model")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset tuning")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the loop with live visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&kp, "kp", config.DefaultPGain, "proportional gain")
	liveCmd.Flags().Float64Var(&ki, "ki", config.DefaultIGain, "integral gain")
	liveCmd.Flags().Float64Var(&kd, "kd", config.DefaultDGain, "derivative gain")
	liveCmd.Flags().Float64Var(&setpoint, "setpoint", config.DefaultSetpoint, "target value")
	liveCmd.Flags().Float64Var(&pv0, "pv0", 0.0, "initial process variable")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().StringVar(&actuator, "actuator", "noisy", "plant model")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "export run plot to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset tunings",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKP\tKI\tKD\tSETPOINT\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%gs\n",
					name, p.Gains.P, p.Gains.I, p.Gains.D, *p.Setpoint, p.Duration)
			}
			return w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, liveCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file and CLI flags into one
// config, CLI flags winning over the file, the file over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		// Copy so flag overrides don't mutate the preset table.
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("kp") {
		cfg.Gains.P = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.Gains.I = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.Gains.D = kd
	}
	if cmd.Flags().Changed("setpoint") {
		sp := setpoint
		cfg.Setpoint = &sp
	}
	if cmd.Flags().Changed("pv0") {
		cfg.InitialPV = pv0
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = interval
	}
	if cmd.Flags().Changed("actuator") {
		cfg.Actuator = actuator
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildController(cfg *config.Config) (*pid.Controller, error) {
	opts := []pid.Option{}
	if cfg.Setpoint != nil {
		opts = append(opts, pid.WithSetpoint(*cfg.Setpoint))
	}
	return pid.New(cfg.Gains.P, cfg.Gains.I, cfg.Gains.D, opts...)
}

func printRunHeader(cfg *config.Config) {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("gains: p=%g i=%g d=%g\n", cfg.Gains.P, cfg.Gains.I, cfg.Gains.D)
	if cfg.Setpoint != nil {
		fmt.Printf("setpoint: %g, initial pv: %g\n", *cfg.Setpoint, cfg.InitialPV)
	}
	fmt.Printf("duration: %gs, interval: %gs, actuator: %s, seed: %d\n",
		cfg.Duration, cfg.Interval, cfg.Actuator, cfg.Seed)
	fmt.Println(strings.Repeat("=", 80))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctrl, err := buildController(cfg)
	if err != nil {
		return err
	}

	act, err := sim.GetActuator(cfg.Actuator, cfg.Seed)
	if err != nil {
		return err
	}

	runner := sim.New(ctrl, act)
	runner.AddMetric(metrics.NewControlEffort())
	runner.AddMetric(metrics.NewSteadyStateError(0.2))
	if cfg.Setpoint != nil {
		runner.AddMetric(metrics.NewOvershoot(*cfg.Setpoint))
	}

	printRunHeader(cfg)
	fmt.Println("running simulation...")

	result, err := runner.Run(context.Background(), sim.Config{
		InitialPV: cfg.InitialPV,
		Duration:  cfg.Duration,
		Interval:  cfg.Interval,
	})
	if err != nil {
		return err
	}

	meta := store.RunMetadata{
		PGain:     cfg.Gains.P,
		IGain:     cfg.Gains.I,
		DGain:     cfg.Gains.D,
		InitialPV: cfg.InitialPV,
		Duration:  cfg.Duration,
		Interval:  cfg.Interval,
		Actuator:  cfg.Actuator,
		Seed:      cfg.Seed,
	}
	if cfg.Setpoint != nil {
		meta.Setpoint = *cfg.Setpoint
	}

	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Samples))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tKP\tKI\tKD\tSETPOINT\tDURATION\tACTUATOR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%.2fs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.PGain,
			run.IGain,
			run.DGain,
			run.Setpoint,
			run.Duration,
			run.Actuator,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("gains: p=%g i=%g d=%g, setpoint: %g\n", meta.PGain, meta.IGain, meta.DGain, meta.Setpoint)
	fmt.Printf("samples: %d\n\n", len(samples))

	fmt.Println(viz.Plot(samples, meta.Setpoint))
	fmt.Println()
	fmt.Println(viz.PlotOutput(samples))
	fmt.Println()
	fmt.Println(viz.PlotError(samples))

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	ctrl, err := pid.New(kp, ki, kd, pid.WithSetpoint(setpoint))
	if err != nil {
		return err
	}

	act, err := sim.GetActuator(actuator, seed)
	if err != nil {
		return err
	}

	m := viz.NewModel(ctrl, act, pv0, frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "pv", "output", "error"}); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.FormatFloat(s.ProcessVariable, 'f', 6, 64),
			strconv.FormatFloat(s.Output, 'f', 6, 64),
			strconv.FormatFloat(s.Error, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	svg := export.SVG(samples, meta.Setpoint, 800, 400)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	return os.WriteFile(args[1], []byte(svg), 0644)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	return store.ExportJSON(os.Stdout, meta, samples)
}
