package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/qwave/internal/analysis"
	"github.com/san-kum/qwave/internal/config"
	"github.com/san-kum/qwave/internal/experiment"
	"github.com/san-kum/qwave/internal/export"
	"github.com/san-kum/qwave/internal/integrators"
	"github.com/san-kum/qwave/internal/metrics"
	"github.com/san-kum/qwave/internal/potentials"
	"github.com/san-kum/qwave/internal/sim"
	"github.com/san-kum/qwave/internal/viz"
	"github.com/san-kum/qwave/internal/wavefunctions"
)

var (
	verbose    bool
	configFile string
	preset     string

	gridN         int
	length        float64
	dt            float64
	mass          float64
	method        string
	frames        int
	stepsPerFrame int
	infAt         float64
	noTruncate    bool
	potential     string
	wavefunction  string
	potParams     map[string]string
	wfParams      map[string]string

	snapshotPath string
	svgPath      string
	tolerance    float64

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qwave",
		Short: "1d quantum wavefunction simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// the interactive view owns the terminal
			if cmd.CalledAs() == "qwave" {
				logger = zap.NewNop()
				return nil
			}
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(experiment.NewRegistry())
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print a summary",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write the final state as JSON (- for stdout)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final state as SVG")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	groundCmd := &cobra.Command{
		Use:   "ground",
		Short: "relax to the ground state",
		RunE:  findGround,
	}
	addSimFlags(groundCmd)
	groundCmd.Flags().Float64Var(&tolerance, "tol", 1e-9, "stop when the relative energy change per frame falls below this")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file]",
		Short: "run a simulation and export the final state as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeSnapshot,
	}
	addSimFlags(snapshotCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [method1] [method2] ...",
		Short: "compare methods on the same initial state",
		RunE:  compareMethods,
	}
	addSimFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integration methods",
		RunE:  benchMethods,
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		Run: func(cmd *cobra.Command, args []string) {
			for _, m := range integrators.All() {
				fmt.Println(m.String())
			}
		},
	}

	potentialsCmd := &cobra.Command{
		Use:   "potentials",
		Short: "list potentials and their default parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCatalog(potentials.Names(), potentials.DefaultParams)
		},
	}

	wavefunctionsCmd := &cobra.Command{
		Use:   "wavefunctions",
		Short: "list initial wavefunctions and their default parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCatalog(wavefunctions.Names(), wavefunctions.DefaultParams)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [potential]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := config.PresetGroups()
			if len(args) == 1 {
				groups = args
			}
			for _, g := range groups {
				presets := config.ListPresets(g)
				if len(presets) == 0 {
					fmt.Printf("no presets for potential: %s\n", g)
					continue
				}
				fmt.Printf("presets for %s:\n", g)
				for _, p := range presets {
					cfg := config.GetPreset(g, p)
					fmt.Printf("  %s/%s  (%s, %s)\n", g, p, cfg.Method, cfg.Wavefunction.Kind)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, groundCmd, snapshotCmd, compareCmd, benchCmd, methodsCmd, potentialsCmd, wavefunctionsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Debug("command failed", zap.String("trace", fmt.Sprintf("%+v", err)))
		}
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset as potential/name")
	cmd.Flags().IntVar(&gridN, "n", config.DefaultN, "grid points")
	cmd.Flags().Float64Var(&length, "length", config.DefaultL, "domain length")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass")
	cmd.Flags().StringVar(&method, "method", integrators.ReImLeapfrog.String(), "integration method")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	cmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", config.DefaultStepsPerFrame, "steps per frame")
	cmd.Flags().Float64Var(&infAt, "inf-at", config.DefaultInfAt, "potential truncation threshold")
	cmd.Flags().BoolVar(&noTruncate, "no-truncate", false, "disable potential truncation")
	cmd.Flags().StringVar(&potential, "potential", "infinite_square_well", "potential kind")
	cmd.Flags().StringVar(&wavefunction, "wavefunction", "wavepacket", "initial wavefunction kind")
	cmd.Flags().StringToStringVar(&potParams, "pot", nil, "potential parameters (k=50,a=0.45)")
	cmd.Flags().StringToStringVar(&wfParams, "wf", nil, "wavefunction parameters (sigma=0.1,momentum=10)")
}

// resolveConfig layers defaults, preset, config file and changed flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		group, name, _ := strings.Cut(preset, "/")
		p := config.GetPreset(group, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available for %s: %v)", preset, group, config.ListPresets(group))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		cfg.N = gridN
	}
	if flags.Changed("length") {
		cfg.L = length
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("steps-per-frame") {
		cfg.StepsPerFrame = stepsPerFrame
	}
	if flags.Changed("inf-at") {
		cfg.InfAt = sim.Float(infAt)
	}
	if noTruncate {
		cfg.InfAt = nil
	}
	if flags.Changed("potential") {
		cfg.Potential = config.GeneratorConfig{Kind: potential}
	}
	if flags.Changed("wavefunction") {
		cfg.Wavefunction = config.GeneratorConfig{Kind: wavefunction}
	}
	if err := mergeParams(&cfg.Potential, potParams); err != nil {
		return nil, err
	}
	if err := mergeParams(&cfg.Wavefunction, wfParams); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeParams(g *config.GeneratorConfig, raw map[string]string) error {
	if len(raw) == 0 {
		return nil
	}
	if g.Params == nil {
		g.Params = make(map[string]float64, len(raw))
	}
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s parameter %s: %w", g.Kind, k, err)
		}
		g.Params[k] = f
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, nil, logger)
	if err != nil {
		return err
	}
	portrait := analysis.NewPortrait(cfg.StepsPerFrame)
	exp.Engine().AddObserver(portrait)
	exp.Setup(nil, nil)

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s on %s (N=%d, %d frames × %d steps)...\n",
		cfg.Method, cfg.Potential.Kind, cfg.N, cfg.Frames, cfg.StepsPerFrame)
	start := time.Now()
	result, err := exp.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	e := exp.Engine()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", e.Steps())
	terms := e.EnergyTerms()
	fmt.Printf("energy: %.8g (kinetic %.6g, potential %.6g)\n", terms.Total, terms.Kinetic, terms.Potential)

	psi := e.Wavefunction()
	x := e.Positions()
	fmt.Printf("<x>: %.6g  spread: %.6g  <p>: %.6g\n",
		analysis.PositionMean(psi, x), analysis.PositionSpread(psi, x), analysis.Momentum(psi, e.Grid().Length()).Mean())
	if f := analysis.DominantFrequency(portrait.Xs(), float64(cfg.StepsPerFrame)*cfg.Dt); f > 0 {
		fmt.Printf("<x> oscillation: %.6g cycles per unit time\n", f)
	}

	fmt.Println("\nmetrics:")
	for _, m := range metrics.Defaults() {
		fmt.Printf("  %s: %.6g\n", m.Name(), result.Metrics[m.Name()])
	}

	if len(result.Energies) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Energies, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("energy per frame")))
	}

	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{psi.Abs(), psi.Real()}, asciigraph.Height(12), asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.White, asciigraph.Red), asciigraph.Caption("|ψ| and Re ψ")))

	snap := export.Capture(e)
	if snapshotPath == "-" {
		if err := export.ExportJSONStdout(snap); err != nil {
			return err
		}
	} else if snapshotPath != "" {
		if err := export.ExportJSON(snapshotPath, snap); err != nil {
			return err
		}
		fmt.Printf("snapshot: %s\n", snapshotPath)
	}
	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.SnapshotToSVG(snap, 800, 400)), 0644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgPath)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	engine, err := experiment.Build(cfg, registry)
	if err != nil {
		return err
	}
	return viz.Run(engine, cfg, registry)
}

func findGround(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("method") && cfg.Method != integrators.GroundStateKrylov.String() {
		cfg.Method = integrators.GroundStateRelaxation.String()
	}

	exp, err := experiment.New(cfg, nil, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	prev, converged := 0.0, false
	exp.Setup(nil, func(f experiment.Frame, _ *sim.Engine) {
		if f.Index > 0 && math.Abs(f.Energy-prev) <= tolerance*max(1, math.Abs(f.Energy)) {
			converged = true
			cancel()
		}
		prev = f.Energy
	})

	result, err := exp.Run(ctx)
	if err != nil && !converged {
		return err
	}

	e := exp.Engine()
	if converged {
		fmt.Printf("converged after %d steps\n", e.Steps())
	} else {
		fmt.Printf("not converged after %d steps\n", e.Steps())
	}
	fmt.Printf("method: %s\n", e.Method())
	fmt.Printf("ground state energy: %.10g\n", e.Energy())
	if len(result.Energies) > 1 {
		fmt.Println(asciigraph.Plot(result.Energies, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("energy per frame")))
	}
	fmt.Println(asciigraph.Plot(e.Wavefunction().Density(), asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("|ψ|²")))
	return nil
}

func writeSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, nil, logger)
	if err != nil {
		return err
	}
	exp.Setup([]metrics.Metric{}, nil)

	ctx, cancel := signalContext()
	defer cancel()
	if _, err := exp.Run(ctx); err != nil {
		return err
	}

	snap := export.Capture(exp.Engine())
	if len(args) == 0 || args[0] == "-" {
		return export.ExportJSONStdout(snap)
	}
	if err := export.ExportJSON(args[0], snap); err != nil {
		return err
	}
	fmt.Printf("snapshot: %s (step %d)\n", args[0], snap.Step)
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	fmt.Printf("comparing methods on %s (N=%d, dt=%g, %d steps)\n\n", cfg.Potential.Kind, cfg.N, cfg.Dt, cfg.Frames*cfg.StepsPerFrame)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tENERGY\tENERGY_DRIFT\tNORM_DRIFT\tTIME")

	for _, name := range names {
		run := cfg.Clone()
		run.Method = name
		exp, err := experiment.New(run, nil, logger)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		exp.Setup(nil, nil)

		start := time.Now()
		result, err := exp.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.8g\t%.2e\t%.2e\t%v\n", name, exp.Engine().Energy(),
			result.Metrics["energy_drift"], result.Metrics["norm_drift"], elapsed.Round(time.Microsecond))
	}
	return w.Flush()
}

func benchMethods(cmd *cobra.Command, args []string) error {
	sizes := []int{64, 256, 1024}
	const steps = 1000

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tN\tSTEPS\tTIME\tSTEPS/SEC")

	for _, m := range integrators.All() {
		for _, n := range sizes {
			cfg := config.DefaultConfig()
			cfg.N = n
			cfg.Method = m.String()
			engine, err := experiment.Build(cfg, experiment.NewRegistry())
			if err != nil {
				return err
			}

			start := time.Now()
			if err := engine.Advance(steps); err != nil {
				fmt.Fprintf(w, "%s\t%d\terror: %v\n", m, n, err)
				continue
			}
			elapsed := time.Since(start)
			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n", m, n, steps, elapsed, float64(steps)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func printCatalog(names []string, defaults func(string) (map[string]float64, error)) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARAMETERS")
	for _, name := range names {
		params, err := defaults(name)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%g", k, params[k])
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(parts, ","))
	}
	return w.Flush()
}
