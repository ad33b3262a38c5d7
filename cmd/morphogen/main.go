package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/morphogen/internal/analysis"
	"github.com/san-kum/morphogen/internal/config"
	"github.com/san-kum/morphogen/internal/integrators"
	"github.com/san-kum/morphogen/internal/kinetics"
	"github.com/san-kum/morphogen/internal/metrics"
	"github.com/san-kum/morphogen/internal/reaction"
	"github.com/san-kum/morphogen/internal/ring"
	"github.com/san-kum/morphogen/internal/storage"
	"github.com/san-kum/morphogen/internal/viz"
)

var (
	dataDir    string
	cells      int
	coefA      float64
	coefB      float64
	coefC      float64
	coefD      float64
	mu         float64
	nu         float64
	profile    string
	amplitude  float64
	wavenumber int
	seed       int64
	dt         float64
	duration   float64
	at         float64
	integrator string
	configFile string
	preset     string
	storeRun   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "morphogen",
		Short: "reaction-diffusion lab for rings of cells",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".morphogen", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the ring in closed form and print the profile",
		RunE:  runSolve,
	}
	addParamFlags(solveCmd)
	solveCmd.Flags().Float64Var(&at, "at", -1, "query time (defaults to duration)")
	solveCmd.Flags().BoolVar(&storeRun, "store", false, "store sampled trajectory")

	integrateCmd := &cobra.Command{
		Use:   "integrate",
		Short: "integrate the ring numerically and compare with the closed form",
		RunE:  runIntegrate,
	}
	addParamFlags(integrateCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "print per-mode growth rates and behaviour classes",
		RunE:  runAnalyze,
	}
	addParamFlags(analyzeCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the closed-form solution",
		RunE:  runLive,
	}
	addParamFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		RunE:  listPresetsCmd,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(solveCmd, integrateCmd, analyzeCmd, liveCmd, presetsCmd, listCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cells, "cells", config.DefaultCells, "number of cells on the ring")
	cmd.Flags().Float64Var(&coefA, "a", 0.5, "X production from X")
	cmd.Flags().Float64Var(&coefB, "b", -1.0, "X production from Y")
	cmd.Flags().Float64Var(&coefC, "c", 1.0, "Y production from X")
	cmd.Flags().Float64Var(&coefD, "d", -0.5, "Y production from Y")
	cmd.Flags().Float64Var(&mu, "mu", 0.25, "X diffusion coefficient")
	cmd.Flags().Float64Var(&nu, "nu", 0.5, "Y diffusion coefficient")
	cmd.Flags().StringVar(&profile, "profile", "cosine", "initial profile (uniform|spike|cosine|random)")
	cmd.Flags().Float64Var(&amplitude, "amplitude", config.DefaultAmplitude, "initial perturbation amplitude")
	cmd.Flags().IntVar(&wavenumber, "wavenumber", 1, "cosine profile wavenumber")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random profile seed")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep / sampling interval")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler|rk4|rk45)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig assembles the effective configuration: file or preset first,
// then explicit flag overrides.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (try 'morphogen presets')", preset)
		}
		clone := *p
		cfg = &clone
	}

	flags := cmd.Flags()
	if flags.Changed("cells") {
		cfg.Cells = cells
	}
	if flags.Changed("a") {
		cfg.A = coefA
	}
	if flags.Changed("b") {
		cfg.B = coefB
	}
	if flags.Changed("c") {
		cfg.C = coefC
	}
	if flags.Changed("d") {
		cfg.D = coefD
	}
	if flags.Changed("mu") {
		cfg.Mu = mu
	}
	if flags.Changed("nu") {
		cfg.Nu = nu
	}
	if flags.Changed("profile") {
		cfg.Profile = profile
	}
	if flags.Changed("amplitude") {
		cfg.Amplitude = amplitude
	}
	if flags.Changed("wavenumber") {
		cfg.Wavenumber = wavenumber
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	return cfg, nil
}

func buildSolver(cfg *config.Config) (*ring.Solver, ring.Params, error) {
	p := ring.Params{A: cfg.A, B: cfg.B, C: cfg.C, D: cfg.D, Mu: cfg.Mu, Nu: cfg.Nu}

	x0, y0, err := cfg.GetInitProfiles()
	if err != nil {
		return nil, p, err
	}

	s, err := ring.New(cfg.Cells, p, x0, y0)
	return s, p, err
}

func pickIntegrator(name string) (kinetics.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4", "":
		return integrators.NewRK4(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q", name)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	solver, p, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	queryTime := cfg.Duration
	if at >= 0 && cmd.Flags().Changed("at") {
		queryTime = at
	}

	prof, err := solver.Evaluate(queryTime)
	if err != nil {
		return err
	}

	fmt.Println(viz.ProfileSketch(prof, 8, fmt.Sprintf("t=%.3f", queryTime)))

	d := analysis.Dispersion(p, cfg.Cells)
	dom := d.Dominant()
	fmt.Printf("\ndominant: mode %d (%s), growth %.4f%+.4fi\n",
		dom.Mode, dom.Class, real(dom.Rate), imag(dom.Rate))

	if !storeRun {
		return nil
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	times, profiles, err := sampleTrajectory(solver, cfg.Duration, cfg.Dt)
	if err != nil {
		return err
	}

	name := preset
	if name == "" {
		name = "ring"
	}
	runID, err := store.Save(storage.RunMetadata{
		Name:      name,
		Cells:     cfg.Cells,
		Params:    p,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		MaxGrowth: solver.MaxGrowth(),
		Dominant:  dom.Class.String(),
	}, times, profiles)
	if err != nil {
		return err
	}

	fmt.Printf("stored run %s\n", runID)
	return nil
}

// sampleTrajectory queries the solver on a uniform grid, capping the number
// of rows so long runs do not produce unbounded CSV files.
func sampleTrajectory(solver *ring.Solver, duration, dt float64) ([]float64, []ring.Profile, error) {
	const maxSamples = 1000

	steps := int(duration / dt)
	if steps > maxSamples {
		steps = maxSamples
	}
	if steps < 1 {
		steps = 1
	}
	sampleDt := duration / float64(steps)

	times := make([]float64, 0, steps+1)
	profiles := make([]ring.Profile, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) * sampleDt
		prof, err := solver.Evaluate(t)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		profiles = append(profiles, prof)
	}
	return times, profiles, nil
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	solver, p, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	lattice := reaction.NewRingLattice(cfg.Cells)
	lattice.A, lattice.B, lattice.C, lattice.D = p.A, p.B, p.C, p.D
	lattice.Mu, lattice.Nu = p.Mu, p.Nu

	x0, y0, err := cfg.GetInitProfiles()
	if err != nil {
		return err
	}
	state := make(kinetics.State, 2*cfg.Cells)
	copy(state[:cfg.Cells], x0)
	copy(state[cfg.Cells:], y0)

	integ, err := pickIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	runner := kinetics.NewRunner(lattice, integ)
	runner.AddMetric(metrics.NewAmplitude(cfg.Cells))
	runner.AddMetric(metrics.NewStability(1e6))

	result, err := runner.Run(context.Background(), state, kinetics.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	final := result.States[len(result.States)-1]
	finalTime := result.Times[len(result.Times)-1]

	prof, err := solver.Evaluate(finalTime)
	if err != nil {
		return err
	}

	maxDev := 0.0
	for r := 0; r < cfg.Cells; r++ {
		if dev := abs(final[r] - prof.X[r]); dev > maxDev {
			maxDev = dev
		}
		if dev := abs(final[cfg.Cells+r] - prof.Y[r]); dev > maxDev {
			maxDev = dev
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tFINAL T\tMAX DEV\tAMPLITUDE\tSTABILITY\tTOTAL DRIFT")
	fmt.Fprintf(w, "%d\t%.4f\t%.3e\t%.4f\t%.3f\t%.3e\n",
		result.StepsTaken,
		finalTime,
		maxDev,
		result.Metrics["amplitude"],
		result.Metrics["stability"],
		result.TotalDrift,
	)
	if err := w.Flush(); err != nil {
		return err
	}

	series := make([]float64, len(result.States))
	for i, s := range result.States {
		series[i] = s[0]
	}
	fmt.Println()
	fmt.Println(viz.SeriesSketch(series, 8, "cell 0 X concentration over time"))
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p := ring.Params{A: cfg.A, B: cfg.B, C: cfg.C, D: cfg.D, Mu: cfg.Mu, Nu: cfg.Nu}
	d := analysis.Dispersion(p, cfg.Cells)
	if d == nil {
		return fmt.Errorf("invalid cell count %d", cfg.Cells)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tRE(P)\tIM(P)\tCLASS")
	for _, m := range d.Modes {
		fmt.Fprintf(w, "%d\t%+.4f\t%+.4f\t%s\n", m.Mode, real(m.Rate), imag(m.Rate), m.Class)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	dom := d.Dominant()
	fmt.Printf("\ndominant: mode %d (%s)\n", dom.Mode, dom.Class)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	solver, _, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	return viz.RunLive(solver, cfg.Dt)
}

func listPresetsCmd(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCELLS\tA\tB\tC\tD\tMU\tNU\tPROFILE")
	for _, name := range names {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%g\t%g\t%g\t%g\t%s\n",
			name, p.Cells, p.A, p.B, p.C, p.D, p.Mu, p.Nu, p.Profile)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)

	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tCELLS\tDURATION\tDOMINANT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Cells,
			run.Duration,
			run.Dominant,
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	return store.Export(args[0], os.Stdout)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
