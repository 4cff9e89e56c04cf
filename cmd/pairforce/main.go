package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pairforce/internal/config"
	"github.com/san-kum/pairforce/internal/experiment"
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/neighbor"
	"github.com/san-kum/pairforce/internal/potential"
	"github.com/san-kum/pairforce/internal/shape"
	"github.com/san-kum/pairforce/internal/storage"
	"github.com/san-kum/pairforce/internal/tabulated"
	"github.com/san-kum/pairforce/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	configFile    string
	preset        string
	dt            float64
	duration      float64
	temp          float64
	seed          int64
	bodies        int
	spacing       float64
	jitter        float64
	mode          string
	rcut          float64
	ron           float64
	coeffList     []string
	method        string
	skin          float64
	workers       int
	sampleEvery   int
	stepsPerFrame int
	// Curve sampling
	rmin    float64
	rmax    float64
	points  int
	diamI   float64
	diamJ   float64
	chargeI float64
	chargeJ float64
	// Table files
	tableWidth int
	genWidth   int
	genRMin    float64
	genRMax    float64
	outPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pairforce",
		Short: "short-range pair potential lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pairforce", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [potential]",
		Short: "run a simulation and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExperiment,
	}
	addSetupFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [potential]",
		Short: "run with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSetupFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps", 10, "integration steps per frame")

	curveCmd := &cobra.Command{
		Use:   "curve [potential]",
		Short: "plot the shaped energy and force of a family",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCurve,
	}
	curveCmd.Flags().StringArrayVar(&coeffList, "coeff", nil, "coefficient key=value (repeatable)")
	curveCmd.Flags().StringVar(&mode, "mode", "shift", "shaping mode (none, shift, xplor)")
	curveCmd.Flags().Float64Var(&rcut, "rcut", config.DefaultRCut, "cutoff radius")
	curveCmd.Flags().Float64Var(&ron, "ron", 0, "xplor onset radius")
	curveCmd.Flags().Float64Var(&rmin, "rmin", 0.8, "first sampled r")
	curveCmd.Flags().Float64Var(&rmax, "rmax", 0, "last sampled r (0: r_cut + 0.5)")
	curveCmd.Flags().IntVar(&points, "points", 120, "sample count")
	addPairInputFlags(curveCmd)

	potentialsCmd := &cobra.Command{
		Use:   "potentials",
		Short: "list the potential catalog",
		RunE:  listPotentials,
	}

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "tabulated potential files",
	}
	tableCheckCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "validate a table file",
		Args:  cobra.ExactArgs(1),
		RunE:  checkTable,
	}
	tableCheckCmd.Flags().IntVar(&tableWidth, "width", 0, "expected row count (0: accept any)")
	tableGenCmd := &cobra.Command{
		Use:   "gen [potential] [file]",
		Short: "tabulate a closed-form family into a file",
		Args:  cobra.ExactArgs(2),
		RunE:  genTable,
	}
	tableGenCmd.Flags().IntVar(&genWidth, "width", 1000, "grid width")
	tableGenCmd.Flags().Float64Var(&genRMin, "rmin", 0.5, "first grid point")
	tableGenCmd.Flags().Float64Var(&genRMax, "rmax", config.DefaultRCut, "last grid point")
	tableGenCmd.Flags().StringArrayVar(&coeffList, "coeff", nil, "coefficient key=value (repeatable)")
	addPairInputFlags(tableGenCmd)
	tableCmd.AddCommand(tableCheckCmd, tableGenCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench [potential]",
		Short: "time serial and parallel evaluation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchWorkers,
	}
	addSetupFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, curveCmd, potentialsCmd, tableCmd, listCmd, exportCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSetupFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (yaml)")
	f.StringVar(&preset, "preset", "", "named preset for the potential")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.Float64Var(&temp, "temp", 0, "initial temperature (0: cold start)")
	f.Int64Var(&seed, "seed", 0, "random seed")
	f.IntVar(&bodies, "n", config.DefaultBodies, "number of particles")
	f.Float64Var(&spacing, "spacing", config.DefaultSpacing, "lattice spacing")
	f.Float64Var(&jitter, "jitter", 0.05, "lattice jitter")
	f.StringVar(&mode, "mode", "shift", "shaping mode (none, shift, xplor)")
	f.Float64Var(&rcut, "rcut", config.DefaultRCut, "default cutoff radius")
	f.Float64Var(&ron, "ron", 0, "default xplor onset radius")
	f.StringArrayVar(&coeffList, "coeff", nil, "coefficient key=value for all pairs (repeatable)")
	f.StringVar(&method, "neighbor", "cells", "neighbor source (cells, brute)")
	f.Float64Var(&skin, "skin", config.DefaultSkin, "neighbor skin margin")
	f.IntVar(&workers, "workers", 0, "evaluation workers (0: all cpus)")
	f.IntVar(&sampleEvery, "sample-every", 10, "energy sampling stride")
}

func addPairInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&diamI, "di", 1.0, "diameter of particle i")
	f.Float64Var(&diamJ, "dj", 1.0, "diameter of particle j")
	f.Float64Var(&chargeI, "qi", 1.0, "charge of particle i")
	f.Float64Var(&chargeJ, "qj", 1.0, "charge of particle j")
}

// buildConfig resolves the run configuration: defaults, then preset, then
// config file, then explicit flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	family := ""
	if len(args) > 0 {
		family = args[0]
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		if family == "" {
			return nil, fmt.Errorf("--preset needs a potential name")
		}
		p := config.GetPreset(family, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %s for %s (available: %v)",
				preset, family, config.ListPresets(family))
		}
		c := *p
		cfg = &c
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if family != "" {
		cfg.Potential.Name = family
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Changed("temp") {
		cfg.Run.Temp = temp
	}
	if flags.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Run.Workers = workers
	}
	if flags.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if flags.Changed("n") {
		cfg.System.N = bodies
	}
	if flags.Changed("spacing") {
		cfg.System.Spacing = spacing
	}
	if flags.Changed("jitter") {
		cfg.System.Jitter = jitter
	}
	if flags.Changed("mode") {
		cfg.Potential.Mode = mode
	}
	if flags.Changed("rcut") {
		cfg.Potential.RCut = rcut
	}
	if flags.Changed("ron") {
		cfg.Potential.ROn = ron
	}
	if flags.Changed("neighbor") {
		cfg.Neighbor.Method = method
	}
	if flags.Changed("skin") {
		cfg.Neighbor.Skin = skin
	}
	if len(coeffList) > 0 {
		coeffs, err := parseCoeffs(coeffList)
		if err != nil {
			return nil, err
		}
		cfg.Potential.Pairs = []config.PairConfig{
			{A: cfg.System.Types, B: cfg.System.Types, Coeffs: coeffs},
		}
	}
	return cfg, nil
}

func parseCoeffs(list []string) (map[string]float64, error) {
	coeffs := make(map[string]float64, len(list))
	for _, kv := range list {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("coefficient %q is not key=value", kv)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("coefficient %q: %w", kv, err)
		}
		coeffs[strings.TrimSpace(key)] = x
	}
	return coeffs, nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%s), %d particles...\n",
		cfg.Potential.Name, exp.Force().Mode(), exp.System().N())
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Printf("neighbor rebuilds: %d\n", result.ListRebuilds)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	if cfg.Run.Temp > 0 {
		exp.System().Thermalize(cfg.Run.Temp, rand.New(rand.NewSource(cfg.Run.Seed)))
	}

	m, err := viz.NewModel(exp.Runner(), cfg.Run.Dt, stepsPerFrame)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

// curveForce builds a single-type instance of a family and attaches it to
// an empty system so per-pair evaluation works.
func curveForce(name string, m shape.Mode, rc, ro float64) (potential.Force, error) {
	entry, err := potential.Lookup(name)
	if err != nil {
		return nil, err
	}
	types, err := md.NewTypeSet("A")
	if err != nil {
		return nil, err
	}
	sys := md.NewSystem(types)
	f, err := entry.New(sys, m)
	if err != nil {
		return nil, err
	}
	coeffs, err := parseCoeffs(coeffList)
	if err != nil {
		return nil, err
	}
	if err := entry.SetCoeffs(f, []string{"A"}, []string{"A"}, coeffs); err != nil {
		return nil, err
	}
	cc, ok := f.(potential.CutoffConfigurable)
	if !ok {
		return nil, fmt.Errorf("potential %s does not accept cutoffs", name)
	}
	if err := cc.SetRCutDefault(rc); err != nil {
		return nil, err
	}
	if ro > 0 {
		if err := cc.SetROnDefault(ro); err != nil {
			return nil, err
		}
	}
	if err := f.Attach(neighbor.NewBruteForce(sys, 0)); err != nil {
		return nil, err
	}
	return f, nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	m, err := shape.Parse(mode)
	if err != nil {
		return err
	}
	f, err := curveForce(args[0], m, rcut, ron)
	if err != nil {
		return err
	}

	hi := rmax
	if hi <= 0 {
		hi = rcut + 0.5
	}
	if hi <= rmin {
		return fmt.Errorf("sampling range is empty: rmin %g, rmax %g", rmin, hi)
	}
	if points < 2 {
		return fmt.Errorf("need at least 2 points, got %d", points)
	}

	vData := make([]float64, points)
	fData := make([]float64, points)
	step := (hi - rmin) / float64(points-1)
	for i := 0; i < points; i++ {
		in := potential.Input{
			R:     rmin + float64(i)*step,
			DiamI: diamI, DiamJ: diamJ,
			ChargeI: chargeI, ChargeJ: chargeJ,
		}
		vData[i], fData[i] = f.EvalPair(0, 0, in)
	}

	fmt.Printf("%s (%s), r in [%g, %g], r_cut %g\n\n", f.Name(), f.Mode(), rmin, hi, rcut)
	fmt.Println(asciigraph.Plot(vData,
		asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("shaped energy")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(fData,
		asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("shaped force")))
	return nil
}

func listPotentials(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFIELDS\tMODES\tINPUTS\tPRESETS\tABOUT")
	for _, e := range potential.Catalog() {
		fields := make([]string, len(e.Fields))
		for i, fs := range e.Fields {
			fields[i] = fs.String()
		}
		modes := "none shift"
		if e.Caps.Smoothing {
			modes += " xplor"
		}
		inputs := "r"
		if e.Caps.Diameter {
			inputs += ",d"
		}
		if e.Caps.Charge {
			inputs += ",q"
		}
		presets := strings.Join(config.ListPresets(e.Name), ",")
		if presets == "" {
			presets = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Name, strings.Join(fields, " "), modes, inputs, presets, e.About)
	}
	fmt.Fprintln(w, "table\t(from file)\tnone shift xplor\tr\t-\tinterpolated V/F grid, see 'pairforce table'")
	return w.Flush()
}

func checkTable(cmd *cobra.Command, args []string) error {
	path := args[0]
	width := tableWidth
	if width == 0 {
		n, err := countRows(path)
		if err != nil {
			return err
		}
		width = n
	}

	g, err := tabulated.FromFile(path, width)
	if err != nil {
		return err
	}

	fmt.Printf("table ok: %s\n", path)
	fmt.Printf("  rows: %d\n", g.Width())
	fmt.Printf("  r: [%g, %g], dr %g\n", g.RMin, g.RMax, g.Dr())
	if v := g.V[len(g.V)-1]; v != 0 {
		fmt.Printf("warning: V(r_max) = %g; energies jump at the cutoff unless shifted\n", v)
	}
	return nil
}

func countRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		n++
	}
	return n, sc.Err()
}

func genTable(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]
	if genRMax <= genRMin {
		return fmt.Errorf("need rmax > rmin, got [%g, %g]", genRMin, genRMax)
	}

	// Unshaped values with the cutoff pushed past the grid, so the file
	// holds the raw kernel; shaping is applied by whoever loads it.
	f, err := curveForce(name, shape.None, 2*genRMax, 0)
	if err != nil {
		return err
	}
	g, err := tabulated.FromFunc(genWidth, genRMin, genRMax, func(r float64) (float64, float64) {
		return f.EvalPair(0, 0, potential.Input{
			R:     r,
			DiamI: diamI, DiamJ: diamJ,
			ChargeI: chargeI, ChargeJ: chargeJ,
		})
	})
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := g.WriteTable(out); err != nil {
		return err
	}

	fmt.Printf("wrote %s: %d rows, r [%g, %g]\n", path, g.Width(), g.RMin, g.RMax)
	return nil
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
	fmt.Fprintln(w, "ID\tPOTENTIAL\tMODE\tTIME\tN\tSTEPS\tDT\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.4g\t%.2e\n",
			run.ID, run.Potential, run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles, run.StepsTaken, run.Dt, run.EnergyDrift)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := storage.ExportJSON(outPath, meta, series); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
		return nil
	}
	return storage.ExportJSONStdout(meta, series)
}

func benchWorkers(cmd *cobra.Command, args []string) error {
	sizes := []int{64, 216, 512}
	counts := []int{1, runtime.NumCPU()}

	base, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s (dt=%g, time=%g)\n\n",
		base.Potential.Name, base.Run.Dt, base.Run.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tWORKERS\tSTEPS\tTIME\tSTEPS/SEC\tDRIFT")

	for _, n := range sizes {
		for _, nw := range counts {
			cfg := *base
			cfg.System.N = n
			cfg.Run.Workers = nw

			exp, err := experiment.New(&cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\t%.2e\n",
				n, nw, result.StepsTaken, elapsed.Round(time.Millisecond),
				stepsPerSec, result.EnergyDrift)
		}
	}
	return w.Flush()
}
