package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/classify"
	"github.com/san-kum/stellarsim/internal/config"
	"github.com/san-kum/stellarsim/internal/evolution"
	"github.com/san-kum/stellarsim/internal/export"
	"github.com/san-kum/stellarsim/internal/integrators"
	"github.com/san-kum/stellarsim/internal/metrics"
	"github.com/san-kum/stellarsim/internal/player"
	"github.com/san-kum/stellarsim/internal/storage"
	"github.com/san-kum/stellarsim/internal/structure"
	"github.com/san-kum/stellarsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	preset     string

	msSteps     int
	postMSSteps int
	noSave      bool

	atAge      float64
	atFraction float64

	svgOut     string
	svgCurrent int

	integrator string
	rtol       float64
	atol       float64
	maxSteps   int
	showProf   bool
	params     map[string]string

	runID string
	theme string

	logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stellarsim",
		Short: "stellar structure and evolution simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// the player owns the terminal; stderr logs would tear the screen
			if cmd.Name() == "play" || cmd.Name() == "stellarsim" {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		Args: cobra.MaximumNArgs(1),
		RunE: runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use a preset star")

	trackCmd := &cobra.Command{
		Use:   "track [mass]",
		Short: "compute an evolution track and save it as a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrack,
	}
	trackCmd.Flags().IntVar(&msSteps, "ms-steps", 0, "main sequence models (default from config)")
	trackCmd.Flags().IntVar(&postMSSteps, "post-ms-steps", 0, "post main sequence models (default from config)")
	trackCmd.Flags().BoolVar(&noSave, "no-save", false, "print the summary without saving")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot luminosity and temperature of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	atCmd := &cobra.Command{
		Use:   "at [run_id]",
		Short: "model of a run at an age or time position",
		Args:  cobra.ExactArgs(1),
		RunE:  modelAt,
	}
	atCmd.Flags().Float64Var(&atAge, "age", -1, "age in years (interpolated)")
	atCmd.Flags().Float64Var(&atFraction, "fraction", -1, "time position in [0, 1]")
	atCmd.MarkFlagsMutuallyExclusive("age", "fraction")
	atCmd.MarkFlagsOneRequired("age", "fraction")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "remove a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [path]",
		Short: "write the track of a run as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportRun,
	}

	importCmd := &cobra.Command{
		Use:   "import [path]",
		Short: "validate a track document and save it as a run",
		Args:  cobra.ExactArgs(1),
		RunE:  importTrack,
	}

	hrCmd := &cobra.Command{
		Use:   "hr [run_id]",
		Short: "render the HR diagram of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderHR,
	}
	hrCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default hr_<run_id>.svg)")
	hrCmd.Flags().IntVar(&svgCurrent, "current", -1, "model index to highlight")

	structureCmd := &cobra.Command{
		Use:   "structure [mass]",
		Short: "integrate the stellar structure equations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStructure,
	}
	structureCmd.Flags().StringVar(&integrator, "integrator", "", fmt.Sprintf("stepper %v", integrators.Names()))
	structureCmd.Flags().Float64Var(&rtol, "rtol", 0, "relative tolerance")
	structureCmd.Flags().Float64Var(&atol, "atol", 0, "absolute tolerance")
	structureCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step budget")
	structureCmd.Flags().BoolVar(&showProf, "profile", false, "plot the temperature profile")
	structureCmd.Flags().StringToStringVar(&params, "param", nil, "structure parameter override, e.g. gamma=1.4 (x, y, z, gamma)")

	compareCmd := &cobra.Command{
		Use:   "compare [mass...]",
		Short: "compute tracks for several masses in parallel",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareMasses,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset stars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMASS\tCOMPOSITION\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.1f M☉\t%s\t%s\n", name, p.Mass, p.Composition, p.Description)
			}
			return w.Flush()
		},
	}

	phasesCmd := &cobra.Command{
		Use:   "phases",
		Short: "list evolutionary phases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PHASE\tEND STATE")
			for _, ph := range evolution.Phases() {
				end := "no"
				if ph.Remnant() {
					end = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\n", ph, end)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	constantsCmd := &cobra.Command{
		Use:   "constants",
		Short: "print physical constants",
		Args:  cobra.NoArgs,
		Run:   func(cmd *cobra.Command, args []string) { printConstants() },
	}

	playCmd := &cobra.Command{
		Use:   "play [mass]",
		Short: "interactive track player",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().StringVar(&runID, "run", "", "play a saved run instead of computing")
		c.Flags().StringVar(&theme, "theme", "", fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	}

	rootCmd.AddCommand(trackCmd, listCmd, showCmd, atCmd, deleteCmd, exportCmd, importCmd, hrCmd,
		structureCmd, compareCmd, presetsCmd, phasesCmd, initCmd, constantsCmd, playCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config file, the preset and STELLARSIM_*
// overrides, then the mass argument and flags.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Mass, cfg.Composition = p.Mass, p.Composition
	}
	if len(args) > 0 {
		m, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid mass %q: %w", args[0], err)
		}
		cfg.Mass = m
	}
	if err := config.CheckMass(cfg.Mass); err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if f := cmd.Flags().Lookup("ms-steps"); f != nil && f.Changed {
		cfg.Steps.MainSequence = msSteps
	}
	if f := cmd.Flags().Lookup("post-ms-steps"); f != nil && f.Changed {
		cfg.Steps.PostMainSequence = postMSSteps
	}
	return cfg, nil
}

func openStore() (*storage.Store, error) {
	dir := dataDir
	if dir == "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		dir = cfg.DataDir
	}
	st := storage.New(dir, logger)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func printSummary(track *evolution.Track) map[string]float64 {
	fmt.Printf("initial mass: %.2f M☉  (%s)\n", track.InitialMass(), track.Composition())
	fmt.Printf("models: %d\n", track.Len())
	if last, ok := track.Last(); ok {
		fmt.Printf("final: %s\n", last)
	}

	fmt.Println("\nphases:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range track.PhaseSpans() {
		fmt.Fprintf(w, "  %s\t%d models\t%.4g Gyr\n", s.Phase, s.Models, astro.Years(s.Duration())/1e9)
	}
	w.Flush()

	fmt.Println("\nmetrics:")
	out := make(map[string]float64)
	for _, r := range metrics.Summarize(track) {
		fmt.Printf("  %s: %.6g\n", r.Name, r.Value)
		out[r.Name] = r.Value
	}
	return out
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	track := evolution.Compute(cfg.Mass, cfg.Composition, cfg.Steps, evolution.WithLogger(logger))
	fmt.Printf("computed in %v\n", time.Since(start))

	values := printSummary(track)
	if noSave {
		return nil
	}

	st := storage.New(cfg.DataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(track, storage.SaveInfo{Steps: cfg.Steps, Metrics: values})
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMASS\tTIME\tMODELS\tFINAL\tSOURCE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%d\t%s\t%s\n",
			run.ID,
			run.MassSolar,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Models,
			run.FinalPhase,
			run.Source,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}
	if track.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("models: %d\n\n", track.Len())

	logT, logL := track.HRTrack()
	for _, p := range []struct {
		data    []float64
		caption string
	}{
		{logL, "log L/L☉ vs model"},
		{logT, "log T_eff vs model"},
	} {
		fmt.Println(asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		))
		fmt.Println()
	}
	return nil
}

func modelAt(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}

	var m evolution.StellarModel
	if cmd.Flags().Changed("age") {
		var ok bool
		if m, ok = track.ModelAtAge(astro.Seconds(atAge)); !ok {
			return fmt.Errorf("run %s has no models", args[0])
		}
	} else {
		if track.Len() == 0 {
			return fmt.Errorf("run %s has no models", args[0])
		}
		i := track.IndexAtFraction(atFraction)
		m = track.At(i)
		fmt.Printf("model %d of %d\n", i, track.Len())
	}
	fmt.Println(m)
	class := m.SpectralClass()
	fmt.Printf("spectral class %s, colour %s (class reference %s)\n", class, m.Color(), classify.ReferenceColor(class))
	return nil
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	path := "stellarsim.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return track.Save(os.Stdout)
	}
	if err := track.SaveFile(args[1]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[1])
	return nil
}

func importTrack(cmd *cobra.Command, args []string) error {
	track, err := evolution.LoadFile(args[0])
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	values := printSummary(track)
	id, err := st.Save(track, storage.SaveInfo{Source: "imported", Metrics: values})
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", id)
	return nil
}

func renderHR(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}

	out := svgOut
	if out == "" {
		out = "hr_" + args[0] + ".svg"
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := export.DefaultSVGOptions()
	opts.Current = svgCurrent
	if err := export.WriteHRSVG(f, track, opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runStructure(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if integrator != "" {
		cfg.Structure.Integrator = integrator
	}
	if rtol > 0 {
		cfg.Structure.RelTol = rtol
	}
	if atol > 0 {
		cfg.Structure.AbsTol = atol
	}
	if maxSteps > 0 {
		cfg.Structure.MaxSteps = maxSteps
	}
	if len(params) > 0 {
		overrides, err := config.ParseParams(params)
		if err != nil {
			return err
		}
		if cfg.Structure.Params == nil {
			cfg.Structure.Params = make(map[string]float64, len(overrides))
		}
		for k, v := range overrides {
			cfg.Structure.Params[k] = v
		}
	}

	p := cfg.StructureParams()
	p.Logger = logger

	start := time.Now()
	sol := structure.Integrate(p)
	elapsed := time.Since(start)

	switch s := sol.(type) {
	case *structure.Converged:
		fmt.Printf("converged in %v (%d steps, %s)\n", elapsed, s.Steps, cfg.Structure.Integrator)
		fmt.Printf("  radius:      %.4g R☉\n", astro.SolarRadius(s.Radius))
		fmt.Printf("  mass:        %.4g M☉\n", astro.SolarMass(s.Mass))
		fmt.Printf("  luminosity:  %.4g L☉\n", astro.SolarLuminosity(s.Luminosity))
		fmt.Printf("  temperature: %.4g K\n", s.SurfaceTemperature)
		if showProf && s.Profile.Len() > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(s.Profile.T,
				asciigraph.Height(12),
				asciigraph.Width(80),
				asciigraph.Caption("T (K) vs step"),
			))
		}
		return nil
	case *structure.Failed:
		return s
	default:
		return fmt.Errorf("unexpected solution %T", sol)
	}
}

func compareMasses(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	masses := make([]float64, len(args))
	for i, a := range args {
		m, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid mass %q: %w", a, err)
		}
		if err := config.CheckMass(m); err != nil {
			return err
		}
		masses[i] = m
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	tracks, err := evolution.ComputeMany(ctx, masses, cfg.Composition, cfg.Steps, evolution.WithLogger(logger))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted: %w", err)
		}
		return err
	}
	fmt.Printf("computed %d tracks in %v\n\n", len(tracks), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "MASS\tMODELS\tFINAL"
	for _, m := range metrics.Standard() {
		header += "\t" + m.Name()
	}
	fmt.Fprintln(w, header)
	for _, t := range tracks {
		final := ""
		if last, ok := t.Last(); ok {
			final = last.Phase.String()
		}
		row := fmt.Sprintf("%.2f\t%d\t%s", t.InitialMass(), t.Len(), final)
		for _, r := range metrics.Summarize(t) {
			row += fmt.Sprintf("\t%.4g", r.Value)
		}
		fmt.Fprintln(w, row)
	}
	return w.Flush()
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	var p *player.Player
	if runID != "" {
		st := storage.New(cfg.DataDir, logger)
		track, err := st.LoadTrack(runID)
		if err != nil {
			return err
		}
		p = player.FromTrack(track)
	} else {
		p = player.New(cfg.Mass, cfg.Composition, cfg.Steps)
	}

	return viz.Run(p, viz.AppOptions{FPS: cfg.FPS, Theme: theme, ExportDir: "."})
}

func printConstants() {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := []struct {
		name  string
		value float64
		unit  string
	}{
		{"G", astro.G, "m³ kg⁻¹ s⁻²"},
		{"c", astro.C, "m/s"},
		{"σ_SB", astro.SigmaSB, "W m⁻² K⁻⁴"},
		{"k_B", astro.KB, "J/K"},
		{"a_rad", astro.ARad, "J m⁻³ K⁻⁴"},
		{"m_p", astro.MProton, "kg"},
		{"m_u", astro.MU, "kg"},
		{"N_A", astro.NA, "mol⁻¹"},
		{"R_gas", astro.RGas, "J mol⁻¹ K⁻¹"},
		{"M☉", astro.MSun, "kg"},
		{"R☉", astro.RSun, "m"},
		{"L☉", astro.LSun, "W"},
		{"T☉", astro.TSun, "K"},
		{"AU", astro.AU, "m"},
		{"pc", astro.Parsec, "m"},
		{"yr", astro.Year, "s"},
		{"X☉", astro.XSun, ""},
		{"Y☉", astro.YSun, ""},
		{"Z☉", astro.ZSun, ""},
		{"Q_pp", astro.QPP, "J"},
		{"Q_CNO", astro.QCNO, "J"},
		{"Q_3α", astro.QTriple, "J"},
		{"γ_ad", astro.GammaAdiabatic, ""},
		{"γ_rad", astro.GammaRadiation, ""},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.6e\t%s\n", r.name, r.value, r.unit)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "CLASS\tREFERENCE COLOUR\t")
	for _, c := range classify.Classes() {
		fmt.Fprintf(w, "%s\t%s\t\n", c, classify.ReferenceColor(c))
	}
	w.Flush()
}
