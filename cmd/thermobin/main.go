package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/thermobin/internal/config"
	"github.com/san-kum/thermobin/internal/export"
	"github.com/san-kum/thermobin/internal/grid"
	"github.com/san-kum/thermobin/internal/massmoms"
	"github.com/san-kum/thermobin/internal/scales"
	"github.com/san-kum/thermobin/internal/thermo"
	"github.com/san-kum/thermobin/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	verbose    bool

	constantsFile string
	configTxt     string
	gridFile      string
	thermoFile    string

	preset string
	press  float64
	temp   float64
	qvap   float64
	relh   float64
	sratio float64
	qcond  float64
	wvel   float64
	uvel   float64
	vvel   float64

	zlim []float64
	xlim []float64
	ylim []float64

	plot     bool
	dimless  bool
	jsonPath string

	label string
	ntime int
	ndims []int
	key   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "thermobin",
		Short:        "generate and inspect thermodynamics binary files for a superdroplet model",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "run file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging")
	rootCmd.PersistentFlags().StringVar(&constantsFile, "constants", "", "model constants header")
	rootCmd.PersistentFlags().StringVar(&configTxt, "configtxt", "", "model config text file")
	rootCmd.PersistentFlags().StringVar(&gridFile, "grid", "", "gridbox boundaries file")
	rootCmd.PersistentFlags().StringVar(&thermoFile, "output", "", "thermodynamics output path")

	writeCmd := &cobra.Command{
		Use:   "write",
		Short: "generate constant uniform thermodynamics and write one binary file per field",
		Args:  cobra.NoArgs,
		RunE:  writeThermo,
	}
	writeCmd.Flags().StringVar(&preset, "preset", "", "use preset thermodynamics")
	writeCmd.Flags().Float64Var(&press, "press", config.DefaultPress, "pressure [Pa]")
	writeCmd.Flags().Float64Var(&temp, "temp", config.DefaultTemp, "temperature [K]")
	writeCmd.Flags().Float64Var(&qvap, "qvap", config.DefaultQvap, "vapour mass mixing ratio")
	writeCmd.Flags().Float64Var(&relh, "relh", 0, "relative humidity [%], replaces qvap")
	writeCmd.Flags().Float64Var(&sratio, "sratio", 0, "saturation ratio, replaces qvap")
	writeCmd.Flags().Float64Var(&qcond, "qcond", 0, "liquid mass mixing ratio")
	writeCmd.Flags().Float64Var(&wvel, "wvel", 0, "vertical wind [m/s]")
	writeCmd.Flags().Float64Var(&uvel, "uvel", 0, "eastward wind [m/s], needs wvel")
	writeCmd.Flags().Float64Var(&vvel, "vvel", 0, "northward wind [m/s], needs uvel")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "write the gridbox boundaries file",
		Args:  cobra.NoArgs,
		RunE:  writeGrid,
	}
	gridCmd.Flags().Float64SliceVar(&zlim, "z", nil, "z limits min,max,delta [m]")
	gridCmd.Flags().Float64SliceVar(&xlim, "x", nil, "x limits min,max,delta [m]")
	gridCmd.Flags().Float64SliceVar(&ylim, "y", nil, "y limits min,max,delta [m]")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "read thermodynamics files back and summarise them",
		Args:  cobra.NoArgs,
		RunE:  inspectThermo,
	}
	inspectCmd.Flags().BoolVar(&plot, "plot", false, "plot every field")
	inspectCmd.Flags().BoolVar(&dimless, "dimless", false, "keep values dimensionless")
	inspectCmd.Flags().StringVar(&jsonPath, "json", "", "also write the summary as JSON (- for stdout)")

	massmomsCmd := &cobra.Command{
		Use:   "massmoms [dataset]",
		Short: "summarise mass moments from a netCDF dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showMassMoments,
	}
	massmomsCmd.Flags().StringVar(&label, "label", "", "label inserted into variable names")
	massmomsCmd.Flags().IntVar(&ntime, "ntime", 0, "number of output times (derived from the config when 0)")
	massmomsCmd.Flags().IntSliceVar(&ndims, "ndims", nil, "gridbox dimensions")
	massmomsCmd.Flags().StringVar(&key, "key", "effmass", "moment to show")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available thermodynamics presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(writeCmd, gridCmd, inspectCmd, massmomsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig reads the run file when given and lets persistent flags
// override its paths.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("constants") {
		cfg.ConstantsFile = constantsFile
	}
	if flags.Changed("configtxt") {
		cfg.ConfigFile = configTxt
	}
	if flags.Changed("grid") {
		cfg.GridFile = gridFile
	}
	if flags.Changed("output") {
		cfg.ThermoFile = thermoFile
	}
	return cfg, nil
}

func readFloats(cfg *config.Config) (consts, cfgFloats config.Floats, err error) {
	consts, _, err = config.ReadConstants(cfg.ConstantsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("reading constants: %w", err)
	}
	cfgFloats, _, err = config.ReadConfigFloats(cfg.ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	return consts, cfgFloats, nil
}

func deriveInputs(cfg *config.Config) (scales.Inputs, config.Floats, config.Floats, error) {
	consts, cfgFloats, err := readFloats(cfg)
	if err != nil {
		return scales.Inputs{}, nil, nil, err
	}
	inputs, err := scales.Derive(consts, cfgFloats)
	if err != nil {
		return scales.Inputs{}, nil, nil, err
	}
	return inputs, consts, cfgFloats, nil
}

func applyThermoFlags(cmd *cobra.Command, tc *config.ThermoConfig) error {
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*tc = *p
	}

	flags := cmd.Flags()
	if flags.Changed("press") {
		tc.Press = press
	}
	if flags.Changed("temp") {
		tc.Temp = temp
	}
	if flags.Changed("qvap") {
		tc.Qvap = qvap
		tc.Relh = nil
		tc.Sratio = nil
	}
	if flags.Changed("relh") {
		tc.Relh = &relh
		tc.Sratio = nil
	}
	if flags.Changed("sratio") {
		tc.Sratio = &sratio
		tc.Relh = nil
	}
	if flags.Changed("qcond") {
		tc.Qcond = qcond
	}
	if flags.Changed("wvel") {
		tc.WVel = &wvel
	}
	if flags.Changed("uvel") {
		tc.UVel = &uvel
	}
	if flags.Changed("vvel") {
		tc.VVel = &vvel
	}
	return nil
}

func writeThermo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyThermoFlags(cmd, &cfg.Thermo); err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	inputs, consts, cfgFloats, err := deriveInputs(cfg)
	if err != nil {
		return err
	}
	gen, err := thermo.ConstUniformFromConfig(cfg.Thermo, inputs.MrRatio)
	if err != nil {
		return err
	}
	logger.Debug("thermodynamics",
		zap.Float64("press", gen.Press),
		zap.Float64("temp", gen.Temp),
		zap.Float64("qvap", gen.Qvap),
		zap.Float64("qcond", gen.Qcond),
	)

	paths, err := thermo.NewSerializer(logger).Write(cfg.ThermoFile, gen, cfgFloats, consts, cfg.GridFile)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d files:\n", len(paths))
	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

func writeGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("z") {
		cfg.Grid.Z = zlim
	}
	if flags.Changed("x") {
		cfg.Grid.X = xlim
	}
	if flags.Changed("y") {
		cfg.Grid.Y = ylim
	}

	inputs, _, _, err := deriveInputs(cfg)
	if err != nil {
		return err
	}

	var halfs [3][]float64
	for i, lim := range [][]float64{cfg.Grid.Z, cfg.Grid.X, cfg.Grid.Y} {
		l, err := halfCoords(lim)
		if err != nil {
			return fmt.Errorf("%s: %w", grid.Coords[i], err)
		}
		halfs[i] = l
	}

	n, err := grid.WriteBoundaries(cfg.GridFile, halfs[0], halfs[1], halfs[2], inputs.Coord0)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d gridboxes to %s\n", n, cfg.GridFile)
	return nil
}

// halfCoords accepts either [min, max, delta] limits or a plain [min, max]
// pair for a single gridbox.
func halfCoords(lim []float64) ([]float64, error) {
	if len(lim) == 2 {
		return lim, nil
	}
	l, err := grid.LimitsFromSlice(lim)
	if err != nil {
		return nil, err
	}
	return grid.HalfCoords(l), nil
}

func inspectThermo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var (
		b      thermo.Bundle
		inputs scales.Inputs
	)
	if dimless {
		b, err = thermo.ReadDimless(cfg.ThermoFile)
		if err != nil {
			return err
		}
		in, _, _, err := deriveInputs(cfg)
		if err != nil {
			logger.Debug("no derived inputs for dimensionless inspect", zap.Error(err))
		} else {
			inputs = in
		}
	} else {
		inputs, _, _, err = deriveInputs(cfg)
		if err != nil {
			return err
		}
		b, err = thermo.ReadFields(cfg.ThermoFile, inputs.Scales())
		if err != nil {
			return err
		}
	}

	sums := viz.SummariseBundle(b)
	if !dimless {
		hum, err := viz.SummariseHumidity(b, inputs.MrRatio)
		if err != nil {
			logger.Debug("skipping humidity", zap.Error(err))
		} else {
			sums = append(sums, hum...)
		}
	}
	fmt.Println(viz.HeaderStyle.Render(cfg.ThermoFile))
	if inputs.NTime > 0 {
		fmt.Printf("%s %s\n", viz.MetricLabel.Render("ntime:"), viz.MetricValue.Render(fmt.Sprint(inputs.NTime)))
	}
	if err := viz.WriteTable(os.Stdout, sums); err != nil {
		return err
	}

	if plot {
		for _, name := range thermo.Fields {
			f, ok := b[name]
			if !ok || f.Len() == 0 {
				continue
			}
			fmt.Println()
			fmt.Println(viz.Profile(name, f, 80, 10))
		}
	}

	if jsonPath != "" {
		doc := export.Document{
			OutputPath: cfg.ThermoFile,
			NTime:      inputs.NTime,
			Fields:     sums,
		}
		for _, name := range thermo.Fields {
			if f, ok := b[name]; ok && f.Len() > 0 {
				doc.Files = append(doc.Files, thermo.OutputPath(cfg.ThermoFile, name))
			}
		}
		if inputs.NTime > 0 && len(sums) > 0 {
			doc.NGridboxes = sums[0].NData / inputs.NTime
		}
		if err := export.WriteJSON(jsonPath, doc); err != nil {
			return err
		}
	}
	return nil
}

func showMassMoments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mc := cfg.MassMoments
	if len(args) == 1 {
		mc.Dataset = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("label") {
		mc.Label = label
	}
	if flags.Changed("ndims") {
		mc.NDims = ndims
	}
	if mc.Dataset == "" {
		return fmt.Errorf("no dataset given")
	}

	nt := ntime
	if nt == 0 {
		inputs, _, _, err := deriveInputs(cfg)
		if err != nil {
			return fmt.Errorf("ntime not given and cannot be derived: %w", err)
		}
		nt = inputs.NTime
	}

	ds, err := massmoms.OpenNetCDF(mc.Dataset)
	if err != nil {
		return err
	}
	defer ds.Close()

	mm, err := massmoms.New(ds, nt, mc.NDims, mc.Label)
	if err != nil {
		return err
	}
	arr, err := mm.Get(key)
	if err != nil {
		return err
	}

	unit := ""
	switch key {
	case "mom1":
		unit = mm.Mom1Units
	case "mom2":
		unit = mm.Mom2Units
	case "effmass":
		unit = mm.EffMassUnits
	}

	fmt.Println(viz.HeaderStyle.Render(mc.Dataset))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("shape:"), viz.MetricValue.Render(fmt.Sprint(arr.Shape)))
	if unit != "" {
		fmt.Printf("%s %s\n", viz.MetricLabel.Render("units:"), viz.MetricValue.Render(strings.TrimSpace(unit)))
	}

	ngbx := len(arr.Values) / max(nt, 1)
	for t := 0; t < nt; t++ {
		row := arr.Values[t*ngbx : (t+1)*ngbx]
		fmt.Printf("t%-4d %s\n", t, viz.Sparkline(row, 60))
	}
	fmt.Println(viz.Separator(66))
	return nil
}
