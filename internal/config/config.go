package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPress = 101500.0
	DefaultTemp  = 289.0
	DefaultQvap  = 0.0075
	DefaultZMax  = 1500.0
	DefaultDelta = 50.0
)

// Config is the YAML run file tying together the model's constants header,
// its config text file, the gridbox boundaries file and the thermodynamics
// that are generated onto that grid.
type Config struct {
	ConstantsFile string         `yaml:"constants_file"`
	ConfigFile    string         `yaml:"config_file"`
	GridFile      string         `yaml:"grid_file"`
	ThermoFile    string         `yaml:"thermo_file"`
	Grid          GridConfig     `yaml:"grid"`
	Thermo        ThermoConfig   `yaml:"thermo"`
	MassMoments   MassMomsConfig `yaml:"mass_moments"`
}

// GridConfig holds [min, max, delta] limits in metres for each coordinate.
type GridConfig struct {
	Z []float64 `yaml:"z"`
	X []float64 `yaml:"x"`
	Y []float64 `yaml:"y"`
}

// ThermoConfig parameterises the constant and uniform generator. Relh or
// Sratio, when set, replaces Qvap with the vapour mixing ratio for that
// relative humidity or saturation ratio. Setting both is an error.
type ThermoConfig struct {
	Press  float64  `yaml:"press"`
	Temp   float64  `yaml:"temp"`
	Qvap   float64  `yaml:"qvap"`
	Relh   *float64 `yaml:"relh,omitempty"`
	Sratio *float64 `yaml:"sratio,omitempty"`
	Qcond  float64  `yaml:"qcond"`
	WVel   *float64 `yaml:"wvel,omitempty"`
	UVel   *float64 `yaml:"uvel,omitempty"`
	VVel   *float64 `yaml:"vvel,omitempty"`
}

type MassMomsConfig struct {
	Dataset string `yaml:"dataset"`
	Label   string `yaml:"label"`
	NDims   []int  `yaml:"ndims"`
}

func DefaultConfig() *Config {
	return &Config{
		ConstantsFile: "libs/claras_SDconstants.hpp",
		ConfigFile:    "src/config/config.txt",
		GridFile:      "build/share/dimlessGBxboundaries.dat",
		ThermoFile:    "build/share/dimlessthermo.dat",
		Grid: GridConfig{
			Z: []float64{0, DefaultZMax, DefaultDelta},
			X: []float64{0, 20},
			Y: []float64{0, 20},
		},
		Thermo: ThermoConfig{
			Press: DefaultPress,
			Temp:  DefaultTemp,
			Qvap:  DefaultQvap,
		},
		MassMoments: MassMomsConfig{
			NDims: []int{1, 1, 1},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
