// Package scales derives the characteristic physical scales used to
// non-dimensionalise model input, along with the other derived quantities
// (gas constants, reference density, coordinate scale and number of
// coupling timesteps) needed to build thermodynamic input files.
package scales

import (
	"math"

	"github.com/san-kum/thermobin/internal/config"
)

var (
	requiredConstants = []string{
		"G", "CP_DRY", "RHO_DRY", "W0", "P0", "TEMP0",
		"RGAS_UNIV", "MR_DRY", "MR_WATER", "TIME0",
	}
	requiredConfig = []string{"COUPLTSTEP", "T_END", "SDnspace"}
)

// Set holds the characteristic value of each thermodynamic quantity.
type Set struct {
	Pressure    float64
	Temperature float64
	Vapour      float64
	Condensate  float64
	Velocity    float64
}

// Inputs is everything derived from a constants source and a config source.
// It is built once by Derive and passed by value through the pipeline.
type Inputs struct {
	G          float64
	CpDry      float64
	RhoDry     float64
	RgasDry    float64
	RgasV      float64
	MrRatio    float64
	W0         float64
	P0         float64
	Temp0      float64
	Rho0       float64
	Cp0        float64
	Coord0     float64
	CouplTStep float64
	TEnd       float64
	SDnspace   int
	NTime      int
}

func (in Inputs) Scales() Set {
	return Set{
		Pressure:    in.P0,
		Temperature: in.Temp0,
		Vapour:      1.0,
		Condensate:  1.0,
		Velocity:    in.W0,
	}
}

// Derive computes Inputs from parsed constants and config values. It fails
// with a *MissingKeyError naming the first absent key, constants before
// config.
func Derive(consts, cfg config.Floats) (Inputs, error) {
	for _, k := range requiredConstants {
		if _, ok := consts.Lookup(k); !ok {
			return Inputs{}, &MissingKeyError{Source: "constants", Key: k}
		}
	}
	for _, k := range requiredConfig {
		if _, ok := cfg.Lookup(k); !ok {
			return Inputs{}, &MissingKeyError{Source: "config", Key: k}
		}
	}

	ntime, err := NTime(cfg["COUPLTSTEP"], cfg["T_END"])
	if err != nil {
		return Inputs{}, err
	}

	in := Inputs{
		G:          consts["G"],
		CpDry:      consts["CP_DRY"],
		RhoDry:     consts["RHO_DRY"],
		RgasDry:    consts["RGAS_UNIV"] / consts["MR_DRY"],
		RgasV:      consts["RGAS_UNIV"] / consts["MR_WATER"],
		MrRatio:    consts["MR_WATER"] / consts["MR_DRY"],
		W0:         consts["W0"],
		P0:         consts["P0"],
		Temp0:      consts["TEMP0"],
		Cp0:        consts["CP_DRY"],
		Coord0:     consts["TIME0"] * consts["W0"],
		CouplTStep: cfg["COUPLTSTEP"],
		TEnd:       cfg["T_END"],
		SDnspace:   int(cfg["SDnspace"]),
		NTime:      ntime,
	}
	in.Rho0 = in.P0 / (in.Cp0 * in.Temp0)
	return in, nil
}

// NTime is the number of coupling timesteps, including the initial one,
// needed to reach tEnd.
func NTime(couplTStep, tEnd float64) (int, error) {
	if !(couplTStep > 0) || !(tEnd >= 0) || math.IsInf(couplTStep, 0) || math.IsInf(tEnd, 0) {
		return 0, ErrInvalidTimestep
	}
	steps := math.Ceil(tEnd / couplTStep)
	if steps >= math.MaxInt32 {
		return 0, ErrInvalidTimestep
	}
	return int(steps) + 1, nil
}
