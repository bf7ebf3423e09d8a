package thermo

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/thermobin/internal/config"
	"github.com/san-kum/thermobin/internal/grid"
)

var (
	// ErrNonPositiveTemp indicates a temperature at or below absolute zero.
	ErrNonPositiveTemp = errors.New("thermo: temperature must be larger than 0K")

	// ErrHumidityParams indicates more than one way of setting qvap was given.
	ErrHumidityParams = errors.New("thermo: give at most one of relh and sratio")

	// ErrSupersaturatedPress indicates a pressure not above saturation.
	ErrSupersaturatedPress = errors.New("thermo: pressure must exceed the saturation vapour pressure")
)

// Generator produces raw physical thermodynamics for ngbx gridboxes over
// ntime coupling timesteps. Every field is flattened with time varying
// slowest.
type Generator interface {
	Generate(geom grid.Geometry, ngbx, ntime int) (Bundle, error)
}

type GeneratorFunc func(geom grid.Geometry, ngbx, ntime int) (Bundle, error)

func (f GeneratorFunc) Generate(geom grid.Geometry, ngbx, ntime int) (Bundle, error) {
	return f(geom, ngbx, ntime)
}

// ConstUniform generates thermodynamics that are constant in time and
// uniform throughout the domain. A nil velocity component is omitted, as are
// the horizontal components when the vertical one is.
type ConstUniform struct {
	Press float64
	Temp  float64
	Qvap  float64
	Qcond float64
	WVel  *float64
	UVel  *float64
	VVel  *float64
}

// ConstUniformFromConfig builds a ConstUniform from run file settings,
// converting relative humidity or saturation ratio to a vapour mixing ratio
// when one is given.
func ConstUniformFromConfig(c config.ThermoConfig, mrRatio float64) (*ConstUniform, error) {
	g := &ConstUniform{
		Press: c.Press,
		Temp:  c.Temp,
		Qvap:  c.Qvap,
		Qcond: c.Qcond,
		WVel:  c.WVel,
		UVel:  c.UVel,
		VVel:  c.VVel,
	}
	var (
		qvap float64
		err  error
	)
	switch {
	case c.Relh != nil && c.Sratio != nil:
		return nil, ErrHumidityParams
	case c.Relh != nil:
		qvap, err = RelHumidityToQvap(c.Press, c.Temp, *c.Relh, mrRatio)
	case c.Sratio != nil:
		qvap, err = SaturationRatioToQvap(c.Press, c.Temp, *c.Sratio, mrRatio)
	default:
		return g, nil
	}
	if err != nil {
		return nil, err
	}
	g.Qvap = qvap
	return g, nil
}

func (g *ConstUniform) Generate(geom grid.Geometry, ngbx, ntime int) (Bundle, error) {
	if ngbx != geom.Len() {
		return nil, fmt.Errorf("thermo: %d gridboxes requested for geometry of %d", ngbx, geom.Len())
	}
	n := ngbx * ntime
	b := Bundle{
		Press: Filled(n, g.Press),
		Temp:  Filled(n, g.Temp),
		Qvap:  Filled(n, g.Qvap),
		Qcond: Filled(n, g.Qcond),
		WVel:  {},
		UVel:  {},
		VVel:  {},
	}
	if g.WVel == nil {
		return b, nil
	}
	b[WVel] = Filled(n, *g.WVel)
	if g.UVel == nil {
		return b, nil
	}
	b[UVel] = Filled(n, *g.UVel)
	if g.VVel != nil {
		b[VVel] = Filled(n, *g.VVel)
	}
	return b, nil
}

// SaturationPressure is the equilibrium vapour pressure [Pa] of water over
// liquid water at temp [K] (Murray 1967).
func SaturationPressure(temp float64) (float64, error) {
	const (
		a    = 17.4146
		b    = 33.639
		tref = 273.16  // triple point temperature [K]
		pref = 611.655 // triple point pressure [Pa]
	)
	if temp <= 0 {
		return 0, fmt.Errorf("%w: T = %v", ErrNonPositiveTemp, temp)
	}
	return pref * math.Exp(a*(temp-tref)/(temp-b)), nil
}

// RelHumidityToQvap converts relative humidity [%] to a vapour mass mixing
// ratio given pressure [Pa], temperature [K] and the vapour/dry air molar
// mass ratio.
func RelHumidityToQvap(press, temp, relh, mrRatio float64) (float64, error) {
	psat, err := SaturationPressure(temp)
	if err != nil {
		return 0, err
	}
	pv := psat * relh / 100.0
	return mrRatio * pv / (press - pv), nil
}

// SaturationRatioToQvap converts a saturation ratio (vapour pressure over
// saturation vapour pressure) to a vapour mass mixing ratio.
func SaturationRatioToQvap(press, temp, sratio, mrRatio float64) (float64, error) {
	psat, err := SaturationPressure(temp)
	if err != nil {
		return 0, err
	}
	if press <= psat {
		return 0, fmt.Errorf("%w: p = %v, psat = %v", ErrSupersaturatedPress, press, psat)
	}
	return mrRatio * sratio / (press/psat - 1), nil
}

// RelativeHumidity returns the relative humidity [%] and supersaturation
// (qvap/qsat - 1) of air with the given pressure [Pa], temperature [K] and
// vapour mass mixing ratio.
func RelativeHumidity(press, temp, qvap, mrRatio float64) (relh, supersat float64, err error) {
	psat, err := SaturationPressure(temp)
	if err != nil {
		return 0, 0, err
	}
	pv := qvap * press / (mrRatio + qvap)
	qsat := mrRatio * psat / (press - pv)
	return 100 * pv / psat, qvap/qsat - 1, nil
}

// Humidity computes the relative humidity and supersaturation at every
// sample of a physical bundle holding press, temp and qvap.
func Humidity(b Bundle, mrRatio float64) (relh, supersat []float64, err error) {
	p, tk, q := b[Press].Float64s(), b[Temp].Float64s(), b[Qvap].Float64s()
	if len(p) == 0 || len(p) != len(tk) || len(p) != len(q) {
		return nil, nil, fmt.Errorf("thermo: humidity needs press, temp and qvap of equal length, got %d, %d, %d",
			len(p), len(tk), len(q))
	}
	relh = make([]float64, len(p))
	supersat = make([]float64, len(p))
	for i := range p {
		relh[i], supersat[i], err = RelativeHumidity(p[i], tk[i], q[i], mrRatio)
		if err != nil {
			return nil, nil, err
		}
	}
	return relh, supersat, nil
}
