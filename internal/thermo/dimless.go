package thermo

import "github.com/san-kum/thermobin/internal/scales"

// Dedimensionaliser converts bundles between physical and dimensionless
// form using a fixed set of characteristic scales.
type Dedimensionaliser struct {
	scales scales.Set
}

func NewDedimensionaliser(s scales.Set) *Dedimensionaliser {
	return &Dedimensionaliser{scales: s}
}

func (d *Dedimensionaliser) Scales() scales.Set {
	return d.scales
}

// ScaleFactors returns the characteristic scale of every field in
// canonical order.
func (d *Dedimensionaliser) ScaleFactors() []float64 {
	sf := make([]float64, NumFields)
	for i, name := range Fields {
		sf[i] = d.factor(name)
	}
	return sf
}

func (d *Dedimensionaliser) factor(name FieldName) float64 {
	switch name {
	case Press:
		return d.scales.Pressure
	case Temp:
		return d.scales.Temperature
	case Qvap:
		return d.scales.Vapour
	case Qcond:
		return d.scales.Condensate
	default:
		return d.scales.Velocity
	}
}

// MakeDimensionless divides every field present in b by its scale. Mixing
// ratios are already dimensionless and are passed through unchanged. The
// returned scale factors cover all seven fields, present or not.
func (d *Dedimensionaliser) MakeDimensionless(b Bundle) (Bundle, []float64) {
	out := make(Bundle, len(b))
	for name, f := range b {
		if name == Qvap || name == Qcond {
			out[name] = f
			continue
		}
		out[name] = f.div(d.factor(name))
	}
	return out, d.ScaleFactors()
}

// Redimensionalise is the inverse of MakeDimensionless. Velocity fields are
// optional and appear in the result only if present in b.
func (d *Dedimensionaliser) Redimensionalise(b Bundle) Bundle {
	out := make(Bundle, len(b))
	for name, f := range b {
		if name == Qvap || name == Qcond {
			out[name] = f
			continue
		}
		out[name] = f.mul(d.factor(name))
	}
	return out
}
