package viz

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/thermobin/internal/thermo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one field as it was read back from disk.
type Summary struct {
	Field  string  `json:"field"`
	Unit   string  `json:"unit"`
	DType  string  `json:"dtype"`
	NData  int     `json:"ndata"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

func Summarise(name thermo.FieldName, f thermo.Field) Summary {
	return summariseValues(name.String(), string(name.Unit()), f.DType().String(), f.Float64s())
}

// SummariseHumidity adds relative humidity [%] and supersaturation rows
// derived from the press, temp and qvap of a physical bundle.
func SummariseHumidity(b thermo.Bundle, mrRatio float64) ([]Summary, error) {
	relh, supersat, err := thermo.Humidity(b, mrRatio)
	if err != nil {
		return nil, err
	}
	return []Summary{
		summariseValues("relh", "%", "derived", relh),
		summariseValues("supersat", " ", "derived", supersat),
	}, nil
}

func summariseValues(field, unit, dtype string, v []float64) Summary {
	s := Summary{
		Field: field,
		Unit:  unit,
		DType: dtype,
		NData: len(v),
	}
	if len(v) == 0 {
		return s
	}
	s.Min = floats.Min(v)
	s.Max = floats.Max(v)
	if len(v) == 1 {
		s.Mean = v[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(v, nil)
	return s
}

// SummariseBundle summarises every present field of b in canonical order.
func SummariseBundle(b thermo.Bundle) []Summary {
	var out []Summary
	for _, name := range thermo.Fields {
		f, ok := b[name]
		if !ok || f.Len() == 0 {
			continue
		}
		out = append(out, Summarise(name, f))
	}
	return out
}

// WriteTable writes summaries as an aligned table.
func WriteTable(w io.Writer, sums []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tUNIT\tTYPE\tNDATA\tMIN\tMAX\tMEAN\tSTDDEV")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%q\t%s\t%d\t%.6g\t%.6g\t%.6g\t%.3g\n",
			s.Field, s.Unit, s.DType, s.NData, s.Min, s.Max, s.Mean, s.StdDev)
	}
	return tw.Flush()
}

// Profile plots the field's values in file order. NaNs are dropped since
// asciigraph cannot place them.
func Profile(name thermo.FieldName, f thermo.Field, width, height int) string {
	v := f.Float64s()
	data := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			data = append(data, x)
		}
	}
	caption := fmt.Sprintf("%s [%c]", name, name.Unit())
	if len(data) == 0 {
		return Subtle.Render(caption + ": no data")
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
