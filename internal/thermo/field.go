package thermo

import (
	"github.com/san-kum/thermobin/internal/binfile"
)

type FieldName int

const (
	Press FieldName = iota
	Temp
	Qvap
	Qcond
	WVel
	UVel
	VVel
)

const NumFields = 7

// Fields lists every field name in the canonical order used for scale
// factors, units and output.
var Fields = [NumFields]FieldName{Press, Temp, Qvap, Qcond, WVel, UVel, VVel}

var fieldNames = [NumFields]string{"press", "temp", "qvap", "qcond", "wvel", "uvel", "vvel"}

// units are the labels of each field once multiplied by its scale factor.
var units = [NumFields]byte{'P', 'K', ' ', ' ', 'm', 'm', 'm'}

func (n FieldName) String() string {
	if n < 0 || int(n) >= NumFields {
		return "unknown"
	}
	return fieldNames[n]
}

func (n FieldName) Unit() byte {
	if n < 0 || int(n) >= NumFields {
		return ' '
	}
	return units[n]
}

func (n FieldName) IsVelocity() bool {
	return n == WVel || n == UVel || n == VVel
}

func ParseFieldName(s string) (FieldName, error) {
	for i, name := range fieldNames {
		if name == s {
			return FieldName(i), nil
		}
	}
	return 0, &UnknownFieldError{Name: s}
}

// Field is one flattened thermodynamic variable holding either float64 or
// float32 samples. The zero Field is empty.
type Field struct {
	f64   []float64
	f32   []float32
	dtype binfile.DType
}

func Float64Field(v []float64) Field {
	return Field{f64: v, dtype: binfile.Float64}
}

func Float32Field(v []float32) Field {
	return Field{f32: v, dtype: binfile.Float32}
}

// Filled returns a float64 field of n copies of v.
func Filled(n int, v float64) Field {
	data := make([]float64, n)
	for i := range data {
		data[i] = v
	}
	return Float64Field(data)
}

func (f Field) Len() int {
	if f.dtype == binfile.Float32 {
		return len(f.f32)
	}
	return len(f.f64)
}

func (f Field) DType() binfile.DType {
	if f.dtype == 0 {
		return binfile.Float64
	}
	return f.dtype
}

// Float64s returns the samples as float64, converting float32 data into a
// new slice.
func (f Field) Float64s() []float64 {
	if f.dtype != binfile.Float32 {
		return f.f64
	}
	out := make([]float64, len(f.f32))
	for i, v := range f.f32 {
		out[i] = float64(v)
	}
	return out
}

// Values returns the underlying []float64 or []float32.
func (f Field) Values() any {
	if f.dtype == binfile.Float32 {
		return f.f32
	}
	return f.f64
}

// Convert returns the field with element type to. Converting to the field's
// own type returns it unchanged.
func (f Field) Convert(to binfile.DType) Field {
	if f.DType() == to {
		return f
	}
	switch to {
	case binfile.Float32:
		out := make([]float32, len(f.f64))
		for i, v := range f.f64 {
			out[i] = float32(v)
		}
		return Float32Field(out)
	default:
		return Float64Field(f.Float64s())
	}
}

func (f Field) mul(factor float64) Field {
	if f.dtype == binfile.Float32 {
		return Float32Field(scaled(f.f32, func(v float64) float64 { return v * factor }))
	}
	return Float64Field(scaled(f.f64, func(v float64) float64 { return v * factor }))
}

func (f Field) div(factor float64) Field {
	if f.dtype == binfile.Float32 {
		return Float32Field(scaled(f.f32, func(v float64) float64 { return v / factor }))
	}
	return Float64Field(scaled(f.f64, func(v float64) float64 { return v / factor }))
}

func scaled[T float32 | float64](v []T, op func(float64) float64) []T {
	if v == nil {
		return nil
	}
	out := make([]T, len(v))
	for i, x := range v {
		out[i] = T(op(float64(x)))
	}
	return out
}

// Bundle maps field names to their samples. Fields may be absent.
type Bundle map[FieldName]Field

// Lengths holds one sample count per field in canonical order.
type Lengths [NumFields]int

// Lengths returns the sample count of every field, zero for absent ones.
func (b Bundle) Lengths() Lengths {
	var l Lengths
	for i, name := range Fields {
		l[i] = b[name].Len()
	}
	return l
}

// Present returns the names of the fields in b in canonical order.
func (b Bundle) Present() []FieldName {
	names := make([]FieldName, 0, len(b))
	for _, name := range Fields {
		if _, ok := b[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
