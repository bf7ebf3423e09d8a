// Package massmoms exposes the mass moments of the droplet distribution in
// every gridbox over time, as written by the model to its output dataset.
package massmoms

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrShape indicates a variable whose size does not fit the requested shape.
var ErrShape = errors.New("massmoms: variable does not match [time, dims...] shape")

type Key int

const (
	NSupers Key = iota
	Mom0
	Mom1
	Mom2
	EffMass
)

var keyNames = []string{"nsupers", "mom0", "mom1", "mom2", "effmass"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

func ParseKey(s string) (Key, error) {
	for i, name := range keyNames {
		if name == s {
			return Key(i), nil
		}
	}
	return 0, &UnknownKeyError{Key: s}
}

// UnknownKeyError reports a lookup by a name that is not a mass moment.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("massmoms: no known return provided for %s key", e.Key)
}

// Dataset is a source of named variables, flattened to float64.
type Dataset interface {
	Values(name string) ([]float64, error)
	Attr(name, key string) (string, bool)
}

// Array is a row-major array of shape [time, dims...].
type Array struct {
	Shape  []int
	Values []float64
}

// At returns the element at the given index, one entry per dimension.
func (a Array) At(idx ...int) float64 {
	off := 0
	for i, n := range a.Shape {
		off = off*n + idx[i]
	}
	return a.Values[off]
}

// MassMoments holds the number of superdroplets and the 0th, 1st and 2nd
// mass moments in every gridbox over time, plus the effective mass
// mom2/mom1 computed once on construction.
type MassMoments struct {
	NSupers Array
	Mom0    Array
	Mom1    Array
	Mom2    Array
	EffMass Array

	Mom1Units    string
	Mom2Units    string
	EffMassUnits string
}

// New reads the mass moments from ds and reshapes each to [ntime, ndims...].
// label is inserted into the variable names, e.g. "n<label>supers" and
// "mom0<label>".
func New(ds Dataset, ntime int, ndims []int, label string) (*MassMoments, error) {
	shape := append([]int{ntime}, ndims...)

	read := func(name string) (Array, error) {
		v, err := ds.Values(name)
		if err != nil {
			return Array{}, fmt.Errorf("massmoms: reading %s: %w", name, err)
		}
		size := 1
		for _, n := range shape {
			size *= n
		}
		if len(v) != size {
			return Array{}, fmt.Errorf("%w: %s has %d values, shape %v needs %d", ErrShape, name, len(v), shape, size)
		}
		return Array{Shape: shape, Values: v}, nil
	}

	m := &MassMoments{}
	var err error
	if m.NSupers, err = read("n" + label + "supers"); err != nil {
		return nil, err
	}
	if m.Mom0, err = read("mom0" + label); err != nil {
		return nil, err
	}
	if m.Mom1, err = read("mom1" + label); err != nil {
		return nil, err
	}
	if m.Mom2, err = read("mom2" + label); err != nil {
		return nil, err
	}

	eff := make([]float64, len(m.Mom2.Values))
	floats.DivTo(eff, m.Mom2.Values, m.Mom1.Values)
	m.EffMass = Array{Shape: shape, Values: eff}

	m.Mom1Units, _ = ds.Attr("mom1", "units")
	m.Mom2Units, _ = ds.Attr("mom2", "units")
	m.EffMassUnits = m.Mom2Units + "/" + m.Mom1Units
	return m, nil
}

func (m *MassMoments) Get(key string) (Array, error) {
	k, err := ParseKey(key)
	if err != nil {
		return Array{}, err
	}
	return m.Lookup(k), nil
}

func (m *MassMoments) Lookup(k Key) Array {
	switch k {
	case NSupers:
		return m.NSupers
	case Mom0:
		return m.Mom0
	case Mom1:
		return m.Mom1
	case Mom2:
		return m.Mom2
	default:
		return m.EffMass
	}
}
