// Package grid builds and reads the gridbox boundaries file that defines the
// model's spatial domain.
package grid

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadLimits indicates coordinate limits that describe no gridboxes.
	ErrBadLimits = errors.New("grid: limits must be [min, max, delta] with delta > 0 and max > min")

	// ErrNotIncreasing indicates halfcoords that cannot bound a gridbox.
	ErrNotIncreasing = errors.New("grid: halfcoords must have at least 2 strictly increasing values")

	// ErrBadBounds indicates a boundaries variable not made of whole gridboxes.
	ErrBadBounds = errors.New("grid: boundaries data is not 6 values per gridbox")
)

// Coords names the three spatial coordinates in file order.
var Coords = [3]string{"z", "x", "y"}

// Limits describes linearly spaced gridbox boundaries from Min to Max.
type Limits struct {
	Min, Max, Delta float64
}

func LimitsFromSlice(v []float64) (Limits, error) {
	if len(v) != 3 {
		return Limits{}, fmt.Errorf("%w: got %v", ErrBadLimits, v)
	}
	l := Limits{Min: v[0], Max: v[1], Delta: v[2]}
	if l.Delta <= 0 || l.Max <= l.Min {
		return Limits{}, fmt.Errorf("%w: got %v", ErrBadLimits, v)
	}
	return l, nil
}

// HalfCoords returns the boundaries Min, Min+Delta, ... up to and including
// Max, allowing for rounding in the final step.
func HalfCoords(l Limits) []float64 {
	n := int(math.Floor((l.Max-l.Min)/l.Delta+1e-9)) + 1
	half := make([]float64, n)
	for i := range half {
		half[i] = l.Min + float64(i)*l.Delta
	}
	return half
}

func checkHalfCoords(half []float64, coord string) error {
	if len(half) < 2 {
		return fmt.Errorf("%w: %s halfcoords %v", ErrNotIncreasing, coord, half)
	}
	for i := 1; i < len(half); i++ {
		if half[i] <= half[i-1] {
			return fmt.Errorf("%w: %s halfcoords %v", ErrNotIncreasing, coord, half)
		}
	}
	return nil
}

// Geometry holds the centre coordinates of every gridbox.
type Geometry struct {
	Z, X, Y []float64
}

func (g Geometry) Len() int {
	return len(g.Z)
}

// Boundaries returns the [zmin, zmax, xmin, xmax, ymin, ymax] of every
// gridbox, y varying slowest and z fastest.
func Boundaries(zhalf, xhalf, yhalf []float64) [][6]float64 {
	bounds := make([][6]float64, 0, (len(zhalf)-1)*(len(xhalf)-1)*(len(yhalf)-1))
	for j := 0; j < len(yhalf)-1; j++ {
		for i := 0; i < len(xhalf)-1; i++ {
			for k := 0; k < len(zhalf)-1; k++ {
				bounds = append(bounds, [6]float64{
					zhalf[k], zhalf[k+1],
					xhalf[i], xhalf[i+1],
					yhalf[j], yhalf[j+1],
				})
			}
		}
	}
	return bounds
}

// Centres returns the centre coordinates of gridboxes with the given bounds.
func Centres(bounds [][6]float64) Geometry {
	g := Geometry{
		Z: make([]float64, len(bounds)),
		X: make([]float64, len(bounds)),
		Y: make([]float64, len(bounds)),
	}
	for i, b := range bounds {
		g.Z[i] = (b[0] + b[1]) / 2
		g.X[i] = (b[2] + b[3]) / 2
		g.Y[i] = (b[4] + b[5]) / 2
	}
	return g
}
