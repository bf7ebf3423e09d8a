package grid

import (
	"fmt"

	"github.com/san-kum/thermobin/internal/binfile"
)

// WriteBoundaries de-dimensionalises the halfcoords by coord0 and writes the
// gridbox indices followed by every gridbox's boundaries to path. It returns
// the number of gridboxes written.
func WriteBoundaries(path string, zhalf, xhalf, yhalf []float64, coord0 float64) (int, error) {
	halfs := [3][]float64{zhalf, xhalf, yhalf}
	for c, half := range halfs {
		dimless := make([]float64, len(half))
		for i, v := range half {
			dimless[i] = v / coord0
		}
		if err := checkHalfCoords(dimless, Coords[c]); err != nil {
			return 0, err
		}
		halfs[c] = dimless
	}

	bounds := Boundaries(halfs[0], halfs[1], halfs[2])
	idxs := make([]uint32, len(bounds))
	flat := make([]float64, 0, 6*len(bounds))
	for i, b := range bounds {
		idxs[i] = uint32(i)
		flat = append(flat, b[:]...)
	}

	meta := fmt.Sprintf("Variables in this file are %d gridbox indicies followed by the "+
		"[zmin, zmax, xmin, xmax, ymin, ymax] coordinates for each gridbox's boundaries", len(bounds))
	err := binfile.WriteFile(path, meta,
		binfile.Var{Unit: ' ', ScaleFactor: coord0, Data: idxs},
		binfile.Var{Unit: 'm', ScaleFactor: coord0, Data: flat},
	)
	if err != nil {
		return 0, err
	}
	return len(bounds), nil
}

// ReadBoundaries reads the dimensionless gridbox boundaries from path.
func ReadBoundaries(path string) ([][6]float64, error) {
	f, err := binfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(f.Vars) < 2 {
		return nil, fmt.Errorf("%s: expected gridbox indices and boundaries, found %d variables", path, len(f.Vars))
	}
	flat, err := f.Float64s(1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(flat)%6 != 0 {
		return nil, fmt.Errorf("%s: %w (%d values)", path, ErrBadBounds, len(flat))
	}

	bounds := make([][6]float64, len(flat)/6)
	for i := range bounds {
		copy(bounds[i][:], flat[6*i:6*i+6])
	}
	return bounds, nil
}

// ReadCentres reads the gridbox boundaries file at path and returns the
// centre of every gridbox re-dimensionalised by coord0.
func ReadCentres(path string, coord0 float64) (Geometry, error) {
	bounds, err := ReadBoundaries(path)
	if err != nil {
		return Geometry{}, err
	}
	g := Centres(bounds)
	for _, c := range [][]float64{g.Z, g.X, g.Y} {
		for i := range c {
			c[i] *= coord0
		}
	}
	return g, nil
}
