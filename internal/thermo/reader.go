package thermo

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/san-kum/thermobin/internal/binfile"
	"github.com/san-kum/thermobin/internal/scales"
)

// ReadDimless reads back every field file derived from outputPath that
// exists. Missing files are treated as omitted fields.
func ReadDimless(outputPath string) (Bundle, error) {
	b := Bundle{}
	for _, name := range Fields {
		path := OutputPath(outputPath, name)
		f, err := binfile.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(f.Vars) != 1 {
			return nil, fmt.Errorf("%s: expected 1 variable, found %d", path, len(f.Vars))
		}

		switch f.Vars[0].DType {
		case binfile.Float32:
			v, err := f.Float32s(0)
			if err != nil {
				return nil, err
			}
			b[name] = Float32Field(v)
		default:
			v, err := f.Float64s(0)
			if err != nil {
				return nil, err
			}
			b[name] = Float64Field(v)
		}
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoFields, outputPath)
	}
	return b, nil
}

// ReadFields reads the field files derived from outputPath and
// re-dimensionalises them with s.
func ReadFields(outputPath string, s scales.Set) (Bundle, error) {
	b, err := ReadDimless(outputPath)
	if err != nil {
		return nil, err
	}
	return NewDedimensionaliser(s).Redimensionalise(b), nil
}
