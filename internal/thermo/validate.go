package thermo

import "errors"

// ValidateShape checks that every field with a non-zero expected length
// holds ngbx*ntime samples and that all such fields agree in length. Fields
// expected to be empty are exempt. Every violation found is reported in the
// returned error.
func ValidateShape(b Bundle, expected Lengths, ngbx, ntime int) error {
	want := ngbx * ntime

	var checked []FieldName
	var lengths []int
	for i, name := range Fields {
		if expected[i] == 0 {
			continue
		}
		checked = append(checked, name)
		lengths = append(lengths, b[name].Len())
	}

	var errs []error
	for _, n := range lengths {
		if n != lengths[0] {
			errs = append(errs, &InconsistentLengthError{Lengths: lengths})
			break
		}
	}
	for i, name := range checked {
		if lengths[i] != want {
			errs = append(errs, &ShapeMismatchError{Field: name, Length: lengths[i], Want: want})
		}
	}
	return errors.Join(errs...)
}
