package thermo

import (
	"errors"
	"fmt"

	"github.com/san-kum/thermobin/internal/binfile"
)

// ErrNoFields indicates that none of a set of field files exist.
var ErrNoFields = errors.New("thermo: no thermodynamics files found")

// PreconditionError reports an input resource that must exist before
// thermodynamics can be serialized.
type PreconditionError struct {
	Path    string
	Wrapped error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("thermo: gridfile %s not found, but must be created before thermodynamics can be", e.Path)
}

func (e *PreconditionError) Unwrap() error {
	return e.Wrapped
}

// InconsistentLengthError reports fields that should all be populated but
// have differing sample counts.
type InconsistentLengthError struct {
	Lengths []int
}

func (e *InconsistentLengthError) Error() string {
	return fmt.Sprintf("thermo: not all variables in thermodynamics data are the same length, ndata = %v", e.Lengths)
}

// ShapeMismatchError reports a field whose sample count is not
// ngridboxes × ntime.
type ShapeMismatchError struct {
	Field  FieldName
	Length int
	Want   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("thermo: %s has %d datapoints, should be %d since data is [ntime]*ngridboxes",
		e.Field, e.Length, e.Want)
}

// TypeCoercionError reports a field whose element type had to be changed.
// The conversion has already been made when this error is returned.
type TypeCoercionError struct {
	Field FieldName
	From  binfile.DType
	To    binfile.DType
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("thermo: dtype of %s is being changed from %s to %s", e.Field, e.From, e.To)
}

type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("thermo: no known field %q", e.Name)
}
