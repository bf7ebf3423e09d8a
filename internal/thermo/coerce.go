package thermo

import (
	"errors"

	"github.com/san-kum/thermobin/internal/binfile"
)

// Types holds the element type of each field in canonical order.
type Types [NumFields]binfile.DType

// Coerce converts every non-empty field of b whose element type is not
// target. Each conversion is reported as a *TypeCoercionError, but the
// converted bundle is still returned in full. Empty fields are not checked.
func Coerce(b Bundle, target binfile.DType) (Bundle, Types, error) {
	out := make(Bundle, len(b))
	var types Types
	var errs []error
	for i, name := range Fields {
		types[i] = target
		f, ok := b[name]
		if !ok {
			continue
		}
		if f.Len() > 0 && f.DType() != target {
			errs = append(errs, &TypeCoercionError{Field: name, From: f.DType(), To: target})
			f = f.Convert(target)
		}
		out[name] = f
	}
	return out, types, errors.Join(errs...)
}
