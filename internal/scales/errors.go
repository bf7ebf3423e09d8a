package scales

import (
	"errors"
	"fmt"
)

// ErrInvalidTimestep indicates a coupling timestep or end time that cannot
// give a finite, positive number of timesteps.
var ErrInvalidTimestep = errors.New("scales: coupling timestep must be positive and end time non-negative, both finite")

// MissingKeyError reports a named constant or config entry that is required
// to derive the characteristic scales but was not supplied.
type MissingKeyError struct {
	Source string
	Key    string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("scales: %s is missing required key %q", e.Source, e.Key)
}
