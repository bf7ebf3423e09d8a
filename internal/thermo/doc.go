// Package thermo prepares the thermodynamic input of the superdroplet model.
//
// Raw physical fields produced by a [Generator] on the gridbox centres of a
// domain pass through a fixed pipeline before being written, one binary file
// per field, for the model to read at startup:
//
//   - [Dedimensionaliser]: divide each field by its characteristic scale
//   - [Coerce]: make every field's element type float64
//   - [ValidateShape]: check every field holds ngridboxes × ntime samples
//   - [Serializer]: orchestrate the above and emit each non-empty field
//
// A [Bundle] maps [FieldName] to [Field]. Absent and empty fields are
// treated alike: they are exempt from shape checks and are not written.
package thermo
