package thermo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/thermobin/internal/binfile"
	"github.com/san-kum/thermobin/internal/config"
	"github.com/san-kum/thermobin/internal/grid"
	"github.com/san-kum/thermobin/internal/scales"
	"go.uber.org/zap"
)

// SerializedField is everything written to the binary file of one field.
type SerializedField struct {
	Name        FieldName
	Data        Field
	Length      int
	DType       binfile.DType
	Unit        byte
	ScaleFactor float64
	Meta        string
}

// FieldWriter persists one serialized field at path.
type FieldWriter interface {
	WriteField(path string, f SerializedField) error
}

type FieldWriterFunc func(path string, f SerializedField) error

func (fn FieldWriterFunc) WriteField(path string, f SerializedField) error {
	return fn(path, f)
}

// BinaryWriter writes fields in the model's binary initialisation format.
type BinaryWriter struct{}

func (BinaryWriter) WriteField(path string, f SerializedField) error {
	return binfile.WriteFile(path, f.Meta, binfile.Var{
		Unit:        f.Unit,
		ScaleFactor: f.ScaleFactor,
		Data:        f.Data.Values(),
	})
}

// GridReader returns the gridbox centres stored at path, re-dimensionalised
// by coord0.
type GridReader func(path string, coord0 float64) (grid.Geometry, error)

// Serializer generates, non-dimensionalises, checks and writes
// thermodynamics files. Its zero value is not usable; see NewSerializer.
type Serializer struct {
	Logger *zap.Logger
	Grid   GridReader
	Writer FieldWriter
}

func NewSerializer(logger *zap.Logger) *Serializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Serializer{
		Logger: logger,
		Grid:   grid.ReadCentres,
		Writer: BinaryWriter{},
	}
}

// OutputPath returns the file a field is written to: path with its
// extension replaced by "_<field>.<ext>".
func OutputPath(path string, name FieldName) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + name.String() + ext
}

func metaString(name FieldName, ngbx, ntime, n int) string {
	return fmt.Sprintf("Variable in this file is flattened array of %s with original dimensions "+
		"[ngridboxes, time] = [%d, %d] (ie. file contains %d datapoints corresponding to "+
		"%d gridboxes over %d time steps)", name, ngbx, ntime, n, ngbx, ntime)
}

// Write generates thermodynamics with gen on the gridboxes of gridPath and
// writes each non-empty field to its own file derived from outputPath. All
// inputs are checked before the first file is written. The paths written
// are returned in canonical field order.
func (s *Serializer) Write(outputPath string, gen Generator, cfg, consts config.Floats, gridPath string) ([]string, error) {
	if _, err := os.Stat(gridPath); err != nil {
		return nil, &PreconditionError{Path: gridPath, Wrapped: err}
	}

	inputs, err := scales.Derive(consts, cfg)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("derived inputs",
		zap.Float64("coord0", inputs.Coord0),
		zap.Int("ntime", inputs.NTime),
	)

	geom, err := s.Grid(gridPath, inputs.Coord0)
	if err != nil {
		return nil, fmt.Errorf("reading grid: %w", err)
	}
	ngbx := geom.Len()

	raw, err := gen.Generate(geom, ngbx, inputs.NTime)
	if err != nil {
		return nil, fmt.Errorf("generating thermodynamics: %w", err)
	}

	dth := NewDedimensionaliser(inputs.Scales())
	data, sfs := dth.MakeDimensionless(raw)
	expected := data.Lengths()

	data, types, err := Coerce(data, binfile.Float64)
	if err != nil {
		return nil, err
	}
	if err := ValidateShape(data, expected, ngbx, inputs.NTime); err != nil {
		return nil, err
	}

	var written []string
	for i, name := range Fields {
		f := data[name]
		if f.Len() == 0 {
			continue
		}
		sf := SerializedField{
			Name:        name,
			Data:        f,
			Length:      expected[i],
			DType:       types[i],
			Unit:        name.Unit(),
			ScaleFactor: sfs[i],
			Meta:        metaString(name, ngbx, inputs.NTime, expected[i]),
		}
		path := OutputPath(outputPath, name)
		if err := s.Writer.WriteField(path, sf); err != nil {
			return written, fmt.Errorf("writing %s: %w", name, err)
		}
		s.Logger.Info("wrote thermodynamics field",
			zap.String("field", name.String()),
			zap.String("path", path),
			zap.Int("ndata", sf.Length),
		)
		written = append(written, path)
	}
	return written, nil
}
