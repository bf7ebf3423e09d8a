// Package binfile reads and writes the flat binary initialisation files
// consumed by the superdroplet model at startup.
//
// A file starts with four little-endian uint32 values (first data byte,
// metadata string length, number of variables, metadata bytes per variable),
// followed by the descriptive metadata string, one fixed-size metadata record
// per variable and finally the data of every variable in declaration order:
//
//	d0byte | charbytes | nvars | mbytes_pervar
//	metastr
//	b0 | bsize | nvar | vtype | unit | scale_factor    (once per variable)
//	data...
package binfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

const (
	headerBytes = 4 * 4

	// VarMetaBytes is the size of one per-variable metadata record.
	VarMetaBytes = 3*4 + 2 + 8
)

var (
	// ErrShortFile indicates a header or record pointing past the end of the data.
	ErrShortFile = errors.New("binfile: file shorter than its declared layout")

	// ErrUnknownDType indicates a variable type tag other than 'd', 'f' or 'I'.
	ErrUnknownDType = errors.New("binfile: unknown data type")

	// ErrDTypeMismatch indicates a variable read as a type it was not stored as.
	ErrDTypeMismatch = errors.New("binfile: variable has a different data type")

	// ErrNoVariable indicates a variable index beyond the file's count.
	ErrNoVariable = errors.New("binfile: variable index out of range")
)

var order = binary.LittleEndian

// DType is the single character tag the model uses to identify the element
// type of a variable.
type DType byte

const (
	Float64 DType = 'd'
	Float32 DType = 'f'
	Uint32  DType = 'I'
)

func (d DType) Size() int {
	switch d {
	case Float64:
		return 8
	case Float32, Uint32:
		return 4
	}
	return 0
}

func (d DType) Valid() bool {
	return d.Size() > 0
}

func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Uint32:
		return "uint32"
	}
	return fmt.Sprintf("dtype(%q)", byte(d))
}

// Var is one variable to be written. Data must be a []float64, []float32
// or []uint32.
type Var struct {
	Unit        byte
	ScaleFactor float64
	Data        any
}

func dataInfo(data any) (DType, int, error) {
	switch v := data.(type) {
	case []float64:
		return Float64, len(v), nil
	case []float32:
		return Float32, len(v), nil
	case []uint32:
		return Uint32, len(v), nil
	}
	return 0, 0, fmt.Errorf("%w: %T", ErrUnknownDType, data)
}

// VarMeta is the metadata record of one variable as stored in a file.
type VarMeta struct {
	B0          uint32
	BSize       uint32
	N           uint32
	DType       DType
	Unit        byte
	ScaleFactor float64
}

// Encode lays out meta and vars in the model's binary format.
func Encode(meta string, vars ...Var) ([]byte, error) {
	metas := make([]VarMeta, len(vars))
	d0 := headerBytes + len(meta) + len(vars)*VarMetaBytes
	pos := d0
	for i, v := range vars {
		dt, n, err := dataInfo(v.Data)
		if err != nil {
			return nil, fmt.Errorf("variable %d: %w", i, err)
		}
		metas[i] = VarMeta{
			B0:          uint32(pos),
			BSize:       uint32(dt.Size()),
			N:           uint32(n),
			DType:       dt,
			Unit:        v.Unit,
			ScaleFactor: v.ScaleFactor,
		}
		pos += n * dt.Size()
	}

	buf := bytes.NewBuffer(make([]byte, 0, pos))
	header := []uint32{uint32(d0), uint32(len(meta)), uint32(len(vars)), VarMetaBytes}
	if err := binary.Write(buf, order, header); err != nil {
		return nil, err
	}
	buf.WriteString(meta)
	for _, m := range metas {
		if err := binary.Write(buf, order, []uint32{m.B0, m.BSize, m.N}); err != nil {
			return nil, err
		}
		buf.WriteByte(byte(m.DType))
		buf.WriteByte(m.Unit)
		if err := binary.Write(buf, order, m.ScaleFactor); err != nil {
			return nil, err
		}
	}
	for _, v := range vars {
		if err := binary.Write(buf, order, v.Data); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// WriteFile encodes the variables and writes them to path, replacing any
// existing file. Nothing is written if encoding fails.
func WriteFile(path, meta string, vars ...Var) error {
	data, err := Encode(meta, vars...)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// File is a decoded binary file.
type File struct {
	Meta string
	Vars []VarMeta
	raw  []byte
}

func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func Decode(data []byte) (*File, error) {
	if len(data) < headerBytes {
		return nil, ErrShortFile
	}
	d0 := int(order.Uint32(data[0:]))
	charbytes := int(order.Uint32(data[4:]))
	nvars := int(order.Uint32(data[8:]))
	mbytes := int(order.Uint32(data[12:]))
	if mbytes < VarMetaBytes {
		return nil, fmt.Errorf("binfile: metadata record of %d bytes, need %d", mbytes, VarMetaBytes)
	}
	if uint64(len(data)) < uint64(headerBytes)+uint64(charbytes)+uint64(nvars)*uint64(mbytes) || len(data) < d0 {
		return nil, ErrShortFile
	}

	f := &File{
		Meta: string(data[headerBytes : headerBytes+charbytes]),
		Vars: make([]VarMeta, nvars),
		raw:  data,
	}
	pos := headerBytes + charbytes
	for i := range f.Vars {
		rec := data[pos : pos+mbytes]
		m := VarMeta{
			B0:          order.Uint32(rec[0:]),
			BSize:       order.Uint32(rec[4:]),
			N:           order.Uint32(rec[8:]),
			DType:       DType(rec[12]),
			Unit:        rec[13],
			ScaleFactor: math.Float64frombits(order.Uint64(rec[14:22])),
		}
		if !m.DType.Valid() {
			return nil, fmt.Errorf("variable %d: %w %q", i, ErrUnknownDType, byte(m.DType))
		}
		if uint64(m.B0)+uint64(m.N)*uint64(m.BSize) > uint64(len(data)) {
			return nil, fmt.Errorf("variable %d: %w", i, ErrShortFile)
		}
		f.Vars[i] = m
		pos += mbytes
	}
	return f, nil
}

func (f *File) variable(i int, want DType) (VarMeta, []byte, error) {
	if i < 0 || i >= len(f.Vars) {
		return VarMeta{}, nil, fmt.Errorf("%w: %d of %d", ErrNoVariable, i, len(f.Vars))
	}
	m := f.Vars[i]
	if m.DType != want {
		return m, nil, fmt.Errorf("%w: variable %d is %s, not %s", ErrDTypeMismatch, i, m.DType, want)
	}
	end := int(m.B0) + int(m.N)*int(m.BSize)
	return m, f.raw[m.B0:end], nil
}

func (f *File) Float64s(i int) ([]float64, error) {
	m, raw, err := f.variable(i, Float64)
	if err != nil {
		return nil, err
	}
	out := make([]float64, m.N)
	if err := binary.Read(bytes.NewReader(raw), order, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *File) Float32s(i int) ([]float32, error) {
	m, raw, err := f.variable(i, Float32)
	if err != nil {
		return nil, err
	}
	out := make([]float32, m.N)
	if err := binary.Read(bytes.NewReader(raw), order, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *File) Uint32s(i int) ([]uint32, error) {
	m, raw, err := f.variable(i, Uint32)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, m.N)
	if err := binary.Read(bytes.NewReader(raw), order, out); err != nil {
		return nil, err
	}
	return out, nil
}
