package massmoms

import (
	"fmt"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// NetCDF is a Dataset backed by a netCDF file.
type NetCDF struct {
	nc api.Group
}

func OpenNetCDF(path string) (*NetCDF, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &NetCDF{nc: nc}, nil
}

func (d *NetCDF) Close() {
	d.nc.Close()
}

func (d *NetCDF) Values(name string) ([]float64, error) {
	v, err := d.nc.GetVariable(name)
	if err != nil {
		return nil, err
	}
	return flatten(v.Values)
}

func (d *NetCDF) Attr(name, key string) (string, bool) {
	v, err := d.nc.GetVariable(name)
	if err != nil || v.Attributes == nil {
		return "", false
	}
	a, ok := v.Attributes.Get(key)
	if !ok {
		return "", false
	}
	s, ok := a.(string)
	return s, ok
}

// flatten copies a numeric scalar or a (possibly nested) numeric slice into
// a flat []float64 in row-major order.
func flatten(values any) ([]float64, error) {
	if values == nil {
		return nil, fmt.Errorf("massmoms: variable has no values")
	}
	var out []float64
	var walk func(v reflect.Value) error
	walk = func(v reflect.Value) error {
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < v.Len(); i++ {
				if err := walk(v.Index(i)); err != nil {
					return err
				}
			}
		case reflect.Float32, reflect.Float64:
			out = append(out, v.Float())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out = append(out, float64(v.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			out = append(out, float64(v.Uint()))
		default:
			return fmt.Errorf("massmoms: cannot read %s values as numbers", v.Type())
		}
		return nil
	}
	if err := walk(reflect.ValueOf(values)); err != nil {
		return nil, err
	}
	return out, nil
}
