package massmoms

import (
	"path/filepath"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, path string) {
	t.Helper()
	cw, err := cdf.OpenWriter(path)
	require.NoError(t, err)

	dims := []string{"time", "gbxindex"}
	add := func(name string, values any, units string) {
		attrs, err := util.NewOrderedMap([]string{"units"}, map[string]interface{}{"units": units})
		require.NoError(t, err)
		require.NoError(t, cw.AddVar(name, api.Variable{
			Values:     values,
			Dimensions: dims,
			Attributes: attrs,
		}))
	}
	add("nsupers", [][]int32{{4, 4, 3}, {2, 2, 1}}, " ")
	add("mom0", [][]float64{{100, 90, 80}, {70, 60, 50}}, " ")
	add("mom1", [][]float64{{2, 4, 1}, {8, 10, 5}}, "g")
	add("mom2", [][]float64{{1, 2, 3}, {16, 5, 25}}, "g^2")
	require.NoError(t, cw.Close())
}

func TestNetCDFDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdm.nc")
	writeDataset(t, path)

	ds, err := OpenNetCDF(path)
	require.NoError(t, err)
	defer ds.Close()

	m, err := New(ds, 2, []int{3}, "")
	require.NoError(t, err)

	assert.Equal(t, 2.0, m.NSupers.At(1, 0))
	assert.Equal(t, 50.0, m.Mom0.At(1, 2))
	assert.Equal(t, "g^2/g", m.EffMassUnits)

	eff, err := m.Get("effmass")
	require.NoError(t, err)
	assert.Equal(t, 2.0, eff.At(1, 0))
	assert.Equal(t, 3.0, eff.At(0, 2))
}
