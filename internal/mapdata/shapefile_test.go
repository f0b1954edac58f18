package mapdata

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minX, minY, size float64) *shp.Polygon {
	ring := []shp.Point{
		{X: minX, Y: minY},
		{X: minX, Y: minY + size},
		{X: minX + size, Y: minY + size},
		{X: minX + size, Y: minY},
		{X: minX, Y: minY},
	}
	return (*shp.Polygon)(shp.NewPolyLine([][]shp.Point{ring}))
}

func writeCountriesShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	w.SetFields([]shp.Field{shp.StringField("NAME", 64)})

	w.Write(square(0, 0, 10))
	require.NoError(t, w.WriteAttribute(0, 0, "France"))

	w.Write(square(20, 20, 10))
	require.NoError(t, w.WriteAttribute(1, 0, "Brazil"))

	w.Close()
	return path
}

func writeProvincesShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "provinces.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	w.SetFields([]shp.Field{
		shp.StringField("admin", 64),
		shp.StringField("name", 64),
	})

	w.Write(square(20, 20, 5))
	require.NoError(t, w.WriteAttribute(0, 0, "Brazil"))
	require.NoError(t, w.WriteAttribute(0, 1, "Bahia"))

	w.Close()
	return path
}

func TestLoadShapefile_Countries(t *testing.T) {
	path := writeCountriesShapefile(t)

	ds, err := LoadShapefile(path, CountryNameField, "")
	require.NoError(t, err)
	require.Len(t, ds.Features, 2)

	assert.Equal(t, "France", ds.Features[0].Name)
	assert.Empty(t, ds.Features[0].Admin)
	require.NotNil(t, ds.Features[0].Geom)
	assert.Equal(t, 1, ds.Features[0].Geom.NumPolygons())

	assert.Equal(t, "Brazil", ds.Features[1].Name)

	minX, minY, maxX, maxY := ds.Bounds()
	assert.InDelta(t, 0, minX, 1e-9)
	assert.InDelta(t, 0, minY, 1e-9)
	assert.InDelta(t, 30, maxX, 1e-9)
	assert.InDelta(t, 30, maxY, 1e-9)
}

func TestLoadShapefile_Provinces(t *testing.T) {
	path := writeProvincesShapefile(t)

	ds, err := LoadShapefile(path, ProvinceNameField, ProvinceAdminField)
	require.NoError(t, err)
	require.Len(t, ds.Features, 1)

	assert.Equal(t, "Bahia", ds.Features[0].Name)
	assert.Equal(t, "Brazil", ds.Features[0].Admin)
}

func TestLoadShapefile_MissingField(t *testing.T) {
	path := writeCountriesShapefile(t)

	_, err := LoadShapefile(path, "NO_SUCH_FIELD", "")
	assert.Error(t, err)
}

func TestLoadShapefile_MissingFile(t *testing.T) {
	_, err := LoadShapefile(filepath.Join(t.TempDir(), "nope.shp"), CountryNameField, "")
	assert.Error(t, err)
}
