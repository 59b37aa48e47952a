package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/mapdate/internal/db"
	"github.com/chris/mapdate/internal/timeaxis"
)

func addLayer(t *testing.T, dbPath, name, start, end, source string) string {
	t.Helper()
	out, _, err := execute(t, "layers", "add", name, "--db", dbPath,
		"--start", start, "--end", end, "--source", source)
	require.NoError(t, err)
	return out
}

func TestLayersAdd(t *testing.T) {
	path := initTestDB(t)

	out := addLayer(t, path, "Landsat 8 OLI", "2013-04-11", "", "USGS")
	assert.Contains(t, out, "Added layer 1: Landsat 8 OLI 2013-04-11..…")

	out = addLayer(t, path, "Landsat 5 TM", "1984-03-01", "2013-06-05", "USGS")
	assert.Contains(t, out, "Added layer 2: Landsat 5 TM 1984-03-01..2013-06-05")
}

func TestLayersAdd_InvertedExtent(t *testing.T) {
	path := initTestDB(t)

	_, _, err := execute(t, "layers", "add", "Backwards", "--db", path,
		"--start", "2010-01-01", "--end", "2009-01-01", "--source", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrInvalidExtent)
}

func TestLayersAdd_BadDate(t *testing.T) {
	path := initTestDB(t)

	_, _, err := execute(t, "layers", "add", "Broken", "--db", path,
		"--start", "2010-02-30", "--end", "", "--source", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --start")
}

func TestLayersList(t *testing.T) {
	path := initTestDB(t)
	addLayer(t, path, "MODIS Terra", "2000-02-24", "", "NASA")
	addLayer(t, path, "Landsat 5 TM", "1984-03-01", "2013-06-05", "USGS")

	out, _, err := execute(t, "layers", "list", "--db", path, "--on", "")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "MODIS Terra")
	assert.Contains(t, out, "Landsat 5 TM")
	assert.Less(t, indexOf(out, "Landsat 5 TM"), indexOf(out, "MODIS Terra"), "ordered by start date")

	out, _, err = execute(t, "layers", "list", "--db", path, "--on", "2014-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "MODIS Terra")
	assert.NotContains(t, out, "Landsat 5 TM")

	out, _, err = execute(t, "layers", "list", "--db", path, "--on", "1980-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "No layers found")
}

func TestLayersList_NotInitialized(t *testing.T) {
	_, _, err := execute(t, "layers", "list", "--db", testDBPath(t), "--on", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrNotInitialized)
}

func TestLayersDelete(t *testing.T) {
	path := initTestDB(t)
	addLayer(t, path, "MODIS Terra", "2000-02-24", "", "NASA")

	out, _, err := execute(t, "layers", "delete", "1", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted layer 1")

	_, _, err = execute(t, "layers", "delete", "1", "--db", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrLayerNotFound)
}

func TestLayersDelete_InvalidID(t *testing.T) {
	path := initTestDB(t)

	_, _, err := execute(t, "layers", "delete", "abc", "--db", path)
	assert.Error(t, err)

	_, _, err = execute(t, "layers", "delete", "0", "--db", path)
	assert.Error(t, err)
}

func TestLayersSeed(t *testing.T) {
	path := initTestDB(t)

	out, _, err := execute(t, "layers", "seed", "--db", path, "--config", testConfigPath(t), "--mosaics=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 6 layers (0 already present)")

	out, _, err = execute(t, "layers", "seed", "--db", path, "--config", testConfigPath(t), "--mosaics=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 0 layers (6 already present)")
}

func TestLayersSeed_Mosaics(t *testing.T) {
	path := initTestDB(t)

	out, _, err := execute(t, "layers", "seed", "--db", path, "--config", testConfigPath(t), "--mosaics=true")
	require.NoError(t, err)
	// six samples plus one mosaic per year 2000..2016
	assert.Contains(t, out, "Added 23 layers")

	database, err := db.New(path)
	require.NoError(t, err)
	defer database.Close()

	on, err := database.LayersOn(timeaxis.MustParseDate("2016-07-01"))
	require.NoError(t, err)
	names := make([]string, 0, len(on))
	for _, l := range on {
		names = append(names, l.Name)
	}
	assert.Contains(t, names, "Annual Mosaic 2016")
	assert.NotContains(t, names, "Annual Mosaic 2015")
}

func indexOf(s, sub string) int {
	return strings.Index(s, sub)
}
