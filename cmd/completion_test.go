package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteResolution(t *testing.T) {
	completions, directive := completeResolution(stepCmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Equal(t, []string{
		"days\tOne day per step",
		"months\tOne month per step",
		"years\tOne year per step",
	}, completions)
}

func TestCompleteLayerID(t *testing.T) {
	path := initTestDB(t)
	addLayer(t, path, "MODIS Terra", "2000-02-24", "", "NASA")
	addLayer(t, path, "Landsat 5 TM", "1984-03-01", "2013-06-05", "USGS")

	out, _, err := execute(t, cobra.ShellCompRequestCmd, "layers", "delete", "--db", path, "")
	require.NoError(t, err)
	assert.Contains(t, out, "1\tMODIS Terra")
	assert.Contains(t, out, "2\tLandsat 5 TM")
}

func TestCompleteLayerID_NoCatalog(t *testing.T) {
	old := dbPath
	dbPath = testDBPath(t)
	defer func() { dbPath = old }()

	completions, directive := completeLayerID(layersDeleteCmd, nil, "")
	assert.Empty(t, completions)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestCompleteDateUsesConfig(t *testing.T) {
	old := configPath
	configPath = testConfigPath(t)
	defer func() { configPath = old }()

	completions, _ := completeDate(stepCmd, nil, "")
	assert.Equal(t, []string{
		"2016-12-31\tStart date",
		"2000-01-01\tEarliest date",
		"2016-12-31\tLatest date",
	}, completions)
}
