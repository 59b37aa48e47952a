package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/mapdate/internal/db"
	"github.com/chris/mapdate/internal/db/migrations"
)

func TestInitDBCommand(t *testing.T) {
	path := testDBPath(t)

	out, _, err := execute(t, "init-db", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized: "+path)

	database, err := db.New(path)
	require.NoError(t, err)
	defer database.Close()

	version, err := database.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, migrations.Latest(), version)
}

func TestInitDBCommand_Idempotent(t *testing.T) {
	path := initTestDB(t)

	out, _, err := execute(t, "init-db", "--db", path)
	require.NoError(t, err)
	assert.Empty(t, out, "second run is silent")
}
