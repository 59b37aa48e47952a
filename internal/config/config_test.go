package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/mapdate/internal/timeaxis"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadPartialFileIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `min_date: 2010-01-01
max_date: "2012-06-30"
resolution: months
autoscroll_period: 20ms
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, timeaxis.NewDate(2010, time.January, 1), cfg.MinDate)
	assert.Equal(t, timeaxis.NewDate(2012, time.June, 30), cfg.MaxDate)
	assert.Equal(t, "months", cfg.Resolution)
	assert.Equal(t, 20*time.Millisecond, cfg.AutoScrollPeriod)
	assert.Equal(t, timeaxis.DefaultCommitPeriod, cfg.CommitPeriod)
	assert.Equal(t, 2.0, cfg.EdgeThreshold)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "%A %Y-%m-%d", cfg.DateFormat)

	res, err := cfg.ParsedResolution()
	require.NoError(t, err)
	assert.Equal(t, timeaxis.Months, res)
}

func TestLoadRejectsInvertedBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "min_date: 2016-01-01\nmax_date: 2000-01-01\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, timeaxis.ErrInvertedBounds)
}

func TestLoadRejectsBadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_date: 2016-02-30\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.StartDate = timeaxis.NewDate(2008, time.March, 15)
	cfg.Resolution = "years"
	cfg.LogFile = "/tmp/mapdate.log"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestInitialDate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.MaxDate, cfg.InitialDate())

	cfg.StartDate = timeaxis.NewDate(1990, time.May, 5)
	assert.Equal(t, cfg.MinDate, cfg.InitialDate())

	cfg.StartDate = timeaxis.NewDate(2005, time.May, 5)
	assert.Equal(t, cfg.StartDate, cfg.InitialDate())
}

func TestTimelineOptionsApply(t *testing.T) {
	cfg := DefaultConfig()
	b, err := cfg.Bounds()
	require.NoError(t, err)

	vp := timeaxis.Viewport{Width: 80, Height: 24, Margin: cfg.Margin}
	tl := timeaxis.New(b, vp, cfg.InitialDate(), timeaxis.Days, cfg.TimelineOptions()...)

	// the right band is EdgeThreshold cells wide
	tl.BeginDrag()
	tl.PointerMove(vp.Right() - cfg.EdgeThreshold)
	assert.Equal(t, timeaxis.DraggingAutoScrollRight, tl.State())
	tl.PointerMove(vp.Right() - cfg.EdgeThreshold - 1)
	assert.Equal(t, timeaxis.Dragging, tl.State())
}
