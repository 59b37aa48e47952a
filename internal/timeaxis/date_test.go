package timeaxis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2010-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2010, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, "2010-06-15", d.String())

	_, err = ParseDate("2010-02-30")
	assert.Error(t, err)
	_, err = ParseDate("june")
	assert.Error(t, err)
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	d := DateOf(time.Date(2016, 3, 1, 23, 59, 0, 0, loc))
	assert.Equal(t, "2016-03-01", d.String())
}

func TestOrdinalRoundTrip(t *testing.T) {
	for _, s := range []string{"1969-12-31", "1970-01-01", "2000-02-29", "2016-12-31"} {
		d := MustParseDate(s)
		assert.True(t, d.Equal(FromOrdinal(d.Ordinal())), s)
	}
	assert.Equal(t, int64(0), MustParseDate("1970-01-01").Ordinal())
	assert.Equal(t, int64(-1), MustParseDate("1969-12-31").Ordinal())
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	assert.Equal(t, "2015-02-28", MustParseDate("2015-01-31").Add(Months, 1).String())
	assert.Equal(t, "2016-02-29", MustParseDate("2016-01-31").Add(Months, 1).String())
	assert.Equal(t, "2015-11-30", MustParseDate("2015-12-31").Add(Months, -1).String())
	assert.Equal(t, "2016-01-15", MustParseDate("2015-12-15").Add(Months, 1).String())
}

func TestAddYearsFromLeapDay(t *testing.T) {
	assert.Equal(t, "2017-02-28", MustParseDate("2016-02-29").Add(Years, 1).String())
	assert.Equal(t, "2015-01-01", MustParseDate("2016-01-01").Add(Years, -1).String())
}

func TestAddDaysCrossesMonth(t *testing.T) {
	assert.Equal(t, "2016-03-01", MustParseDate("2016-02-29").Add(Days, 1).String())
	assert.Equal(t, "2015-12-31", MustParseDate("2016-01-01").Add(Days, -1).String())
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(2016, time.February, 29))
	assert.False(t, Valid(2015, time.February, 29))
	assert.False(t, Valid(2015, time.April, 31))
	assert.False(t, Valid(2015, 13, 1))
	assert.False(t, Valid(2015, time.May, 0))
}

func TestParseResolution(t *testing.T) {
	for in, want := range map[string]Resolution{
		"days": Days, "Day": Days, "months": Months, "MONTH": Months, "years": Years, " y ": Years,
	} {
		got, err := ParseResolution(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseResolution("weeks")
	assert.ErrorIs(t, err, ErrUnknownResolution)
}

func TestResolutionNextCycles(t *testing.T) {
	assert.Equal(t, Months, Days.Next())
	assert.Equal(t, Years, Months.Next())
	assert.Equal(t, Days, Years.Next())
}

func TestDateTextMarshaling(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2004-07-04")))
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2004-07-04", string(b))
}
