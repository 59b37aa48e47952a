package timeaxis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type commitLog struct {
	dates []Date
}

func (c *commitLog) commit(d Date) { c.dates = append(c.dates, d) }

func (c *commitLog) strings() []string {
	out := make([]string, len(c.dates))
	for i, d := range c.dates {
		out[i] = d.String()
	}
	return out
}

func TestStepYearsAtUpperBoundIsRejected(t *testing.T) {
	var log commitLog
	s := NewStepper(testBounds(t), log.commit)
	current := MustParseDate("2016-01-01")

	got := s.Step(current, Years, 1)
	assert.Equal(t, "2016-01-01", got.String())
	assert.Empty(t, log.dates)

	got = s.Step(current, Years, -1)
	assert.Equal(t, "2015-01-01", got.String())
	assert.Equal(t, []string{"2015-01-01"}, log.strings())
}

func TestStepForwardFromMaxNeverClamps(t *testing.T) {
	b := testBounds(t)
	for _, r := range []Resolution{Days, Months, Years} {
		var log commitLog
		s := NewStepper(b, log.commit)
		got := s.Step(b.Max, r, 1)
		assert.Equal(t, b.Max, got, r.String())
		assert.Empty(t, log.dates, r.String())
	}
}

func TestStepBackFromMinIsRejected(t *testing.T) {
	var log commitLog
	b := testBounds(t)
	s := NewStepper(b, log.commit)

	got := s.Step(b.Min, Days, -1)
	assert.Equal(t, b.Min, got)
	assert.Empty(t, log.dates)
}

func TestStepBoundsAreInclusive(t *testing.T) {
	var log commitLog
	s := NewStepper(testBounds(t), log.commit)

	got := s.Step(MustParseDate("2016-12-30"), Days, 1)
	assert.Equal(t, "2016-12-31", got.String())
	got = s.Step(MustParseDate("2000-02-01"), Months, -1)
	assert.Equal(t, "2000-01-01", got.String())
	assert.Len(t, log.dates, 2)
}

func TestStepMonthClampsDay(t *testing.T) {
	var log commitLog
	s := NewStepper(testBounds(t), log.commit)

	got := s.Step(MustParseDate("2010-01-31"), Months, 1)
	assert.Equal(t, "2010-02-28", got.String())
}

func TestSetYearBeforeMinReverts(t *testing.T) {
	var log commitLog
	s := NewStepper(testBounds(t), log.commit)
	current := MustParseDate("2005-05-05")

	got := s.SetComponent(current, Years, "1999")
	assert.Equal(t, current, got)
	assert.Equal(t, []string{"2005-05-05"}, log.strings(), "revert recommits the prior date")
}

func TestSetComponentAccepted(t *testing.T) {
	var log commitLog
	s := NewStepper(testBounds(t), log.commit)
	current := MustParseDate("2012-02-10")

	assert.Equal(t, "2008-02-10", s.SetComponent(current, Years, "2008").String())
	assert.Equal(t, "2012-07-10", s.SetComponent(current, Months, "Jul").String())
	assert.Equal(t, "2012-11-10", s.SetComponent(current, Months, "11").String())
	assert.Equal(t, "2012-09-10", s.SetComponent(current, Months, "september").String())
	assert.Equal(t, "2012-02-29", s.SetComponent(current, Days, "29").String())
	assert.Len(t, log.dates, 5)
}

func TestSetComponentInvalidCalendarDateReverts(t *testing.T) {
	var log commitLog
	s := NewStepper(testBounds(t), log.commit)

	current := MustParseDate("2012-03-30")
	assert.Equal(t, current, s.SetComponent(current, Months, "Feb"))

	leap := MustParseDate("2016-02-29")
	assert.Equal(t, leap, s.SetComponent(leap, Years, "2015"))

	assert.Equal(t, current, s.SetComponent(current, Days, "32"))
	assert.Equal(t, current, s.SetComponent(current, Days, "abc"))
	assert.Equal(t, current, s.SetComponent(current, Months, "Ju"))
	assert.Equal(t, current, s.SetComponent(current, Months, "13"))
	assert.Equal(t, current, s.SetComponent(current, Years, ""))

	assert.Len(t, log.dates, 7)
	for _, d := range log.dates[2:] {
		assert.Equal(t, current, d)
	}
}

func TestSetYearAfterMaxReverts(t *testing.T) {
	var log commitLog
	s := NewStepper(testBounds(t), log.commit)
	current := MustParseDate("2016-06-01")

	assert.Equal(t, current, s.SetComponent(current, Years, "2017"))
	assert.Equal(t, []string{"2016-06-01"}, log.strings())
}

func TestNewStepperNilCommit(t *testing.T) {
	s := NewStepper(testBounds(t), nil)
	assert.Equal(t, "2010-01-02", s.Step(MustParseDate("2010-01-01"), Days, 1).String())
}
