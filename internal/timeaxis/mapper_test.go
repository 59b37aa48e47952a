package timeaxis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testViewport has a 1000px content area starting at x=200
func testViewport() Viewport {
	return Viewport{
		Width:  1260,
		Height: 50,
		Margin: Margin{Top: 0, Right: 60, Bottom: 18, Left: 200},
	}
}

func TestContentWidth(t *testing.T) {
	vp := testViewport()
	assert.Equal(t, 1000.0, vp.ContentWidth())
	assert.Equal(t, 200.0, vp.Left())
	assert.Equal(t, 1200.0, vp.Right())

	tiny := Viewport{Width: 10, Margin: Margin{Left: 20, Right: 20}}
	assert.Equal(t, 1.0, tiny.ContentWidth())
}

func TestScaleOrdering(t *testing.T) {
	assert.Greater(t, ScaleFor(Days), ScaleFor(Months))
	assert.Greater(t, ScaleFor(Months), ScaleFor(Years))
	assert.Equal(t, 1.0, ScaleFor(Years))
}

func TestMapperAtUnitScaleSpansContent(t *testing.T) {
	b := testBounds(t)
	m := NewMapper(b, testViewport(), 1)

	assert.InDelta(t, 200.0, m.XFromDate(b.Min), 1e-9)
	assert.InDelta(t, 1200.0, m.XFromDate(b.Max), 1e-9)
	assert.Equal(t, b.Min, m.DateFromX(200))
	assert.Equal(t, b.Max, m.DateFromX(1200))
}

func TestMapperRoundTripWithinOnePixel(t *testing.T) {
	b := testBounds(t)
	for _, r := range []Resolution{Days, Months, Years} {
		m := NewMapper(b, testViewport(), ScaleFor(r))
		m.CenterOn(MustParseDate("2010-06-15"))

		for d := b.Min; !d.After(b.Max); d = d.AddDays(37) {
			x := m.XFromDate(d)
			back := m.XFromDate(m.DateFromX(x))
			assert.InDelta(t, x, back, 1.0, "resolution %s date %s", r, d)
		}
	}
}

func TestMapperDayScaleIsExactInverse(t *testing.T) {
	b := testBounds(t)
	m := NewMapper(b, testViewport(), ScaleFor(Days))
	for d := b.Min; !d.After(b.Max); d = d.AddDays(11) {
		assert.Equal(t, d, m.DateFromX(m.XFromDate(d)), d.String())
	}
}

func TestMapperDateFromXIsMonotonic(t *testing.T) {
	b := testBounds(t)
	for _, r := range []Resolution{Days, Months, Years} {
		m := NewMapper(b, testViewport(), ScaleFor(r))
		m.Pan(-1234.5)

		prev := m.DateFromX(-2000)
		for x := -2000.0; x <= 4000; x += 0.5 {
			cur := m.DateFromX(x)
			assert.False(t, cur.Before(prev), "resolution %s x=%v", r, x)
			prev = cur
		}
	}
}

func TestMapperExtrapolatesOutsideViewport(t *testing.T) {
	b := testBounds(t)
	m := NewMapper(b, testViewport(), 1)

	assert.True(t, m.DateFromX(-500).Before(b.Min))
	assert.True(t, m.DateFromX(5000).After(b.Max))
}

func TestRescaleKeepsAnchorPixel(t *testing.T) {
	b := testBounds(t)
	anchor := MustParseDate("2010-06-15")
	m := NewMapper(b, testViewport(), ScaleFor(Years))
	m.Pan(-42)
	before := m.XFromDate(anchor)

	m.Rescale(ScaleFor(Days), anchor)
	assert.Equal(t, ScaleFor(Days), m.Scale())
	assert.InDelta(t, before, m.XFromDate(anchor), 1e-6)
	assert.Equal(t, anchor, m.DateFromX(before))

	m.Rescale(ScaleFor(Months), anchor)
	assert.InDelta(t, before, m.XFromDate(anchor), 1e-6)
}

func TestRescaleIgnoresNonPositiveScale(t *testing.T) {
	m := NewMapper(testBounds(t), testViewport(), 16)
	m.Rescale(0, MustParseDate("2010-01-01"))
	assert.Equal(t, 16.0, m.Scale())
}

func TestResizeKeepsAnchorFraction(t *testing.T) {
	b := testBounds(t)
	anchor := MustParseDate("2010-06-15")
	m := NewMapper(b, testViewport(), ScaleFor(Months))
	m.CenterOn(anchor)
	assert.InDelta(t, 700.0, m.XFromDate(anchor), 1e-6)

	wide := testViewport()
	wide.Width = 2260
	m.Resize(wide, anchor)
	assert.InDelta(t, 1200.0, m.XFromDate(anchor), 1e-6)
}

func TestPanShiftsWindow(t *testing.T) {
	m := NewMapper(testBounds(t), testViewport(), ScaleFor(Days))
	m.CenterOn(MustParseDate("2010-06-15"))
	left, right := m.Window()

	m.Pan(m.PixelsPerDay() * 10)
	left2, right2 := m.Window()
	assert.Equal(t, left.AddDays(-10), left2)
	assert.Equal(t, right.AddDays(-10), right2)
}

func TestEdgeAt(t *testing.T) {
	vp := testViewport()
	assert.Equal(t, EdgeLeft, vp.EdgeAt(205, 10))
	assert.Equal(t, EdgeLeft, vp.EdgeAt(0, 10))
	assert.Equal(t, EdgeNone, vp.EdgeAt(211, 10))
	assert.Equal(t, EdgeNone, vp.EdgeAt(700, 10))
	assert.Equal(t, EdgeRight, vp.EdgeAt(1190, 10))
	assert.Equal(t, EdgeRight, vp.EdgeAt(1500, 10))
}
