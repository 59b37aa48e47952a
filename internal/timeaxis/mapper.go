package timeaxis

import "math"

// Mapper converts between horizontal pixel offsets and dates.
//
// At scale 1 the whole Bounds span fills the content width; scale k
// multiplies the density by k. Offset is the pan translation in pixels and
// is what auto-scroll and re-anchoring move. Positions outside the viewport
// extrapolate linearly.
type Mapper struct {
	bounds   Bounds
	viewport Viewport
	scale    float64
	offset   float64
}

// NewMapper returns a mapper at the given scale with no pan
func NewMapper(b Bounds, vp Viewport, scale float64) *Mapper {
	if scale <= 0 {
		scale = 1
	}
	return &Mapper{bounds: b, viewport: vp, scale: scale}
}

func (m *Mapper) Scale() float64     { return m.scale }
func (m *Mapper) Offset() float64    { return m.offset }
func (m *Mapper) Viewport() Viewport { return m.viewport }
func (m *Mapper) Bounds() Bounds     { return m.bounds }

// PixelsPerDay is the current horizontal density
func (m *Mapper) PixelsPerDay() float64 {
	return m.scale * m.viewport.ContentWidth() / float64(m.bounds.Span())
}

// XFromDate returns the pixel position of d
func (m *Mapper) XFromDate(d Date) float64 {
	days := float64(d.Ordinal() - m.bounds.Min.Ordinal())
	return m.viewport.Left() + m.offset + days*m.PixelsPerDay()
}

// DateFromX returns the date under pixel x, rounded to the nearest day
func (m *Mapper) DateFromX(x float64) Date {
	days := (x - m.viewport.Left() - m.offset) / m.PixelsPerDay()
	return FromOrdinal(m.bounds.Min.Ordinal() + int64(math.Floor(days+0.5)))
}

// Rescale changes the zoom density while keeping anchor at its current pixel
func (m *Mapper) Rescale(scale float64, anchor Date) {
	if scale <= 0 {
		return
	}
	x := m.XFromDate(anchor)
	m.scale = scale
	m.pin(anchor, x)
}

// Resize swaps in new geometry, keeping anchor at the same fraction of the
// content width
func (m *Mapper) Resize(vp Viewport, anchor Date) {
	frac := (m.XFromDate(anchor) - m.viewport.Left()) / m.viewport.ContentWidth()
	m.viewport = vp
	m.pin(anchor, vp.Left()+frac*vp.ContentWidth())
}

// CenterOn pans so d sits in the middle of the content area
func (m *Mapper) CenterOn(d Date) {
	m.pin(d, m.viewport.Left()+m.viewport.ContentWidth()/2)
}

// Pan shifts the visible window by dx pixels. Positive dx moves content
// right, revealing earlier dates.
func (m *Mapper) Pan(dx float64) {
	m.offset += dx
}

// Window returns the dates at the left and right content edges
func (m *Mapper) Window() (Date, Date) {
	return m.DateFromX(m.viewport.Left()), m.DateFromX(m.viewport.Right())
}

func (m *Mapper) pin(d Date, x float64) {
	days := float64(d.Ordinal() - m.bounds.Min.Ordinal())
	m.offset = x - m.viewport.Left() - days*m.PixelsPerDay()
}
