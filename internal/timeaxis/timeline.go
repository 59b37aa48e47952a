// Package timeaxis implements the temporal navigation behind the map time
// slider: pixel/date mapping, scrubber drag with edge auto-scroll, throttled
// live commits and the bounded date picker.
//
// A Timeline is single-threaded. Every method, and every callback scheduled
// on its Clock, must run on the same logical thread.
package timeaxis

import (
	"time"

	"github.com/chris/mapdate/internal/clock"
	appLog "github.com/chris/mapdate/internal/log"
)

const (
	DefaultEdgeThreshold    = 10.0
	DefaultAutoScrollStep   = 10.0
	DefaultAutoScrollPeriod = 50 * time.Millisecond
	DefaultCommitPeriod     = 250 * time.Millisecond
)

// Key is a keyboard key the timeline reacts to on key-up
type Key int

const (
	KeyArrowLeft Key = iota
	KeyArrowRight
)

// ResizeSource delivers viewport changes. Subscribe returns a func that
// removes the subscription.
type ResizeSource interface {
	Subscribe(fn func(Viewport)) (unsubscribe func())
}

// Timeline ties the mapper, drag state machine, periodic tasks and stepper
// together and emits every committed date through one commit func.
type Timeline struct {
	bounds     Bounds
	mapper     *Mapper
	stepper    *Stepper
	clock      clock.Clock
	resolution Resolution
	date       Date

	state   DragState
	session *DragSession

	edgeThreshold    float64
	autoScrollStep   float64
	autoScrollPeriod time.Duration
	commitPeriod     time.Duration

	onCommit       func(Date)
	onDragging     func(bool)
	onHover        func(Date, float64)
	onHoverCleared func()
	onScroll       func(Edge)

	sources     []ResizeSource
	unsubscribe []func()
	closed      bool
}

// Option configures a Timeline
type Option func(*Timeline)

// WithClock sets the clock periodic tasks run on
func WithClock(c clock.Clock) Option {
	return func(t *Timeline) { t.clock = c }
}

// WithCommit sets the date emission point
func WithCommit(fn func(Date)) Option {
	return func(t *Timeline) { t.onCommit = fn }
}

// WithDragging is told true when a drag begins and false when it ends
func WithDragging(fn func(bool)) Option {
	return func(t *Timeline) { t.onDragging = fn }
}

// WithHover receives the date and raw pixel under a hovering pointer
func WithHover(fn func(Date, float64)) Option {
	return func(t *Timeline) { t.onHover = fn }
}

// WithHoverCleared is called when the pointer leaves the axis
func WithHoverCleared(fn func()) Option {
	return func(t *Timeline) { t.onHoverCleared = fn }
}

// WithScroll is called after every auto-scroll shift
func WithScroll(fn func(Edge)) Option {
	return func(t *Timeline) { t.onScroll = fn }
}

// WithEdgeThreshold sets the width of the auto-scroll edge bands
func WithEdgeThreshold(px float64) Option {
	return func(t *Timeline) {
		if px >= 0 {
			t.edgeThreshold = px
		}
	}
}

// WithAutoScroll sets how far and how often auto-scroll shifts the window
func WithAutoScroll(step float64, period time.Duration) Option {
	return func(t *Timeline) {
		if step > 0 {
			t.autoScrollStep = step
		}
		if period > 0 {
			t.autoScrollPeriod = period
		}
	}
}

// WithCommitPeriod sets the throttled commit interval during a drag
func WithCommitPeriod(period time.Duration) Option {
	return func(t *Timeline) {
		if period > 0 {
			t.commitPeriod = period
		}
	}
}

// WithResizeSource subscribes to viewport changes for the timeline's life
func WithResizeSource(src ResizeSource) Option {
	return func(t *Timeline) { t.sources = append(t.sources, src) }
}

// New builds a Timeline centered on date (clamped to b) at the zoom for res
func New(b Bounds, vp Viewport, date Date, res Resolution, opts ...Option) *Timeline {
	t := &Timeline{
		bounds:           b,
		resolution:       res,
		date:             b.Clamp(date),
		edgeThreshold:    DefaultEdgeThreshold,
		autoScrollStep:   DefaultAutoScrollStep,
		autoScrollPeriod: DefaultAutoScrollPeriod,
		commitPeriod:     DefaultCommitPeriod,
		onCommit:         func(Date) {},
		onDragging:       func(bool) {},
		onHover:          func(Date, float64) {},
		onHoverCleared:   func() {},
		onScroll:         func(Edge) {},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.clock = clock.NewManual()
	}

	t.mapper = NewMapper(b, vp, ScaleFor(res))
	t.mapper.CenterOn(t.date)
	t.stepper = NewStepper(b, t.commit)

	for _, src := range t.sources {
		t.unsubscribe = append(t.unsubscribe, src.Subscribe(t.Resize))
	}
	return t
}

func (t *Timeline) State() DragState       { return t.state }
func (t *Timeline) Date() Date             { return t.date }
func (t *Timeline) Resolution() Resolution { return t.resolution }
func (t *Timeline) Bounds() Bounds         { return t.bounds }
func (t *Timeline) Mapper() *Mapper        { return t.mapper }

// Session is the in-flight drag, nil when idle
func (t *Timeline) Session() *DragSession { return t.session }

// DateFromX converts a pointer position with the current mapping
func (t *Timeline) DateFromX(x float64) Date { return t.mapper.DateFromX(x) }

// XFromDate converts a date with the current mapping
func (t *Timeline) XFromDate(d Date) float64 { return t.mapper.XFromDate(d) }

// SetDate mirrors the externally stored committed date. It does not pan.
func (t *Timeline) SetDate(d Date) {
	t.date = d
}

// SetResolution rescales the axis around the committed date. A repeat of
// the current resolution does nothing, so zoom and pan survive updates that
// only carry a new date. Reports whether the scale changed.
func (t *Timeline) SetResolution(r Resolution) bool {
	if r == t.resolution {
		return false
	}
	t.resolution = r
	t.mapper.Rescale(ScaleFor(r), t.date)
	appLog.Debug("resolution changed", "resolution", r, "scale", t.mapper.Scale())
	return true
}

// BeginDrag starts a scrubber drag and the throttled commit task
func (t *Timeline) BeginDrag() {
	if t.state != Idle || t.closed {
		return
	}
	s := &DragSession{}
	s.commit = t.clock.Every(t.commitPeriod, func() { t.commitTick(s) })
	t.session = s
	t.setState(Dragging)
	t.onDragging(true)
}

// PointerMove records the pointer and arms or disarms auto-scroll by edge
// band. Ignored when no drag is in flight.
func (t *Timeline) PointerMove(x float64) {
	s := t.session
	if s == nil {
		return
	}
	s.record(x)

	edge := t.mapper.Viewport().EdgeAt(x, t.edgeThreshold)
	if edge == EdgeNone {
		s.disarm()
	} else {
		s.arm(edge, t.startScroll)
	}
	t.setState(stateFor(edge))
}

// EndDrag stops the drag's tasks and commits the clamped date under x. From
// Idle it acts as a click on the axis.
func (t *Timeline) EndDrag(x float64) Date {
	wasDragging := t.session != nil
	t.endSession()

	d := t.bounds.Clamp(t.mapper.DateFromX(x))
	t.commit(d)
	if wasDragging {
		t.onDragging(false)
	}
	return d
}

// Hover reports the date under x for preview
func (t *Timeline) Hover(x float64) {
	t.onHover(t.mapper.DateFromX(x), x)
}

// PointerOut clears any hover preview
func (t *Timeline) PointerOut() {
	t.onHoverCleared()
}

// Step moves the committed date by one unit of r, rejecting out-of-range results
func (t *Timeline) Step(r Resolution, dir int) Date {
	return t.stepper.Step(t.date, r, dir)
}

// SetComponent edits one component of the committed date, reverting invalid edits
func (t *Timeline) SetComponent(r Resolution, value string) Date {
	return t.stepper.SetComponent(t.date, r, value)
}

// KeyUp steps a day per arrow key release
func (t *Timeline) KeyUp(k Key) Date {
	switch k {
	case KeyArrowLeft:
		return t.Step(Days, -1)
	case KeyArrowRight:
		return t.Step(Days, 1)
	}
	return t.date
}

// Resize applies new geometry. An in-flight drag is aborted without a
// commit so no periodic task outlives the old geometry.
func (t *Timeline) Resize(vp Viewport) {
	t.abort()
	t.mapper.Resize(vp, t.date)
}

// Close aborts any drag and drops every subscription made by New
func (t *Timeline) Close() {
	if t.closed {
		return
	}
	t.abort()
	for _, unsub := range t.unsubscribe {
		unsub()
	}
	t.unsubscribe = nil
	t.closed = true
}

func (t *Timeline) abort() {
	if t.session == nil {
		return
	}
	t.endSession()
	t.onDragging(false)
}

func (t *Timeline) endSession() {
	if t.session == nil {
		return
	}
	t.session.close()
	t.session = nil
	t.setState(Idle)
}

func (t *Timeline) startScroll(edge Edge) clock.Ticker {
	dx := t.autoScrollStep
	if edge == EdgeRight {
		dx = -dx
	}
	return t.clock.Every(t.autoScrollPeriod, func() {
		t.mapper.Pan(dx)
		t.onScroll(edge)
	})
}

func (t *Timeline) commitTick(s *DragSession) {
	x, ok := s.LastPointerX()
	if !ok {
		return
	}
	t.commit(t.bounds.Clamp(t.mapper.DateFromX(x)))
}

func (t *Timeline) commit(d Date) {
	t.date = d
	t.onCommit(d)
}

func (t *Timeline) setState(s DragState) {
	if s == t.state {
		return
	}
	appLog.Debug("drag state", "from", t.state, "to", s)
	t.state = s
}
