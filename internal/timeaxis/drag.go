package timeaxis

import (
	"fmt"

	"github.com/chris/mapdate/internal/clock"
)

// DragState is the scrubber drag lifecycle
type DragState int

const (
	Idle DragState = iota
	Dragging
	DraggingAutoScrollLeft
	DraggingAutoScrollRight
)

func (s DragState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case DraggingAutoScrollLeft:
		return "dragging-autoscroll-left"
	case DraggingAutoScrollRight:
		return "dragging-autoscroll-right"
	default:
		return fmt.Sprintf("DragState(%d)", int(s))
	}
}

// Edge is which viewport edge band a pointer sits in
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "none"
	}
}

// EdgeAt classifies x against bands of width threshold inside the content
// edges. When the bands overlap the left edge wins.
func (v Viewport) EdgeAt(x, threshold float64) Edge {
	if x <= v.Left()+threshold {
		return EdgeLeft
	}
	if x >= v.Right()-threshold {
		return EdgeRight
	}
	return EdgeNone
}

// DragSession is the transient state of one drag gesture. It owns both
// periodic tasks; ending the session stops them.
type DragSession struct {
	lastX  float64
	moved  bool
	edge   Edge
	scroll clock.Ticker
	commit clock.Ticker
}

// LastPointerX is the most recent pointer sample, ok is false before the
// first move
func (s *DragSession) LastPointerX() (x float64, ok bool) {
	return s.lastX, s.moved
}

// Edge is the currently armed auto-scroll direction
func (s *DragSession) Edge() Edge {
	return s.edge
}

// Scrolling reports whether the auto-scroll task is armed
func (s *DragSession) Scrolling() bool {
	return s.scroll != nil
}

func (s *DragSession) record(x float64) {
	s.lastX = x
	s.moved = true
}

// arm replaces any running auto-scroll with one toward edge. Re-arming the
// same edge keeps the running task so frequent moves don't starve it.
func (s *DragSession) arm(edge Edge, start func(Edge) clock.Ticker) {
	if s.scroll != nil && s.edge == edge {
		return
	}
	s.disarm()
	s.edge = edge
	s.scroll = start(edge)
}

func (s *DragSession) disarm() {
	if s.scroll != nil {
		s.scroll.Stop()
		s.scroll = nil
	}
	s.edge = EdgeNone
}

// close stops every task the session owns
func (s *DragSession) close() {
	s.disarm()
	if s.commit != nil {
		s.commit.Stop()
		s.commit = nil
	}
}

func stateFor(e Edge) DragState {
	switch e {
	case EdgeLeft:
		return DraggingAutoScrollLeft
	case EdgeRight:
		return DraggingAutoScrollRight
	default:
		return Dragging
	}
}
