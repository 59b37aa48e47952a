// Package state is the application store the time axis proposes dates to.
// It is the only owner of the committed date and the active resolution.
package state

import (
	"github.com/chris/mapdate/internal/timeaxis"
)

// Hover is the live preview under the pointer
type Hover struct {
	Date timeaxis.Date
	X    float64
}

// State is a snapshot of the store
type State struct {
	Date       timeaxis.Date
	Resolution timeaxis.Resolution
	Dragging   bool
	Hover      *Hover
}

// Store holds State and notifies subscribers after every action.
// Like the timeline it is single-threaded.
type Store struct {
	state       State
	nextID      int
	subscribers map[int]func(State)
	order       []int
}

// New returns a store seeded with date and resolution
func New(date timeaxis.Date, res timeaxis.Resolution) *Store {
	return &Store{
		state:       State{Date: date, Resolution: res},
		subscribers: make(map[int]func(State)),
	}
}

// State returns the current snapshot
func (s *Store) State() State {
	return s.state
}

// Subscribe registers fn for every change; call the returned func to stop
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subscribers[id] = fn
	s.order = append(s.order, id)
	return func() {
		delete(s.subscribers, id)
		for i, other := range s.order {
			if other == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// SetDate stores a committed date
func (s *Store) SetDate(d timeaxis.Date) {
	s.state.Date = d
	s.notify()
}

// SetResolution stores the navigation resolution
func (s *Store) SetResolution(r timeaxis.Resolution) {
	s.state.Resolution = r
	s.notify()
}

// BeginDragging marks a scrubber drag in flight
func (s *Store) BeginDragging() {
	s.state.Dragging = true
	s.notify()
}

// DragEnd stores the final date of a drag and clears the dragging flag
func (s *Store) DragEnd(d timeaxis.Date) {
	s.state.Date = d
	s.state.Dragging = false
	s.notify()
}

// SetDragging is the boolean form used by timeline notifications
func (s *Store) SetDragging(dragging bool) {
	if s.state.Dragging == dragging {
		return
	}
	s.state.Dragging = dragging
	s.notify()
}

// HoverDate stores the preview under the pointer
func (s *Store) HoverDate(d timeaxis.Date, x float64) {
	s.state.Hover = &Hover{Date: d, X: x}
	s.notify()
}

// TimelineMouseOut clears the hover preview
func (s *Store) TimelineMouseOut() {
	if s.state.Hover == nil {
		return
	}
	s.state.Hover = nil
	s.notify()
}

func (s *Store) notify() {
	snapshot := s.state
	for _, id := range append([]int(nil), s.order...) {
		if fn, ok := s.subscribers[id]; ok {
			fn(snapshot)
		}
	}
}
