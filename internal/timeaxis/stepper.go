package timeaxis

import (
	"strconv"
	"strings"
	"time"
)

// Stepper moves a date by whole resolution units inside Bounds.
//
// Unlike the drag path, which clamps, the stepper never snaps to a bound:
// an out-of-range step is dropped and an out-of-range edit is reverted.
type Stepper struct {
	bounds Bounds
	commit func(Date)
}

// NewStepper returns a stepper that proposes accepted dates to commit
func NewStepper(b Bounds, commit func(Date)) *Stepper {
	if commit == nil {
		commit = func(Date) {}
	}
	return &Stepper{bounds: b, commit: commit}
}

// Step moves current one unit forward (dir > 0) or back (dir < 0). The new
// date is committed and returned only when it lies within the bounds;
// otherwise current is returned and nothing is committed.
func (s *Stepper) Step(current Date, r Resolution, dir int) Date {
	n := 1
	if dir < 0 {
		n = -1
	}
	next := current.Add(r, n)
	if !s.bounds.Contains(next) {
		return current
	}
	s.commit(next)
	return next
}

// SetComponent replaces the day, month or year of current with value.
// A valid in-range result is committed; anything else recommits current so
// listeners redraw the unchanged value.
func (s *Stepper) SetComponent(current Date, r Resolution, value string) Date {
	candidate, ok := withComponent(current, r, value)
	if !ok || !s.bounds.Contains(candidate) {
		s.commit(current)
		return current
	}
	s.commit(candidate)
	return candidate
}

func withComponent(d Date, r Resolution, value string) (Date, bool) {
	year, month, day := d.Year(), d.Month(), d.Day()
	value = strings.TrimSpace(value)

	switch r {
	case Years:
		n, err := strconv.Atoi(value)
		if err != nil {
			return d, false
		}
		year = n
	case Months:
		m, ok := parseMonth(value)
		if !ok {
			return d, false
		}
		month = m
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return d, false
		}
		day = n
	}

	if !Valid(year, month, day) {
		return d, false
	}
	return NewDate(year, month, day), true
}

// parseMonth accepts 1-12, "Jan".."Dec" and full English month names
func parseMonth(s string) (time.Month, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, false
		}
		return time.Month(n), true
	}
	lower := strings.ToLower(s)
	if len(lower) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || lower == name[:3] {
			return m, true
		}
	}
	return 0, false
}
