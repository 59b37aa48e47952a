package timeaxis

import (
	"errors"
	"fmt"
)

// ErrInvertedBounds is returned when the configured minimum is after the maximum
var ErrInvertedBounds = errors.New("min date is after max date")

// Bounds is the configured navigable date range, inclusive on both ends
type Bounds struct {
	Min Date
	Max Date
}

// NewBounds validates min <= max
func NewBounds(min, max Date) (Bounds, error) {
	if min.After(max) {
		return Bounds{}, fmt.Errorf("%w: %s > %s", ErrInvertedBounds, min, max)
	}
	return Bounds{Min: min, Max: max}, nil
}

// Contains reports whether d lies within the bounds
func (b Bounds) Contains(d Date) bool {
	return !d.Before(b.Min) && !d.After(b.Max)
}

// Clamp moves d to the nearest bound when it lies outside
func (b Bounds) Clamp(d Date) Date {
	if d.Before(b.Min) {
		return b.Min
	}
	if d.After(b.Max) {
		return b.Max
	}
	return d
}

// Span is the number of days between Min and Max, at least 1
func (b Bounds) Span() int64 {
	if n := b.Max.Ordinal() - b.Min.Ordinal(); n > 0 {
		return n
	}
	return 1
}
