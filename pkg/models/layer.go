package models

import (
	"time"

	"github.com/chris/mapdate/internal/timeaxis"
)

// Layer is a catalogued map layer with an inclusive temporal extent
type Layer struct {
	ID        int64
	Name      string
	Source    string
	StartDate timeaxis.Date
	EndDate   *timeaxis.Date // nil while the layer is still being published
	CreatedAt int64
}

// NewLayer creates a Layer stamped with the current time
func NewLayer(name, source string, start timeaxis.Date, end *timeaxis.Date) *Layer {
	return &Layer{
		Name:      name,
		Source:    source,
		StartDate: start,
		EndDate:   end,
		CreatedAt: time.Now().Unix(),
	}
}

// Covers reports whether d falls inside the layer's extent
func (l *Layer) Covers(d timeaxis.Date) bool {
	if d.Before(l.StartDate) {
		return false
	}
	return l.EndDate == nil || !d.After(*l.EndDate)
}

// Extent renders the extent as "start..end", with an open end shown as "…"
func (l *Layer) Extent() string {
	end := "…"
	if l.EndDate != nil {
		end = l.EndDate.String()
	}
	return l.StartDate.String() + ".." + end
}
