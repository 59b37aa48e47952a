package state

import (
	"github.com/chris/mapdate/internal/timeaxis"
)

// TimelineOptions wires a timeline's emissions into the store
func (s *Store) TimelineOptions() []timeaxis.Option {
	return []timeaxis.Option{
		timeaxis.WithCommit(s.SetDate),
		timeaxis.WithDragging(s.SetDragging),
		timeaxis.WithHover(s.HoverDate),
		timeaxis.WithHoverCleared(s.TimelineMouseOut),
	}
}

// Follow keeps tl in step with the store: date changes are mirrored and
// resolution changes rescale the axis. The returned func detaches it.
func (s *Store) Follow(tl *timeaxis.Timeline) (unsubscribe func()) {
	return s.Subscribe(func(st State) {
		tl.SetDate(st.Date)
		tl.SetResolution(st.Resolution)
	})
}
