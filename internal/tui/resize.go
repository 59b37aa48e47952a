package tui

import (
	"github.com/chris/mapdate/internal/timeaxis"
)

// sizeFeed is the timeline's resize source, fed from tea.WindowSizeMsg
type sizeFeed struct {
	nextID int
	subs   map[int]func(timeaxis.Viewport)
}

func newSizeFeed() *sizeFeed {
	return &sizeFeed{subs: make(map[int]func(timeaxis.Viewport))}
}

func (f *sizeFeed) Subscribe(fn func(timeaxis.Viewport)) (unsubscribe func()) {
	f.nextID++
	id := f.nextID
	f.subs[id] = fn
	return func() { delete(f.subs, id) }
}

func (f *sizeFeed) publish(vp timeaxis.Viewport) {
	for _, fn := range f.subs {
		fn(vp)
	}
}

func (f *sizeFeed) subscribers() int {
	return len(f.subs)
}
