package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris/mapdate/internal/clock"
)

// tickMsg fires a loopClock ticker on the update loop
type tickMsg struct {
	id int
}

// loopClock runs periodic callbacks as tea.Tick messages so they execute on
// the bubbletea update goroutine alongside every other timeline call.
// Ticks for a stopped ticker are dropped in dispatch.
type loopClock struct {
	nextID  int
	tickers map[int]*loopTicker
	pending []tea.Cmd
}

type loopTicker struct {
	clock  *loopClock
	id     int
	period time.Duration
	fn     func()
}

func newLoopClock() *loopClock {
	return &loopClock{tickers: make(map[int]*loopTicker)}
}

// Every registers fn and queues its first tick. The tick only starts once
// the queued command reaches the program through drain.
func (c *loopClock) Every(period time.Duration, fn func()) clock.Ticker {
	if period <= 0 {
		period = time.Millisecond
	}
	c.nextID++
	t := &loopTicker{clock: c, id: c.nextID, period: period, fn: fn}
	c.tickers[t.id] = t
	c.pending = append(c.pending, t.schedule())
	return t
}

func (t *loopTicker) schedule() tea.Cmd {
	id := t.id
	return tea.Tick(t.period, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (t *loopTicker) Stop() {
	delete(t.clock.tickers, t.id)
}

// dispatch runs the ticker's callback and re-arms it unless the callback
// stopped it
func (c *loopClock) dispatch(msg tickMsg) {
	t, ok := c.tickers[msg.id]
	if !ok {
		return
	}
	t.fn()
	if _, still := c.tickers[msg.id]; still {
		c.pending = append(c.pending, t.schedule())
	}
}

// active is the number of live tickers
func (c *loopClock) active() int {
	return len(c.tickers)
}

// drain hands queued tick commands to the program
func (c *loopClock) drain() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	return tea.Batch(cmds...)
}
