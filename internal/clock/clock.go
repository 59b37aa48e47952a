// Package clock schedules the recurring callbacks used by the time axis.
//
// Every implementation runs callbacks on the caller's logical thread and
// guarantees that once Stop returns the callback never runs again.
package clock

import "time"

// Ticker is a handle to a recurring callback
type Ticker interface {
	// Stop cancels the callback. Safe to call more than once.
	Stop()
}

// Clock starts recurring callbacks
type Clock interface {
	Every(period time.Duration, fn func()) Ticker
}

// Manual is a deterministic Clock driven by Advance. It is not safe for
// concurrent use.
type Manual struct {
	now     time.Duration
	seq     int
	tickers []*manualTicker
}

type manualTicker struct {
	clock  *Manual
	seq    int
	period time.Duration
	next   time.Duration
	fn     func()
}

// NewManual returns a manual clock at elapsed time zero
func NewManual() *Manual {
	return &Manual{}
}

// Every schedules fn at now+period, now+2*period, ...
func (c *Manual) Every(period time.Duration, fn func()) Ticker {
	if period <= 0 {
		period = time.Millisecond
	}
	c.seq++
	t := &manualTicker{clock: c, seq: c.seq, period: period, next: c.now + period, fn: fn}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves time forward by d, firing every callback that falls due in
// deadline order. Callbacks may start or stop tickers.
func (c *Manual) Advance(d time.Duration) {
	target := c.now + d
	for {
		t := c.due(target)
		if t == nil {
			break
		}
		c.now = t.next
		t.next += t.period
		t.fn()
	}
	c.now = target
}

// Elapsed is the total time advanced so far
func (c *Manual) Elapsed() time.Duration {
	return c.now
}

// Active is the number of tickers that have not been stopped
func (c *Manual) Active() int {
	return len(c.tickers)
}

func (c *Manual) due(target time.Duration) *manualTicker {
	var best *manualTicker
	for _, t := range c.tickers {
		if t.next > target {
			continue
		}
		if best == nil || t.next < best.next || (t.next == best.next && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (t *manualTicker) Stop() {
	c := t.clock
	for i, other := range c.tickers {
		if other == t {
			c.tickers = append(c.tickers[:i], c.tickers[i+1:]...)
			return
		}
	}
}
