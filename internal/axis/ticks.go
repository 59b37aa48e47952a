// Package axis lays out labelled tick marks for the visible time window.
package axis

import (
	"fmt"
	"math"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/chris/mapdate/internal/timeaxis"
)

// Tick is one labelled mark on the axis
type Tick struct {
	Date  timeaxis.Date
	X     float64
	Label string
}

// approximate days per unit, only used to pick a tick interval
var unitDays = map[timeaxis.Resolution]float64{
	timeaxis.Days:   1,
	timeaxis.Months: 30.44,
	timeaxis.Years:  365.25,
}

// Ticks returns marks for the mapper's visible window at resolution r:
// every Nth day, every Nth month on the 1st, or every Nth year on Jan 1,
// with N chosen so neighbours are at least minGap pixels apart.
func Ticks(m *timeaxis.Mapper, r timeaxis.Resolution, minGap float64) ([]Tick, error) {
	left, right := m.Window()
	if right.Before(left) {
		return nil, nil
	}

	interval := 1
	if unit := m.PixelsPerDay() * unitDays[r]; unit > 0 && unit < minGap {
		interval = int(math.Ceil(minGap / unit))
	}

	opt := rrule.ROption{
		Interval: interval,
		Dtstart:  alignStart(left, r, interval),
		Until:    right.Time(),
	}
	switch r {
	case timeaxis.Years:
		opt.Freq = rrule.YEARLY
	case timeaxis.Months:
		opt.Freq = rrule.MONTHLY
	default:
		opt.Freq = rrule.DAILY
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build tick rule: %w", err)
	}

	var ticks []Tick
	for _, t := range rule.Between(left.Time(), right.Time(), true) {
		d := timeaxis.DateOf(t)
		ticks = append(ticks, Tick{
			Date:  d,
			X:     m.XFromDate(d),
			Label: Label(d, r),
		})
	}
	return ticks, nil
}

// Label formats d at the granularity of r
func Label(d timeaxis.Date, r timeaxis.Resolution) string {
	switch r {
	case timeaxis.Years:
		return d.Format("2006")
	case timeaxis.Months:
		return d.Format("Jan 2006")
	default:
		return d.Format("Jan 02")
	}
}

// alignStart snaps the recurrence start to a round boundary so ticks stay
// put while the window pans
func alignStart(left timeaxis.Date, r timeaxis.Resolution, interval int) time.Time {
	switch r {
	case timeaxis.Years:
		year := left.Year() - mod(left.Year(), interval)
		return timeaxis.NewDate(year, time.January, 1).Time()
	case timeaxis.Months:
		months := left.Year()*12 + int(left.Month()) - 1
		months -= mod(months, interval)
		return timeaxis.NewDate(months/12, time.Month(months%12+1), 1).Time()
	default:
		days := left.Ordinal()
		days -= mod64(days, int64(interval))
		return timeaxis.FromOrdinal(days).Time()
	}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func mod64(a, n int64) int64 {
	return ((a % n) + n) % n
}
