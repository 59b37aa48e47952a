package timeaxis

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical text form of a Date
const DateLayout = "2006-01-02"

// ErrUnknownResolution is returned when a resolution name cannot be parsed
var ErrUnknownResolution = errors.New("unknown resolution")

// Resolution is the granularity of date navigation
type Resolution int

const (
	Days Resolution = iota
	Months
	Years
)

// String returns the resolution name used in config files and flags
func (r Resolution) String() string {
	switch r {
	case Days:
		return "days"
	case Months:
		return "months"
	case Years:
		return "years"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// ParseResolution accepts "days", "months" or "years" (singular forms too)
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "days", "d":
		return Days, nil
	case "month", "months", "m":
		return Months, nil
	case "year", "years", "y":
		return Years, nil
	}
	return Days, fmt.Errorf("%w: %q", ErrUnknownResolution, s)
}

// Next cycles days -> months -> years -> days
func (r Resolution) Next() Resolution {
	return (r + 1) % 3
}

// Date is a calendar day with no time-of-day component.
// The zero value is 0001-01-01.
type Date struct {
	t time.Time
}

// NewDate builds a Date, normalizing out-of-range components the way
// time.Date does (month 13 rolls into the next year).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for constants and tests
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int          { return d.t.Year() }
func (d Date) Month() time.Month  { return d.t.Month() }
func (d Date) Day() int           { return d.t.Day() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) String() string     { return d.t.Format(DateLayout) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }

// IsZero reports whether d is the zero Date
func (d Date) IsZero() bool { return d.t.IsZero() }

// Format formats d with a time layout
func (d Date) Format(layout string) string { return d.t.Format(layout) }

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Ordinal returns the number of days since 1970-01-01
func (d Date) Ordinal() int64 {
	return d.t.Unix() / 86400
}

// FromOrdinal is the inverse of Ordinal
func FromOrdinal(n int64) Date {
	return Date{t: time.Unix(n*86400, 0).UTC()}
}

// AddDays returns d shifted by n days
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Add shifts d by n units of r. Month and year shifts clamp the day to the
// last day of the target month, so Jan 31 + 1 month is Feb 28 (or 29).
func (d Date) Add(r Resolution, n int) Date {
	switch r {
	case Months:
		return shiftMonths(d, n)
	case Years:
		return shiftMonths(d, 12*n)
	default:
		return d.AddDays(n)
	}
}

func shiftMonths(d Date, n int) Date {
	first := NewDate(d.Year(), d.Month()+time.Month(n), 1)
	day := d.Day()
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return NewDate(first.Year(), first.Month(), day)
}

func daysIn(year int, month time.Month) int {
	return NewDate(year, month+1, 0).Day()
}

// Valid reports whether year/month/day name a real calendar day
func Valid(year int, month time.Month, day int) bool {
	if month < time.January || month > time.December || day < 1 {
		return false
	}
	return day <= daysIn(year, month)
}
