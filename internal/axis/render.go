package axis

import (
	"math"
	"strings"
)

const (
	lineRune   = '─'
	tickRune   = '┬'
	scrubRune  = '▲'
	outOfRange = '·'
)

// Strip is a rendered axis: one rune per cell
type Strip struct {
	Line   string
	Labels string
	Scrub  string
}

// Render draws ticks into width cells, where cell i covers pixel i. Cells
// outside [validFrom, validTo] are drawn dotted. scrubX places the scrubber
// marker; it is omitted when it falls outside the strip.
func Render(ticks []Tick, width int, validFrom, validTo, scrubX float64) Strip {
	if width <= 0 {
		return Strip{}
	}

	line := make([]rune, width)
	labels := make([]rune, width)
	scrub := make([]rune, width)
	for i := range line {
		line[i] = lineRune
		if float64(i) < math.Floor(validFrom) || float64(i) > math.Ceil(validTo) {
			line[i] = outOfRange
		}
		labels[i] = ' '
		scrub[i] = ' '
	}

	nextFree := 0
	for _, t := range ticks {
		col := cell(t.X)
		if col < 0 || col >= width {
			continue
		}
		line[col] = tickRune

		label := []rune(t.Label)
		if col < nextFree || col+len(label) > width {
			continue
		}
		copy(labels[col:], label)
		nextFree = col + len(label) + 1
	}

	if col := cell(scrubX); col >= 0 && col < width {
		scrub[col] = scrubRune
	}

	return Strip{
		Line:   string(line),
		Labels: strings.TrimRight(string(labels), " "),
		Scrub:  strings.TrimRight(string(scrub), " "),
	}
}

func cell(x float64) int {
	return int(math.Floor(x + 0.5))
}
