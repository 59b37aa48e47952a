// Package replay drives a headless timeline from a YAML gesture script on
// the manual clock and reports every emission with its virtual timestamp.
package replay

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chris/mapdate/internal/clock"
	"github.com/chris/mapdate/internal/state"
	"github.com/chris/mapdate/internal/timeaxis"
)

// ErrBadStep is returned for a step that names no action or more than one
var ErrBadStep = errors.New("step must name exactly one action")

// Script is a recorded gesture sequence
type Script struct {
	Min        timeaxis.Date `yaml:"min_date,omitempty"`
	Max        timeaxis.Date `yaml:"max_date,omitempty"`
	Date       timeaxis.Date `yaml:"date,omitempty"`
	Resolution string        `yaml:"resolution,omitempty"`
	Viewport   *ViewportSpec `yaml:"viewport,omitempty"`
	Steps      []Step        `yaml:"steps"`
}

// ViewportSpec overrides the default geometry
type ViewportSpec struct {
	Width  float64         `yaml:"width"`
	Height float64         `yaml:"height"`
	Margin timeaxis.Margin `yaml:"margin"`
}

// Step is one gesture. Exactly one field is set.
type Step struct {
	Begin      bool          `yaml:"begin,omitempty"`
	Move       *float64      `yaml:"move,omitempty"`
	Wait       time.Duration `yaml:"wait,omitempty"`
	End        *float64      `yaml:"end,omitempty"`
	Hover      *float64      `yaml:"hover,omitempty"`
	Out        bool          `yaml:"out,omitempty"`
	Resolution string        `yaml:"resolution,omitempty"`
	Step       *StepAction   `yaml:"step,omitempty"`
	Set        *SetAction    `yaml:"set,omitempty"`
	Resize     *float64      `yaml:"resize,omitempty"`
	Key        string        `yaml:"key,omitempty"`
}

// StepAction moves the date one unit
type StepAction struct {
	Resolution string `yaml:"resolution"`
	Dir        int    `yaml:"dir"`
}

// SetAction edits one date component
type SetAction struct {
	Resolution string `yaml:"resolution"`
	Value      string `yaml:"value"`
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Begin, s.Move != nil, s.Wait > 0, s.End != nil, s.Hover != nil, s.Out,
		s.Resolution != "", s.Step != nil, s.Set != nil, s.Resize != nil, s.Key != "",
	} {
		if set {
			n++
		}
	}
	return n
}

// Load parses and validates a script
func Load(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range s.Steps {
		if step.actions() != 1 {
			return nil, fmt.Errorf("step %d: %w", i+1, ErrBadStep)
		}
		if step.Key != "" {
			if _, err := parseKey(step.Key); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return &s, nil
}

// Event is one emission observed during a replay
type Event struct {
	At   time.Duration
	Kind string
	Text string
}

func (e Event) String() string {
	return fmt.Sprintf("%8s %-9s %s", e.At, e.Kind, e.Text)
}

// Defaults fill whatever the script leaves out
type Defaults struct {
	Bounds     timeaxis.Bounds
	Date       timeaxis.Date
	Resolution timeaxis.Resolution
	Viewport   timeaxis.Viewport
	Options    []timeaxis.Option
}

// Run plays s and calls emit for every emission, in order
func Run(s *Script, def Defaults, emit func(Event)) error {
	bounds := def.Bounds
	if !s.Min.IsZero() || !s.Max.IsZero() {
		lo, hi := bounds.Min, bounds.Max
		if !s.Min.IsZero() {
			lo = s.Min
		}
		if !s.Max.IsZero() {
			hi = s.Max
		}
		b, err := timeaxis.NewBounds(lo, hi)
		if err != nil {
			return err
		}
		bounds = b
	}

	date := def.Date
	if !s.Date.IsZero() {
		date = s.Date
	}
	res := def.Resolution
	if s.Resolution != "" {
		r, err := timeaxis.ParseResolution(s.Resolution)
		if err != nil {
			return err
		}
		res = r
	}
	vp := def.Viewport
	if s.Viewport != nil {
		vp = timeaxis.Viewport{Width: s.Viewport.Width, Height: s.Viewport.Height, Margin: s.Viewport.Margin}
	}

	c := clock.NewManual()
	report := func(kind, format string, args ...any) {
		emit(Event{At: c.Elapsed(), Kind: kind, Text: fmt.Sprintf(format, args...)})
	}

	store := state.New(bounds.Clamp(date), res)
	opts := append([]timeaxis.Option{}, def.Options...)
	opts = append(opts, store.TimelineOptions()...)
	opts = append(opts,
		timeaxis.WithClock(c),
		timeaxis.WithScroll(func(e timeaxis.Edge) { report("scroll", "%s", e) }),
	)
	tl := timeaxis.New(bounds, vp, store.State().Date, res, opts...)
	defer tl.Close()
	unfollow := store.Follow(tl)
	defer unfollow()

	last := store.State()
	store.Subscribe(func(st state.State) {
		switch {
		case st.Dragging != last.Dragging:
			report("dragging", "%t", st.Dragging)
		case st.Resolution != last.Resolution:
			report("zoom", "%s scale=%g", st.Resolution, tl.Mapper().Scale())
		case st.Hover != last.Hover:
			if st.Hover == nil {
				report("hover", "cleared")
			} else {
				report("hover", "%s x=%g", st.Hover.Date, st.Hover.X)
			}
		default:
			report("commit", "%s", st.Date)
		}
		last = st
	})

	for i, step := range s.Steps {
		if err := apply(tl, store, c, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func apply(tl *timeaxis.Timeline, store *state.Store, c *clock.Manual, step Step) error {
	switch {
	case step.Begin:
		tl.BeginDrag()
	case step.Move != nil:
		tl.PointerMove(*step.Move)
	case step.Wait > 0:
		c.Advance(step.Wait)
	case step.End != nil:
		tl.EndDrag(*step.End)
	case step.Hover != nil:
		tl.Hover(*step.Hover)
	case step.Out:
		tl.PointerOut()
	case step.Resolution != "":
		r, err := timeaxis.ParseResolution(step.Resolution)
		if err != nil {
			return err
		}
		if r != store.State().Resolution {
			store.SetResolution(r)
		}
	case step.Step != nil:
		r, err := timeaxis.ParseResolution(step.Step.Resolution)
		if err != nil {
			return err
		}
		tl.Step(r, step.Step.Dir)
	case step.Set != nil:
		r, err := timeaxis.ParseResolution(step.Set.Resolution)
		if err != nil {
			return err
		}
		tl.SetComponent(r, step.Set.Value)
	case step.Resize != nil:
		vp := tl.Mapper().Viewport()
		vp.Width = *step.Resize
		tl.Resize(vp)
	case step.Key != "":
		k, err := parseKey(step.Key)
		if err != nil {
			return err
		}
		tl.KeyUp(k)
	}
	return nil
}

func parseKey(s string) (timeaxis.Key, error) {
	switch s {
	case "left", "ArrowLeft":
		return timeaxis.KeyArrowLeft, nil
	case "right", "ArrowRight":
		return timeaxis.KeyArrowRight, nil
	}
	return 0, fmt.Errorf("unknown key %q", s)
}
