package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris/mapdate/internal/clock"
	appLog "github.com/chris/mapdate/internal/log"
	"github.com/chris/mapdate/internal/state"
	"github.com/chris/mapdate/internal/timeaxis"
	"github.com/chris/mapdate/pkg/models"
)

// Screen rows occupied by the axis: labels, line and scrubber.
const (
	axisTopRow    = 2
	axisBottomRow = 4
)

// grabTolerance is how many cells either side of the scrubber a press
// still grabs it
const grabTolerance = 1.0

const (
	defaultWidth      = 80
	defaultHeight     = 24
	defaultDateFormat = "%A %Y-%m-%d"
)

// EditStage tracks the date edit prompt
type EditStage int

const (
	EditClosed EditStage = iota
	EditPickComponent
	EditValue
)

// LayerSource answers which layers exist on a date. *db.DB satisfies it.
type LayerSource interface {
	LayersOn(d timeaxis.Date) ([]models.Layer, error)
}

// Model is the time axis explorer
type Model struct {
	store    *state.Store
	timeline *timeaxis.Timeline
	unfollow func()

	// Clock & geometry
	clock  clock.Clock
	loop   *loopClock
	sizes  *sizeFeed
	margin     timeaxis.Margin
	width      int
	height     int
	dateFormat string

	timelineOpts []timeaxis.Option

	// Layer catalog
	layers          LayerSource
	layersOn        []models.Layer
	layersDate      timeaxis.Date
	layersRequested timeaxis.Date
	layersErr       error

	// Pointer
	pressed  bool
	hovering bool

	// Keys & prompt
	keys     keyMap
	editKeys editKeyMap
	help     help.Model
	showHelp bool
	edit     EditStage
	editRes  timeaxis.Resolution
	input    textinput.Model

	status   string
	focused  bool
	quitting bool
}

// Option is a functional option for configuring the Model
type Option func(*Model)

// WithClock replaces the update-loop clock, for tests
func WithClock(c clock.Clock) Option {
	return func(m *Model) {
		m.clock = c
	}
}

// WithLayers sets the catalog shown under the axis
func WithLayers(src LayerSource) Option {
	return func(m *Model) {
		m.layers = src
	}
}

// WithMargin sets the axis margins in cells
func WithMargin(margin timeaxis.Margin) Option {
	return func(m *Model) {
		m.margin = margin
	}
}

// WithDateFormat sets the strftime layout of the header date
func WithDateFormat(layout string) Option {
	return func(m *Model) {
		m.dateFormat = layout
	}
}

// WithSize sets the geometry used until the first WindowSizeMsg
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithTimelineOptions passes interaction tuning through to the timeline
func WithTimelineOptions(opts ...timeaxis.Option) Option {
	return func(m *Model) {
		m.timelineOpts = append(m.timelineOpts, opts...)
	}
}

// New creates a Model over bounds b with date committed at resolution res
func New(b timeaxis.Bounds, date timeaxis.Date, res timeaxis.Resolution, opts ...Option) *Model {
	m := &Model{
		width:      defaultWidth,
		height:     defaultHeight,
		dateFormat: defaultDateFormat,
		sizes:      newSizeFeed(),
		keys:       defaultKeyMap(),
		editKeys:   defaultEditKeyMap(),
		help:       help.New(),
		input:      textinput.New(),
		focused:    true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.loop = newLoopClock()
		m.clock = m.loop
	}

	m.input.CharLimit = 9
	m.input.Prompt = "> "

	m.store = state.New(b.Clamp(date), res)
	tlOpts := append(m.store.TimelineOptions(),
		timeaxis.WithClock(m.clock),
		timeaxis.WithResizeSource(m.sizes),
	)
	tlOpts = append(tlOpts, m.timelineOpts...)
	m.timeline = timeaxis.New(b, m.viewport(), m.store.State().Date, res, tlOpts...)
	m.unfollow = m.store.Follow(m.timeline)

	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.syncLayers()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.sizes.publish(m.viewport())

	case tea.FocusMsg:
		m.focused = true

	case tea.BlurMsg:
		m.focused = false

	case tickMsg:
		if m.loop != nil {
			m.loop.dispatch(msg)
		}

	case layersLoadedMsg:
		m.layersOn = msg.layers
		m.layersDate = msg.date
		m.layersErr = msg.err
		if msg.err != nil {
			appLog.Error("failed to load layers", msg.err, "date", msg.date)
		}
	}

	if m.quitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.drainClock(), m.syncLayers())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.edit != EditClosed {
		return m.handleEditKey(msg)
	}
	m.status = ""
	before := m.store.State().Date

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return tea.Quit

	case key.Matches(msg, m.keys.DayBack):
		m.reportStep(before, m.timeline.KeyUp(timeaxis.KeyArrowLeft))

	case key.Matches(msg, m.keys.DayFwd):
		m.reportStep(before, m.timeline.KeyUp(timeaxis.KeyArrowRight))

	case key.Matches(msg, m.keys.MonthBack):
		m.reportStep(before, m.timeline.Step(timeaxis.Months, -1))

	case key.Matches(msg, m.keys.MonthFwd):
		m.reportStep(before, m.timeline.Step(timeaxis.Months, 1))

	case key.Matches(msg, m.keys.YearBack):
		m.reportStep(before, m.timeline.Step(timeaxis.Years, -1))

	case key.Matches(msg, m.keys.YearFwd):
		m.reportStep(before, m.timeline.Step(timeaxis.Years, 1))

	case key.Matches(msg, m.keys.Resolution):
		m.store.SetResolution(m.store.State().Resolution.Next())

	case key.Matches(msg, m.keys.Edit):
		m.edit = EditPickComponent

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return nil
}

// reportStep notes a rejected step, which leaves the date where it was
func (m *Model) reportStep(before, after timeaxis.Date) {
	if before.Equal(after) {
		m.status = "out of range"
	}
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.editKeys.Cancel) {
		m.closeEdit()
		return nil
	}

	if m.edit == EditPickComponent {
		switch {
		case key.Matches(msg, m.editKeys.Year):
			return m.openValue(timeaxis.Years)
		case key.Matches(msg, m.editKeys.Month):
			return m.openValue(timeaxis.Months)
		case key.Matches(msg, m.editKeys.Day):
			return m.openValue(timeaxis.Days)
		}
		return nil
	}

	if key.Matches(msg, m.editKeys.Confirm) {
		before := m.store.State().Date
		after := m.timeline.SetComponent(m.editRes, m.input.Value())
		if before.Equal(after) {
			m.status = fmt.Sprintf("%s %q left the date unchanged", componentName(m.editRes), m.input.Value())
		}
		m.closeEdit()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) openValue(r timeaxis.Resolution) tea.Cmd {
	m.edit = EditValue
	m.editRes = r
	m.input.Reset()
	m.input.Placeholder = componentValue(m.store.State().Date, r)
	return m.input.Focus()
}

func (m *Model) closeEdit() {
	m.edit = EditClosed
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X)
	onAxis := msg.Y >= axisTopRow && msg.Y <= axisBottomRow

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onAxis {
			return
		}
		scrubX := m.timeline.XFromDate(m.store.State().Date)
		if math.Abs(x-scrubX) <= grabTolerance {
			m.timeline.BeginDrag()
			return
		}
		m.pressed = true

	case tea.MouseActionMotion:
		if m.timeline.State() != timeaxis.Idle {
			m.timeline.PointerMove(x)
			return
		}
		if onAxis {
			m.hovering = true
			m.timeline.Hover(x)
		} else if m.hovering {
			m.hovering = false
			m.timeline.PointerOut()
		}

	case tea.MouseActionRelease:
		if m.timeline.State() != timeaxis.Idle {
			m.timeline.EndDrag(x)
		} else if m.pressed && onAxis {
			m.timeline.EndDrag(x)
		}
		m.pressed = false
	}
}

func (m *Model) quit() {
	m.timeline.Close()
	m.unfollow()
	m.quitting = true
}

func (m *Model) viewport() timeaxis.Viewport {
	return timeaxis.Viewport{
		Width:  float64(m.width),
		Height: float64(m.height),
		Margin: m.margin,
	}
}

func (m *Model) drainClock() tea.Cmd {
	if m.loop == nil {
		return nil
	}
	return m.loop.drain()
}

// syncLayers requests the layer list when the committed date has moved
// past the last request
func (m *Model) syncLayers() tea.Cmd {
	if m.layers == nil {
		return nil
	}
	d := m.store.State().Date
	if d.Equal(m.layersRequested) {
		return nil
	}
	m.layersRequested = d
	src := m.layers
	return func() tea.Msg {
		layers, err := src.LayersOn(d)
		return layersLoadedMsg{date: d, layers: layers, err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderView()
}

// Messages
type layersLoadedMsg struct {
	date   timeaxis.Date
	layers []models.Layer
	err    error
}

// Getters for testing
func (m *Model) Date() timeaxis.Date {
	return m.store.State().Date
}

func (m *Model) Resolution() timeaxis.Resolution {
	return m.store.State().Resolution
}

func (m *Model) Store() *state.Store {
	return m.store
}

func (m *Model) Timeline() *timeaxis.Timeline {
	return m.timeline
}

func (m *Model) Layers() []models.Layer {
	return m.layersOn
}

func (m *Model) Edit() EditStage {
	return m.edit
}

func (m *Model) Status() string {
	return m.status
}

func (m *Model) Focused() bool {
	return m.focused
}

func (m *Model) Quitting() bool {
	return m.quitting
}

func componentName(r timeaxis.Resolution) string {
	switch r {
	case timeaxis.Years:
		return "year"
	case timeaxis.Months:
		return "month"
	default:
		return "day"
	}
}

func componentValue(d timeaxis.Date, r timeaxis.Resolution) string {
	switch r {
	case timeaxis.Years:
		return fmt.Sprintf("%d", d.Year())
	case timeaxis.Months:
		return d.Format("Jan")
	default:
		return fmt.Sprintf("%d", d.Day())
	}
}
