package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/ncruces/go-strftime"

	"github.com/chris/mapdate/internal/axis"
	"github.com/chris/mapdate/internal/state"
	"github.com/chris/mapdate/internal/timeaxis"
	"github.com/chris/mapdate/pkg/models"
)

// Styles
var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	focusDotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	blurDotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	resStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dragStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	axisStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	scrubStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	hoverStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	layerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	extentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const marginX = 2

func (m *Model) renderView() string {
	var b strings.Builder

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	contentWidth := width - 2*marginX
	if contentWidth < 20 {
		contentWidth = 20
	}
	margin := strings.Repeat(" ", marginX)
	st := m.store.State()

	// Header
	b.WriteString(margin + m.renderHeader(st))
	b.WriteString("\n")
	b.WriteString(margin + separatorStyle.Render(strings.Repeat("=", contentWidth)))
	b.WriteString("\n")

	// Axis rows start at column 0 so mouse X is the axis pixel
	strip := m.renderAxis(st, width)
	b.WriteString(labelStyle.Render(strip.Labels))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(strip.Line))
	b.WriteString("\n")
	b.WriteString(scrubStyle.Render(strip.Scrub))
	b.WriteString("\n")

	// Hover preview
	if st.Hover != nil {
		b.WriteString(margin + hoverStyle.Render("hover "+m.formatDay(st.Hover.Date)))
	}
	b.WriteString("\n\n")

	// Layers
	b.WriteString(margin + m.renderLayers(st.Date, contentWidth))

	// Status bar
	b.WriteString("\n")
	b.WriteString(margin + separatorStyle.Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n")
	b.WriteString(margin + m.renderStatusBar())

	return b.String()
}

func (m *Model) renderHeader(st state.State) string {
	dot := focusDotStyle.Render("●")
	if !m.focused {
		dot = blurDotStyle.Render("○")
	}

	header := headerStyle.Render("Map Date") + " " + dot + " " +
		headerStyle.Render(m.formatDay(st.Date)) + "  " +
		resStyle.Render(st.Resolution.String())
	if st.Dragging {
		header += "  " + dragStyle.Render(m.timeline.State().String())
	}
	return header
}

func (m *Model) renderAxis(st state.State, width int) axis.Strip {
	mapper := m.timeline.Mapper()
	minGap := float64(ansi.StringWidth(axis.Label(st.Date, st.Resolution)) + 1)

	ticks, err := axis.Ticks(mapper, st.Resolution, minGap)
	if err != nil {
		ticks = nil
	}
	bounds := m.timeline.Bounds()
	return axis.Render(ticks, width,
		mapper.XFromDate(bounds.Min),
		mapper.XFromDate(bounds.Max),
		mapper.XFromDate(st.Date),
	)
}

func (m *Model) renderLayers(d timeaxis.Date, width int) string {
	if m.layers == nil {
		return extentStyle.Render("No layer catalog (run: mapdate init-db)") + "\n"
	}
	if m.layersErr != nil {
		return warnStyle.Render("Layer catalog error: "+m.layersErr.Error()) + "\n"
	}
	if !m.layersDate.Equal(d) {
		return extentStyle.Render("Loading layers…") + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Layers on %s (%d)", d, len(m.layersOn))))
	b.WriteString("\n")
	if len(m.layersOn) == 0 {
		b.WriteString(strings.Repeat(" ", marginX) + extentStyle.Render("No layers on this date") + "\n")
		return b.String()
	}

	nameWidth := 0
	for _, l := range m.layersOn {
		if w := ansi.StringWidth(l.Name); w > nameWidth {
			nameWidth = w
		}
	}
	for _, l := range m.layersOn {
		b.WriteString(strings.Repeat(" ", marginX) + renderLayerItem(l, nameWidth, width-marginX) + "\n")
	}
	return b.String()
}

func renderLayerItem(l models.Layer, nameWidth, width int) string {
	extent := l.Extent()
	if l.Source != "" {
		extent = l.Source + "  " + extent
	}

	nameMax := width - ansi.StringWidth(extent) - 2
	if nameMax < 10 {
		nameMax = 10
	}
	if nameWidth > nameMax {
		nameWidth = nameMax
	}
	name := truncateWithEllipsis(l.Name, nameWidth)
	padding := nameWidth - ansi.StringWidth(name) + 2

	return layerStyle.Render(name) + strings.Repeat(" ", padding) + extentStyle.Render(extent)
}

// truncateWithEllipsis truncates a string to maxWidth, adding … if truncated
func truncateWithEllipsis(s string, maxWidth int) string {
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth-1, "") + "…"
}

func (m *Model) formatDay(d timeaxis.Date) string {
	return strftime.Format(m.dateFormat, d.Time())
}

func (m *Model) renderStatusBar() string {
	switch m.edit {
	case EditPickComponent:
		return "Edit " + m.help.ShortHelpView(m.editKeys.ShortHelp())
	case EditValue:
		return fmt.Sprintf("Set %s %s", componentName(m.editRes), m.input.View())
	}

	bar := m.help.View(m.keys)
	if m.status != "" {
		bar = warnStyle.Render(m.status) + "  " + bar
	}
	return bar
}
