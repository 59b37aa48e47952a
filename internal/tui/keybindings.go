package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap is the explorer's key bindings. It satisfies help.KeyMap.
type keyMap struct {
	DayBack    key.Binding
	DayFwd     key.Binding
	MonthBack  key.Binding
	MonthFwd   key.Binding
	YearBack   key.Binding
	YearFwd    key.Binding
	Resolution key.Binding
	Edit       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		DayBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		DayFwd: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		MonthBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		MonthFwd: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		YearBack: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "previous year"),
		),
		YearFwd: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "next year"),
		),
		Resolution: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "cycle resolution"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit date"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.DayBack, k.DayFwd, k.Resolution, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.DayBack, k.DayFwd},
		{k.MonthBack, k.MonthFwd, k.YearBack, k.YearFwd},
		{k.Resolution, k.Edit, k.Help, k.Quit},
	}
}

// editKeyMap is active while the date edit prompt is open
type editKeyMap struct {
	Year    key.Binding
	Month   key.Binding
	Day     key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultEditKeyMap() editKeyMap {
	return editKeyMap{
		Year:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		Month:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Day:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Year, k.Month, k.Day, k.Confirm, k.Cancel}
}

func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
