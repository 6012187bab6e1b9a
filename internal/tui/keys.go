package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the day view key bindings.
type keyMap struct {
	PrevDay    key.Binding
	NextDay    key.Binding
	Today      key.Binding
	Up         key.Binding
	Down       key.Binding
	Cycle      key.Binding
	Reschedule key.Binding
	Reslot     key.Binding
	Add        key.Binding
	Copy       key.Binding
	Delete     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Cycle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "cycle status"),
		),
		Reschedule: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reschedule overdue"),
		),
		Reslot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next free slot"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "quick add"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy summary"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
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

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Cycle, k.Add, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.Today, k.Up, k.Down},
		{k.Cycle, k.Reschedule, k.Reslot, k.Delete},
		{k.Add, k.Copy, k.Help, k.Quit},
	}
}
