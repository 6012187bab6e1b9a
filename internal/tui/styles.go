package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timebox/internal/task"
	"github.com/javiermolinar/timebox/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	Header    lipgloss.Style
	Date      lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Time      lipgloss.Style
	Category  lipgloss.Style
	Conflict  lipgloss.Style
	Summary   lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Empty     lipgloss.Style
	Prompt    lipgloss.Style
	HelpStyle lipgloss.Style

	statusColors map[task.Status]lipgloss.Color
}

// NewStyles creates the style set for a theme.
func NewStyles(t *theme.Theme) Styles {
	accent := theme.Color(t.Accent)
	muted := theme.Color(t.FgMuted)

	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Background(theme.Color(t.BgHighlight)).
			Padding(0, 1),
		Date:     lipgloss.NewStyle().Bold(true).Foreground(theme.Color(t.Fg)),
		Row:      lipgloss.NewStyle().Foreground(theme.Color(t.Fg)).Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(theme.Color(t.Fg)).Background(theme.Color(t.BgSelection)).Padding(0, 1),
		Time:     lipgloss.NewStyle().Foreground(muted),
		Category: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Conflict: lipgloss.NewStyle().Bold(true).Foreground(theme.Color(t.Conflict)),
		Summary:  lipgloss.NewStyle().Foreground(accent).Padding(0, 1),
		Status:   lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		Error:    lipgloss.NewStyle().Foreground(theme.Color(t.Conflict)).Padding(0, 1),
		Empty:    lipgloss.NewStyle().Foreground(muted).Italic(true).Padding(1, 2),
		Prompt:   lipgloss.NewStyle().Foreground(accent).Padding(0, 1),
		HelpStyle: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),

		statusColors: map[task.Status]lipgloss.Color{
			task.StatusTodo:        theme.Color(t.Todo),
			task.StatusInProgress:  theme.Color(t.InProgress),
			task.StatusDone:        theme.Color(t.Done),
			task.StatusRescheduled: theme.Color(t.Rescheduled),
		},
	}
}

// StatusStyle returns the style for a status marker.
func (s Styles) StatusStyle(status task.Status) lipgloss.Style {
	c, ok := s.statusColors[status]
	if !ok {
		c = s.statusColors[task.StatusTodo]
	}
	return lipgloss.NewStyle().Foreground(c)
}
