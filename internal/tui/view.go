package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timebox/internal/stats"
	"github.com/javiermolinar/timebox/internal/task"
)

const conflictBadge = "!! conflict"

// View renders the day view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTasks())
	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")

	if line := m.renderStatus(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.mode == ModePrompt {
		b.WriteString(m.prompt.View())
		b.WriteString("\n")
	}
	b.WriteString(m.styles.HelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) renderHeader() string {
	label := m.date
	if d, err := time.Parse(task.DateLayout, m.date); err == nil {
		label = d.Format("Monday, January 2, 2006")
	}
	if m.date == m.now().Format(task.DateLayout) {
		label += " (today)"
	}

	header := m.styles.Header.Render("timebox") + " " + m.styles.Date.Render(label)
	if n := m.conflicts.Len(); n > 0 {
		header += "  " + m.styles.Conflict.Render(fmt.Sprintf("%d in conflict", n))
	}
	return header
}

func (m Model) renderTasks() string {
	if len(m.tasks) == 0 {
		return m.styles.Empty.Render("No tasks. Press a to add one.")
	}

	rows := make([]string, 0, len(m.tasks))
	for i, t := range m.tasks {
		rows = append(rows, m.renderRow(t, i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderRow(t *task.Task, selected bool) string {
	symbol := m.styles.StatusStyle(t.Status).Render(statusSymbol(t.Status))

	timeRange := "untimed    "
	if t.IsTimed() {
		timeRange = t.StartTime24 + "-" + t.EndTime24
	}

	title := t.Title
	if m.width > 0 {
		// symbol, time, category and badge take roughly 45 cells.
		if w := m.width - 45; w > 10 && ansi.StringWidth(title) > w {
			title = ansi.Truncate(title, w, "…")
		}
	}

	parts := []string{
		symbol,
		m.styles.Time.Render(timeRange),
		title,
		m.styles.Category.Render("[" + t.Category + "]"),
	}
	if m.conflicts.Has(t.ID) {
		parts = append(parts, m.styles.Conflict.Render(conflictBadge))
	}

	line := strings.Join(parts, "  ")
	if selected {
		return m.styles.Selected.Render("> " + line)
	}
	return m.styles.Row.Render("  " + line)
}

func (m Model) renderSummary() string {
	s := stats.Summarize(m.tasks)
	return m.styles.Summary.Render(fmt.Sprintf("Done %d/%d (%d%%)  Planned %s  Completed %s",
		s.Done, s.Total, s.CompletionPercent(),
		task.FormatDuration(s.PlannedMinutes), task.FormatDuration(s.CompletedMinutes)))
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return m.styles.Error.Render("error: " + m.err.Error())
	}
	if m.statusMsg != "" {
		return m.styles.Status.Render(m.statusMsg)
	}
	return ""
}

func statusSymbol(s task.Status) string {
	switch s {
	case task.StatusInProgress:
		return "◐"
	case task.StatusDone:
		return "●"
	case task.StatusRescheduled:
		return "→"
	default:
		return "○"
	}
}
