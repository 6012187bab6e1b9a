package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timebox/internal/task"
	"github.com/javiermolinar/timebox/internal/tui/commands"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.prompt.Width = max(msg.Width-10, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.DayLoadedMsg:
		// Drop results for a day the user already navigated away from.
		if msg.Date != m.date {
			return m, nil
		}
		m.tasks = msg.Tasks
		m.conflicts = msg.Conflicts
		m.err = nil
		if m.cursor >= len(m.tasks) {
			m.cursor = max(len(m.tasks)-1, 0)
		}
		m.logger.Debug("day loaded", "date", msg.Date, "tasks", len(msg.Tasks), "conflicts", msg.Conflicts.Len())
		return m, nil

	case commands.StatusMsg:
		m.statusMsg = msg.Msg
		m.err = nil
		cmds := []tea.Cmd{commands.ClearStatusAfter(statusTimeout)}
		if msg.Reload {
			cmds = append(cmds, commands.LoadDay(m.planner, m.date))
		}
		return m, tea.Batch(cmds...)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case commands.ErrMsg:
		m.logger.Error("tui command failed", "err", msg.Err)
		m.err = msg.Err
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key", "key", msg.String(), "mode", m.mode)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModePrompt {
		return m.handlePromptKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevDay):
		m.shiftDate(-1)
		return m, commands.LoadDay(m.planner, m.date)

	case key.Matches(msg, m.keys.NextDay):
		m.shiftDate(1)
		return m, commands.LoadDay(m.planner, m.date)

	case key.Matches(msg, m.keys.Today):
		m.date = m.now().Format(task.DateLayout)
		m.cursor = 0
		return m, commands.LoadDay(m.planner, m.date)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Cycle):
		if t := m.Selected(); t != nil {
			return m, commands.CycleStatus(m.planner, t.ID, m.now())
		}

	case key.Matches(msg, m.keys.Reschedule):
		return m, commands.RescheduleOverdue(m.planner, m.now())

	case key.Matches(msg, m.keys.Reslot):
		t := m.Selected()
		if t == nil {
			break
		}
		if !m.conflicts.Has(t.ID) {
			m.statusMsg = "Task has no conflict"
			return m, commands.ClearStatusAfter(statusTimeout)
		}
		return m, commands.Reslot(m.planner, t.ID)

	case key.Matches(msg, m.keys.Add):
		m.mode = ModePrompt
		m.prompt.SetValue("")
		cmd := m.prompt.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Copy):
		return m, commands.CopySummary(m.date, m.tasks)

	case key.Matches(msg, m.keys.Delete):
		if t := m.Selected(); t != nil {
			return m, commands.DeleteTask(m.planner, t.ID)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil

	case tea.KeyEnter:
		input := strings.TrimSpace(m.prompt.Value())
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		if input == "" {
			return m, nil
		}
		return m, commands.QuickAdd(m.planner, input, m.date, quickAddCategory,
			m.config.Schedule.DefaultPriority, m.now())
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}
