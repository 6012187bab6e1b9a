// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timebox/internal/export"
	"github.com/javiermolinar/timebox/internal/nlp"
	"github.com/javiermolinar/timebox/internal/planner"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
)

// DayLoadedMsg is sent when a day's tasks and conflicts are loaded.
type DayLoadedMsg struct {
	Date      string
	Tasks     []*task.Task
	Conflicts scheduler.IDSet
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages. Reload asks the model to
// reload the day it shows.
type StatusMsg struct {
	Msg    string
	Reload bool
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadDay loads the tasks and conflict set for date.
func LoadDay(p *planner.Planner, date string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		day, err := p.Day(ctx, date)
		if err != nil {
			return ErrMsg{Err: err}
		}
		conflicts, err := p.Conflicts(ctx, date)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DayLoadedMsg{Date: date, Tasks: day.Tasks(), Conflicts: conflicts}
	}
}

// CycleStatus advances a task to its next status.
func CycleStatus(p *planner.Planner, id int64, now time.Time) tea.Cmd {
	return func() tea.Msg {
		t, err := p.CycleStatus(context.Background(), id, now)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsg{Msg: fmt.Sprintf("%s → %s", t.Title, t.Status), Reload: true}
	}
}

// RescheduleOverdue moves overdue tasks into today's free time.
func RescheduleOverdue(p *planner.Planner, now time.Time) tea.Cmd {
	return func() tea.Msg {
		result, err := p.RescheduleOverdue(context.Background(), now)
		if err != nil {
			return ErrMsg{Err: err}
		}
		msg := fmt.Sprintf("Rescheduled %d overdue tasks", result.Count())
		if n := len(result.Skipped); n > 0 {
			msg += fmt.Sprintf(", %d did not fit", n)
		}
		return StatusMsg{Msg: msg, Reload: true}
	}
}

// Reslot moves a task into the next free slot on its day.
func Reslot(p *planner.Planner, id int64) tea.Cmd {
	return func() tea.Msg {
		t, err := p.Reslot(context.Background(), id)
		if errors.Is(err, scheduler.ErrNoSlotAvailable) {
			return StatusMsg{Msg: "No free slot left today"}
		}
		if err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsg{Msg: fmt.Sprintf("Moved %q to %s-%s", t.Title, t.StartTime24, t.EndTime24), Reload: true}
	}
}

// DeleteTask removes a task.
func DeleteTask(p *planner.Planner, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := p.DeleteTask(context.Background(), id); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsg{Msg: "Task deleted", Reload: true}
	}
}

// QuickAdd parses a quick-add line and stores the task on date.
// Without a time the task goes into the first free slot after nlp.StartAfter.
func QuickAdd(p *planner.Planner, input, date, category string, priority int, now time.Time) tea.Cmd {
	return func() tea.Msg {
		parsed, err := nlp.Parse(input)
		if err != nil {
			return ErrMsg{Err: err}
		}

		start := parsed.Time
		if start == "" {
			start, err = nlp.StartAfter(date, now)
			if err != nil {
				return ErrMsg{Err: err}
			}
		}
		start, end, err := parsed.TimesFrom(start)
		if err != nil {
			return ErrMsg{Err: err}
		}

		t, err := task.New(parsed.Title, category, date, start, end, priority)
		if err != nil {
			return ErrMsg{Err: err}
		}

		ctx := context.Background()
		if parsed.Time == "" {
			err = p.AddFirstFree(ctx, t)
		} else {
			err = p.AddTask(ctx, t)
		}
		if errors.Is(err, scheduler.ErrNoSlotAvailable) {
			return StatusMsg{Msg: "No free slot left on " + date}
		}
		if err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsg{Msg: fmt.Sprintf("Added %q %s-%s", t.Title, t.StartTime24, t.EndTime24), Reload: true}
	}
}

// CopySummary copies a plain-text summary of the day to the clipboard.
func CopySummary(date string, tasks []*task.Task) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(export.DaySummary(date, tasks)); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsg{Msg: "Day summary copied to clipboard"}
	}
}

// ClearStatusAfter clears the status message after a delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
