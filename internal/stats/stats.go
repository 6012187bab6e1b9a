// Package stats aggregates completed work for the stats command and the day view.
package stats

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/task"
)

// CategoryTime is the completed time spent on one category.
type CategoryTime struct {
	Category string
	Minutes  int
}

// CategoryCount is the number of tasks filed under one category.
type CategoryCount struct {
	Category string
	Count    int
}

// DayCount is a number of tasks attributed to one date.
type DayCount struct {
	Date  string
	Count int
}

// Summary counts tasks by status.
type Summary struct {
	Total            int
	Done             int
	InProgress       int
	Todo             int
	Rescheduled      int
	PlannedMinutes   int
	CompletedMinutes int
}

// CompletionPercent returns the share of done tasks, 0 when there are none.
func (s Summary) CompletionPercent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Done * 100 / s.Total
}

// Summarize counts tasks by status and sums their planned and completed minutes.
func Summarize(tasks []*task.Task) Summary {
	var s Summary
	for _, t := range tasks {
		if t == nil {
			continue
		}
		s.Total++
		minutes := blockMinutes(t)
		s.PlannedMinutes += minutes
		switch {
		case t.IsDone():
			s.Done++
			s.CompletedMinutes += minutes
		case t.Status == task.StatusInProgress:
			s.InProgress++
		case t.Status == task.StatusRescheduled:
			s.Rescheduled++
		default:
			s.Todo++
		}
	}
	return s
}

// TimeByCategory returns completed minutes per category, largest first.
// Categories without completed time are omitted.
func TimeByCategory(tasks []*task.Task) []CategoryTime {
	totals := make(map[string]int)
	for _, t := range tasks {
		if t == nil || !t.IsDone() {
			continue
		}
		totals[t.Category] += blockMinutes(t)
	}

	result := make([]CategoryTime, 0, len(totals))
	for category, minutes := range totals {
		if minutes > 0 {
			result = append(result, CategoryTime{Category: category, Minutes: minutes})
		}
	}
	slices.SortFunc(result, func(a, b CategoryTime) int {
		if c := cmp.Compare(b.Minutes, a.Minutes); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return result
}

// CountByCategory returns how many tasks each category holds, largest first.
func CountByCategory(tasks []*task.Task) []CategoryCount {
	counts := make(map[string]int)
	for _, t := range tasks {
		if t != nil {
			counts[t.Category]++
		}
	}

	result := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		result = append(result, CategoryCount{Category: category, Count: n})
	}
	slices.SortFunc(result, func(a, b CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return result
}

// CompletionsByDay counts tasks whose completion time falls on each of the
// days dates ending at end, oldest first. Dates are read in end's location.
func CompletionsByDay(tasks []*task.Task, end time.Time, days int) []DayCount {
	dates := dateutil.LastNDays(end, days)
	index := make(map[string]int, len(dates))
	result := make([]DayCount, len(dates))
	for i, d := range dates {
		index[d] = i
		result[i] = DayCount{Date: d}
	}

	for _, t := range tasks {
		if t == nil || !t.IsDone() || t.CompletedAt == nil {
			continue
		}
		if i, ok := index[dateutil.Format(t.CompletedAt.In(end.Location()))]; ok {
			result[i].Count++
		}
	}
	return result
}

// ActivityByDate counts completed tasks by their scheduled date over the
// days dates ending at end, oldest first.
func ActivityByDate(tasks []*task.Task, end time.Time, days int) []DayCount {
	dates := dateutil.LastNDays(end, days)
	index := make(map[string]int, len(dates))
	result := make([]DayCount, len(dates))
	for i, d := range dates {
		index[d] = i
		result[i] = DayCount{Date: d}
	}

	for _, t := range tasks {
		if t == nil || !t.IsDone() {
			continue
		}
		if i, ok := index[t.Date]; ok {
			result[i].Count++
		}
	}
	return result
}

// Streak returns the number of consecutive days, ending today or yesterday,
// with at least one completed task.
func Streak(tasks []*task.Task, now time.Time) int {
	active := make(map[string]bool)
	for _, t := range tasks {
		if t != nil && t.IsDone() && t.CompletedAt != nil {
			active[dateutil.Format(t.CompletedAt.In(now.Location()))] = true
		}
	}

	day := dateutil.TruncateToDay(now)
	if !active[dateutil.Format(day)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for active[dateutil.Format(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// blockMinutes returns a task's length. A block whose end is before its start
// is read as running past midnight.
func blockMinutes(t *task.Task) int {
	if !t.IsTimed() {
		return 0
	}
	iv, err := t.Interval()
	if err != nil {
		return 0
	}
	if iv.End < iv.Start {
		return iv.End + task.MinutesPerDay - iv.Start
	}
	return iv.Duration()
}

// Report is the repository-backed summary of a date range.
type Report struct {
	Start       string
	End         string
	Tasks       []*task.Task
	Summary     Summary
	ByCategory  []CategoryTime
	Completions []DayCount
	Streak      int
}

// Lister is the part of task.Repository the report needs.
type Lister interface {
	ListTasksByDateRange(ctx context.Context, start, end string) ([]*task.Task, error)
	ListTasks(ctx context.Context) ([]*task.Task, error)
}

// Build loads the tasks dated in [start, end] and aggregates them. Completion
// counts cover the 7 days ending at now and use every task, since work done
// this week may have been scheduled earlier.
func Build(ctx context.Context, repo Lister, start, end string, now time.Time) (*Report, error) {
	tasks, err := repo.ListTasksByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	all, err := repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}

	return &Report{
		Start:       start,
		End:         end,
		Tasks:       tasks,
		Summary:     Summarize(tasks),
		ByCategory:  TimeByCategory(tasks),
		Completions: CompletionsByDay(all, now, 7),
		Streak:      Streak(all, now),
	}, nil
}

// BuildWeek builds the report for the ISO week containing now.
func BuildWeek(ctx context.Context, repo Lister, now time.Time) (*Report, error) {
	monday, sunday := dateutil.WeekRange(now)
	return Build(ctx, repo, dateutil.Format(monday), dateutil.Format(sunday), now)
}
