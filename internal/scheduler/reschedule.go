package scheduler

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/timebox/internal/task"
)

// RescheduleResult is the outcome of AutoRescheduleOverdue.
type RescheduleResult struct {
	// Tasks is a copy of the input collection with the patches applied.
	Tasks []*task.Task
	// Moved holds one patch per rescheduled task, in placement order.
	Moved []task.Patch
	// Skipped holds overdue tasks that did not fit before the ceiling.
	Skipped []int64
}

// Count returns how many tasks were rescheduled.
func (r *RescheduleResult) Count() int {
	return len(r.Moved)
}

// AutoRescheduleOverdue moves every overdue task into today's next free slot.
//
// A task is overdue when it is not completed and is dated before today, or is dated
// today and ended before now. Overdue tasks are placed by descending priority (stable),
// each at the first free RescheduleStep-aligned start from a cursor that begins
// RescheduleLead minutes after now and advances past each placed task by
// RescheduleGap. Placements must end by RescheduleCeiling. Collisions are checked
// against all open, timed tasks dated today, including those placed earlier in the run.
//
// all is not modified; the result carries patched copies.
func (s *Scheduler) AutoRescheduleOverdue(all []*task.Task, now time.Time) (*RescheduleResult, error) {
	today := now.Format(task.DateLayout)
	currentMinute := now.Hour()*60 + now.Minute()

	working := make([]*task.Task, len(all))
	for i, t := range all {
		working[i] = t.Clone()
	}

	var overdue []*task.Task
	for _, t := range working {
		if t == nil || t.IsDone() {
			continue
		}
		late, err := isOverdue(t, today, currentMinute)
		if err != nil {
			return nil, err
		}
		if late {
			overdue = append(overdue, t)
		}
	}
	slices.SortStableFunc(overdue, func(a, b *task.Task) int {
		return cmp.Compare(b.EffectivePriority(), a.EffectivePriority())
	})

	result := &RescheduleResult{Tasks: working}
	cursor := currentMinute + s.opts.RescheduleLead
	for _, t := range overdue {
		duration, err := s.durationOf(t)
		if err != nil {
			return nil, err
		}

		start, ok, err := s.scanFromCursor(working, t, today, cursor, duration)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.log.Debug("overdue task left in place", "task", t.ID, "duration", duration, "cursor", task.FromMinutes(cursor))
			result.Skipped = append(result.Skipped, t.ID)
			continue
		}

		patch := task.Patch{
			ID:          t.ID,
			Date:        today,
			StartTime24: task.FromMinutes(start),
			EndTime24:   task.FormatEnd(start + duration),
			Status:      task.StatusRescheduled,
		}
		patch.Apply(t)
		result.Moved = append(result.Moved, patch)
		s.log.Debug("rescheduled overdue task", "task", t.ID, "priority", t.EffectivePriority(), "slot", patch.StartTime24+"-"+patch.EndTime24)

		cursor = start + duration + s.opts.RescheduleGap
	}

	return result, nil
}

// isOverdue reports whether an open task has passed. Tasks without a date are never
// overdue, and neither are today's tasks without an end time.
func isOverdue(t *task.Task, today string, currentMinute int) (bool, error) {
	if t.Date == "" {
		return false, nil
	}
	if _, err := time.Parse(task.DateLayout, t.Date); err != nil {
		return false, fmt.Errorf("task #%d: %w: %q", t.ID, task.ErrInvalidDate, t.Date)
	}
	switch {
	case t.Date < today:
		return true, nil
	case t.Date > today:
		return false, nil
	}
	if t.EndTime24 == "" {
		return false, nil
	}
	end, err := task.ToMinutes(t.EndTime24)
	if err != nil {
		return false, fmt.Errorf("task #%d: %w", t.ID, err)
	}
	return end < currentMinute, nil
}

// durationOf returns the task's length, or the default duration when a time is
// missing or the range is empty or inverted.
func (s *Scheduler) durationOf(t *task.Task) (int, error) {
	if !t.IsTimed() {
		return s.opts.DefaultDuration, nil
	}
	iv, err := t.Interval()
	if err != nil {
		return 0, fmt.Errorf("task #%d: %w", t.ID, err)
	}
	if d := iv.Duration(); d > 0 {
		return d, nil
	}
	return s.opts.DefaultDuration, nil
}

// scanFromCursor finds the first free start for t on today, stepping from cursor.
func (s *Scheduler) scanFromCursor(working []*task.Task, t *task.Task, today string, cursor, duration int) (int, bool, error) {
	var busy []task.Interval
	for _, other := range working {
		if other == nil || other == t || other.IsDone() || other.Date != today {
			continue
		}
		iv, ok, err := occupiedInterval(other)
		if err != nil {
			return 0, false, err
		}
		if ok {
			busy = append(busy, iv)
		}
	}

	for start := cursor; start+duration <= s.opts.RescheduleCeiling; start += s.opts.RescheduleStep {
		candidate := task.Interval{Start: start, End: start + duration}
		free := true
		for _, b := range busy {
			if candidate.Overlaps(b) {
				free = false
				break
			}
		}
		if free {
			return start, true, nil
		}
	}
	return 0, false, nil
}

// AutoRescheduleOverdue runs Scheduler.AutoRescheduleOverdue with the default options.
func AutoRescheduleOverdue(all []*task.Task, now time.Time) (*RescheduleResult, error) {
	return defaultScheduler.AutoRescheduleOverdue(all, now)
}
