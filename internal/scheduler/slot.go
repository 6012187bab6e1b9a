package scheduler

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/javiermolinar/timebox/internal/task"
)

// FindNextAvailableSlot returns the earliest slot at or after t's own start that has
// t's duration and overlaps none of existing. A task that blocks the candidate pushes
// it to that task's end plus the slot buffer.
//
// Existing tasks are swept in start order until a full pass moves nothing, so the
// result is free even when existing tasks overlap each other.
// It returns nil when the slot would end after the day end.
func (s *Scheduler) FindNextAvailableSlot(t *task.Task, existing []*task.Task) (*Slot, error) {
	iv, err := t.Interval()
	if err != nil {
		return nil, err
	}
	duration := iv.Duration()
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %s-%s", task.ErrEndBeforeStart, t.StartTime24, t.EndTime24)
	}

	occupied := make([]task.Interval, 0, len(existing))
	for _, e := range existing {
		other, ok, err := occupiedInterval(e)
		if err != nil {
			return nil, err
		}
		if ok {
			occupied = append(occupied, other)
		}
	}
	slices.SortStableFunc(occupied, func(a, b task.Interval) int {
		return cmp.Compare(a.Start, b.Start)
	})

	start := iv.Start
	for moved := true; moved; {
		moved = false
		for _, o := range occupied {
			candidate := task.Interval{Start: start, End: start + duration}
			if !candidate.Overlaps(o) {
				continue
			}
			if next := max(start, o.End+s.opts.SlotBuffer); next != start {
				start = next
				moved = true
			}
		}
		if start+duration > s.opts.DayEnd {
			s.log.Debug("no slot before day end", "task", t.ID, "duration", duration, "start", start)
			return nil, nil
		}
	}

	return newSlot(start, start+duration), nil
}
