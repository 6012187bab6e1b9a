package task

import (
	"cmp"
	"slices"
)

// Day holds all tasks for a single date, sorted by start time.
type Day struct {
	Date  string
	tasks []*Task
}

// NewDay creates a Day from the tasks dated on date. Tasks on other dates are ignored.
func NewDay(date string, tasks []*Task) *Day {
	d := &Day{Date: date, tasks: make([]*Task, 0, len(tasks))}
	for _, t := range tasks {
		if t != nil && t.Date == date {
			d.tasks = append(d.tasks, t)
		}
	}
	SortByStart(d.tasks)
	return d
}

// SortByStart sorts tasks by start time, then end time, then ID.
// Untimed tasks sort last.
func SortByStart(tasks []*Task) {
	slices.SortStableFunc(tasks, func(a, b *Task) int {
		if a.StartTime24 == "" || b.StartTime24 == "" {
			return cmp.Compare(boolRank(a.StartTime24 == ""), boolRank(b.StartTime24 == ""))
		}
		if c := cmp.Compare(a.StartTime24, b.StartTime24); c != 0 {
			return c
		}
		if c := cmp.Compare(a.EndTime24, b.EndTime24); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Tasks returns a copy of the task slice.
func (d *Day) Tasks() []*Task {
	result := make([]*Task, len(d.tasks))
	copy(result, d.tasks)
	return result
}

// Pending returns tasks that are not completed.
func (d *Day) Pending() []*Task {
	var result []*Task
	for _, t := range d.tasks {
		if !t.IsDone() {
			result = append(result, t)
		}
	}
	return result
}

// Find returns the task with the given ID, or nil.
func (d *Day) Find(id int64) *Task {
	for _, t := range d.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Without returns the day's tasks except the one with the given ID.
func (d *Day) Without(id int64) []*Task {
	result := make([]*Task, 0, len(d.tasks))
	for _, t := range d.tasks {
		if t.ID != id {
			result = append(result, t)
		}
	}
	return result
}

// Len returns the number of tasks in the day.
func (d *Day) Len() int {
	return len(d.tasks)
}
