package task

import "time"

// Week holds 7 days starting from Monday.
type Week struct {
	Days [7]*Day // Monday (0) through Sunday (6)
}

// NewWeek groups tasks into the ISO week containing date.
// Tasks outside the week are ignored.
func NewWeek(date time.Time, tasks []*Task) *Week {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := date.AddDate(0, 0, 1-weekday)

	w := &Week{}
	for i := range w.Days {
		w.Days[i] = NewDay(monday.AddDate(0, 0, i).Format(DateLayout), tasks)
	}
	return w
}

// StartDate returns the Monday of the week as YYYY-MM-DD.
func (w *Week) StartDate() string {
	return w.Days[0].Date
}

// EndDate returns the Sunday of the week as YYYY-MM-DD.
func (w *Week) EndDate() string {
	return w.Days[6].Date
}

// Day returns the Day for the given weekday (0=Monday, 6=Sunday), nil if out of range.
func (w *Week) Day(weekday int) *Day {
	if weekday < 0 || weekday > 6 {
		return nil
	}
	return w.Days[weekday]
}

// DayByDate returns the Day for a YYYY-MM-DD date, nil if not in this week.
func (w *Week) DayByDate(date string) *Day {
	for _, d := range w.Days {
		if d.Date == date {
			return d
		}
	}
	return nil
}

// AllTasks returns all tasks across the week, sorted by date and start time.
func (w *Week) AllTasks() []*Task {
	var result []*Task
	for _, d := range w.Days {
		result = append(result, d.Tasks()...)
	}
	return result
}
