package scheduler

import (
	"fmt"
	"slices"

	"github.com/javiermolinar/timebox/internal/task"
)

// DetectConflict returns the first task in existing whose time overlaps the candidate,
// or nil if there is none. Touching endpoints do not conflict.
//
// Every timed task in existing blocks time regardless of its status; callers exclude
// the task being edited and anything else that should not count.
func (s *Scheduler) DetectConflict(candidate *task.Task, existing []*task.Task) (*task.Task, error) {
	iv, err := candidate.Interval()
	if err != nil {
		return nil, fmt.Errorf("candidate: %w", err)
	}

	for _, t := range existing {
		other, ok, err := occupiedInterval(t)
		if err != nil {
			return nil, err
		}
		if ok && iv.Overlaps(other) {
			s.log.Debug("conflict detected", "candidate", iv.String(), "task", t.ID, "slot", other.String())
			return t, nil
		}
	}
	return nil, nil
}

// IDSet is a set of task IDs.
type IDSet map[int64]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s IDSet) Len() int {
	return len(s)
}

// IDs returns the IDs in ascending order.
func (s IDSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// CheckConflicts returns the IDs of all open, timed tasks that overlap at least one
// other open, timed task in dayTasks. Completed tasks are ignored.
func (s *Scheduler) CheckConflicts(dayTasks []*task.Task) (IDSet, error) {
	type entry struct {
		id int64
		iv task.Interval
	}

	var timed []entry
	for _, t := range dayTasks {
		if t == nil || t.IsDone() {
			continue
		}
		iv, ok, err := occupiedInterval(t)
		if err != nil {
			return nil, err
		}
		if ok {
			timed = append(timed, entry{id: t.ID, iv: iv})
		}
	}

	result := make(IDSet)
	for i := 0; i < len(timed); i++ {
		for j := i + 1; j < len(timed); j++ {
			if timed[i].iv.Overlaps(timed[j].iv) {
				result[timed[i].id] = struct{}{}
				result[timed[j].id] = struct{}{}
			}
		}
	}
	return result, nil
}
