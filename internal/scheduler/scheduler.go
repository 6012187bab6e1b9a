// Package scheduler provides conflict detection and slot finding for a single day of tasks.
//
// Every operation is a query or a transform over a caller-supplied task slice.
// The scheduler holds no task state, so one Scheduler can serve concurrent callers
// as long as each call gets a consistent snapshot of the day.
package scheduler

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/javiermolinar/timebox/internal/task"
)

// ErrNoSlotAvailable describes a task that cannot be placed within the day.
// Scheduler methods report this case as a nil result; callers that need an
// error value can return this one.
var ErrNoSlotAvailable = errors.New("no slot available today")

// Options holds the scheduling constants, all in minutes.
type Options struct {
	SlotBuffer        int // gap left after a blocking task when searching for a slot
	DayEnd            int // exclusive end of the slot finder's window
	RescheduleLead    int // distance from now to the first bulk reschedule candidate
	RescheduleStep    int // bulk reschedule search granularity
	RescheduleGap     int // gap between two consecutively rescheduled tasks
	RescheduleCeiling int // latest end minute for a rescheduled task
	DefaultDuration   int // duration used for tasks with missing or inverted times
}

// DefaultOptions returns the standard scheduling constants.
func DefaultOptions() Options {
	return Options{
		SlotBuffer:        5,
		DayEnd:            task.MinutesPerDay,
		RescheduleLead:    30,
		RescheduleStep:    15,
		RescheduleGap:     15,
		RescheduleCeiling: 22 * 60,
		DefaultDuration:   60,
	}
}

// Validate checks that the options describe a usable day.
func (o Options) Validate() error {
	switch {
	case o.SlotBuffer < 0:
		return fmt.Errorf("slot buffer must not be negative, got %d", o.SlotBuffer)
	case o.DayEnd <= 0 || o.DayEnd > task.MinutesPerDay:
		return fmt.Errorf("day end must be within (0, %d], got %d", task.MinutesPerDay, o.DayEnd)
	case o.RescheduleLead < 0:
		return fmt.Errorf("reschedule lead must not be negative, got %d", o.RescheduleLead)
	case o.RescheduleStep <= 0:
		return fmt.Errorf("reschedule step must be positive, got %d", o.RescheduleStep)
	case o.RescheduleGap < 0:
		return fmt.Errorf("reschedule gap must not be negative, got %d", o.RescheduleGap)
	case o.RescheduleCeiling <= 0 || o.RescheduleCeiling > o.DayEnd:
		return fmt.Errorf("reschedule ceiling must be within (0, %d], got %d", o.DayEnd, o.RescheduleCeiling)
	case o.DefaultDuration <= 0:
		return fmt.Errorf("default duration must be positive, got %d", o.DefaultDuration)
	}
	return nil
}

// Scheduler runs the scheduling algorithms with a fixed set of options.
type Scheduler struct {
	opts Options
	log  *log.Logger
}

// New creates a Scheduler. A nil logger discards all output.
func New(opts Options, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{opts: opts, log: logger}
}

// Options returns the scheduler's constants.
func (s *Scheduler) Options() Options {
	return s.opts
}

var defaultScheduler = New(DefaultOptions(), nil)

// DetectConflict runs Scheduler.DetectConflict with the default options.
func DetectConflict(candidate *task.Task, existing []*task.Task) (*task.Task, error) {
	return defaultScheduler.DetectConflict(candidate, existing)
}

// FindNextAvailableSlot runs Scheduler.FindNextAvailableSlot with the default options.
func FindNextAvailableSlot(t *task.Task, existing []*task.Task) (*Slot, error) {
	return defaultScheduler.FindNextAvailableSlot(t, existing)
}

// CheckConflicts runs Scheduler.CheckConflicts with the default options.
func CheckConflicts(dayTasks []*task.Task) (IDSet, error) {
	return defaultScheduler.CheckConflicts(dayTasks)
}

// Slot is a free time range within a day.
type Slot struct {
	StartTime24 string `json:"startTime24"`
	EndTime24   string `json:"endTime24"`
}

func newSlot(start, end int) *Slot {
	return &Slot{StartTime24: task.FromMinutes(start), EndTime24: task.FormatEnd(end)}
}

// String renders the slot as "HH:MM-HH:MM".
func (s Slot) String() string {
	return s.StartTime24 + "-" + s.EndTime24
}

// ConflictError reports a task that cannot be placed because another task holds its time.
type ConflictError struct {
	Task       *task.Task
	With       *task.Task
	Suggestion *Slot // next free slot of the same length, nil if none today
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%v: %q (%s-%s) conflicts with #%d %q (%s-%s)",
		task.ErrTimeBlockOverlap,
		e.Task.Title, e.Task.StartTime24, e.Task.EndTime24,
		e.With.ID, e.With.Title, e.With.StartTime24, e.With.EndTime24,
	)
	if e.Suggestion != nil {
		msg += "; next free slot " + e.Suggestion.String()
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return task.ErrTimeBlockOverlap
}

// occupiedInterval returns the interval a task blocks.
// Untimed tasks block nothing and report ok=false.
func occupiedInterval(t *task.Task) (iv task.Interval, ok bool, err error) {
	if t == nil || !t.IsTimed() {
		return task.Interval{}, false, nil
	}
	iv, err = t.Interval()
	if err != nil {
		return task.Interval{}, false, fmt.Errorf("task #%d: %w", t.ID, err)
	}
	return iv, true, nil
}
