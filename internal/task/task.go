// Package task defines the core domain types for timebox.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the calendar date format used for Task.Date.
const DateLayout = "2006-01-02"

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrTitleTooShort     = errors.New("title must be at least 3 characters")
	ErrTitleTooLong      = errors.New("title must be at most 100 characters")
	ErrEmptyCategory     = errors.New("category cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrInvalidPriority   = errors.New("priority must be between 1 and 5")
	ErrInvalidStatus     = errors.New("status must be todo, in-progress, done or rescheduled")
	ErrMissingCompletion = errors.New("done task must have a completion time")
)

// Domain errors.
var (
	ErrTimeBlockOverlap = errors.New("time block overlaps with existing task")
	ErrTaskNotFound     = errors.New("task not found")
)

// Status represents the state of a task.
type Status string

const (
	StatusTodo        Status = "todo"
	StatusInProgress  Status = "in-progress"
	StatusDone        Status = "done"
	StatusRescheduled Status = "rescheduled"
)

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusRescheduled:
		return true
	default:
		return false
	}
}

// Next returns the status that follows s on the board: todo, in-progress, done, todo.
// A rescheduled task moves straight to done.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress, StatusRescheduled:
		return StatusDone
	default:
		return StatusTodo
	}
}

// Priority bounds.
const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

// Categories lists the built-in categories offered by the CLI.
// Any non-empty category is accepted.
var Categories = []string{
	"DSA",
	"Aptitude",
	"Web Dev",
	"College Exams",
	"Labs",
	"Workout",
	"Projects",
	"Break",
}

// Task represents a time-boxed item on a single day.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`        // "YYYY-MM-DD"
	StartTime24 string     `json:"startTime24"` // "HH:MM"
	EndTime24   string     `json:"endTime24"`   // "HH:MM"
	Priority    int        `json:"priority"`
	Status      Status     `json:"status"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// New creates a new Task with validation.
// date must be in YYYY-MM-DD format, start and end in HH:MM format with end after start.
// A priority of 0 means the default priority.
func New(title, category, date, start, end string, priority int) (*Task, error) {
	t := &Task{
		Title:       SanitizeTitle(title),
		Category:    strings.TrimSpace(category),
		Date:        date,
		StartTime24: start,
		EndTime24:   end,
		Priority:    priority,
		Status:      StatusTodo,
		CreatedAt:   time.Now(),
	}
	if t.Priority == 0 {
		t.Priority = DefaultPriority
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// SanitizeTitle trims whitespace and strips angle brackets.
func SanitizeTitle(s string) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return strings.TrimSpace(s)
}

// Validate checks all fields of the task.
func (t *Task) Validate() error {
	n := utf8.RuneCountInString(t.Title)
	switch {
	case n == 0:
		return ErrEmptyTitle
	case n < 3:
		return ErrTitleTooShort
	case n > 100:
		return ErrTitleTooLong
	}
	if t.Category == "" {
		return ErrEmptyCategory
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, t.Date)
	}
	iv, err := t.Interval()
	if err != nil {
		return err
	}
	if iv.End <= iv.Start {
		return ErrEndBeforeStart
	}
	if t.Priority < MinPriority || t.Priority > MaxPriority {
		return fmt.Errorf("%w: got %d", ErrInvalidPriority, t.Priority)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.Status == StatusDone && t.CompletedAt == nil {
		return ErrMissingCompletion
	}
	return nil
}

// Interval returns the task's time range, derived from its HH:MM fields.
func (t *Task) Interval() (Interval, error) {
	return ParseInterval(t.StartTime24, t.EndTime24)
}

// IsTimed returns true if both start and end times are set.
func (t *Task) IsTimed() bool {
	return t.StartTime24 != "" && t.EndTime24 != ""
}

// IsDone returns true if the task is completed.
func (t *Task) IsDone() bool {
	return t.Completed
}

// EffectivePriority returns the priority, defaulting to DefaultPriority when unset.
func (t *Task) EffectivePriority() int {
	if t.Priority == 0 {
		return DefaultPriority
	}
	return t.Priority
}

// SetStatus changes the status and keeps Completed and CompletedAt in sync.
func (t *Task) SetStatus(s Status, now time.Time) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	t.Status = s
	if s == StatusDone {
		t.Completed = true
		if t.CompletedAt == nil {
			at := now.UTC()
			t.CompletedAt = &at
		}
		return nil
	}
	t.Completed = false
	t.CompletedAt = nil
	return nil
}

// Normalize repairs records written before status tracking existed.
// An empty status is derived from Completed and a zero priority becomes the default.
// A done task without a completion time is taken as completed when its block
// ended, or when it was created if it has no usable block.
func (t *Task) Normalize() {
	if t.Status == "" {
		if t.Completed {
			t.Status = StatusDone
		} else {
			t.Status = StatusTodo
		}
	}
	t.Completed = t.Status == StatusDone
	if !t.Completed {
		t.CompletedAt = nil
	} else if t.CompletedAt == nil {
		t.CompletedAt = t.inferredCompletion()
	}
	if t.Priority == 0 {
		t.Priority = DefaultPriority
	}
}

func (t *Task) inferredCompletion() *time.Time {
	if day, err := time.Parse(DateLayout, t.Date); err == nil {
		if end, err := ToMinutes(t.EndTime24); err == nil {
			at := day.Add(time.Duration(end) * time.Minute)
			return &at
		}
		if !t.IsTimed() {
			return &day
		}
	}
	if !t.CreatedAt.IsZero() {
		at := t.CreatedAt.UTC()
		return &at
	}
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

// Duration returns the task duration in minutes, or 0 if its times are invalid.
func (t *Task) Duration() int {
	iv, err := t.Interval()
	if err != nil || iv.End <= iv.Start {
		return 0
	}
	return iv.Duration()
}
