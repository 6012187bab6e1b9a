// Package planner applies scheduler decisions to the task store.
//
// Every method holds one lock for its whole read-compute-write cycle, so the
// scheduler always sees a consistent snapshot of the tasks it reasons about.
package planner

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
)

// Planner coordinates the repository and the scheduler.
type Planner struct {
	mu    sync.Mutex
	repo  task.Repository
	sched *scheduler.Scheduler
	log   *log.Logger
}

// New creates a Planner. A nil scheduler uses the default options and a nil
// logger discards output.
func New(repo task.Repository, sched *scheduler.Scheduler, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if sched == nil {
		sched = scheduler.New(scheduler.DefaultOptions(), logger)
	}
	return &Planner{repo: repo, sched: sched, log: logger}
}

// Scheduler returns the scheduler the planner uses.
func (p *Planner) Scheduler() *scheduler.Scheduler {
	return p.sched
}

// AddTask stores t unless it overlaps another task on its day.
// On overlap it returns a *scheduler.ConflictError carrying the next free slot.
func (p *Planner) AddTask(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	dayTasks, err := p.repo.ListTasksByDate(ctx, t.Date)
	if err != nil {
		return fmt.Errorf("loading day: %w", err)
	}
	if err := p.checkFree(t, dayTasks); err != nil {
		return err
	}

	if err := p.repo.CreateTask(ctx, t); err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	p.log.Info("task added", "task", t.ID, "date", t.Date, "slot", t.StartTime24+"-"+t.EndTime24)
	return nil
}

// AddFirstFree stores t in the first free slot at or after its start, keeping its
// duration. It returns scheduler.ErrNoSlotAvailable when nothing fits that day.
func (p *Planner) AddFirstFree(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	dayTasks, err := p.repo.ListTasksByDate(ctx, t.Date)
	if err != nil {
		return fmt.Errorf("loading day: %w", err)
	}
	slot, err := p.sched.FindNextAvailableSlot(t, dayTasks)
	if err != nil {
		return err
	}
	if slot == nil {
		return fmt.Errorf("%q on %s: %w", t.Title, t.Date, scheduler.ErrNoSlotAvailable)
	}
	t.StartTime24, t.EndTime24 = slot.StartTime24, slot.EndTime24

	if err := p.repo.CreateTask(ctx, t); err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	p.log.Info("task added", "task", t.ID, "date", t.Date, "slot", slot.String())
	return nil
}

// MoveTask places a task at a new time, and on a new date when date is not empty.
// The task's own current slot does not count as a conflict.
func (p *Planner) MoveTask(ctx context.Context, id int64, date, start, end string) (*task.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.get(ctx, id)
	if err != nil {
		return nil, err
	}

	moved := t.Clone()
	if date != "" {
		moved.Date = date
	}
	moved.StartTime24 = start
	moved.EndTime24 = end
	if err := moved.Validate(); err != nil {
		return nil, err
	}

	day, err := p.repo.ListTasksByDate(ctx, moved.Date)
	if err != nil {
		return nil, fmt.Errorf("loading day: %w", err)
	}
	if err := p.checkFree(moved, without(day, id)); err != nil {
		return nil, err
	}

	if err := p.repo.UpdateTask(ctx, moved); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	p.log.Info("task moved", "task", id, "date", moved.Date, "slot", moved.StartTime24+"-"+moved.EndTime24)
	return moved, nil
}

// SuggestSlot returns the next free slot for a task among the other tasks on its day.
// It returns nil when the task cannot fit before the end of the day.
func (p *Planner) SuggestSlot(ctx context.Context, id int64) (*scheduler.Slot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.suggest(ctx, t)
}

// Reslot moves a task into its suggested slot.
// It returns scheduler.ErrNoSlotAvailable when nothing fits today.
func (p *Planner) Reslot(ctx context.Context, id int64) (*task.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.get(ctx, id)
	if err != nil {
		return nil, err
	}
	slot, err := p.suggest(ctx, t)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, fmt.Errorf("task #%d: %w", id, scheduler.ErrNoSlotAvailable)
	}

	patch := task.Patch{ID: id, Date: t.Date, StartTime24: slot.StartTime24, EndTime24: slot.EndTime24}
	if err := p.repo.ApplyPatches(ctx, []task.Patch{patch}); err != nil {
		return nil, fmt.Errorf("moving task: %w", err)
	}
	patch.Apply(t)
	p.log.Info("task moved to free slot", "task", id, "slot", slot.String())
	return t, nil
}

func (p *Planner) suggest(ctx context.Context, t *task.Task) (*scheduler.Slot, error) {
	day, err := p.repo.ListTasksByDate(ctx, t.Date)
	if err != nil {
		return nil, fmt.Errorf("loading day: %w", err)
	}
	return p.sched.FindNextAvailableSlot(t, without(day, t.ID))
}

// SetStatus changes a task's status, keeping its completion timestamp in sync.
func (p *Planner) SetStatus(ctx context.Context, id int64, status task.Status, now time.Time) (*task.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.SetStatus(status, now); err != nil {
		return nil, err
	}
	if err := p.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	p.log.Info("status changed", "task", id, "status", status)
	return t, nil
}

// CycleStatus advances a task to its next status.
func (p *Planner) CycleStatus(ctx context.Context, id int64, now time.Time) (*task.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.SetStatus(t.Status.Next(), now); err != nil {
		return nil, err
	}
	if err := p.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	p.log.Info("status changed", "task", id, "status", t.Status)
	return t, nil
}

// DeleteTask removes a task.
func (p *Planner) DeleteTask(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.repo.DeleteTask(ctx, id); err != nil {
		return err
	}
	p.log.Info("task deleted", "task", id)
	return nil
}

// RescheduleOverdue moves every overdue task into today's free slots and persists
// the moves in one transaction.
func (p *Planner) RescheduleOverdue(ctx context.Context, now time.Time) (*scheduler.RescheduleResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	all, err := p.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	result, err := p.sched.AutoRescheduleOverdue(all, now)
	if err != nil {
		return nil, err
	}
	if err := p.repo.ApplyPatches(ctx, result.Moved); err != nil {
		return nil, fmt.Errorf("saving rescheduled tasks: %w", err)
	}

	p.log.Info("overdue tasks rescheduled", "moved", result.Count(), "skipped", len(result.Skipped))
	return result, nil
}

// Conflicts returns the IDs of open tasks on date that overlap another open task.
func (p *Planner) Conflicts(ctx context.Context, date string) (scheduler.IDSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	day, err := p.repo.ListTasksByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading day: %w", err)
	}
	return p.sched.CheckConflicts(day)
}

// Day returns the tasks on date sorted by start time.
func (p *Planner) Day(ctx context.Context, date string) (*task.Day, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tasks, err := p.repo.ListTasksByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading day: %w", err)
	}
	return task.NewDay(date, tasks), nil
}

// Task returns one task or task.ErrTaskNotFound.
func (p *Planner) Task(ctx context.Context, id int64) (*task.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.get(ctx, id)
}

func (p *Planner) get(ctx context.Context, id int64) (*task.Task, error) {
	t, err := p.repo.GetTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}
	return t, nil
}

// checkFree returns a ConflictError when candidate overlaps one of existing.
func (p *Planner) checkFree(candidate *task.Task, existing []*task.Task) error {
	with, err := p.sched.DetectConflict(candidate, existing)
	if err != nil {
		return err
	}
	if with == nil {
		return nil
	}

	slot, err := p.sched.FindNextAvailableSlot(candidate, existing)
	if err != nil {
		return err
	}
	return &scheduler.ConflictError{Task: candidate, With: with, Suggestion: slot}
}

func without(tasks []*task.Task, id int64) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
