package task

import "context"

// Patch is a placement change for one task, returned by the scheduler
// and applied back by the caller.
type Patch struct {
	ID          int64
	Date        string
	StartTime24 string
	EndTime24   string
	Status      Status
}

// Apply writes the patch fields onto t.
func (p Patch) Apply(t *Task) {
	t.Date = p.Date
	t.StartTime24 = p.StartTime24
	t.EndTime24 = p.EndTime24
	if p.Status != "" {
		t.Status = p.Status
	}
}

// Repository defines the storage interface for tasks.
type Repository interface {
	// CreateTask adds a new task to the repository and sets its ID.
	CreateTask(ctx context.Context, task *Task) error

	// GetTask retrieves a task by ID. Returns nil, nil if it does not exist.
	GetTask(ctx context.Context, id int64) (*Task, error)

	// UpdateTask overwrites all mutable fields of an existing task.
	UpdateTask(ctx context.Context, task *Task) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id int64) error

	// ListTasks returns every task ordered by date and start time.
	ListTasks(ctx context.Context) ([]*Task, error)

	// ListTasksByDate returns all tasks on a date (YYYY-MM-DD).
	ListTasksByDate(ctx context.Context, date string) ([]*Task, error)

	// ListTasksByDateRange returns all tasks within the date range (inclusive).
	ListTasksByDateRange(ctx context.Context, start, end string) ([]*Task, error)

	// ApplyPatches writes placement changes atomically.
	ApplyPatches(ctx context.Context, patches []Patch) error

	// ReplaceAll deletes every task and inserts the given ones, keeping their IDs.
	ReplaceAll(ctx context.Context, tasks []*Task) error

	// Close releases any resources held by the repository.
	Close() error
}
