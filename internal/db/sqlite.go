// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timebox/internal/task"
)

const taskColumns = `id, title, category, date, start_time, end_time,
	priority, status, completed, completed_at, created_at`

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ task.Repository = (*SQLite)(nil)

// New opens the database at path, creating its directory if needed, and runs migrations.
// The path ":memory:" opens a private in-memory database.
func New(path string) (*SQLite, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateTask adds a new task and sets its ID.
// IDs are the creation time in epoch milliseconds, bumped by one until unused.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}

	id, err := s.nextID(ctx, s.db, t.CreatedAt)
	if err != nil {
		return err
	}
	t.ID = id

	if err := insertTask(ctx, s.db, t); err != nil {
		t.ID = 0
		return err
	}
	return nil
}

func (s *SQLite) nextID(ctx context.Context, ex execer, at time.Time) (int64, error) {
	id := at.UnixMilli()
	for {
		var one int
		err := ex.QueryRowContext(ctx, `SELECT 1 FROM tasks WHERE id = ?`, id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return id, nil
		}
		if err != nil {
			return 0, fmt.Errorf("checking task id: %w", err)
		}
		id++
	}
}

func insertTask(ctx context.Context, ex execer, t *task.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := ex.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Category,
		t.Date,
		t.StartTime24,
		t.EndTime24,
		t.EffectivePriority(),
		t.Status,
		t.Completed,
		formatTimestamp(t.CompletedAt),
		t.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting task %q: %w", t.Title, err)
	}
	return nil
}

// GetTask retrieves a task by ID. Returns nil, nil when it does not exist.
func (s *SQLite) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

// UpdateTask overwrites the mutable fields of an existing task.
func (s *SQLite) UpdateTask(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, category = ?, date = ?, start_time = ?, end_time = ?,
		    priority = ?, status = ?, completed = ?, completed_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		t.Title,
		t.Category,
		t.Date,
		t.StartTime24,
		t.EndTime24,
		t.EffectivePriority(),
		t.Status,
		t.Completed,
		formatTimestamp(t.CompletedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return expectRow(result, t.ID)
}

// DeleteTask removes a task.
func (s *SQLite) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return expectRow(result, id)
}

// ListTasks returns every task ordered by date and start time.
func (s *SQLite) ListTasks(ctx context.Context) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY date, start_time = '', start_time, end_time, id`
	return s.queryTasks(ctx, query)
}

// ListTasksByDate returns all tasks on a date, untimed tasks last.
func (s *SQLite) ListTasksByDate(ctx context.Context, date string) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE date = ? ORDER BY start_time = '', start_time, end_time, id`
	return s.queryTasks(ctx, query, date)
}

// ListTasksByDateRange returns all tasks dated within the range (inclusive).
func (s *SQLite) ListTasksByDateRange(ctx context.Context, start, end string) ([]*task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_time = '', start_time, end_time, id
	`
	return s.queryTasks(ctx, query, start, end)
}

func (s *SQLite) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// ApplyPatches writes placement changes in one transaction.
// A patch that moves a task away from done also clears its completion.
func (s *SQLite) ApplyPatches(ctx context.Context, patches []task.Patch) error {
	if len(patches) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range patches {
		var result sql.Result
		if p.Status == "" {
			result, err = tx.ExecContext(ctx,
				`UPDATE tasks SET date = ?, start_time = ?, end_time = ? WHERE id = ?`,
				p.Date, p.StartTime24, p.EndTime24, p.ID)
		} else {
			result, err = tx.ExecContext(ctx, `
				UPDATE tasks
				SET date = ?, start_time = ?, end_time = ?, status = ?,
				    completed = ?, completed_at = CASE WHEN ? THEN completed_at ELSE NULL END
				WHERE id = ?`,
				p.Date, p.StartTime24, p.EndTime24, p.Status,
				p.Status == task.StatusDone, p.Status == task.StatusDone, p.ID)
		}
		if err != nil {
			return fmt.Errorf("patching task %d: %w", p.ID, err)
		}
		if err := expectRow(result, p.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ReplaceAll deletes every task and inserts tasks in one transaction.
// Tasks keep their IDs; tasks without one get a fresh ID.
func (s *SQLite) ReplaceAll(ctx context.Context, tasks []*task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	// Tasks with IDs go first so generated IDs cannot take theirs.
	var unnumbered []*task.Task
	for _, t := range tasks {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = s.now()
		}
		if t.ID == 0 {
			unnumbered = append(unnumbered, t)
			continue
		}
		if err := insertTask(ctx, tx, t); err != nil {
			return err
		}
	}
	for _, t := range unnumbered {
		id, err := s.nextID(ctx, tx, t.CreatedAt)
		if err != nil {
			return err
		}
		t.ID = id
		if err := insertTask(ctx, tx, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		t           task.Task
		completedAt sql.NullString
		createdAt   string
	)

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Category,
		&t.Date,
		&t.StartTime24,
		&t.EndTime24,
		&t.Priority,
		&t.Status,
		&t.Completed,
		&completedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	if completedAt.Valid && completedAt.String != "" {
		at, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing completed at: %w", err)
		}
		t.CompletedAt = &at
	}

	t.Normalize()
	return &t, nil
}

func formatTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func expectRow(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}
	return nil
}
