package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/timebox/internal/task"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func newTask(t *testing.T, title, date, start, end string) *task.Task {
	t.Helper()
	tsk, err := task.New(title, "Projects", date, start, end, 0)
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	return tsk
}

func TestCreateAndGetTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	tsk := newTask(t, "Write unit tests", "2025-01-15", "09:00", "11:00")
	tsk.CreatedAt = created
	tsk.Priority = 5

	if err := repo.CreateTask(ctx, tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if tsk.ID != created.UnixMilli() {
		t.Errorf("ID = %d, want creation millis %d", tsk.ID, created.UnixMilli())
	}

	got, err := repo.GetTask(ctx, tsk.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected task, got nil")
	}
	if got.Title != "Write unit tests" || got.Date != "2025-01-15" || got.StartTime24 != "09:00" || got.EndTime24 != "11:00" {
		t.Errorf("unexpected task: %+v", got)
	}
	if got.Priority != 5 || got.Status != task.StatusTodo || got.Completed {
		t.Errorf("unexpected state: priority %d status %s completed %v", got.Priority, got.Status, got.Completed)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestCreateTask_IDCollision(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	first := newTask(t, "First task", "2025-01-15", "09:00", "10:00")
	first.CreatedAt = created
	second := newTask(t, "Second task", "2025-01-15", "10:00", "11:00")
	second.CreatedAt = created

	if err := repo.CreateTask(ctx, first); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := repo.CreateTask(ctx, second); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if second.ID != first.ID+1 {
		t.Errorf("second ID = %d, want %d", second.ID, first.ID+1)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetTask(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestUpdateTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tsk := newTask(t, "Mock interview", "2025-01-15", "09:00", "10:00")
	if err := repo.CreateTask(ctx, tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	doneAt := time.Date(2025, 1, 15, 10, 5, 0, 0, time.UTC)
	tsk.Title = "Mock interview round 2"
	tsk.StartTime24 = "13:00"
	tsk.EndTime24 = "14:00"
	if err := tsk.SetStatus(task.StatusDone, doneAt); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := repo.UpdateTask(ctx, tsk); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got, err := repo.GetTask(ctx, tsk.ID)
	if err != nil || got == nil {
		t.Fatalf("GetTask: %v, %v", got, err)
	}
	if got.Title != "Mock interview round 2" || got.StartTime24 != "13:00" {
		t.Errorf("update not persisted: %+v", got)
	}
	if !got.Completed || got.Status != task.StatusDone {
		t.Errorf("expected done, got %s completed=%v", got.Status, got.Completed)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(doneAt) {
		t.Errorf("CompletedAt = %v, want %v", got.CompletedAt, doneAt)
	}
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	missing := newTask(t, "Ghost task", "2025-01-15", "09:00", "10:00")
	missing.ID = 99
	if err := repo.UpdateTask(ctx, missing); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("UpdateTask: got %v, want ErrTaskNotFound", err)
	}
	if err := repo.DeleteTask(ctx, 99); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("DeleteTask: got %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tsk := newTask(t, "Gym session", "2025-01-15", "18:00", "19:00")
	if err := repo.CreateTask(ctx, tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := repo.DeleteTask(ctx, tsk.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	got, err := repo.GetTask(ctx, tsk.ID)
	if err != nil || got != nil {
		t.Errorf("task still present: %v, %v", got, err)
	}
}

func TestListTasksByDate_Order(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, tsk := range []*task.Task{
		newTask(t, "Afternoon", "2025-01-15", "14:00", "15:00"),
		newTask(t, "Morning", "2025-01-15", "08:00", "09:00"),
		newTask(t, "Other day", "2025-01-16", "07:00", "08:00"),
	} {
		if err := repo.CreateTask(ctx, tsk); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	untimed := &task.Task{Title: "Someday", Category: "Break", Date: "2025-01-15", Status: task.StatusTodo}
	if err := repo.CreateTask(ctx, untimed); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	got, err := repo.ListTasksByDate(ctx, "2025-01-15")
	if err != nil {
		t.Fatalf("ListTasksByDate failed: %v", err)
	}
	var titles []string
	for _, tsk := range got {
		titles = append(titles, tsk.Title)
	}
	want := []string{"Morning", "Afternoon", "Someday"}
	if len(titles) != len(want) {
		t.Fatalf("got %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestListTasksByDateRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2025-01-14", "2025-01-15", "2025-01-16", "2025-01-17"} {
		if err := repo.CreateTask(ctx, newTask(t, "Task on "+date, date, "09:00", "10:00")); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	got, err := repo.ListTasksByDateRange(ctx, "2025-01-15", "2025-01-16")
	if err != nil {
		t.Fatalf("ListTasksByDateRange failed: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2025-01-15" || got[1].Date != "2025-01-16" {
		t.Errorf("unexpected range result: %d tasks", len(got))
	}

	all, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(all) != 4 || all[0].Date != "2025-01-14" {
		t.Errorf("ListTasks returned %d tasks", len(all))
	}
}

func TestApplyPatches(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := newTask(t, "Overdue one", "2025-01-14", "09:00", "10:00")
	b := newTask(t, "Overdue two", "2025-01-14", "11:00", "12:00")
	for _, tsk := range []*task.Task{a, b} {
		if err := repo.CreateTask(ctx, tsk); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	patches := []task.Patch{
		{ID: a.ID, Date: "2025-01-15", StartTime24: "10:30", EndTime24: "11:30", Status: task.StatusRescheduled},
		{ID: b.ID, Date: "2025-01-15", StartTime24: "11:45", EndTime24: "12:45", Status: task.StatusRescheduled},
	}
	if err := repo.ApplyPatches(ctx, patches); err != nil {
		t.Fatalf("ApplyPatches failed: %v", err)
	}

	got, err := repo.ListTasksByDate(ctx, "2025-01-15")
	if err != nil {
		t.Fatalf("ListTasksByDate failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tasks, want 2", len(got))
	}
	for _, tsk := range got {
		if tsk.Status != task.StatusRescheduled {
			t.Errorf("task #%d status %s", tsk.ID, tsk.Status)
		}
	}
	if got[0].StartTime24 != "10:30" || got[1].StartTime24 != "11:45" {
		t.Errorf("unexpected starts: %s, %s", got[0].StartTime24, got[1].StartTime24)
	}
}

func TestApplyPatches_RollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := newTask(t, "Overdue one", "2025-01-14", "09:00", "10:00")
	if err := repo.CreateTask(ctx, a); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	patches := []task.Patch{
		{ID: a.ID, Date: "2025-01-15", StartTime24: "10:30", EndTime24: "11:30", Status: task.StatusRescheduled},
		{ID: 12345, Date: "2025-01-15", StartTime24: "11:45", EndTime24: "12:45", Status: task.StatusRescheduled},
	}
	if err := repo.ApplyPatches(ctx, patches); !errors.Is(err, task.ErrTaskNotFound) {
		t.Fatalf("got %v, want ErrTaskNotFound", err)
	}

	got, err := repo.GetTask(ctx, a.ID)
	if err != nil || got == nil {
		t.Fatalf("GetTask: %v, %v", got, err)
	}
	if got.Date != "2025-01-14" || got.Status != task.StatusTodo {
		t.Errorf("partial patch persisted: %+v", got)
	}
}

func TestReplaceAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateTask(ctx, newTask(t, "Old task", "2025-01-10", "09:00", "10:00")); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	imported := []*task.Task{
		{ID: 7, Title: "Imported", Category: "Labs", Date: "2025-01-15", StartTime24: "09:00", EndTime24: "10:00", Priority: 2, Status: task.StatusTodo},
		{Title: "No id yet", Category: "Labs", Date: "2025-01-15", StartTime24: "10:00", EndTime24: "11:00", Status: task.StatusTodo},
	}
	if err := repo.ReplaceAll(ctx, imported); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	all, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d tasks, want 2", len(all))
	}
	if all[0].ID != 7 || all[0].Priority != 2 {
		t.Errorf("imported task lost its fields: %+v", all[0])
	}
	if imported[1].ID == 0 || all[1].ID != imported[1].ID {
		t.Errorf("task without id was not numbered: %+v", all[1])
	}
	if all[1].Priority != task.DefaultPriority {
		t.Errorf("zero priority stored as %d", all[1].Priority)
	}
}

func TestNew_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timebox.db")
	ctx := context.Background()

	repo, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tsk := newTask(t, "Survives restart", "2025-01-15", "09:00", "10:00")
	if err := repo.CreateTask(ctx, tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	_ = repo.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.GetTask(ctx, tsk.ID)
	if err != nil || got == nil {
		t.Fatalf("GetTask after reopen: %v, %v", got, err)
	}
}
