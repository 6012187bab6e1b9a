package scheduler

import (
	"errors"
	"testing"

	"github.com/javiermolinar/timebox/internal/task"
)

func TestFindNextAvailableSlot(t *testing.T) {
	const day = "2025-01-15"

	tests := []struct {
		name      string
		task      *task.Task
		existing  []*task.Task
		wantStart string
		wantEnd   string
	}{
		{
			name:      "collides with short task",
			task:      mk(0, day, "09:00", "10:00"),
			existing:  []*task.Task{mk(1, day, "09:00", "09:30")},
			wantStart: "09:35",
			wantEnd:   "10:35",
		},
		{
			name:      "no collision keeps position",
			task:      mk(0, day, "09:00", "10:00"),
			existing:  []*task.Task{mk(1, day, "10:00", "11:00")},
			wantStart: "09:00",
			wantEnd:   "10:00",
		},
		{
			name: "pushed through a chain",
			task: mk(0, day, "09:00", "09:30"),
			existing: []*task.Task{
				mk(2, day, "10:00", "10:30"),
				mk(1, day, "09:00", "09:40"),
			},
			wantStart: "10:35",
			wantEnd:   "11:05",
		},
		{
			name: "fits in gap between tasks",
			task: mk(0, day, "09:00", "09:30"),
			existing: []*task.Task{
				mk(1, day, "09:00", "09:30"),
				mk(2, day, "10:05", "11:00"),
			},
			wantStart: "09:35",
			wantEnd:   "10:05",
		},
		{
			name: "overlapping existing tasks",
			task: mk(0, day, "09:00", "10:00"),
			existing: []*task.Task{
				mk(1, day, "09:00", "09:30"),
				mk(2, day, "09:10", "11:00"),
				mk(3, day, "09:20", "09:40"),
			},
			wantStart: "11:05",
			wantEnd:   "12:05",
		},
		{
			name:      "ends exactly at midnight",
			task:      mk(0, day, "22:00", "23:00"),
			existing:  []*task.Task{mk(1, day, "22:00", "22:55")},
			wantStart: "23:00",
			wantEnd:   "24:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindNextAvailableSlot(tt.task, tt.existing)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatal("expected a slot, got nil")
			}
			if got.StartTime24 != tt.wantStart || got.EndTime24 != tt.wantEnd {
				t.Errorf("got %s, want %s-%s", got, tt.wantStart, tt.wantEnd)
			}

			// The slot must be free of every existing task.
			placed := mk(0, day, got.StartTime24, got.EndTime24)
			if c, _ := DetectConflict(placed, tt.existing); c != nil {
				t.Errorf("slot %s conflicts with #%d", got, c.ID)
			}
		})
	}
}

func TestFindNextAvailableSlot_PreservesDuration(t *testing.T) {
	const day = "2025-01-15"
	got, err := FindNextAvailableSlot(mk(0, day, "09:00", "10:00"), []*task.Task{mk(1, day, "09:00", "09:30")})
	if err != nil || got == nil {
		t.Fatalf("got %v, %v", got, err)
	}
	start, _ := task.ToMinutes(got.StartTime24)
	end, _ := task.ToMinutes(got.EndTime24)
	if start < 9*60+35 {
		t.Errorf("start %s is before 09:35", got.StartTime24)
	}
	if end-start != 60 {
		t.Errorf("duration changed to %d", end-start)
	}
}

func TestFindNextAvailableSlot_NoSlot(t *testing.T) {
	const day = "2025-01-15"
	got, err := FindNextAvailableSlot(mk(0, day, "22:00", "23:30"), []*task.Task{mk(1, day, "22:00", "23:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected no slot, got %s", got)
	}
}

func TestFindNextAvailableSlot_DoesNotMutate(t *testing.T) {
	const day = "2025-01-15"
	existing := []*task.Task{mk(2, day, "10:00", "11:00"), mk(1, day, "09:00", "10:00")}
	if _, err := FindNextAvailableSlot(mk(0, day, "09:00", "10:00"), existing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if existing[0].ID != 2 || existing[1].ID != 1 {
		t.Error("existing slice was reordered")
	}
}

func TestFindNextAvailableSlot_Errors(t *testing.T) {
	const day = "2025-01-15"

	if _, err := FindNextAvailableSlot(mk(0, day, "10:00", "09:00"), nil); !errors.Is(err, task.ErrEndBeforeStart) {
		t.Errorf("inverted task: got %v", err)
	}
	if _, err := FindNextAvailableSlot(mk(0, day, "", "09:00"), nil); !errors.Is(err, task.ErrInvalidTimeFormat) {
		t.Errorf("missing start: got %v", err)
	}
	if _, err := FindNextAvailableSlot(mk(0, day, "09:00", "10:00"), []*task.Task{mk(1, day, "9", "10:00")}); !errors.Is(err, task.ErrInvalidTimeFormat) {
		t.Errorf("malformed existing: got %v", err)
	}
}

func TestFindNextAvailableSlot_CustomBuffer(t *testing.T) {
	const day = "2025-01-15"
	opts := DefaultOptions()
	opts.SlotBuffer = 15
	s := New(opts, nil)

	got, err := s.FindNextAvailableSlot(mk(0, day, "09:00", "10:00"), []*task.Task{mk(1, day, "09:00", "09:30")})
	if err != nil || got == nil {
		t.Fatalf("got %v, %v", got, err)
	}
	if got.StartTime24 != "09:45" {
		t.Errorf("got start %s, want 09:45", got.StartTime24)
	}
}
