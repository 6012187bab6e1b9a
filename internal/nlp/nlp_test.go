package nlp

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/timebox/internal/task"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"Gym at 5pm for 1h", Command{Title: "Gym", Time: "17:00", Duration: 60}},
		{"Study DSA at 5:30 pm for 90m", Command{Title: "Study DSA", Time: "17:30", Duration: 90}},
		{"Call mom @17:00", Command{Title: "Call mom", Time: "17:00", Duration: 60}},
		{"Labs @9:15 for 1.5 hours", Command{Title: "Labs", Time: "09:15", Duration: 90}},
		{"Read for 30 mins at 9am", Command{Title: "Read", Time: "09:00", Duration: 30}},
		{"Midnight snack at 12am for 15m", Command{Title: "Midnight snack", Time: "00:00", Duration: 15}},
		{"Lunch at 12PM", Command{Title: "Lunch", Time: "12:00", Duration: 60}},
		{"  Plan   the   week  ", Command{Title: "Plan the week", Duration: 60}},
		{"Chat about the formats for 2h", Command{Title: "Chat about the formats", Duration: 120}},
		{"Standup at 9", Command{Title: "Standup", Time: "09:00", Duration: 60}},
		{"", Command{Duration: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"Gym at 13pm", task.ErrInvalidTimeFormat},
		{"Gym at 0am", task.ErrInvalidTimeFormat},
		{"Gym @25:00", task.ErrInvalidTimeFormat},
		{"Gym @9:75", task.ErrInvalidTimeFormat},
		{"Nap for 0m", ErrInvalidDuration},
		{"Nap for 0.2m", ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if _, err := Parse(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCommand_Times(t *testing.T) {
	start, end, err := Command{Title: "Gym", Time: "17:00", Duration: 90}.Times()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != "17:00" || end != "18:30" {
		t.Errorf("got %s-%s, want 17:00-18:30", start, end)
	}

	_, end, err = Command{Time: "23:00", Duration: 60}.Times()
	if err != nil || end != "24:00" {
		t.Errorf("got %q, %v; want 24:00", end, err)
	}

	if _, _, err := (Command{Time: "23:30", Duration: 60}).Times(); !errors.Is(err, ErrPastMidnight) {
		t.Errorf("got %v, want ErrPastMidnight", err)
	}
	if _, _, err := (Command{Duration: 60}).Times(); !errors.Is(err, ErrNoTime) {
		t.Errorf("got %v, want ErrNoTime", err)
	}
}

func TestStartAfter(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 7, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    string
		now     time.Time
		want    string
		wantErr error
	}{
		{"other day", "2025-01-16", now, "09:00", nil},
		{"rounds up to quarter hour", "2025-01-15", now, "10:15", nil},
		{"on the quarter", "2025-01-15", time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC), "10:30", nil},
		{"after the last quarter", "2025-01-15", time.Date(2025, 1, 15, 23, 50, 0, 0, time.UTC), "", ErrPastMidnight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StartAfter(tt.date, tt.now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
