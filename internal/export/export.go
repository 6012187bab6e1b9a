// Package export writes and reads task backups and renders shareable day summaries.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/timebox/internal/task"
)

// ErrInvalidBackup is returned when a backup cannot be decoded or holds invalid tasks.
var ErrInvalidBackup = errors.New("invalid backup")

// WriteJSON writes tasks as an indented JSON array.
// A nil slice is written as an empty array.
func WriteJSON(w io.Writer, tasks []*task.Task) error {
	if tasks == nil {
		tasks = []*task.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON array of tasks written by WriteJSON.
// Each task is normalized and validated; the first invalid one aborts the read.
func ReadJSON(r io.Reader) ([]*task.Task, error) {
	var tasks []*task.Task
	if err := json.NewDecoder(r).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	seen := make(map[int64]bool, len(tasks))
	result := make([]*task.Task, 0, len(tasks))
	for i, t := range tasks {
		if t == nil {
			return nil, fmt.Errorf("%w: entry %d is null", ErrInvalidBackup, i)
		}
		t.Title = task.SanitizeTitle(t.Title)
		t.Normalize()
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q): %w", ErrInvalidBackup, i, t.Title, err)
		}
		if t.ID != 0 {
			if seen[t.ID] {
				return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidBackup, t.ID)
			}
			seen[t.ID] = true
		}
		result = append(result, t)
	}
	return result, nil
}

// DaySummary renders a plain-text checklist of the tasks on date,
// suitable for pasting into chat.
func DaySummary(date string, tasks []*task.Task) string {
	day := task.NewDay(date, tasks)
	items := day.Tasks()

	done := 0
	for _, t := range items {
		if t.IsDone() {
			done++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "timebox update [%s]\n\n", date)
	fmt.Fprintf(&b, "Completed: %d/%d tasks\n", done, len(items))
	if len(items) > 0 {
		b.WriteString("\n")
	}
	for _, t := range items {
		mark := "[ ]"
		if t.IsDone() {
			mark = "[x]"
		}
		if t.IsTimed() {
			fmt.Fprintf(&b, "%s %s-%s %s\n", mark, t.StartTime24, t.EndTime24, t.Title)
		} else {
			fmt.Fprintf(&b, "%s %s\n", mark, t.Title)
		}
	}
	return b.String()
}
