package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
)

// conflictBadge marks tasks that overlap another task on the same day.
const conflictBadge = "!! conflict"

// statusSymbol returns the status indicator for a task.
func statusSymbol(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return "○"
	case task.StatusInProgress:
		return "◐"
	case task.StatusDone:
		return "●"
	case task.StatusRescheduled:
		return "→"
	default:
		return "?"
	}
}

// formatStatus renders a status name in its color.
func formatStatus(s task.Status) string {
	switch s {
	case task.StatusDone:
		return colorDone.Sprint(s)
	case task.StatusInProgress:
		return colorInProgress.Sprint(s)
	case task.StatusRescheduled:
		return colorRescheduled.Sprint(s)
	default:
		return string(s)
	}
}

// timeRange renders a task's block, or a placeholder for untimed tasks.
func timeRange(t *task.Task) string {
	if !t.IsTimed() {
		return "  untimed  "
	}
	return t.StartTime24 + "-" + t.EndTime24
}

// truncate shortens s to width terminal cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// titleWidth returns how many cells a title may use on a row with the given overhead.
func titleWidth(overhead int) int {
	available := termWidth() - overhead
	if available < 20 {
		return 20
	}
	return available
}

// printTaskRow prints a single task row with consistent formatting.
func printTaskRow(w io.Writer, t *task.Task, conflicts scheduler.IDSet, maxTitleWidth int) {
	// "  ○  HH:MM-HH:MM  #<id>  P3  " plus category
	row := fmt.Sprintf("  %s  %s  #%d  P%d  %s",
		statusSymbol(t.Status),
		timeRange(t),
		t.ID,
		t.EffectivePriority(),
		truncate(t.Title, maxTitleWidth),
	)
	row += "  " + formatMuted("["+t.Category+"]")
	if conflicts.Has(t.ID) {
		row += "  " + formatConflict(conflictBadge)
	}
	if t.Status != task.StatusTodo {
		row += "  " + formatStatus(t.Status)
	}
	fmt.Fprintln(w, row)
}

// progressBar renders done/total as a bar of the given width.
func progressBar(done, total, width int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", width) + "] 0%"
	}
	filled := done * width / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", colorDone.Sprint(bar), formatStats(fmt.Sprintf("%d%%", done*100/total)))
}

// categoryBar renders minutes relative to the largest category.
func categoryBar(minutes, largest, width int) string {
	if largest == 0 {
		return ""
	}
	filled := minutes * width / largest
	if filled == 0 && minutes > 0 {
		filled = 1
	}
	return strings.Repeat("█", filled)
}

// parseID parses a task ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task ID %q", s)
	}
	return id, nil
}
