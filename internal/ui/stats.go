package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/stats"
	"github.com/javiermolinar/timebox/internal/task"
)

func (a *App) statsCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion and time statistics",
		Long: `Summarize tasks by status, completed time per category,
completions over the last 7 days and the current streak.

Defaults to the current week (Monday to Sunday).`,
		Example: `  timebox stats
  timebox stats --from=2025-01-01 --to=2025-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			now := a.now()

			var (
				report *stats.Report
				err    error
			)
			if startDate != "" || endDate != "" {
				dateRange, rangeErr := dateutil.NewDateRange(startDate, endDate)
				if rangeErr != nil {
					return rangeErr
				}
				start, end := dateRange.Bounds()
				report, err = stats.Build(ctx, a.repo, start, end, now)
			} else {
				report, err = stats.BuildWeek(ctx, a.repo, now)
			}
			if err != nil {
				return fmt.Errorf("building stats: %w", err)
			}

			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "to", "", "End date (YYYY-MM-DD, defaults to the start date)")

	return cmd
}

func printReport(w io.Writer, r *stats.Report) {
	s := r.Summary

	fmt.Fprintf(w, "\n  %s\n", formatHeader(fmt.Sprintf("STATS: %s - %s", r.Start, r.End)))
	fmt.Fprintln(w, strings.Repeat("─", 50))

	if s.Total == 0 {
		fmt.Fprintln(w, "  No tasks in this range.")
	} else {
		fmt.Fprintf(w, "  Tasks: %d  |  Done: %d  |  In progress: %d  |  Todo: %d  |  Rescheduled: %d\n",
			s.Total, s.Done, s.InProgress, s.Todo, s.Rescheduled)
		fmt.Fprintf(w, "  Completion: %s\n", progressBar(s.Done, s.Total, 20))
		fmt.Fprintf(w, "  Planned: %s  |  Completed: %s\n",
			task.FormatDuration(s.PlannedMinutes), formatStats(task.FormatDuration(s.CompletedMinutes)))
	}

	if len(r.ByCategory) > 0 {
		fmt.Fprintf(w, "\n  %s\n", formatHeader("Time by category"))
		largest := r.ByCategory[0].Minutes
		for _, c := range r.ByCategory {
			fmt.Fprintf(w, "    %-14s %-20s %s\n",
				truncate(c.Category, 14), categoryBar(c.Minutes, largest, 20), task.FormatDuration(c.Minutes))
		}
	}

	fmt.Fprintf(w, "\n  %s\n", formatHeader("Completions, last 7 days"))
	most := 0
	for _, d := range r.Completions {
		most = max(most, d.Count)
	}
	for _, d := range r.Completions {
		fmt.Fprintf(w, "    %s  %-10s %d\n", d.Date, categoryBar(d.Count, most, 10), d.Count)
	}

	streak := fmt.Sprintf("%d %s", r.Streak, plural(r.Streak, "day", "days"))
	fmt.Fprintf(w, "\n  Streak: %s\n", formatStats(streak))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
