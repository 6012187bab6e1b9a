package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		week      bool
	)

	cmd := &cobra.Command{
		Use:   "list [day]",
		Short: "List tasks for a day or a date range",
		Long: `List tasks grouped by date.

A day may be a date (YYYY-MM-DD) or a word like today, yesterday,
tomorrow or friday. Without arguments, lists today's tasks.
--from and --to list an inclusive range; --week lists the current week.`,
		Example: `  timebox list
  timebox list tomorrow
  timebox list --from=2025-01-15 --to=2025-01-20
  timebox list --week`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			now := a.now()
			var start, end string
			switch {
			case week:
				monday, sunday := dateutil.WeekRange(now)
				start, end = dateutil.Format(monday), dateutil.Format(sunday)
			case startDate != "" || endDate != "":
				dateRange, err := dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				start, end = dateRange.Bounds()
			default:
				day := ""
				if len(args) == 1 {
					day = args[0]
				}
				d, err := dateutil.ParseDay(day, now)
				if err != nil {
					return err
				}
				start, end = d, d
			}

			ctx := context.Background()
			tasks, err := a.repo.ListTasksByDateRange(ctx, start, end)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found in the specified date range.")
				return nil
			}

			var days []*task.Day
			if week {
				for _, d := range task.NewWeek(now, tasks).Days {
					if d.Len() > 0 {
						days = append(days, d)
					}
				}
			} else {
				days = groupByDate(tasks)
			}

			maxTitle := titleWidth(45)
			for i, d := range days {
				if i > 0 {
					fmt.Fprintln(out)
				}
				conflicts, err := a.planner.Scheduler().CheckConflicts(d.Tasks())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "=== %s ===\n", formatHeader(d.Date))
				for _, t := range d.Tasks() {
					printTaskRow(out, t, conflicts, maxTitle)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "from", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "to", "", "End date (YYYY-MM-DD, defaults to the start date)")
	cmd.Flags().BoolVar(&week, "week", false, "List the current week (Monday to Sunday)")
	cmd.MarkFlagsMutuallyExclusive("week", "from")
	cmd.MarkFlagsMutuallyExclusive("week", "to")

	return cmd
}

// groupByDate splits tasks ordered by date into one Day per date.
func groupByDate(tasks []*task.Task) []*task.Day {
	var (
		days  []*task.Day
		dates []string
		seen  = make(map[string]bool)
	)
	for _, t := range tasks {
		if !seen[t.Date] {
			seen[t.Date] = true
			dates = append(dates, t.Date)
		}
	}
	for _, date := range dates {
		days = append(days, task.NewDay(date, tasks))
	}
	return days
}

// dayConflicts loads a day and its conflict set.
func (a *App) dayConflicts(ctx context.Context, date string) (*task.Day, scheduler.IDSet, error) {
	day, err := a.planner.Day(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	conflicts, err := a.planner.Conflicts(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	return day, conflicts, nil
}
