package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		start    string
		end      string
		category string
		priority int
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new time-boxed task.

The task is rejected if it overlaps another task on the same day;
the error names the next free slot of the same length.

Example:
  timebox add "Solve two graph problems" --date=tomorrow --start=09:00 --end=11:00 --category=DSA`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			day, err := dateutil.ParseDay(date, a.now())
			if err != nil {
				return err
			}
			if priority == 0 {
				priority = a.config.Schedule.DefaultPriority
			}

			t, err := task.New(args[0], category, day, start, end, priority)
			if err != nil {
				return err
			}

			if err := a.planner.AddTask(context.Background(), t); err != nil {
				return explainConflict(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s [%s] %s %s-%s\n",
				t.ID, t.Title, t.Category, t.Date, t.StartTime24, t.EndTime24)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow, monday, ...; default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&category, "category", "Projects", "Category, e.g. DSA, Workout, Projects")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1-5 (default from config)")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// explainConflict adds a hint to conflict errors that carry a suggested slot.
func explainConflict(err error) error {
	var conflict *scheduler.ConflictError
	if !errors.As(err, &conflict) {
		return err
	}
	if conflict.Suggestion == nil {
		return fmt.Errorf("%w (no free slot left today)", err)
	}
	return fmt.Errorf("%w\nhint: use --start=%s --end=%s",
		err, conflict.Suggestion.StartTime24, conflict.Suggestion.EndTime24)
}
