package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		date  string
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "move [task-id]",
		Short: "Move a task to a new time block",
		Long: `Move a task to a new block, optionally on another day.

The move is rejected if the new block overlaps another task.

Example:
  timebox move 1736928000000 --start=14:00 --end=15:30
  timebox move 1736928000000 --date=friday --start=09:00 --end=10:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if date != "" {
				date, err = dateutil.ParseDay(date, a.now())
				if err != nil {
					return err
				}
			}

			t, err := a.planner.MoveTask(context.Background(), id, date, start, end)
			if err != nil {
				return explainConflict(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved task #%d to %s %s-%s\n", t.ID, t.Date, t.StartTime24, t.EndTime24)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date (default: keep the current date)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM, required)")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
