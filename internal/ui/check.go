package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
)

func (a *App) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [day]",
		Short: "List overlapping tasks on a day",
		Long: `Report every task on a day whose block overlaps another task's block.
Blocks that only touch (one ends when the next starts) do not conflict.

Example:
  timebox check tomorrow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			date, err := dateutil.ParseDay(arg, a.now())
			if err != nil {
				return err
			}

			day, conflicts, err := a.dayConflicts(context.Background(), date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if conflicts.Len() == 0 {
				fmt.Fprintf(out, "No conflicts on %s.\n", date)
				return nil
			}

			fmt.Fprintf(out, "%s on %s:\n", formatConflict(fmt.Sprintf("%d conflicting tasks", conflicts.Len())), date)
			for _, id := range conflicts.IDs() {
				if t := day.Find(id); t != nil {
					printTaskRow(out, t, nil, titleWidth(45))
				}
			}
			return nil
		},
	}
}
