package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/scheduler"
)

func (a *App) slotCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "slot [task-id]",
		Short: "Suggest the next free slot for a task",
		Long: `Find the earliest block at or after the task's start, with the same
length, that overlaps no other task on its day. Each blocking task
pushes the search to its end plus the configured slot buffer.

With --apply the task is moved into the slot.

Example:
  timebox slot 1736928000000 --apply`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			out := cmd.OutOrStdout()
			if apply {
				t, err := a.planner.Reslot(ctx, id)
				if errors.Is(err, scheduler.ErrNoSlotAvailable) {
					fmt.Fprintf(out, "No free slot left today for task #%d.\n", id)
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Moved task #%d to %s-%s\n", t.ID, t.StartTime24, t.EndTime24)
				return nil
			}

			slot, err := a.planner.SuggestSlot(ctx, id)
			if err != nil {
				return err
			}
			if slot == nil {
				fmt.Fprintf(out, "No free slot left today for task #%d.\n", id)
				return nil
			}
			fmt.Fprintf(out, "Next free slot for task #%d: %s\n", id, formatStats(slot.String()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Move the task into the suggested slot")
	return cmd
}
