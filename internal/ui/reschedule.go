package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) rescheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule",
		Short: "Move overdue tasks into today's free time",
		Long: `Move every unfinished task that is dated before today, or that ended
earlier today, into today's free time.

Higher priority tasks are placed first. The search starts shortly after
now and stops at the configured ceiling; tasks that do not fit stay
where they are.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			result, err := a.planner.RescheduleOverdue(context.Background(), a.now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Count() == 0 && len(result.Skipped) == 0 {
				fmt.Fprintln(out, "No overdue tasks.")
				return nil
			}

			titles := make(map[int64]string, len(result.Tasks))
			for _, t := range result.Tasks {
				titles[t.ID] = t.Title
			}

			if result.Count() > 0 {
				fmt.Fprintf(out, "Rescheduled %s:\n", formatStats(fmt.Sprintf("%d tasks", result.Count())))
				for _, p := range result.Moved {
					fmt.Fprintf(out, "  → #%d  %s-%s  %s\n", p.ID, p.StartTime24, p.EndTime24, titles[p.ID])
				}
			}
			if len(result.Skipped) > 0 {
				ceiling := a.config.Schedule.RescheduleCeiling
				fmt.Fprintf(out, "%s\n", formatConflict(fmt.Sprintf("%d tasks did not fit before %s:", len(result.Skipped), ceiling)))
				for _, id := range result.Skipped {
					fmt.Fprintf(out, "    #%d  %s\n", id, titles[id])
				}
			}
			return nil
		},
	}
}
