package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/task"
)

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [task-id] [todo|in-progress|done|rescheduled]",
		Short: "Set the status of a task",
		Long: `Set a task's status. Marking a task done records when it was completed;
any other status clears the completion.

Example:
  timebox status 1736928000000 in-progress`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := task.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return a.setStatus(cmd, args[0], status)
		},
	}
}

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [task-id]",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setStatus(cmd, args[0], task.StatusDone)
		},
	}
}

func (a *App) setStatus(cmd *cobra.Command, arg string, status task.Status) error {
	if err := a.ensureRepo(); err != nil {
		return err
	}

	id, err := parseID(arg)
	if err != nil {
		return err
	}

	t, err := a.planner.SetStatus(context.Background(), id, status, a.now())
	if err != nil {
		return fmt.Errorf("setting status: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task #%d is now %s\n", t.ID, formatStatus(t.Status))
	return nil
}
