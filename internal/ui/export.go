package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		output    string
		summary   bool
		date      string
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Back up tasks as JSON or share a day summary",
		Long: `Write every task as a JSON array (stdout by default), or with --summary
a plain-text checklist of one day's tasks.

--clipboard copies the day summary to the system clipboard.

Example:
  timebox export --output=backup.json
  timebox export --summary --date=today --clipboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			out := cmd.OutOrStdout()

			if summary || copyToClipboard {
				day, err := dateutil.ParseDay(date, a.now())
				if err != nil {
					return err
				}
				tasks, err := a.repo.ListTasksByDate(ctx, day)
				if err != nil {
					return fmt.Errorf("listing tasks: %w", err)
				}
				text := export.DaySummary(day, tasks)

				if copyToClipboard {
					if err := clipboard.WriteAll(text); err != nil {
						return fmt.Errorf("copying to clipboard: %w", err)
					}
					fmt.Fprintln(out, "Day summary copied to clipboard.")
					return nil
				}
				fmt.Fprint(out, text)
				return nil
			}

			tasks, err := a.repo.ListTasks(ctx)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			if output == "" || output == "-" {
				return export.WriteJSON(out, tasks)
			}

			path, err := resolvePath(output)
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			if err := export.WriteJSON(f, tasks); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Fprintf(out, "Exported %d tasks to %s\n", len(tasks), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the JSON backup to a file instead of stdout")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a plain-text summary of one day")
	cmd.Flags().StringVar(&date, "date", "", "Day for --summary and --clipboard (default: today)")
	cmd.Flags().BoolVar(&copyToClipboard, "clipboard", false, "Copy the day summary to the clipboard")

	return cmd
}
