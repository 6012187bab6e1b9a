package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/nlp"
	"github.com/javiermolinar/timebox/internal/task"
)

func (a *App) quickCmd() *cobra.Command {
	var (
		date     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "quick [text]",
		Short: "Add a task from a short sentence",
		Long: `Add a task described in plain words.

Recognized phrases:
  at 5pm, at 5:30 pm, @17:00   start time
  for 2h, for 1.5 hours, for 30m   duration (default 1h)

Without a time the task goes into the first free slot, starting from
the next quarter hour today or 09:00 on other days.

Example:
  timebox quick "Gym at 5pm for 1h" --category=Workout`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			parsed, err := nlp.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}

			now := a.now()
			day, err := dateutil.ParseDay(date, now)
			if err != nil {
				return err
			}

			ctx := context.Background()
			start := parsed.Time
			if start == "" {
				start, err = nlp.StartAfter(day, now)
				if err != nil {
					return err
				}
			}
			start, end, err := parsed.TimesFrom(start)
			if err != nil {
				return err
			}

			t, err := task.New(parsed.Title, category, day, start, end, a.config.Schedule.DefaultPriority)
			if err != nil {
				return err
			}
			if parsed.Time == "" {
				err = a.planner.AddFirstFree(ctx, t)
			} else {
				err = a.planner.AddTask(ctx, t)
			}
			if err != nil {
				return explainConflict(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s [%s] %s %s-%s (%s)\n",
				t.ID, t.Title, t.Category, t.Date, t.StartTime24, t.EndTime24,
				task.FormatDuration(parsed.Duration))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow, monday, ...; default: today)")
	cmd.Flags().StringVar(&category, "category", "Projects", "Category, e.g. DSA, Workout, Projects")

	return cmd
}
