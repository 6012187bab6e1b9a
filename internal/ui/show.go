package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/stats"
	"github.com/javiermolinar/timebox/internal/task"
)

var (
	tableHeaderStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle     = lipgloss.NewStyle().Padding(0, 1)
	tableDoneStyle     = tableCellStyle.Foreground(lipgloss.Color("2"))
	tableConflictStyle = tableCellStyle.Foreground(lipgloss.Color("1")).Bold(true)
	tableBorderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (a *App) showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [day]",
		Short: "Show a day's time blocks as a table",
		Long: `Display a day's time blocks in a table, with conflicting
blocks badged and a completion summary.

Without arguments, shows today.`,
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
			if day.Len() == 0 {
				fmt.Fprintf(out, "No time blocks scheduled for %s.\n", date)
				return nil
			}

			header := date
			if t, err := time.Parse(dateutil.Layout, date); err == nil {
				header = t.Format("Monday, January 2, 2006")
			}
			fmt.Fprintf(out, "=== %s ===\n", formatHeader(header))
			fmt.Fprintln(out, renderDayTable(day.Tasks(), conflicts, titleWidth(60)))

			summary := stats.Summarize(day.Tasks())
			fmt.Fprintf(out, "Done %d/%d  %s  Planned: %s\n",
				summary.Done, summary.Total,
				progressBar(summary.Done, summary.Total, 20),
				task.FormatDuration(summary.PlannedMinutes))
			if conflicts.Len() > 0 {
				fmt.Fprintln(out, formatConflict(fmt.Sprintf("%d conflicting blocks; run 'timebox slot <id>' for a free slot", conflicts.Len())))
			}
			return nil
		},
	}
	return cmd
}

// renderDayTable lays out one row per task with lipgloss/table.
func renderDayTable(tasks []*task.Task, conflicts scheduler.IDSet, maxTitleWidth int) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		badge := ""
		if conflicts.Has(t.ID) {
			badge = conflictBadge
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			timeRange(t),
			truncate(t.Title, maxTitleWidth),
			t.Category,
			"P" + strconv.Itoa(t.EffectivePriority()),
			statusSymbol(t.Status) + " " + string(t.Status),
			badge,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("ID", "TIME", "TITLE", "CATEGORY", "PRI", "STATUS", "").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case row < 0 || row >= len(tasks):
				return tableCellStyle
			case conflicts.Has(tasks[row].ID):
				return tableConflictStyle
			case tasks[row].IsDone():
				return tableDoneStyle
			default:
				return tableCellStyle
			}
		}).
		String()
}
