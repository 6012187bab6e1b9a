package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Show the effective configuration.

If no config file exists, creates one with default values.
With --edit, prompts for each value and saves the result.

Environment variables (TIMEBOX_SLOT_BUFFER, TIMEBOX_DB_PATH, ...) override
the file; the printed values include them.

Example:
  timebox config --edit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfig(cmd.OutOrStdout(), cmd.InOrStdin(), edit)
		},
	}

	cmd.Flags().BoolVar(&edit, "edit", false, "Edit the configuration interactively")
	return cmd
}

func (a *App) runConfig(out io.Writer, in io.Reader, edit bool) error {
	configPath := a.configPath
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg := a.config

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)
	if !edit {
		return nil
	}

	fmt.Fprintln(out)
	reader := bufio.NewReader(in)

	s := &cfg.Schedule
	s.SlotBuffer = promptInt(out, reader, "Slot buffer (minutes)", s.SlotBuffer)
	s.RescheduleLead = promptInt(out, reader, "Reschedule lead (minutes)", s.RescheduleLead)
	s.RescheduleStep = promptInt(out, reader, "Reschedule step (minutes)", s.RescheduleStep)
	s.RescheduleGap = promptInt(out, reader, "Reschedule gap (minutes)", s.RescheduleGap)
	s.RescheduleCeiling = promptValue(out, reader, "Reschedule ceiling (HH:MM)", s.RescheduleCeiling)
	s.DefaultPriority = promptInt(out, reader, "Default priority (1-5)", s.DefaultPriority)
	s.DefaultDuration = promptInt(out, reader, "Default duration (minutes)", s.DefaultDuration)
	cfg.Storage.DBPath = promptValue(out, reader, "Database path", cfg.Storage.DBPath)
	cfg.Log.Level = promptValue(out, reader, "Log level (debug, info, warn, error)", cfg.Log.Level)
	cfg.Log.Format = promptValue(out, reader, "Log format (text, json, logfmt)", cfg.Log.Format)
	cfg.UI.Theme = promptValue(out, reader, fmt.Sprintf("UI theme (%s)", strings.Join(config.Themes, ", ")), cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[schedule]")
	fmt.Fprintf(w, "  slot_buffer        = %d\n", cfg.Schedule.SlotBuffer)
	fmt.Fprintf(w, "  reschedule_lead    = %d\n", cfg.Schedule.RescheduleLead)
	fmt.Fprintf(w, "  reschedule_step    = %d\n", cfg.Schedule.RescheduleStep)
	fmt.Fprintf(w, "  reschedule_gap     = %d\n", cfg.Schedule.RescheduleGap)
	fmt.Fprintf(w, "  reschedule_ceiling = %s\n", cfg.Schedule.RescheduleCeiling)
	fmt.Fprintf(w, "  default_priority   = %d\n", cfg.Schedule.DefaultPriority)
	fmt.Fprintf(w, "  default_duration   = %d\n", cfg.Schedule.DefaultDuration)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path            = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level              = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format             = %s\n", cfg.Log.Format)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme              = %s\n", cfg.UI.Theme)
}

func promptValue(w io.Writer, reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(w io.Writer, reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(w, reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(w, "  Invalid number %q.\n", value)
	}
}
