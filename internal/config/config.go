// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/timebox/internal/logging"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds the scheduling constants, in minutes unless noted.
type ScheduleConfig struct {
	SlotBuffer        int    `toml:"slot_buffer"`        // gap after a blocking task
	RescheduleLead    int    `toml:"reschedule_lead"`    // first overdue slot is now + lead
	RescheduleStep    int    `toml:"reschedule_step"`    // overdue search granularity
	RescheduleGap     int    `toml:"reschedule_gap"`     // gap between rescheduled tasks
	RescheduleCeiling string `toml:"reschedule_ceiling"` // HH:MM, latest end for a rescheduled task
	DefaultPriority   int    `toml:"default_priority"`   // 1..5
	DefaultDuration   int    `toml:"default_duration"`   // for untimed tasks and quick add
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json, logfmt
}

// UIConfig holds display settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "dark" or "light"
}

// Themes lists the supported UI themes.
var Themes = []string{"dark", "light"}

// Default returns the default configuration.
func Default() *Config {
	opts := scheduler.DefaultOptions()
	return &Config{
		Schedule: ScheduleConfig{
			SlotBuffer:        opts.SlotBuffer,
			RescheduleLead:    opts.RescheduleLead,
			RescheduleStep:    opts.RescheduleStep,
			RescheduleGap:     opts.RescheduleGap,
			RescheduleCeiling: task.FromMinutes(opts.RescheduleCeiling),
			DefaultPriority:   task.DefaultPriority,
			DefaultDuration:   opts.DefaultDuration,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timebox.db"
	}
	return filepath.Join(home, ".local", "share", "timebox", "timebox.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timebox", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies TIMEBOX_* environment variables.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		env string
		dst *int
	}{
		{"TIMEBOX_SLOT_BUFFER", &cfg.Schedule.SlotBuffer},
		{"TIMEBOX_RESCHEDULE_LEAD", &cfg.Schedule.RescheduleLead},
		{"TIMEBOX_RESCHEDULE_STEP", &cfg.Schedule.RescheduleStep},
		{"TIMEBOX_RESCHEDULE_GAP", &cfg.Schedule.RescheduleGap},
		{"TIMEBOX_DEFAULT_PRIORITY", &cfg.Schedule.DefaultPriority},
		{"TIMEBOX_DEFAULT_DURATION", &cfg.Schedule.DefaultDuration},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", o.env, v)
		}
		*o.dst = n
	}

	strs := []struct {
		env string
		dst *string
	}{
		{"TIMEBOX_RESCHEDULE_CEILING", &cfg.Schedule.RescheduleCeiling},
		{"TIMEBOX_DB_PATH", &cfg.Storage.DBPath},
		{"TIMEBOX_LOG_LEVEL", &cfg.Log.Level},
		{"TIMEBOX_LOG_FORMAT", &cfg.Log.Format},
		{"TIMEBOX_UI_THEME", &cfg.UI.Theme},
	}
	for _, o := range strs {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.SchedulerOptions(); err != nil {
		return err
	}
	if c.Schedule.DefaultPriority < task.MinPriority || c.Schedule.DefaultPriority > task.MaxPriority {
		return fmt.Errorf("default_priority must be between %d and %d, got %d",
			task.MinPriority, task.MaxPriority, c.Schedule.DefaultPriority)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	if !isValidTheme(c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s (want one of %s)", c.UI.Theme, strings.Join(Themes, ", "))
	}
	return nil
}

// SchedulerOptions converts the schedule section into scheduler options.
func (c *Config) SchedulerOptions() (scheduler.Options, error) {
	ceiling, err := task.ToMinutes(c.Schedule.RescheduleCeiling)
	if err != nil {
		return scheduler.Options{}, fmt.Errorf("reschedule_ceiling: %w", err)
	}

	opts := scheduler.DefaultOptions()
	opts.SlotBuffer = c.Schedule.SlotBuffer
	opts.RescheduleLead = c.Schedule.RescheduleLead
	opts.RescheduleStep = c.Schedule.RescheduleStep
	opts.RescheduleGap = c.Schedule.RescheduleGap
	opts.RescheduleCeiling = ceiling
	opts.DefaultDuration = c.Schedule.DefaultDuration
	if err := opts.Validate(); err != nil {
		return scheduler.Options{}, err
	}
	return opts, nil
}

// LoggingOptions converts the log section into logger options.
func (c *Config) LoggingOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.Log.Level
	opts.Format = c.Log.Format
	return opts
}

func isValidTheme(theme string) bool {
	for _, t := range Themes {
		if strings.EqualFold(t, theme) {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
