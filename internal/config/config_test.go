package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.SlotBuffer != 5 {
		t.Errorf("expected slot_buffer 5, got %d", cfg.Schedule.SlotBuffer)
	}
	if cfg.Schedule.RescheduleCeiling != "22:00" {
		t.Errorf("expected reschedule_ceiling 22:00, got %s", cfg.Schedule.RescheduleCeiling)
	}
	if cfg.Schedule.DefaultPriority != 3 || cfg.Schedule.DefaultDuration != 60 {
		t.Errorf("unexpected defaults: %+v", cfg.Schedule)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected theme dark, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Schedule.RescheduleStep != 15 {
		t.Errorf("expected default reschedule_step, got %d", cfg.Schedule.RescheduleStep)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	content := `
[schedule]
slot_buffer = 10
reschedule_ceiling = "21:30"
default_priority = 4

[storage]
db_path = "/tmp/test.db"

[log]
level = "debug"
format = "json"

[ui]
theme = "light"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.SlotBuffer != 10 {
		t.Errorf("expected slot_buffer 10, got %d", cfg.Schedule.SlotBuffer)
	}
	if cfg.Schedule.RescheduleStep != 15 {
		t.Errorf("expected unset reschedule_step to keep default, got %d", cfg.Schedule.RescheduleStep)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.UI.Theme != "light" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	opts, err := cfg.SchedulerOptions()
	if err != nil {
		t.Fatalf("SchedulerOptions: %v", err)
	}
	if opts.RescheduleCeiling != 21*60+30 || opts.SlotBuffer != 10 {
		t.Errorf("unexpected scheduler options: %+v", opts)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[schedule\nslot_buffer = "), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	content := `
[schedule]
slot_buffer = 10
reschedule_gap = 20

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TIMEBOX_SLOT_BUFFER", "0")
	t.Setenv("TIMEBOX_RESCHEDULE_CEILING", "23:00")
	t.Setenv("TIMEBOX_LOG_LEVEL", "warn")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.SlotBuffer != 0 {
		t.Errorf("expected slot_buffer 0 from env, got %d", cfg.Schedule.SlotBuffer)
	}
	if cfg.Schedule.RescheduleGap != 20 {
		t.Errorf("expected reschedule_gap 20 from file, got %d", cfg.Schedule.RescheduleGap)
	}
	if cfg.Schedule.RescheduleCeiling != "23:00" {
		t.Errorf("expected reschedule_ceiling 23:00 from env, got %s", cfg.Schedule.RescheduleCeiling)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn from env, got %s", cfg.Log.Level)
	}
}

func TestLoadFrom_EnvNotInteger(t *testing.T) {
	t.Setenv("TIMEBOX_RESCHEDULE_STEP", "quarter")
	if _, err := LoadFrom("/nonexistent/path/config.toml"); err == nil {
		t.Error("expected error for non-integer env override")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "malformed ceiling", modify: func(c *Config) { c.Schedule.RescheduleCeiling = "10pm" }},
		{name: "zero step", modify: func(c *Config) { c.Schedule.RescheduleStep = 0 }},
		{name: "negative buffer", modify: func(c *Config) { c.Schedule.SlotBuffer = -5 }},
		{name: "zero duration", modify: func(c *Config) { c.Schedule.DefaultDuration = 0 }},
		{name: "priority too high", modify: func(c *Config) { c.Schedule.DefaultPriority = 6 }},
		{name: "empty db path", modify: func(c *Config) { c.Storage.DBPath = "" }},
		{name: "unknown log level", modify: func(c *Config) { c.Log.Level = "loud" }},
		{name: "unknown log format", modify: func(c *Config) { c.Log.Format = "xml" }},
		{name: "unknown theme", modify: func(c *Config) { c.UI.Theme = "mocha" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoggingOptions(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "logfmt"

	opts := cfg.LoggingOptions()
	if opts.Level != "debug" || opts.Format != "logfmt" || opts.Prefix != "timebox" {
		t.Errorf("unexpected logging options: %+v", opts)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := expandPath(tc.input); got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Schedule.RescheduleLead = 45
	cfg.Schedule.RescheduleCeiling = "20:00"
	cfg.UI.Theme = "light"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Schedule.RescheduleLead != 45 {
		t.Errorf("expected reschedule_lead 45, got %d", loaded.Schedule.RescheduleLead)
	}
	if loaded.Schedule.RescheduleCeiling != "20:00" {
		t.Errorf("expected reschedule_ceiling 20:00, got %s", loaded.Schedule.RescheduleCeiling)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("expected theme light, got %s", loaded.UI.Theme)
	}
}
