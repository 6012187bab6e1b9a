// Package tui provides the terminal day view for timebox.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/javiermolinar/timebox/internal/config"
	"github.com/javiermolinar/timebox/internal/logging"
	"github.com/javiermolinar/timebox/internal/planner"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
	"github.com/javiermolinar/timebox/internal/tui/commands"
	"github.com/javiermolinar/timebox/internal/tui/theme"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
)

// quickAddCategory is used for tasks added from the prompt.
const quickAddCategory = "Projects"

// statusTimeout is how long a status message stays visible.
const statusTimeout = 3 * time.Second

// Model is the bubbletea model for the day view.
type Model struct {
	planner *planner.Planner
	config  *config.Config
	logger  *log.Logger
	styles  Styles
	keys    keyMap
	help    help.Model
	prompt  textinput.Model
	now     func() time.Time

	date      string
	tasks     []*task.Task
	conflicts scheduler.IDSet
	cursor    int
	mode      Mode

	width  int
	height int

	statusMsg string
	err       error
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithClock sets the clock used for today, status changes and rescheduling.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
		m.date = now().Format(task.DateLayout)
	}
}

// New creates a day view showing today.
func New(p *planner.Planner, cfg *config.Config, logger *log.Logger, opts ...ModelOption) *Model {
	if logger == nil {
		logger = logging.Discard()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		logger.Warn("loading theme", "theme", cfg.UI.Theme, "err", err)
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "Gym at 5pm for 1h"
	ti.CharLimit = 256
	ti.Prompt = "add> "
	ti.PromptStyle = styles.Prompt

	m := &Model{
		planner:   p,
		config:    cfg,
		logger:    logger,
		styles:    styles,
		keys:      defaultKeyMap(),
		help:      help.New(),
		prompt:    ti,
		now:       time.Now,
		date:      time.Now().Format(task.DateLayout),
		conflicts: scheduler.IDSet{},
		mode:      ModeNormal,
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init loads the current day.
func (m Model) Init() tea.Cmd {
	return commands.LoadDay(m.planner, m.date)
}

// Date returns the shown date as YYYY-MM-DD.
func (m Model) Date() string {
	return m.date
}

// Selected returns the task under the cursor, or nil when the day is empty.
func (m Model) Selected() *task.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

// shiftDate moves the shown date by days.
func (m *Model) shiftDate(days int) {
	d, err := time.Parse(task.DateLayout, m.date)
	if err != nil {
		d = m.now()
	}
	m.date = d.AddDate(0, 0, days).Format(task.DateLayout)
	m.cursor = 0
}

// Run starts the TUI and blocks until the user quits.
func Run(p *planner.Planner, cfg *config.Config, logger *log.Logger) error {
	model := New(p, cfg, logger)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
