// Package ui provides the timebox command line interface.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/config"
	"github.com/javiermolinar/timebox/internal/db"
	"github.com/javiermolinar/timebox/internal/logging"
	"github.com/javiermolinar/timebox/internal/planner"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
	"github.com/javiermolinar/timebox/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// DebugLogPath is where the TUI writes its log when --debug is set.
const DebugLogPath = "timebox-debug.log"

// App holds the CLI application state.
type App struct {
	repo       task.Repository
	planner    *planner.Planner
	config     *config.Config
	configPath string
	root       *cobra.Command
	now        func() time.Time
	ownRepo    bool // repo was opened by the app and must be closed by it

	debug   bool
	noColor bool
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, configPath: config.DefaultConfigPath(), now: time.Now}

	a.root = &cobra.Command{
		Use:   "timebox",
		Short: "A time-blocking day planner",
		Long: `Timebox schedules tasks into time blocks on a day.

It detects overlapping blocks, suggests the next free slot for a task,
and moves overdue work into today's free time.

Run without a command to open the interactive day view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.quickCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.slotCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.statusCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.rescheduleCmd())
	a.root.AddCommand(a.statsCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timebox %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if the app opened it.
func (a *App) Close() error {
	if a.ownRepo && a.repo != nil {
		return a.repo.Close()
	}
	return nil
}

// ensureRepo opens the database and builds the planner on first use.
func (a *App) ensureRepo() error {
	return a.ensurePlanner(a.newLogger(os.Stderr))
}

func (a *App) ensurePlanner(logger *log.Logger) error {
	if a.planner != nil {
		return nil
	}
	if a.repo == nil {
		repo, err := openRepo(a.config.Storage.DBPath)
		if err != nil {
			return err
		}
		a.repo = repo
		a.ownRepo = true
	}

	opts, err := a.config.SchedulerOptions()
	if err != nil {
		return err
	}
	a.planner = planner.New(a.repo, scheduler.New(opts, logger), logger)
	return nil
}

func (a *App) newLogger(w io.Writer) *log.Logger {
	opts := a.config.LoggingOptions()
	if a.debug {
		opts.Level = "debug"
	}
	return logging.New(opts, w)
}

// runTUI opens the day view. The alternate screen owns the terminal, so
// logs go to DebugLogPath with --debug and are dropped otherwise.
func (a *App) runTUI() error {
	logger := logging.Discard()
	if a.debug {
		f, err := os.Create(DebugLogPath)
		if err != nil {
			return fmt.Errorf("creating debug log: %w", err)
		}
		defer func() { _ = f.Close() }()
		logger = a.newLogger(f)
	}

	if err := a.ensurePlanner(logger); err != nil {
		return err
	}
	return tui.Run(a.planner, a.config, logger)
}

func openRepo(dbPath string) (task.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
