package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/db"
	"github.com/javiermolinar/timebox/internal/export"
	"github.com/javiermolinar/timebox/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import [backup.json | database_path]",
		Short: "Import tasks from a JSON backup or another database",
		Long: `Import tasks from a JSON backup written by 'timebox export', or from
another timebox database.

Imported tasks are added next to the existing ones with fresh IDs.
With --replace, every existing task is deleted first and the imported
tasks keep their IDs.

Example:
  timebox import backup.json
  timebox import --replace /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source path is a directory: %s", sourcePath)
			}

			ctx := context.Background()
			tasks, err := readSource(ctx, sourcePath)
			if err != nil {
				return err
			}

			count, err := importTasks(ctx, a.repo, tasks, replace)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s\n", count, sourcePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Delete all existing tasks before importing")
	return cmd
}

// readSource loads tasks from a JSON backup, or from a database for any other extension.
func readSource(ctx context.Context, path string) ([]*task.Task, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening backup: %w", err)
		}
		defer func() { _ = f.Close() }()
		return export.ReadJSON(f)
	}

	sourceRepo, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	tasks, err := sourceRepo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing source tasks: %w", err)
	}
	return tasks, nil
}

// importTasks adds tasks to dest. Without replace each task gets a fresh ID;
// with replace the store is cleared and IDs are kept.
func importTasks(ctx context.Context, dest task.Repository, tasks []*task.Task, replace bool) (int, error) {
	if replace {
		if err := dest.ReplaceAll(ctx, tasks); err != nil {
			return 0, fmt.Errorf("replacing tasks: %w", err)
		}
		return len(tasks), nil
	}

	imported := 0
	for _, sourceTask := range tasks {
		newTask := sourceTask.Clone()
		newTask.ID = 0
		if err := dest.CreateTask(ctx, newTask); err != nil {
			return imported, fmt.Errorf("importing task %q: %w", sourceTask.Title, err)
		}
		imported++
	}
	return imported, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
