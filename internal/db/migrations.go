package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id           INTEGER PRIMARY KEY,
			title        TEXT NOT NULL,
			category     TEXT NOT NULL DEFAULT '',
			date         TEXT NOT NULL DEFAULT '',
			start_time   TEXT NOT NULL DEFAULT '',
			end_time     TEXT NOT NULL DEFAULT '',
			priority     INTEGER NOT NULL DEFAULT 3 CHECK(priority BETWEEN 1 AND 5),
			status       TEXT NOT NULL DEFAULT 'todo' CHECK(status IN ('todo', 'in-progress', 'done', 'rescheduled')),
			completed    INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT,
			created_at   TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date, start_time);
		CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tasks table: %w", err)
	}

	return nil
}
