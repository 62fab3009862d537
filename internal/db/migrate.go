package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and the full
// set is re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Task parent pointers and link endpoints deliberately carry no foreign
// keys: cascade deletion is computed in the service layer over a per-call
// child index, and a link may legally reference a task that was never
// created. Comments are owned rows and do cascade off their task.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL,
		text           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		start_date     TEXT NOT NULL,
		end_date       TEXT NOT NULL,
		base_start     TEXT NOT NULL,
		base_end       TEXT NOT NULL,
		parent         TEXT NOT NULL DEFAULT '',
		assignee       TEXT NOT NULL DEFAULT '',
		progress       REAL NOT NULL DEFAULT 0,
		classification TEXT NOT NULL DEFAULT '',
		type           TEXT NOT NULL DEFAULT '',
		open           INTEGER NOT NULL DEFAULT 0,
		status         TEXT NOT NULL DEFAULT 'not_started'
		               CHECK(status IN ('not_started','started','completed')),
		created_by     TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_by     TEXT NOT NULL DEFAULT '',
		updated_at     TEXT NOT NULL,
		manual         TEXT NOT NULL DEFAULT '',
		report         TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee)`,

	`CREATE TABLE IF NOT EXISTS links (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		source     TEXT NOT NULL,
		target     TEXT NOT NULL,
		type       TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_links_project ON links(project_id)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		author     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id)`,
}
