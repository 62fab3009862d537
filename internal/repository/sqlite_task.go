package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cosebhq/ganttd/internal/db"
	"github.com/cosebhq/ganttd/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, text, description,
		start_date, end_date, base_start, base_end,
		parent, assignee, progress, classification, type, open, status,
		created_by, created_at, updated_by, updated_at, manual, report`

// SQLiteTaskRepo implements TaskRepo over a SQLite database or transaction.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Text,
		t.Description,
		formatTime(t.Start),
		formatTime(t.End),
		formatTime(t.BaseStart),
		formatTime(t.BaseEnd),
		t.Parent,
		t.Assignee,
		t.Progress,
		t.Classification,
		t.Type,
		boolToInt(t.Open),
		string(t.Status),
		t.CreatedBy,
		formatTime(t.CreatedAt),
		t.UpdatedBy,
		formatTime(t.UpdatedAt),
		t.Manual,
		t.Report,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListByAssignee(ctx context.Context, assignee string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assignee = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, assignee)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by assignee: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE parent = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child tasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) CountChildren(ctx context.Context, parentID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE parent = ?`, parentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting child tasks: %w", err)
	}
	return count, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET project_id = ?, text = ?, description = ?,
		start_date = ?, end_date = ?, base_start = ?, base_end = ?,
		parent = ?, assignee = ?, progress = ?, classification = ?, type = ?,
		open = ?, status = ?, updated_by = ?, updated_at = ?, manual = ?, report = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.ProjectID,
		t.Text,
		t.Description,
		formatTime(t.Start),
		formatTime(t.End),
		formatTime(t.BaseStart),
		formatTime(t.BaseEnd),
		t.Parent,
		t.Assignee,
		t.Progress,
		t.Classification,
		t.Type,
		boolToInt(t.Open),
		string(t.Status),
		t.UpdatedBy,
		formatTime(t.UpdatedAt),
		t.Manual,
		t.Report,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) SetOpen(ctx context.Context, id string, open bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET open = ? WHERE id = ?`, boolToInt(open), id)
	if err != nil {
		return fmt.Errorf("setting task open flag: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) SetManual(ctx context.Context, id, manual string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET manual = ? WHERE id = ?`, manual, id)
	if err != nil {
		return fmt.Errorf("setting task manual: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) SetReport(ctx context.Context, id, report string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET report = ? WHERE id = ?`, report, id)
	if err != nil {
		return fmt.Errorf("setting task report: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	total := 0
	for _, chunk := range chunkIDs(ids) {
		placeholders, args := inArgs(chunk)
		res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id IN (`+placeholders+`)`, args...)
		if err != nil {
			return 0, fmt.Errorf("deleting tasks: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("counting deleted tasks: %w", err)
		}
		total += int(n)
	}
	return total, nil
}

// scanTask scans a single task from a *sql.Row.
func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var statusStr string
	var openInt int
	var startStr, endStr, baseStartStr, baseEndStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Text, &t.Description,
		&startStr, &endStr, &baseStartStr, &baseEndStr,
		&t.Parent, &t.Assignee, &t.Progress, &t.Classification, &t.Type, &openInt, &statusStr,
		&t.CreatedBy, &createdAtStr, &t.UpdatedBy, &updatedAtStr, &t.Manual, &t.Report,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	return r.populateTask(&t, statusStr, openInt, startStr, endStr, baseStartStr, baseEndStr, createdAtStr, updatedAtStr)
}

// scanTasks scans multiple tasks from *sql.Rows.
func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var statusStr string
		var openInt int
		var startStr, endStr, baseStartStr, baseEndStr, createdAtStr, updatedAtStr string

		err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Text, &t.Description,
			&startStr, &endStr, &baseStartStr, &baseEndStr,
			&t.Parent, &t.Assignee, &t.Progress, &t.Classification, &t.Type, &openInt, &statusStr,
			&t.CreatedBy, &createdAtStr, &t.UpdatedBy, &updatedAtStr, &t.Manual, &t.Report,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}

		task, err := r.populateTask(&t, statusStr, openInt, startStr, endStr, baseStartStr, baseEndStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields on a Task after scanning raw values.
func (r *SQLiteTaskRepo) populateTask(
	t *domain.Task,
	statusStr string,
	openInt int,
	startStr, endStr, baseStartStr, baseEndStr, createdAtStr, updatedAtStr string,
) (*domain.Task, error) {
	t.Status = domain.TaskStatus(statusStr)
	t.Open = intToBool(openInt)

	var err error
	if t.Start, err = parseTime("start", startStr); err != nil {
		return nil, err
	}
	if t.End, err = parseTime("end", endStr); err != nil {
		return nil, err
	}
	if t.BaseStart, err = parseTime("base_start", baseStartStr); err != nil {
		return nil, err
	}
	if t.BaseEnd, err = parseTime("base_end", baseEndStr); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return t, nil
}
