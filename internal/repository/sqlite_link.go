package repository

import (
	"context"
	"fmt"

	"github.com/cosebhq/ganttd/internal/db"
	"github.com/cosebhq/ganttd/internal/domain"
)

// SQLiteLinkRepo implements LinkRepo over a SQLite database or transaction.
// Links are read and replaced per project; there is no per-link update.
type SQLiteLinkRepo struct {
	db db.DBTX
}

// NewSQLiteLinkRepo creates a new SQLiteLinkRepo.
func NewSQLiteLinkRepo(db db.DBTX) *SQLiteLinkRepo {
	return &SQLiteLinkRepo{db: db}
}

func (r *SQLiteLinkRepo) Create(ctx context.Context, l *domain.Link) error {
	query := `INSERT INTO links (id, project_id, source, target, type) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.ProjectID, l.Source, l.Target, l.Type)
	if err != nil {
		return fmt.Errorf("inserting link: %w", err)
	}
	return nil
}

func (r *SQLiteLinkRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Link, error) {
	query := `SELECT id, project_id, source, target, type FROM links WHERE project_id = ?`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Source, &l.Target, &l.Type); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating links: %w", err)
	}
	return links, nil
}

func (r *SQLiteLinkRepo) DeleteByProject(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("deleting project links: %w", err)
	}
	return nil
}

func (r *SQLiteLinkRepo) DeleteTouchingTasks(ctx context.Context, projectID string, taskIDs []string) error {
	for _, chunk := range chunkIDs(taskIDs) {
		placeholders, args := inArgs(chunk)
		query := `DELETE FROM links WHERE project_id = ?
			AND (source IN (` + placeholders + `) OR target IN (` + placeholders + `))`
		qargs := make([]any, 0, 1+2*len(args))
		qargs = append(qargs, projectID)
		qargs = append(qargs, args...)
		qargs = append(qargs, args...)
		if _, err := r.db.ExecContext(ctx, query, qargs...); err != nil {
			return fmt.Errorf("pruning links: %w", err)
		}
	}
	return nil
}
