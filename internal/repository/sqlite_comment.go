package repository

import (
	"context"
	"fmt"

	"github.com/cosebhq/ganttd/internal/db"
	"github.com/cosebhq/ganttd/internal/domain"
)

// SQLiteCommentRepo implements CommentRepo over a SQLite database or transaction.
type SQLiteCommentRepo struct {
	db db.DBTX
}

// NewSQLiteCommentRepo creates a new SQLiteCommentRepo.
func NewSQLiteCommentRepo(db db.DBTX) *SQLiteCommentRepo {
	return &SQLiteCommentRepo{db: db}
}

func (r *SQLiteCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	query := `INSERT INTO comments (id, task_id, content, author, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.TaskID, c.Content, c.Author, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

func (r *SQLiteCommentRepo) ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	// Insertion order: created_at ties are broken by rowid.
	query := `SELECT id, task_id, content, author, created_at FROM comments
		WHERE task_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Content, &c.Author, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		if c.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}
