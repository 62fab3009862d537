package repository

import (
	"context"

	"github.com/cosebhq/ganttd/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, assignee string) ([]*domain.Task, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error)
	CountChildren(ctx context.Context, parentID string) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	SetOpen(ctx context.Context, id string, open bool) error
	SetManual(ctx context.Context, id, manual string) error
	SetReport(ctx context.Context, id, report string) error
	DeleteByIDs(ctx context.Context, ids []string) (int, error)
}

type LinkRepo interface {
	Create(ctx context.Context, l *domain.Link) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Link, error)
	DeleteByProject(ctx context.Context, projectID string) error
	DeleteTouchingTasks(ctx context.Context, projectID string, taskIDs []string) error
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error)
}
