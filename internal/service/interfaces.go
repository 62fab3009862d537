package service

import (
	"context"
	"time"

	"github.com/cosebhq/ganttd/internal/domain"
)

// CreateTaskInput carries the caller-supplied fields for a new task. ID,
// status, and baseline dates are system-assigned.
type CreateTaskInput struct {
	ProjectID      string
	Text           string
	Description    string
	Start          time.Time
	End            time.Time
	Parent         string
	Assignee       string
	Progress       float64
	Classification string
	Type           string
	Open           bool
	CreatedBy      string
}

// UpdateTaskInput is a partial update; nil fields are left untouched.
// Baseline dates are immutable and deliberately absent.
type UpdateTaskInput struct {
	Text           *string
	Description    *string
	Start          *time.Time
	End            *time.Time
	Parent         *string
	Assignee       *string
	Progress       *float64
	Classification *string
	Type           *string
	Open           *bool
}

type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, assignee string) ([]*domain.Task, error)
	Update(ctx context.Context, id string, in UpdateTaskInput, actor string) error
	UpdateDates(ctx context.Context, id string, start, end *time.Time) error
	SetManual(ctx context.Context, id, manual string) error
	SetReport(ctx context.Context, id, report string) error
	AddComment(ctx context.Context, taskID, content, author string) (string, error)
	ListComments(ctx context.Context, taskID string) ([]domain.Comment, error)

	// Delete removes the task, its entire descendant subtree, and every
	// link in the project touching a removed task, then fixes up the
	// parent's open flag. Returns the number of tasks removed; a missing
	// id yields 0 and no error.
	Delete(ctx context.Context, id string) (int, error)
}

type StatusService interface {
	// UpdateStatus applies the status state machine for one task on behalf
	// of requester. Only the current assignee may update; the write is
	// committed before any notification fan-out, and notification failures
	// never surface.
	UpdateStatus(ctx context.Context, taskID, requester string, status domain.TaskStatus, progress float64) error
}

type LinkService interface {
	// Replace swaps out the project's entire link set. Every entry gets a
	// fresh server-assigned id; endpoints are not validated.
	Replace(ctx context.Context, projectID string, links []domain.Link) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Link, error)

	// LinkedSources returns the tasks that are sources of links targeting
	// the given task.
	LinkedSources(ctx context.Context, taskID string) ([]*domain.Task, error)
}
