package testutil

import (
	"time"

	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/google/uuid"
)

// Task options
type TaskOption func(*domain.Task)

func WithParent(id string) TaskOption {
	return func(t *domain.Task) {
		t.Parent = id
	}
}

func WithAssignee(email string) TaskOption {
	return func(t *domain.Task) {
		t.Assignee = email
	}
}

func WithCreatedBy(identity string) TaskOption {
	return func(t *domain.Task) {
		t.CreatedBy = identity
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithProgress(p float64) TaskOption {
	return func(t *domain.Task) {
		t.Progress = p
	}
}

func WithBaseEnd(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.BaseEnd = d
	}
}

func WithOpen(open bool) TaskOption {
	return func(t *domain.Task) {
		t.Open = open
	}
}

// NewTestTask builds a not-started task with a week-long schedule starting
// yesterday. Baseline dates match the schedule, as CreateTask would set them.
func NewTestTask(projectID, text string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	start := domain.StartOfDay(now.AddDate(0, 0, -1))
	end := domain.EndOfDay(now.AddDate(0, 0, 6))
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Text:      text,
		Start:     start,
		End:       end,
		BaseStart: start,
		BaseEnd:   end,
		Assignee:  "worker@example.com",
		Status:    domain.StatusNotStarted,
		CreatedBy: "owner@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestLink builds a finish-to-start link between two tasks.
func NewTestLink(projectID, source, target string) *domain.Link {
	return &domain.Link{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Source:    source,
		Target:    target,
		Type:      domain.LinkFinishToStart,
	}
}
