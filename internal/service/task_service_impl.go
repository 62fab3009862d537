package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cosebhq/ganttd/internal/db"
	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/cosebhq/ganttd/internal/graph"
	"github.com/cosebhq/ganttd/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	comments repository.CommentRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, comments repository.CommentRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:    tasks,
		comments: comments,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (string, error) {
	if in.ProjectID == "" {
		return "", fmt.Errorf("project id is required: %w", ErrInvalidInput)
	}
	if in.Text == "" {
		return "", fmt.Errorf("task text is required: %w", ErrInvalidInput)
	}

	now := time.Now().UTC()
	start := domain.StartOfDay(in.Start)
	end := domain.EndOfDay(in.End)

	t := &domain.Task{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		Text:        in.Text,
		Description: in.Description,
		Start:       start,
		End:         end,
		// Baseline mirrors the initial schedule and never moves after this.
		BaseStart:      start,
		BaseEnd:        end,
		Parent:         in.Parent,
		Assignee:       in.Assignee,
		Progress:       in.Progress,
		Classification: in.Classification,
		Type:           in.Type,
		Open:           in.Open,
		Status:         domain.StatusNotStarted,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return "", err
	}
	return t.ID, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) ListByAssignee(ctx context.Context, assignee string) ([]*domain.Task, error) {
	return s.tasks.ListByAssignee(ctx, assignee)
}

func (s *taskService) Update(ctx context.Context, id string, in UpdateTaskInput, actor string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if in.Text != nil {
		t.Text = *in.Text
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Start != nil {
		t.Start = domain.StartOfDay(*in.Start)
	}
	if in.End != nil {
		t.End = domain.EndOfDay(*in.End)
	}
	if in.Parent != nil {
		t.Parent = *in.Parent
	}
	if in.Assignee != nil {
		t.Assignee = *in.Assignee
	}
	if in.Progress != nil {
		t.Progress = *in.Progress
	}
	if in.Classification != nil {
		t.Classification = *in.Classification
	}
	if in.Type != nil {
		t.Type = *in.Type
	}
	if in.Open != nil {
		t.Open = *in.Open
	}

	t.UpdatedAt = time.Now().UTC()
	t.UpdatedBy = actor
	return s.tasks.Update(ctx, t)
}

func (s *taskService) UpdateDates(ctx context.Context, id string, start, end *time.Time) error {
	if start == nil && end == nil {
		return nil
	}
	return s.Update(ctx, id, UpdateTaskInput{Start: start, End: end}, "")
}

func (s *taskService) SetManual(ctx context.Context, id, manual string) error {
	if _, err := s.tasks.GetByID(ctx, id); err != nil {
		return err
	}
	return s.tasks.SetManual(ctx, id, manual)
}

func (s *taskService) SetReport(ctx context.Context, id, report string) error {
	if _, err := s.tasks.GetByID(ctx, id); err != nil {
		return err
	}
	return s.tasks.SetReport(ctx, id, report)
}

func (s *taskService) AddComment(ctx context.Context, taskID, content, author string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("comment content is required: %w", ErrInvalidInput)
	}
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return "", err
	}
	c := &domain.Comment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Content:   content,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *taskService) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	return s.comments.ListByTask(ctx, taskID)
}

func (s *taskService) Delete(ctx context.Context, id string) (removed int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-task",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	task, err := s.tasks.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		// Already gone; the deletion set degenerates to empty.
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txLinks := repository.NewSQLiteLinkRepo(tx)

		all, err := txTasks.ListByProject(ctx, task.ProjectID)
		if err != nil {
			return err
		}
		doomed := graph.BuildChildIndex(all).Subtree(id)

		// Links first, so that no surviving link can reference a removed
		// task at any point in the sequence.
		if err := txLinks.DeleteTouchingTasks(ctx, task.ProjectID, doomed); err != nil {
			return err
		}

		removed, err = txTasks.DeleteByIDs(ctx, doomed)
		if err != nil {
			return err
		}

		if !task.IsRoot() {
			left, err := txTasks.CountChildren(ctx, task.Parent)
			if err != nil {
				return err
			}
			if left == 0 {
				if err := txTasks.SetOpen(ctx, task.Parent, false); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["removed"] = removed
	return removed, nil
}
