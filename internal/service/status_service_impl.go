package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/cosebhq/ganttd/internal/graph"
	"github.com/cosebhq/ganttd/internal/notify"
	"github.com/cosebhq/ganttd/internal/repository"
)

type statusService struct {
	tasks      repository.TaskRepo
	links      repository.LinkRepo
	dispatcher *notify.Dispatcher
	observer   UseCaseObserver
	now        func() time.Time
}

func NewStatusService(tasks repository.TaskRepo, links repository.LinkRepo, dispatcher *notify.Dispatcher, observers ...UseCaseObserver) StatusService {
	return &statusService{
		tasks:      tasks,
		links:      links,
		dispatcher: dispatcher,
		observer:   useCaseObserverOrNoop(observers),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *statusService) UpdateStatus(ctx context.Context, taskID, requester string, status domain.TaskStatus, progress float64) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": taskID, "status": string(status)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "update-task-status",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if !domain.ValidTaskStatuses[string(status)] {
		return fmt.Errorf("status %q: %w", status, ErrInvalidInput)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	// Authorization precedes any mutation.
	if task.Assignee != requester {
		return fmt.Errorf("task %s is assigned to %s: %w", taskID, task.Assignee, ErrForbidden)
	}

	ev := domain.StatusEvent{
		Status:   status,
		Progress: progress,
		Actor:    requester,
		Now:      s.now(),
	}

	// Fan-out only happens on completion; plain start and progress reports
	// skip the link and successor reads entirely.
	var successors []domain.SuccessorRef
	if ev.Completes() {
		successors, err = s.resolveSuccessors(ctx, task)
		if err != nil {
			return err
		}
	}

	intents := task.ApplyStatusEvent(ev, successors)

	if err := s.tasks.Update(ctx, task); err != nil {
		return err
	}

	// The status write is durable; everything past this point is
	// best-effort and must not fail the operation.
	s.dispatcher.Dispatch(ctx, intents)
	fields["notifications"] = len(intents)
	return nil
}

// resolveSuccessors loads the project's links and resolves the assignee of
// every distinct task downstream of t. Targets that no longer resolve are
// skipped rather than treated as errors.
func (s *statusService) resolveSuccessors(ctx context.Context, t *domain.Task) ([]domain.SuccessorRef, error) {
	links, err := s.links.ListByProject(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}

	var successors []domain.SuccessorRef
	seen := make(map[string]bool)
	for _, l := range graph.BuildLinkIndex(links).Outgoing(t.ID) {
		if seen[l.Target] {
			continue
		}
		seen[l.Target] = true

		target, err := s.tasks.GetByID(ctx, l.Target)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		successors = append(successors, domain.SuccessorRef{
			TaskID:   target.ID,
			Text:     target.Text,
			Assignee: target.Assignee,
		})
	}
	return successors, nil
}
