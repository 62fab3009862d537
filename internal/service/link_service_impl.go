package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cosebhq/ganttd/internal/db"
	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/cosebhq/ganttd/internal/repository"
	"github.com/google/uuid"
)

type linkService struct {
	tasks    repository.TaskRepo
	links    repository.LinkRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewLinkService(tasks repository.TaskRepo, links repository.LinkRepo, uow db.UnitOfWork, observers ...UseCaseObserver) LinkService {
	return &linkService{
		tasks:    tasks,
		links:    links,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *linkService) Replace(ctx context.Context, projectID string, links []domain.Link) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "replace-links",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project_id": projectID, "links": len(links)},
		})
	}()

	if projectID == "" {
		return fmt.Errorf("project id is required: %w", ErrInvalidInput)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLinks := repository.NewSQLiteLinkRepo(tx)

		if err := txLinks.DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		for _, l := range links {
			// Client-supplied ids are ignored; every stored link gets a
			// fresh identity.
			stored := &domain.Link{
				ID:        uuid.New().String(),
				ProjectID: projectID,
				Source:    l.Source,
				Target:    l.Target,
				Type:      l.Type,
			}
			if err := txLinks.Create(ctx, stored); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *linkService) ListByProject(ctx context.Context, projectID string) ([]domain.Link, error) {
	return s.links.ListByProject(ctx, projectID)
}

func (s *linkService) LinkedSources(ctx context.Context, taskID string) ([]*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	links, err := s.links.ListByProject(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}

	var sources []*domain.Task
	seen := make(map[string]bool)
	for _, l := range links {
		if l.Target != taskID || seen[l.Source] {
			continue
		}
		seen[l.Source] = true

		src, err := s.tasks.GetByID(ctx, l.Source)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
