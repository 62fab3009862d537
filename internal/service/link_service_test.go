package service

import (
	"context"
	"testing"

	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/cosebhq/ganttd/internal/repository"
	"github.com/cosebhq/ganttd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkService_Replace_IsWholesale(t *testing.T) {
	tasks, links, _, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewLinkService(tasks, links, uow)

	require.NoError(t, links.Create(ctx, testutil.NewTestLink("p1", "a", "b")))
	require.NoError(t, links.Create(ctx, testutil.NewTestLink("p1", "b", "c")))

	err := svc.Replace(ctx, "p1", []domain.Link{
		{ID: "client-chosen", Source: "x", Target: "y", Type: domain.LinkStartToStart},
	})
	require.NoError(t, err)

	stored, err := svc.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, stored, 1, "previous link set is gone")
	assert.Equal(t, "x", stored[0].Source)
	assert.Equal(t, "y", stored[0].Target)
	assert.Equal(t, domain.LinkStartToStart, stored[0].Type)
	assert.NotEqual(t, "client-chosen", stored[0].ID, "stored links get server-assigned ids")
	assert.Equal(t, "p1", stored[0].ProjectID)
}

func TestLinkService_Replace_EmptyClearsProject(t *testing.T) {
	tasks, links, _, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewLinkService(tasks, links, uow)

	require.NoError(t, links.Create(ctx, testutil.NewTestLink("p1", "a", "b")))
	require.NoError(t, links.Create(ctx, testutil.NewTestLink("p2", "a", "b")))

	require.NoError(t, svc.Replace(ctx, "p1", nil))

	stored, err := svc.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, stored)

	other, err := svc.ListByProject(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, other, 1, "other projects are untouched")
}

func TestLinkService_Replace_EndpointsNotValidated(t *testing.T) {
	tasks, links, _, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewLinkService(tasks, links, uow)

	err := svc.Replace(ctx, "p1", []domain.Link{
		{Source: "no-such-task", Target: "also-missing", Type: domain.LinkFinishToStart},
	})
	require.NoError(t, err, "links may reference tasks that do not exist")

	stored, err := svc.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestLinkService_Replace_RequiresProject(t *testing.T) {
	tasks, links, _, uow := setupRepos(t)

	svc := NewLinkService(tasks, links, uow)
	err := svc.Replace(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLinkService_LinkedSources(t *testing.T) {
	tasks, links, _, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewLinkService(tasks, links, uow)

	upstream := testutil.NewTestTask("p1", "Upstream")
	other := testutil.NewTestTask("p1", "Other upstream")
	target := testutil.NewTestTask("p1", "Target")
	for _, task := range []*domain.Task{upstream, other, target} {
		require.NoError(t, tasks.Create(ctx, task))
	}
	require.NoError(t, links.Create(ctx, testutil.NewTestLink("p1", upstream.ID, target.ID)))
	require.NoError(t, links.Create(ctx, testutil.NewTestLink("p1", other.ID, target.ID)))
	// Dangling source is skipped rather than failing the lookup.
	require.NoError(t, links.Create(ctx, testutil.NewTestLink("p1", "ghost", target.ID)))

	sources, err := svc.LinkedSources(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	texts := []string{sources[0].Text, sources[1].Text}
	assert.ElementsMatch(t, []string{"Upstream", "Other upstream"}, texts)

	_, err = svc.LinkedSources(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
