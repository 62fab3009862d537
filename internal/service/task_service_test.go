package service

import (
	"context"
	"testing"
	"time"

	"github.com/cosebhq/ganttd/internal/db"
	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/cosebhq/ganttd/internal/repository"
	"github.com/cosebhq/ganttd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (
	repository.TaskRepo,
	repository.LinkRepo,
	repository.CommentRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteLinkRepo(database),
		repository.NewSQLiteCommentRepo(database),
		testutil.NewTestUoW(database)
}

func TestTaskService_Create_Defaults(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	start := time.Date(2026, 3, 10, 14, 23, 5, 0, time.UTC)
	end := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

	id, err := svc.Create(ctx, CreateTaskInput{
		ProjectID: "p1",
		Text:      "Design review",
		Start:     start,
		End:       end,
		Assignee:  "worker@example.com",
		CreatedBy: "owner@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	fetched, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotStarted, fetched.Status)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), fetched.Start, "start normalized to start of day")
	assert.Equal(t, time.Date(2026, 3, 20, 23, 59, 59, 0, time.UTC), fetched.End, "end normalized to end of day")
	assert.Equal(t, fetched.Start, fetched.BaseStart, "baseline copied from initial schedule")
	assert.Equal(t, fetched.End, fetched.BaseEnd)
}

func TestTaskService_Create_Validation(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	_, err := svc.Create(ctx, CreateTaskInput{Text: "no project"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateTaskInput{ProjectID: "p1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskService_Update_BaselineImmutable(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	task := testutil.NewTestTask("p1", "Pour foundation")
	require.NoError(t, tasks.Create(ctx, task))
	origBaseStart := task.BaseStart
	origBaseEnd := task.BaseEnd

	newStart := time.Date(2026, 5, 1, 11, 0, 0, 0, time.UTC)
	newEnd := time.Date(2026, 5, 9, 16, 30, 0, 0, time.UTC)
	require.NoError(t, svc.Update(ctx, task.ID, UpdateTaskInput{Start: &newStart, End: &newEnd}, "pm@example.com"))

	fetched, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), fetched.Start)
	assert.Equal(t, time.Date(2026, 5, 9, 23, 59, 59, 0, time.UTC), fetched.End)
	assert.Equal(t, origBaseStart, fetched.BaseStart, "baseline must not move on reschedule")
	assert.Equal(t, origBaseEnd, fetched.BaseEnd)
	assert.Equal(t, "pm@example.com", fetched.UpdatedBy)
}

func TestTaskService_Update_PartialFieldsOnly(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	task := testutil.NewTestTask("p1", "Original text", testutil.WithProgress(25))
	require.NoError(t, tasks.Create(ctx, task))

	text := "Renamed"
	require.NoError(t, svc.Update(ctx, task.ID, UpdateTaskInput{Text: &text}, ""))

	fetched, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Text)
	assert.Equal(t, 25.0, fetched.Progress, "untouched fields survive a partial update")
	assert.Equal(t, "worker@example.com", fetched.Assignee)
}

func TestTaskService_UpdateDates_NoopWhenBothNil(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)
	assert.NoError(t, svc.UpdateDates(ctx, "does-not-exist", nil, nil))
}

func TestTaskService_SetManualAndReport(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	task := testutil.NewTestTask("p1", "Write manual")
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, svc.SetManual(ctx, task.ID, "installation steps"))
	require.NoError(t, svc.SetReport(ctx, task.ID, "weekly summary"))

	fetched, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "installation steps", fetched.Manual)
	assert.Equal(t, "weekly summary", fetched.Report)

	err = svc.SetManual(ctx, "missing", "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_Comments_InsertionOrder(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	task := testutil.NewTestTask("p1", "Discuss")
	require.NoError(t, tasks.Create(ctx, task))

	_, err := svc.AddComment(ctx, task.ID, "first", "alice@example.com")
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, task.ID, "second", "bob@example.com")
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, task.ID, "", "alice@example.com")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddComment(ctx, "missing", "orphan", "alice@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := svc.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "second", list[1].Content)
}

func TestTaskService_Delete_CascadesSubtreeAndLinks(t *testing.T) {
	tasks, links, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	a := testutil.NewTestTask("p1", "A")
	b := testutil.NewTestTask("p1", "B", testutil.WithParent(a.ID))
	c := testutil.NewTestTask("p1", "C", testutil.WithParent(b.ID))
	for _, task := range []*domain.Task{a, b, c} {
		require.NoError(t, tasks.Create(ctx, task))
	}
	require.NoError(t, links.Create(ctx, testutil.NewTestLink("p1", a.ID, c.ID)))

	removed, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	remaining, err := tasks.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	remainingLinks, err := links.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, remainingLinks, "links touching removed tasks must be pruned")
}

func TestTaskService_Delete_LinksInOtherProjectsSurvive(t *testing.T) {
	tasks, links, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	victim := testutil.NewTestTask("p1", "victim")
	require.NoError(t, tasks.Create(ctx, victim))
	// Same id reused as endpoint in another project: out of scope for the cascade.
	require.NoError(t, links.Create(ctx, testutil.NewTestLink("p2", victim.ID, "other")))

	_, err := svc.Delete(ctx, victim.ID)
	require.NoError(t, err)

	other, err := links.ListByProject(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, other, 1, "pruning is scoped to the task's project")
}

func TestTaskService_Delete_ClosesParentWhenLastChildRemoved(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	parent := testutil.NewTestTask("p1", "parent", testutil.WithOpen(true))
	onlyChild := testutil.NewTestTask("p1", "child", testutil.WithParent(parent.ID))
	require.NoError(t, tasks.Create(ctx, parent))
	require.NoError(t, tasks.Create(ctx, onlyChild))

	removed, err := svc.Delete(ctx, onlyChild.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	fetched, err := tasks.GetByID(ctx, parent.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Open, "parent closes once its last child is gone")
}

func TestTaskService_Delete_ParentStaysOpenWithSiblingLeft(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	parent := testutil.NewTestTask("p1", "parent", testutil.WithOpen(true))
	child := testutil.NewTestTask("p1", "child", testutil.WithParent(parent.ID))
	sibling := testutil.NewTestTask("p1", "sibling", testutil.WithParent(parent.ID))
	for _, task := range []*domain.Task{parent, child, sibling} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	_, err := svc.Delete(ctx, child.ID)
	require.NoError(t, err)

	fetched, err := tasks.GetByID(ctx, parent.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Open)
}

func TestTaskService_Delete_MissingIsNotAnError(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	removed, err := svc.Delete(ctx, "never-existed")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestTaskService_Delete_RootSkipsParentFixup(t *testing.T) {
	tasks, _, comments, uow := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(tasks, comments, uow)

	root := testutil.NewTestTask("p1", "root", testutil.WithParent(domain.RootParent))
	require.NoError(t, tasks.Create(ctx, root))

	removed, err := svc.Delete(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}
