package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/cosebhq/ganttd/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnitOfWork(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func countLinks(t *testing.T, database *sql.DB, projectID string) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(
		`SELECT COUNT(*) FROM links WHERE project_id = ?`, projectID).Scan(&n))
	return n
}

func insertLink(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO links (id, project_id, source, target, type) VALUES (?, 'p1', 'a', 'b', 'finish-to-start')`, id)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := newUnitOfWork(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertLink(ctx, tx, "l1")
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countLinks(t, database, "p1"), "link should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := newUnitOfWork(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertLink(ctx, tx, "l2"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.Zero(t, countLinks(t, database, "p1"), "link should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := newUnitOfWork(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertLink(ctx, tx, "l3")
			panic("boom")
		})
	})

	assert.Zero(t, countLinks(t, database, "p1"), "link should not exist after panic rollback")
}
