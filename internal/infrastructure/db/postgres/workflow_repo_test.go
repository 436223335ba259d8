package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdeck/workflow-service/internal/domain"
)

var workflowCols = []string{"id", "user_id", "title", "state", "created_at", "updated_at"}

func newWorkflowRepoMock(t *testing.T) (*WorkflowRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWorkflowRepo(db), mock
}

func TestWorkflowRepo_ListByOwner(t *testing.T) {
	repo, mock := newWorkflowRepoMock(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id, title, state, created_at, updated_at").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(workflowCols).
			AddRow(int64(2), int64(1), "newer", []byte(`{"n":2}`), now, now).
			AddRow(int64(1), int64(1), "older", nil, now, now.Add(-time.Hour)))

	ws, err := repo.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, ws, 2)
	assert.Equal(t, "newer", ws[0].Title)
	assert.Equal(t, json.RawMessage(`{"n":2}`), ws[0].State)
	assert.Empty(t, ws[1].State, "NULL state must scan as empty")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowRepo_ListByOwner_Empty(t *testing.T) {
	repo, mock := newWorkflowRepoMock(t)

	mock.ExpectQuery("SELECT id, user_id, title, state, created_at, updated_at").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(workflowCols))

	ws, err := repo.ListByOwner(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, ws, "empty result must be a slice, not nil")
	assert.Len(t, ws, 0)
}

func TestWorkflowRepo_Create(t *testing.T) {
	repo, mock := newWorkflowRepoMock(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO workflows").
		WithArgs(int64(1), "deploy").
		WillReturnRows(sqlmock.NewRows(workflowCols).
			AddRow(int64(5), int64(1), "deploy", nil, now, now))

	w, err := repo.Create(context.Background(), 1, "deploy")
	require.NoError(t, err)
	assert.Equal(t, int64(5), w.ID)
	assert.Equal(t, int64(1), w.UserID)
	assert.Empty(t, w.State, "fresh workflow starts with no state")
}

func TestWorkflowRepo_GetOwned_FiltersOnOwner(t *testing.T) {
	repo, mock := newWorkflowRepoMock(t)

	// id 5 exists but belongs to user 2; the conjunction yields zero rows.
	mock.ExpectQuery("WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows(workflowCols))

	_, err := repo.GetOwned(context.Background(), 1, 5)
	assert.True(t, domain.Is(err, "workflow_not_found"), "got %v", err)
}

func TestWorkflowRepo_UpdateOwned(t *testing.T) {
	repo, mock := newWorkflowRepoMock(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE workflows").
		WithArgs(int64(5), int64(1), "renamed", []byte(`{"s":1}`)).
		WillReturnRows(sqlmock.NewRows(workflowCols).
			AddRow(int64(5), int64(1), "renamed", []byte(`{"s":1}`), now.Add(-time.Hour), now))

	w, err := repo.UpdateOwned(context.Background(), 1, 5, domain.Workflow{
		Title: "renamed",
		State: json.RawMessage(`{"s":1}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", w.Title)
	assert.True(t, w.UpdatedAt.After(w.CreatedAt))
}

func TestWorkflowRepo_UpdateOwned_NilStateWritesNull(t *testing.T) {
	repo, mock := newWorkflowRepoMock(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE workflows").
		WithArgs(int64(5), int64(1), "t", nil).
		WillReturnRows(sqlmock.NewRows(workflowCols).
			AddRow(int64(5), int64(1), "t", nil, now, now))

	w, err := repo.UpdateOwned(context.Background(), 1, 5, domain.Workflow{Title: "t"})
	require.NoError(t, err)
	assert.Empty(t, w.State)
}

func TestWorkflowRepo_UpdateOwned_RowGone(t *testing.T) {
	repo, mock := newWorkflowRepoMock(t)

	mock.ExpectQuery("UPDATE workflows").
		WithArgs(int64(5), int64(1), "t", nil).
		WillReturnRows(sqlmock.NewRows(workflowCols))

	_, err := repo.UpdateOwned(context.Background(), 1, 5, domain.Workflow{Title: "t"})
	assert.True(t, domain.Is(err, "workflow_not_found"), "got %v", err)
}

func TestWorkflowRepo_DBDown(t *testing.T) {
	repo, mock := newWorkflowRepoMock(t)

	mock.ExpectQuery("SELECT id, user_id, title, state, created_at, updated_at").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ListByOwner(context.Background(), 1)
	assert.True(t, domain.Is(err, "db_unavailable"), "got %v", err)
}
