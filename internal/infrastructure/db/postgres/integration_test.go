//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/flowdeck/workflow-service/internal/domain"
)

// startPostgres spins up a disposable database with the schema applied.
// Run with: go test -tags integration ./internal/infrastructure/db/postgres/...
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	migration, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithInitScripts(migration),
		tcpostgres.WithDatabase("workflows_test"),
		tcpostgres.WithUsername("app"),
		tcpostgres.WithPassword("app"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(ctx) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx))
	return db
}

func TestIntegration_UserRepo(t *testing.T) {
	db := startPostgres(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "a@b.com", "$2a$10$hash")
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)

	// The UNIQUE constraint arbitrates duplicates.
	_, err = repo.Create(ctx, "a@b.com", "other-hash")
	assert.True(t, domain.Is(err, "email_already_exists"), "got %v", err)

	_, err = repo.GetByEmail(ctx, "ghost@b.com")
	assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
}

func TestIntegration_WorkflowRepo(t *testing.T) {
	db := startPostgres(t)
	users := NewUserRepo(db)
	repo := NewWorkflowRepo(db)
	ctx := context.Background()

	alice, err := users.Create(ctx, "alice@b.com", "h")
	require.NoError(t, err)
	mallory, err := users.Create(ctx, "mallory@b.com", "h")
	require.NoError(t, err)

	created, err := repo.Create(ctx, alice.ID, "deploy")
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Empty(t, created.State, "state starts NULL")

	t.Run("ownership conjunction", func(t *testing.T) {
		_, foreignErr := repo.GetOwned(ctx, mallory.ID, created.ID)
		_, missingErr := repo.GetOwned(ctx, mallory.ID, 99999)

		require.Error(t, foreignErr)
		require.Error(t, missingErr)
		assert.Equal(t, missingErr.Error(), foreignErr.Error())
	})

	t.Run("update refreshes updated_at", func(t *testing.T) {
		updated, err := repo.UpdateOwned(ctx, alice.ID, created.ID, domain.Workflow{
			Title: "renamed",
			State: json.RawMessage(`{"step":1}`),
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.JSONEq(t, `{"step":1}`, string(updated.State))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

		_, err = repo.UpdateOwned(ctx, mallory.ID, created.ID, domain.Workflow{Title: "hijack"})
		assert.True(t, domain.Is(err, "workflow_not_found"), "got %v", err)
	})

	t.Run("list is owner scoped and newest first", func(t *testing.T) {
		second, err := repo.Create(ctx, alice.ID, "second")
		require.NoError(t, err)
		_, err = repo.Create(ctx, mallory.ID, "not alices")
		require.NoError(t, err)

		// Touch the older row so ordering by updated_at is observable.
		_, err = repo.UpdateOwned(ctx, alice.ID, created.ID, domain.Workflow{Title: "touched"})
		require.NoError(t, err)

		ws, err := repo.ListByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, ws, 2)
		assert.Equal(t, created.ID, ws[0].ID)
		assert.Equal(t, second.ID, ws[1].ID)
	})

	t.Run("empty owner", func(t *testing.T) {
		bob, err := users.Create(ctx, "bob@b.com", "h")
		require.NoError(t, err)

		ws, err := repo.ListByOwner(ctx, bob.ID)
		require.NoError(t, err)
		assert.NotNil(t, ws)
		assert.Len(t, ws, 0)
	})
}
