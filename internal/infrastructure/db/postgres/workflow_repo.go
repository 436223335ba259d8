package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/flowdeck/workflow-service/internal/domain"
)

type WorkflowRepo struct {
	db *sql.DB
}

func NewWorkflowRepo(db *sql.DB) *WorkflowRepo {
	return &WorkflowRepo{db: db}
}

func scanWorkflow(row interface {
	Scan(dest ...any) error
}) (domain.Workflow, error) {
	var (
		w     domain.Workflow
		state []byte
	)
	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Title,
		&state,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return domain.Workflow{}, err
	}
	w.State = json.RawMessage(state)
	return w, nil
}

func (r *WorkflowRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Workflow, error) {
	const q = `
SELECT id, user_id, title, state, created_at, updated_at
FROM workflows
WHERE user_id = $1
ORDER BY updated_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := make([]domain.Workflow, 0)
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *WorkflowRepo) Create(ctx context.Context, ownerID int64, title string) (domain.Workflow, error) {
	const q = `
INSERT INTO workflows (user_id, title)
VALUES ($1, $2)
RETURNING id, user_id, title, state, created_at, updated_at;
`
	w, err := scanWorkflow(r.db.QueryRowContext(ctx, q, ownerID, title))
	if err != nil {
		return domain.Workflow{}, domain.ErrDBUnavailable(err)
	}
	return w, nil
}

// GetOwned filters on the (id, user_id) conjunction. A workflow owned by a
// different user scans as zero rows, so it is indistinguishable from one
// that does not exist.
func (r *WorkflowRepo) GetOwned(ctx context.Context, ownerID, id int64) (domain.Workflow, error) {
	const q = `
SELECT id, user_id, title, state, created_at, updated_at
FROM workflows
WHERE id = $1 AND user_id = $2
LIMIT 1;
`
	w, err := scanWorkflow(r.db.QueryRowContext(ctx, q, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Workflow{}, domain.ErrWorkflowNotFound()
		}
		return domain.Workflow{}, domain.ErrDBUnavailable(err)
	}
	return w, nil
}

// UpdateOwned keeps the ownership filter on the write as well, so the row
// cannot be hijacked between the caller's read and this write. updated_at
// always moves forward, even when title/state are unchanged.
func (r *WorkflowRepo) UpdateOwned(ctx context.Context, ownerID, id int64, w domain.Workflow) (domain.Workflow, error) {
	const q = `
UPDATE workflows
SET title = $3,
    state = $4,
    updated_at = NOW()
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, title, state, created_at, updated_at;
`
	var state any
	if len(w.State) > 0 {
		state = []byte(w.State)
	}

	updated, err := scanWorkflow(r.db.QueryRowContext(ctx, q, id, ownerID, w.Title, state))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Row vanished (or changed owner, which cannot happen) between
			// the read and this write; report it like any missing row.
			return domain.Workflow{}, domain.ErrWorkflowNotFound()
		}
		return domain.Workflow{}, domain.ErrDBUnavailable(err)
	}
	return updated, nil
}
