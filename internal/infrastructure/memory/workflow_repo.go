package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/flowdeck/workflow-service/internal/domain"
)

// WorkflowRepo is an in-memory substitute for the Postgres workflow repo.
// Ownership checks go through domain.Workflow.BelongsTo so a foreign row and
// a missing row produce the identical error.
type WorkflowRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.Workflow
}

func NewWorkflowRepo() *WorkflowRepo {
	return &WorkflowRepo{
		nextID: 1,
		byID:   make(map[int64]domain.Workflow),
	}
}

func (r *WorkflowRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Workflow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Workflow, 0)
	for _, w := range r.byID {
		if w.BelongsTo(ownerID) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *WorkflowRepo) Create(ctx context.Context, ownerID int64, title string) (domain.Workflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	w := domain.Workflow{
		ID:        r.nextID,
		UserID:    ownerID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++

	r.byID[w.ID] = w
	return w, nil
}

func (r *WorkflowRepo) GetOwned(ctx context.Context, ownerID, id int64) (domain.Workflow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.byID[id]
	if !ok || !w.BelongsTo(ownerID) {
		return domain.Workflow{}, domain.ErrWorkflowNotFound()
	}
	return w, nil
}

func (r *WorkflowRepo) UpdateOwned(ctx context.Context, ownerID, id int64, w domain.Workflow) (domain.Workflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok || !cur.BelongsTo(ownerID) {
		return domain.Workflow{}, domain.ErrWorkflowNotFound()
	}

	now := time.Now()
	if !now.After(cur.UpdatedAt) {
		// keep updated_at strictly increasing even on coarse clocks
		now = cur.UpdatedAt.Add(time.Nanosecond)
	}

	cur.Title = w.Title
	cur.State = w.State
	cur.UpdatedAt = now
	r.byID[id] = cur
	return cur, nil
}
