package workflows

import (
	"context"

	"github.com/flowdeck/workflow-service/internal/domain"
)

/*
WorkflowRepo
------------
Persistence port for workflows. Every method that addresses a single row
takes the owner's id and applies the (id, user_id) conjunction; a row owned
by someone else must surface as domain.ErrWorkflowNotFound, identical to a
missing row.
*/
type WorkflowRepo interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Workflow, error)
	Create(ctx context.Context, ownerID int64, title string) (domain.Workflow, error)
	GetOwned(ctx context.Context, ownerID, id int64) (domain.Workflow, error)
	// UpdateOwned writes the full mutable field set under the ownership
	// filter and refreshes updated_at unconditionally.
	UpdateOwned(ctx context.Context, ownerID, id int64, w domain.Workflow) (domain.Workflow, error)
}

type Service struct {
	repo WorkflowRepo
}

func NewService(repo WorkflowRepo) *Service {
	return &Service{repo: repo}
}

// List returns the owner's workflows, most recently touched first. An owner
// with no workflows gets an empty slice, never an error.
func (s *Service) List(ctx context.Context, ownerID int64) ([]domain.Workflow, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Create(ctx context.Context, ownerID int64, title string) (domain.Workflow, error) {
	if title == "" {
		return domain.Workflow{}, domain.ErrMissingTitle()
	}
	return s.repo.Create(ctx, ownerID, title)
}

func (s *Service) Get(ctx context.Context, ownerID, id int64) (domain.Workflow, error) {
	return s.repo.GetOwned(ctx, ownerID, id)
}

// Update applies a partial update via read-modify-write: fetch under the
// ownership filter, overlay only the supplied fields, write back. There is
// no version token; concurrent updates are last-write-wins.
func (s *Service) Update(ctx context.Context, ownerID, id int64, patch domain.WorkflowPatch) (domain.Workflow, error) {
	current, err := s.repo.GetOwned(ctx, ownerID, id)
	if err != nil {
		return domain.Workflow{}, err
	}

	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.State != nil {
		current.State = patch.State
	}

	return s.repo.UpdateOwned(ctx, ownerID, id, current)
}
