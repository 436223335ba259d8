package dto

import (
	"encoding/json"
	"time"

	"github.com/flowdeck/workflow-service/internal/domain"
)

// -------- Workflows --------

type CreateWorkflowRequest struct {
	Title string `json:"title" validate:"required"`
}

func (r *CreateWorkflowRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return domain.ErrMissingTitle()
	}
	return nil
}

// UpdateWorkflowRequest is a partial update: absent fields and explicit
// JSON null both keep the current value.
type UpdateWorkflowRequest struct {
	Title *string         `json:"title"`
	State json.RawMessage `json:"state"`
}

func (r *UpdateWorkflowRequest) Patch() domain.WorkflowPatch {
	p := domain.WorkflowPatch{Title: r.Title}
	if len(r.State) > 0 && string(r.State) != "null" {
		p.State = r.State
	}
	return p
}

type WorkflowView struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Title     string          `json:"title"`
	State     json.RawMessage `json:"state"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewWorkflowView(w domain.Workflow) WorkflowView {
	state := w.State
	if len(state) == 0 {
		state = json.RawMessage("null")
	}
	return WorkflowView{
		ID:        w.ID,
		UserID:    w.UserID,
		Title:     w.Title,
		State:     state,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func NewWorkflowViews(ws []domain.Workflow) []WorkflowView {
	out := make([]WorkflowView, 0, len(ws))
	for _, w := range ws {
		out = append(out, NewWorkflowView(w))
	}
	return out
}
