package http_handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flowdeck/workflow-service/internal/application/workflows"
	"github.com/flowdeck/workflow-service/internal/domain"
	"github.com/flowdeck/workflow-service/internal/logger"
	"github.com/flowdeck/workflow-service/internal/transport/http/dto"
	"github.com/flowdeck/workflow-service/internal/transport/http/middleware"
	"github.com/flowdeck/workflow-service/internal/transport/http/response"
)

type WorkflowHandler struct {
	svc *workflows.Service
}

func NewWorkflowHandler(svc *workflows.Service) *WorkflowHandler {
	return &WorkflowHandler{svc: svc}
}

// callerID pulls the identity the auth middleware attached. Protected routes
// always run behind it; a missing id means the route was wired wrong, and we
// still answer 401 rather than leak anything.
func callerID(r *http.Request) (int64, bool) {
	return middleware.UserIDFromContext(r.Context())
}

// workflowID parses the {id} segment. Non-numeric input behaves exactly like
// a missing row.
func workflowID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrWorkflowNotFound()
	}
	return id, nil
}

func (h *WorkflowHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	ws, err := h.svc.List(r.Context(), uid)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewWorkflowViews(ws))
}

func (h *WorkflowHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.CreateWorkflowRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	wf, err := h.svc.Create(r.Context(), uid, req.Title)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", uid).
		Int64("workflow_id", wf.ID).
		Msg("workflow_created")

	response.OK(w, dto.NewWorkflowView(wf))
}

func (h *WorkflowHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	id, err := workflowID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	wf, err := h.svc.Get(r.Context(), uid, id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewWorkflowView(wf))
}

func (h *WorkflowHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	id, err := workflowID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdateWorkflowRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	wf, err := h.svc.Update(r.Context(), uid, id, req.Patch())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", uid).
		Int64("workflow_id", wf.ID).
		Msg("workflow_updated")

	response.OK(w, dto.NewWorkflowView(wf))
}
