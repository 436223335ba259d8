package http_handlers

import (
	"net/http"
	"strings"

	"github.com/flowdeck/workflow-service/internal/application/auth"
	"github.com/flowdeck/workflow-service/internal/logger"
	"github.com/flowdeck/workflow-service/internal/transport/http/dto"
	"github.com/flowdeck/workflow-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.ID).
		Str("email", res.Email).
		Msg("user_registered")

	response.OK(w, dto.RegisterResponse{ID: res.ID, Email: res.Email})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("email", req.Email).
		Msg("user_logged_in")

	response.OK(w, dto.LoginResponse{Token: res.Token})
}
