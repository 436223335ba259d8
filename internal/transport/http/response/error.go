package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flowdeck/workflow-service/internal/domain"
	"github.com/flowdeck/workflow-service/internal/logger"
)

// ErrorBody is the wire shape for every error: {"error": "<string>"}.
// The strings are part of the stable API contract.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteError converts a domain error into a consistent JSON HTTP error
// response. Non-domain errors are treated as internal errors (500) without
// leaking details; their cause is logged, never echoed.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		message = de.Message
	}

	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error().Err(err).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(ErrorBody{Error: message})
}

// statusFromKind maps domain error kinds to HTTP status codes.
// KindConflict maps to 400: the API reports a duplicate email the same way
// as any other bad registration input.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInfrastructure, domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
