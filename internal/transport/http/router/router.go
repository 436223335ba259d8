package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WorkflowHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health    HealthHandler
	Auth      AuthHandler
	Workflows WorkflowHandler

	RequestIDMW func(http.Handler) http.Handler
	CORSMW      func(http.Handler) http.Handler
	AuthMW      func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Workflows == nil {
		return nil, fmt.Errorf("nil Workflows handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}
	if deps.CORSMW != nil {
		r.Use(deps.CORSMW)
	}

	r.Get("/healthz", deps.Health.Healthz)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register)
		r.Post("/login", deps.Auth.Login)
	})

	// Every /me route sits behind the auth middleware; nothing below it
	// executes for an unauthenticated request.
	r.Route("/me/workflows", func(r chi.Router) {
		r.Use(deps.AuthMW)

		r.Get("/", deps.Workflows.List)
		r.Post("/", deps.Workflows.Create)
		r.Get("/{id}", deps.Workflows.Get)
		r.Put("/{id}", deps.Workflows.Update)
	})

	return r, nil
}
