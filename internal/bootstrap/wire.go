package bootstrap

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/flowdeck/workflow-service/internal/application/auth"
	"github.com/flowdeck/workflow-service/internal/application/workflows"
	"github.com/flowdeck/workflow-service/internal/config"
	"github.com/flowdeck/workflow-service/internal/infrastructure/db/postgres"
	"github.com/flowdeck/workflow-service/internal/infrastructure/security"
	"github.com/flowdeck/workflow-service/internal/logger"
	http_handlers "github.com/flowdeck/workflow-service/internal/transport/http/handlers"
	"github.com/flowdeck/workflow-service/internal/transport/http/middleware"
	"github.com/flowdeck/workflow-service/internal/transport/http/response"
	"github.com/flowdeck/workflow-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	if cfg.UsingInsecureSecret() {
		logger.Logger.Warn().Msg("JWT_SECRET not set; using insecure development fallback")
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	// 2) repos
	userRepo := postgres.NewUserRepo(sqlDB)
	workflowRepo := postgres.NewWorkflowRepo(sqlDB)

	// 3) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.AccessTokenTTL)

	// 4) services
	authSvc := auth.NewService(userRepo, hasher, signer)
	workflowSvc := workflows.NewService(workflowRepo)

	// 5) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	workflowH := http_handlers.NewWorkflowHandler(workflowSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(signer, response.WriteError)

	// 6) router
	mux, err := deps.NewRouter(router.Deps{
		Health:    healthH,
		Auth:      authH,
		Workflows: workflowH,

		RequestIDMW: middleware.RequestID,
		CORSMW:      middleware.CORS(),
		AuthMW:      authMW,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
