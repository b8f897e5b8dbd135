// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wh64dev/wh64-api/internal/accounts/auth"
	"github.com/wh64dev/wh64-api/internal/board"
	"github.com/wh64dev/wh64-api/internal/hanriver"
	"github.com/wh64dev/wh64-api/internal/platform/config"
	"github.com/wh64dev/wh64-api/internal/platform/constants"
	"github.com/wh64dev/wh64-api/internal/platform/middleware"
	"github.com/wh64dev/wh64-api/internal/uptime"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the account lifecycle (register, login, verification).
	Auth *auth.Handler

	// Board handles the public guestbook.
	Board *board.Handler

	// Uptime handles database latency probes and their history.
	Uptime *uptime.Handler

	// HanRiver proxies the Seoul water-quality feed.
	HanRiver *hanriver.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Browsers hitting the bare host get pointed at the project repository.
	r.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, constants.RepositoryURL, http.StatusFound)
	})

	// # Application API
	// Domain-specific route groups mounted under the versioned prefix.
	// The guestbook and uptime endpoints are flat paths at the version root,
	// matching the public API contract.
	r.Route("/v1", func(api chi.Router) {
		api.Get("/", h.Uptime.Check)
		api.Get("/hc", h.Uptime.History)
		api.Post("/send", h.Board.Send)
		api.Get("/messages", h.Board.Messages)
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/hanriver", h.HanRiver.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
