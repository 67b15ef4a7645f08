// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package api wires together the HTTP router, the hardening middleware chain,
and all domain handlers into a runnable [http.Server].

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

	"github.com/wayfarer-travel/wayfarer/internal/core/review"
	"github.com/wayfarer-travel/wayfarer/internal/core/tour"
	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/config"
	"github.com/wayfarer-travel/wayfarer/internal/platform/constants"
	"github.com/wayfarer-travel/wayfarer/internal/platform/limiter"
	"github.com/wayfarer-travel/wayfarer/internal/platform/middleware"
	"github.com/wayfarer-travel/wayfarer/internal/platform/respond"
	"github.com/wayfarer-travel/wayfarer/internal/users/account"
	"github.com/wayfarer-travel/wayfarer/internal/users/auth"
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

	// Auth handles the authentication flows (signup, login, password recovery).
	Auth *auth.Handler

	// Account handles profile self-service and user administration.
	Account *account.Handler

	// Tour handles the tour catalog and its reports.
	Tour *tour.Handler

	// Review handles tour reviews, nested and top-level.
	Review *review.Handler
}

// # Server Initialization

// Router exposes the underlying mux, primarily for tests.
func (s *Server) Router() *chi.Mux { return s.router }

// NewServer constructs the chi router with the full hardening chain and
// registers all route groups.
//
// The middleware order is a contract: headers before anything can fail,
// logging before work happens, the rate limiter ahead of body processing,
// sanitization before any handler reads input.
func NewServer(cfg *config.Config, log *slog.Logger, rateLimiter limiter.Limiter, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestID())
	r.Use(middleware.DevMode(cfg.IsDevelopment()))
	if cfg.IsDevelopment() {
		r.Use(middleware.StructuredLogger(log))
	}
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(rateLimiter))
	r.Use(middleware.BodyLimit(constants.MaxBodyBytes))
	r.Use(middleware.SanitizeInput())
	r.Use(middleware.CollapseDuplicateParams(constants.DuplicateParamAllowList))
	r.Use(middleware.Recover())
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Static Assets
	// Non-API asset serving (tour images, favicons).
	fileServer := http.StripPrefix("/public/", http.FileServer(http.Dir(cfg.StaticDir)))
	r.Handle("/public/*", fileServer)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/users", func(users chi.Router) {
			h.Auth.Register(users)
			h.Account.Register(users)
		})

		api.Route("/tours", func(tours chi.Router) {
			h.Tour.Register(tours)
			tours.Route("/{tourId}/reviews", func(nested chi.Router) {
				h.Review.RegisterNested(nested)
			})
		})

		api.Route("/reviews", func(reviews chi.Router) {
			h.Review.Register(reviews)
		})
	})

	// # Catch-All
	// Unmatched paths get the JSON not-found envelope, not a plain-text 404.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respond.Error(w, req, apperr.RouteNotFound(req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respond.Error(w, req, apperr.RouteNotFound(req.URL.Path))
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
