// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires the HTTP router, middleware chain and domain handlers
into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - It is the composition root for the chi router.
  - Only this package and cmd/api build net/http servers.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/quartoselo/internal/core/archive"
	"github.com/taibuivan/quartoselo/internal/core/comment"
	"github.com/taibuivan/quartoselo/internal/core/newsletter"
	"github.com/taibuivan/quartoselo/internal/core/tale"
	"github.com/taibuivan/quartoselo/internal/platform/config"
	"github.com/taibuivan/quartoselo/internal/platform/constants"
	"github.com/taibuivan/quartoselo/internal/platform/middleware"
	"github.com/taibuivan/quartoselo/internal/users/auth"
	"github.com/taibuivan/quartoselo/internal/users/profile"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// # Handler Registry

// Handlers groups the domain handler sets.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler.
	Readiness http.HandlerFunc

	Auth       *auth.Handler
	Tale       *tale.Handler
	Comment    *comment.Handler
	Profile    *profile.Handler
	Archive    *archive.Handler
	Newsletter *newsletter.Handler
}

// # Routing

/*
NewRouter builds the full middleware chain and mounts every route group.

Description: Authentication is fail-open at this level; routes that need an
identity add RequireAuth themselves.

Route map (under /api/v1):
  - /auth/*                       register, login, refresh, logout, me
  - /tales, /tales/{taleID}       public reads
  - /tales/{taleID}/comments      approved list (public), submit (auth)
  - /me/comments, /me/profile     the caller's own data (auth)
  - /archive/submissions          visitor submissions
  - /newsletter/subscriptions     sign-up
*/
func NewRouter(context context.Context, cfg *config.Config, logger *slog.Logger, verifier middleware.TokenVerifier, h Handlers) chi.Router {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins, cfg.IsDevelopment()))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", h.Auth.RegisterRoutes)

		api.Route("/tales", func(tales chi.Router) {
			h.Tale.RegisterRoutes(tales)
			tales.Route("/{taleID}/comments", h.Comment.RegisterTaleRoutes)
		})

		api.Route("/me", func(me chi.Router) {
			me.Use(middleware.RequireAuth)
			me.Route("/comments", h.Comment.RegisterOwnRoutes)
			me.Route("/profile", h.Profile.RegisterRoutes)
		})

		api.Route("/archive", h.Archive.RegisterRoutes)
		api.Route("/newsletter", h.Newsletter.RegisterRoutes)
	})

	return r
}

// # Server Initialization

// NewServer wraps [NewRouter] in an [http.Server] with the standard timeouts.
func NewServer(context context.Context, cfg *config.Config, logger *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           NewRouter(context, cfg, logger, verifier, h),
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
