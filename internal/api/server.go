// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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

	"github.com/taibuivan/hondana/internal/auth"
	"github.com/taibuivan/hondana/internal/book"
	"github.com/taibuivan/hondana/internal/bookmark"
	"github.com/taibuivan/hondana/internal/favorite"
	"github.com/taibuivan/hondana/internal/genre"
	"github.com/taibuivan/hondana/internal/platform/config"
	"github.com/taibuivan/hondana/internal/platform/constants"
	"github.com/taibuivan/hondana/internal/platform/middleware"
	"github.com/taibuivan/hondana/internal/platform/sec"
	"github.com/taibuivan/hondana/internal/review"
	"github.com/taibuivan/hondana/internal/stats"
	"github.com/taibuivan/hondana/internal/user"
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

	// Auth handles signup, login, logout and token refresh.
	Auth *auth.Handler

	// Book handles the catalogue, discovery and reading content.
	Book *book.Handler

	// Genre manages the genre taxonomy.
	Genre *genre.Handler

	// Review handles book reviews and review statistics.
	Review *review.Handler

	// Favorite handles favorites and favorite statistics.
	Favorite *favorite.Handler

	// Bookmark handles reading bookmarks.
	Bookmark *bookmark.Handler

	// User handles the /me profile surface and user administration.
	User *user.Handler

	// Stats exposes the admin stats rebuild endpoint.
	Stats *stats.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, validator middleware.TokenValidator, resolver middleware.IdentityResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution. CleanPath runs
	// first so the auth gate and the router always classify the same
	// normalized path; a gate running on a raw path with dot segments
	// would disagree with the route chi ultimately dispatches.
	r.Use(chimw.CleanPath)
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.AuthGate(validator, resolver))

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// The auth endpoints live at the root, matching the public patterns of
	// the auth gate; everything else groups under its resource prefix.
	h.Auth.RegisterRoutes(r)

	r.Route("/genres", h.Genre.RegisterRoutes)
	r.Route("/books", func(books chi.Router) {
		h.Book.RegisterRoutes(books)
		h.Review.RegisterBookRoutes(books)
		h.Favorite.RegisterBookRoutes(books)
	})
	r.Route("/content/books", h.Book.RegisterContentRoutes)
	r.Route("/reviews", h.Review.RegisterRoutes)
	r.Route("/favorites", h.Favorite.RegisterRoutes)
	r.Route("/bookmarks", h.Bookmark.RegisterRoutes)
	r.Route("/me", h.User.RegisterMeRoutes)
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		h.User.RegisterAdminRoutes(admin)
		h.Stats.RegisterRoutes(admin)
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
