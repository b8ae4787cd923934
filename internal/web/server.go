// Package web provides the server-rendered HTTP frontend for the catalog.
package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/locallibrary/catalog-server/internal/ratelimit"
	"github.com/locallibrary/catalog-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *service.Services
	renderer *renderer
	limiter  *ratelimit.KeyedRateLimiter
	router   *chi.Mux
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// The limiter throttles form submissions per client IP; pass nil to
// disable throttling.
func NewServer(services *service.Services, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	rnd, err := newRenderer(logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		services: services,
		renderer: rnd,
		limiter:  limiter,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.limitSubmissions)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog", http.StatusFound)
	})

	s.router.Route("/catalog", func(r chi.Router) {
		r.Get("/", s.handleIndex)

		// List pages.
		r.Get("/books", s.handleListBooks)
		r.Get("/authors", s.handleListAuthors)
		r.Get("/genres", s.handleListGenres)
		r.Get("/bookinstances", s.handleListInstances)

		// Create routes come before the {id} routes so "create" is
		// never taken for an ID.
		r.Route("/book", func(r chi.Router) {
			r.Get("/create", s.handleCreateBookForm)
			r.Post("/create", s.handleCreateBook)
			r.Get("/{id}", s.handleGetBook)
			r.Get("/{id}/update", s.handleUpdateBookForm)
			r.Post("/{id}/update", s.handleUpdateBook)
			r.Get("/{id}/delete", s.handleDeleteBookForm)
			r.Post("/{id}/delete", s.handleDeleteBook)
		})

		r.Route("/author", func(r chi.Router) {
			r.Get("/create", s.handleCreateAuthorForm)
			r.Post("/create", s.handleCreateAuthor)
			r.Get("/{id}", s.handleGetAuthor)
			r.Get("/{id}/update", s.handleUpdateAuthorForm)
			r.Post("/{id}/update", s.handleUpdateAuthor)
			r.Get("/{id}/delete", s.handleDeleteAuthorForm)
			r.Post("/{id}/delete", s.handleDeleteAuthor)
		})

		r.Route("/genre", func(r chi.Router) {
			r.Get("/create", s.handleCreateGenreForm)
			r.Post("/create", s.handleCreateGenre)
			r.Get("/{id}", s.handleGetGenre)
			r.Get("/{id}/update", s.handleUpdateGenreForm)
			r.Post("/{id}/update", s.handleUpdateGenre)
			r.Get("/{id}/delete", s.handleDeleteGenreForm)
			r.Post("/{id}/delete", s.handleDeleteGenre)
		})

		r.Route("/bookinstance", func(r chi.Router) {
			r.Get("/create", s.handleCreateInstanceForm)
			r.Post("/create", s.handleCreateInstance)
			r.Get("/{id}", s.handleGetInstance)
			r.Get("/{id}/update", s.handleUpdateInstanceForm)
			r.Post("/{id}/update", s.handleUpdateInstance)
			r.Get("/{id}/delete", s.handleDeleteInstanceForm)
			r.Post("/{id}/delete", s.handleDeleteInstance)
		})
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, http.StatusNotFound, "Page not found")
	})
}

// handleHealthCheck reports liveness.
// GET /health
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
