package api

import (
	"log/slog"
	"net/http"
	"trip-route-service/internal/api/handlers"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Trips       ports.TripRepository
	Views       *services.ViewRegistry
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tripHandler := &handlers.TripHandler{Repo: cfg.Trips}
	viewHandler := &handlers.ViewHandler{Views: cfg.Views}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(newLoggingMiddleware(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(newCORSMiddleware(cfg.CORSOrigins))
	r.Use(gzipMiddleware)

	r.Get("/health", handlers.Health)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", tripHandler.List)
		r.Get("/{index}", tripHandler.Get)
		r.Get("/{index}/chunks", tripHandler.Chunks)
	})

	r.Route("/views", func(r chi.Router) {
		r.Post("/", viewHandler.Create)
		r.Get("/{id}", viewHandler.Get)
		r.Delete("/{id}", viewHandler.Delete)
		r.Put("/{id}/selection", viewHandler.Select)
		r.Delete("/{id}/selection", viewHandler.ClearSelection)
	})

	return r
}
