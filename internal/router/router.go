package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"licitaciones-backend/internal/handlers"
	"licitaciones-backend/internal/metrics"
	"licitaciones-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	extractHandler *handlers.ExtractHandler,
	healthHandler *handlers.HealthHandler,
	staticHandler *handlers.StaticHandler,
	collector *metrics.Collector,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(collector.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	// ──── API ────
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
		r.Post("/extract", extractHandler.Extract)
		r.Get("/extract/formats", extractHandler.SupportedFormats)
	})

	// ──── Static SPA: every other method/path ────
	r.NotFound(staticHandler.Serve)
	r.MethodNotAllowed(staticHandler.Serve)

	return r
}
