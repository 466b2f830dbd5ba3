package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flix/flixsite/internal/pages"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// stats may be nil when pageview storage is disabled.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(registry *pages.Registry, stats Stats, authEnabled bool, token string, sseHandler http.Handler, logger *slog.Logger) chi.Router {
	h := NewHandler(registry, stats, logger)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/pages", h.ListPages)
	r.Get("/pages/*", h.GetPage)

	r.Get("/pageviews", h.Pageviews)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
