package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/flix/flixsite/internal/analytics"
	"github.com/flix/flixsite/internal/apperr"
	"github.com/flix/flixsite/internal/catalog"
	"github.com/flix/flixsite/internal/pages"
	"github.com/flix/flixsite/internal/pageviews"
	"github.com/flix/flixsite/internal/richtext"
)

// Stats answers pageview count queries.
type Stats interface {
	Counts(ctx context.Context, kind string) ([]pageviews.PathCount, error)
	Total(ctx context.Context, kind string) (int, error)
}

// Handler holds API route handlers.
type Handler struct {
	registry *pages.Registry
	stats    Stats
	logger   *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(registry *pages.Registry, stats Stats, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{registry: registry, stats: stats, logger: logger}
}

// pageRoute extracts the page route from the URL (everything after /api/pages).
// Supports encoded slashes (e.g. %2Fprinciples).
func pageRoute(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return "/" + strings.TrimPrefix(raw, "/")
}

// ListPages handles GET /api/pages.
func (h *Handler) ListPages(w http.ResponseWriter, _ *http.Request) {
	all := h.registry.All()
	items := make([]PageSummary, 0, len(all))
	for _, p := range all {
		items = append(items, PageSummary{
			Route:       p.Route,
			Title:       p.Meta.Title,
			Description: p.Meta.Description,
			Cards:       len(p.Catalog),
		})
	}
	writeJSON(w, http.StatusOK, PageListResponse{Pages: items})
}

// GetPage handles GET /api/pages/*. The page is read, not displayed, so no
// pageview is recorded.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	p, err := h.registry.Lookup(pageRoute(r))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("page not found"))
			return
		}
		h.logger.Error("lookup page failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	cards := catalog.Render(p.Catalog)
	out := PageDetail{
		Route: p.Route,
		Title: p.Meta.Title,
		Text:  richtext.PlainText(p.Body()),
		Cards: make([]CardDTO, 0, len(cards)),
	}
	for _, c := range cards {
		out.Cards = append(out.Cards, CardDTO{ID: c.ID, Heading: c.Heading, Text: richtext.PlainText(c.Body)})
	}
	writeJSON(w, http.StatusOK, out)
}

// Pageviews handles GET /api/pageviews?kind=pageview|outbound.
func (h *Handler) Pageviews(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("pageview storage is disabled"))
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = analytics.KindPageview
	}
	if kind != analytics.KindPageview && kind != analytics.KindOutbound {
		writeJSON(w, http.StatusBadRequest, errorBody("kind must be pageview or outbound"))
		return
	}

	counts, err := h.stats.Counts(r.Context(), kind)
	if err != nil {
		h.logger.Error("pageview counts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	total, err := h.stats.Total(r.Context(), kind)
	if err != nil {
		h.logger.Error("pageview total failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeJSON(w, http.StatusOK, PageviewsResponse{Kind: kind, Total: total, Paths: counts})
}
