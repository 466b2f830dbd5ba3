package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/flix/flixsite/internal/analytics"
	"github.com/flix/flixsite/internal/apperr"
	"github.com/flix/flixsite/internal/lifecycle"
	"github.com/flix/flixsite/internal/models"
	"github.com/flix/flixsite/internal/pages"
	"github.com/flix/flixsite/internal/richtext"
)

// Handler serves the site pages, the outbound redirect and static assets.
type Handler struct {
	registry  *pages.Registry
	renderer  *Renderer
	recorder  analytics.Recorder
	outbound  map[string]struct{}
	assetsDir string
	logger    *slog.Logger
}

// NewHandler creates a handler. assetsDir overrides the embedded assets when
// non-empty.
func NewHandler(registry *pages.Registry, renderer *Renderer, recorder analytics.Recorder, assetsDir string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry:  registry,
		renderer:  renderer,
		recorder:  recorder,
		outbound:  registry.OutboundTargets(),
		assetsDir: assetsDir,
		logger:    logger,
	}
}

// NewRouter mounts every page route, the outbound redirect and /static.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	all := h.registry.All()
	if len(all) > 0 {
		home := all[0].Route
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, home, http.StatusFound)
		})
	}
	for _, p := range all {
		r.Get(p.Route, h.servePage(p))
	}

	r.Get(richtext.OutboundPath, h.Outbound)
	r.Get("/static/highlight.css", h.HighlightCSS)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(StaticFS(h.assetsDir)))))

	return r
}

// RequestLocation resolves the location of the page served for r.
func RequestLocation(r *http.Request) lifecycle.PathResolver {
	return func() models.Location {
		return models.Location{BasePath: r.URL.Path, Fragment: r.URL.Fragment}
	}
}

func (h *Handler) servePage(p pages.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.renderer.Render(r.Context(), p, RequestLocation(r), h.recorder)
		if err != nil {
			h.logger.Error("render page failed", slog.String("route", p.Route), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("ETag", doc.ETag)
		w.Header().Set("Cache-Control", "no-cache")
		if etagMatch(r.Header.Get("If-None-Match"), doc.ETag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc.HTML)
	}
}

// Outbound handles GET /out?to=URL: the click is recorded and the client is
// redirected. Only targets linked from a page are accepted.
func (h *Handler) Outbound(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("to")
	if err := h.checkOutbound(target); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.recorder.RecordOutbound(target)
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) checkOutbound(target string) error {
	if target == "" {
		return errors.New("query parameter 'to' is required")
	}
	if _, ok := h.outbound[target]; !ok {
		return apperr.ErrOutboundNotAllowed
	}
	return nil
}

// HighlightCSS serves the stylesheet for highlighted code blocks.
func (h *Handler) HighlightCSS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if err := h.renderer.WriteHighlightCSS(w); err != nil {
		h.logger.Error("write highlight css failed", slog.String("error", err.Error()))
	}
}

func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
