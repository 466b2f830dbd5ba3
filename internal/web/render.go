// Package web renders pages to HTML documents and serves them over HTTP.
package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flix/flixsite/internal/catalog"
	"github.com/flix/flixsite/internal/checksum"
	"github.com/flix/flixsite/internal/lifecycle"
	"github.com/flix/flixsite/internal/pages"
	"github.com/flix/flixsite/internal/richtext"
)

var tracer = otel.Tracer("github.com/flix/flixsite/internal/web")

// Site holds site-wide settings used by the layout.
type Site struct {
	Name       string
	BaseURL    string
	LiveReload bool
}

// Document is one rendered page.
type Document struct {
	Route string
	Title string
	HTML  []byte
	ETag  string
}

type navItem struct {
	Route  string
	Label  string
	Active bool
}

type layoutData struct {
	Title       string
	Description string
	Canonical   string
	SiteName    string
	Nav         []navItem
	Body        template.HTML
	LiveReload  bool
}

// Renderer turns pages into complete HTML documents.
type Renderer struct {
	site     Site
	registry *pages.Registry
	rich     *richtext.HTMLRenderer
	layout   *template.Template
}

// NewRenderer parses the embedded layout.
func NewRenderer(site Site, registry *pages.Registry, rich *richtext.HTMLRenderer) (*Renderer, error) {
	tmpl, err := template.ParseFS(embedded, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	return &Renderer{
		site:     site,
		registry: registry,
		rich:     rich,
		layout:   tmpl,
	}, nil
}

// Render builds a fresh page instance and renders it. The page lifecycle
// fires once the body has been committed, so the title it writes is the one
// the layout shows and the pageview reflects the final location.
func (r *Renderer) Render(ctx context.Context, p pages.Page, resolve lifecycle.PathResolver, tracker lifecycle.Tracker) (*Document, error) {
	_, span := tracer.Start(ctx, "web.render_page",
		trace.WithAttributes(attribute.String("page.route", p.Route)))
	defer span.End()

	title := &lifecycle.Document{}
	ctrl, err := lifecycle.New(p.Meta, resolve, title, tracker)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var body bytes.Buffer
	if err := ctrl.Commit(func() error {
		body.Reset()
		return r.writeBody(&body, p)
	}); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("web: render %s: %w", p.Route, err)
	}

	var out bytes.Buffer
	data := layoutData{
		Title:       title.Title(),
		Description: p.Meta.Description,
		Canonical:   canonical(r.site.BaseURL, p.Route),
		SiteName:    r.site.Name,
		Nav:         r.nav(p.Route),
		Body:        template.HTML(body.String()), //nolint:gosec // produced by the escaping renderer
		LiveReload:  r.site.LiveReload,
	}
	if err := r.layout.ExecuteTemplate(&out, "layout", data); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("web: execute layout: %w", err)
	}

	return &Document{
		Route: p.Route,
		Title: title.Title(),
		HTML:  out.Bytes(),
		ETag:  checksum.ETag(out.Bytes()),
	}, nil
}

// WriteHighlightCSS writes the code highlighting stylesheet.
func (r *Renderer) WriteHighlightCSS(w io.Writer) error {
	return r.rich.WriteHighlightCSS(w)
}

func (r *Renderer) writeBody(w io.Writer, p pages.Page) error {
	if err := r.rich.Render(w, p.Body()); err != nil {
		return err
	}
	if p.Catalog == nil {
		return nil
	}
	return catalog.WriteHTML(w, catalog.Render(p.Catalog), p.Layout, r.rich)
}

func (r *Renderer) nav(active string) []navItem {
	all := r.registry.All()
	items := make([]navItem, 0, len(all))
	for _, p := range all {
		items = append(items, navItem{Route: p.Route, Label: p.Heading, Active: p.Route == active})
	}
	return items
}

func canonical(base, route string) string {
	if base == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + route
}
