// Package pages declares the site's pages and their literal content.
package pages

import (
	"fmt"

	"github.com/flix/flixsite/internal/apperr"
	"github.com/flix/flixsite/internal/catalog"
	"github.com/flix/flixsite/internal/models"
	"github.com/flix/flixsite/internal/richtext"
)

// Page is a leaf composition: literal content plus an optional catalog.
type Page struct {
	Route   string
	Meta    models.PageMetadata
	Heading string
	Intro   richtext.Node
	Catalog catalog.Catalog
	Layout  catalog.Layout
}

// Registry is the ordered set of pages served by the site.
type Registry struct {
	pages []Page
}

// NewRegistry returns a registry holding pages in the given order.
func NewRegistry(pages ...Page) *Registry {
	return &Registry{pages: pages}
}

// Default returns the registry of all site pages.
func Default() *Registry {
	return NewRegistry(GettingStarted(), Principles())
}

// All returns the pages in registration order.
func (r *Registry) All() []Page {
	out := make([]Page, len(r.pages))
	copy(out, r.pages)
	return out
}

// Lookup finds the page served at route.
func (r *Registry) Lookup(route string) (Page, error) {
	for _, p := range r.pages {
		if p.Route == route {
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("page %q: %w", route, apperr.ErrNotFound)
}

// OutboundTargets returns every URL linked through an outbound link on any
// page. Only these targets are accepted by the outbound redirect.
func (r *Registry) OutboundTargets() map[string]struct{} {
	out := make(map[string]struct{})
	collect := func(n richtext.Node) {
		richtext.Walk(n, func(c richtext.Node) bool {
			if c.Kind == richtext.KindOutboundLink {
				out[c.URL] = struct{}{}
			}
			return true
		})
	}
	for _, p := range r.pages {
		collect(p.Intro)
		for _, b := range p.Catalog {
			collect(b.Content)
		}
	}
	return out
}

// Body returns the page content as a single tree, catalog excluded.
func (p Page) Body() richtext.Node {
	return richtext.Group(richtext.Heading(1, richtext.Text(p.Heading)), p.Intro)
}
