// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the site pages and pageview stats to LLM clients via stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/flix/flixsite/internal/analytics"
	"github.com/flix/flixsite/internal/catalog"
	"github.com/flix/flixsite/internal/pages"
	"github.com/flix/flixsite/internal/pageviews"
	"github.com/flix/flixsite/internal/richtext"
)

// PrinciplesURI identifies the principles resource.
const PrinciplesURI = "flix://principles"

const principlesRoute = "/principles"

// Stats answers pageview count queries.
type Stats interface {
	Counts(ctx context.Context, kind string) ([]pageviews.PathCount, error)
}

// Server wraps the MCP server with the site tools. Reading a page here is not
// a display: no lifecycle runs and no pageview is recorded.
type Server struct {
	mcp      *server.MCPServer
	registry *pages.Registry
	stats    Stats
}

// New creates a new MCP server with all tools registered. stats may be nil
// when pageview storage is disabled.
func New(registry *pages.Registry, stats Stats, version string) *Server {
	s := &Server{registry: registry, stats: stats}

	s.mcp = server.NewMCPServer(
		"flixsite",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List the site pages with their routes and titles."),
	), s.listPages)

	s.mcp.AddTool(mcp.NewTool("read_page",
		mcp.WithDescription("Read a page as plain text, including every card of its catalog."),
		mcp.WithString("route", mcp.Required(), mcp.Description("Page route (e.g. /principles)")),
	), s.readPage)

	s.mcp.AddTool(mcp.NewTool("list_principles",
		mcp.WithDescription("List the Flix design principles in page order with their anchor ids."),
	), s.listPrinciples)

	s.mcp.AddTool(mcp.NewTool("pageview_stats",
		mcp.WithDescription("Per-path hit counts recorded by the site."),
		mcp.WithString("kind",
			mcp.Description("Hit kind"),
			mcp.Enum(analytics.KindPageview, analytics.KindOutbound),
		),
	), s.pageviewStats)

	s.mcp.AddResource(
		mcp.NewResource(PrinciplesURI, "Flix Design Principles",
			mcp.WithResourceDescription("The design principles page as Markdown."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPrinciplesResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type pageItem struct {
	Route string `json:"route"`
	Title string `json:"title"`
}

func (s *Server) listPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := s.registry.All()
	items := make([]pageItem, 0, len(all))
	for _, p := range all {
		items = append(items, pageItem{Route: p.Route, Title: p.Meta.Title})
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	route, err := req.RequireString("route")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	p, err := s.registry.Lookup(route)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", route)), nil
	}
	return mcp.NewToolResultText(pageText(p)), nil
}

type principleItem struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
}

func (s *Server) listPrinciples(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := s.registry.Lookup(principlesRoute)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cards := catalog.Render(p.Catalog)
	items := make([]principleItem, 0, len(cards))
	for _, c := range cards {
		items = append(items, principleItem{ID: c.ID, Heading: c.Heading})
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) pageviewStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.stats == nil {
		return mcp.NewToolResultError("pageview storage is disabled"), nil
	}
	kind := req.GetString("kind", analytics.KindPageview)
	if kind != analytics.KindPageview && kind != analytics.KindOutbound {
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind: %s", kind)), nil
	}
	counts, err := s.stats.Counts(ctx, kind)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(counts) == 0 {
		return mcp.NewToolResultText("no hits recorded"), nil
	}
	out, _ := json.MarshalIndent(counts, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPrinciplesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	p, err := s.registry.Lookup(principlesRoute)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PrinciplesURI,
			MIMEType: "text/markdown",
			Text:     pageText(p),
		},
	}, nil
}

// pageText renders p as Markdown-flavoured plain text: the page title, its
// body and one section per card.
func pageText(p pages.Page) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(p.Meta.Title)
	b.WriteString("\n\n")
	b.WriteString(richtext.PlainText(p.Intro))
	for _, c := range catalog.Render(p.Catalog) {
		b.WriteString("\n\n## ")
		b.WriteString(c.Heading)
		b.WriteString("\n\n")
		b.WriteString(richtext.PlainText(c.Body))
	}
	b.WriteString("\n")
	return b.String()
}
