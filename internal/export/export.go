// Package export writes the site as static files.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/flix/flixsite/internal/analytics"
	"github.com/flix/flixsite/internal/checksum"
	"github.com/flix/flixsite/internal/models"
	"github.com/flix/flixsite/internal/pages"
	"github.com/flix/flixsite/internal/storage"
	"github.com/flix/flixsite/internal/web"
)

// ManifestFile is the name of the manifest written at the output root.
const ManifestFile = "manifest.json"

const maxParallel = 4

// Options tune an export run.
type Options struct {
	// AssetsDir overrides the embedded static assets when non-empty.
	AssetsDir string
	// Prune deletes files under the output root that this run did not write.
	Prune  bool
	Logger *slog.Logger
}

// Entry is one exported file.
type Entry struct {
	Route    string `json:"route,omitempty"`
	File     string `json:"file"`
	Title    string `json:"title,omitempty"`
	Checksum string `json:"checksum"`
}

// Manifest lists every exported file, pages first then assets, each group
// sorted by file name.
type Manifest struct {
	Pages  []Entry `json:"pages"`
	Assets []Entry `json:"assets"`
}

// Run renders every page of registry into out. Pages render in parallel;
// each is a fresh display, so its lifecycle sets the title, but pageviews go
// to analytics.Discard.
func Run(ctx context.Context, registry *pages.Registry, renderer *web.Renderer, out storage.Provider, opts Options) (*Manifest, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	all := registry.All()
	entries := make([]Entry, len(all))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, p := range all {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			e, err := writePage(gCtx, renderer, out, p)
			if err != nil {
				return err
			}
			entries[i] = e
			logger.Debug("exported page", slog.String("route", p.Route), slog.String("file", e.File))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &Manifest{Pages: entries}
	sort.Slice(m.Pages, func(i, j int) bool { return m.Pages[i].File < m.Pages[j].File })

	assets, err := writeAssets(ctx, renderer, out, opts.AssetsDir)
	if err != nil {
		return nil, err
	}
	m.Assets = assets

	if len(all) > 0 {
		idx := redirectHTML(all[0].Route)
		if err := out.Write("index.html", idx); err != nil {
			return nil, fmt.Errorf("export: write index.html: %w", err)
		}
		m.Pages = append([]Entry{{File: "index.html", Checksum: checksum.Sum(idx)}}, m.Pages...)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode manifest: %w", err)
	}
	if err := out.Write(ManifestFile, append(data, '\n')); err != nil {
		return nil, fmt.Errorf("export: write manifest: %w", err)
	}

	if opts.Prune {
		if err := prune(out, m, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("export complete",
		slog.Int("pages", len(m.Pages)),
		slog.Int("assets", len(m.Assets)))
	return m, nil
}

// PageFile maps a route to the file serving it, e.g. /principles to
// principles/index.html.
func PageFile(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		return "index.html"
	}
	return route + "/index.html"
}

func writePage(ctx context.Context, renderer *web.Renderer, out storage.Provider, p pages.Page) (Entry, error) {
	resolve := func() models.Location { return models.Location{BasePath: p.Route} }
	doc, err := renderer.Render(ctx, p, resolve, analytics.Discard)
	if err != nil {
		return Entry{}, fmt.Errorf("export: %w", err)
	}
	file := PageFile(p.Route)
	if err := out.Write(file, doc.HTML); err != nil {
		return Entry{}, fmt.Errorf("export: write %s: %w", file, err)
	}
	return Entry{Route: p.Route, File: file, Title: doc.Title, Checksum: checksum.Sum(doc.HTML)}, nil
}

func writeAssets(ctx context.Context, renderer *web.Renderer, out storage.Provider, assetsDir string) ([]Entry, error) {
	var (
		mu      sync.Mutex
		entries []Entry
	)
	add := func(file string, data []byte) error {
		if err := out.Write(file, data); err != nil {
			return fmt.Errorf("export: write %s: %w", file, err)
		}
		mu.Lock()
		entries = append(entries, Entry{File: file, Checksum: checksum.Sum(data)})
		mu.Unlock()
		return nil
	}

	static := web.StaticFS(assetsDir)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	err := fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(static, p)
			if err != nil {
				return fmt.Errorf("export: read asset %s: %w", p, err)
			}
			return add(path.Join("static", p), data)
		})
		return nil
	})
	if werr := g.Wait(); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, fmt.Errorf("export: walk assets: %w", err)
	}

	var css bytes.Buffer
	if err := renderer.WriteHighlightCSS(&css); err != nil {
		return nil, fmt.Errorf("export: highlight css: %w", err)
	}
	if err := add("static/highlight.css", css.Bytes()); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].File < entries[j].File })
	return entries, nil
}

func prune(out storage.Provider, m *Manifest, logger *slog.Logger) error {
	keep := map[string]struct{}{ManifestFile: {}}
	for _, e := range m.Pages {
		keep[e.File] = struct{}{}
	}
	for _, e := range m.Assets {
		keep[e.File] = struct{}{}
	}

	existing, err := out.List("")
	if err != nil {
		return fmt.Errorf("export: list output: %w", err)
	}
	for _, f := range existing {
		if _, ok := keep[f.Path]; ok {
			continue
		}
		if err := out.Delete(f.Path); err != nil {
			return fmt.Errorf("export: prune %s: %w", f.Path, err)
		}
		logger.Debug("pruned stale file", slog.String("file", f.Path))
	}
	return nil
}

func redirectHTML(target string) []byte {
	return []byte(`<!DOCTYPE html><html><head><meta charset="utf-8">` +
		`<meta http-equiv="refresh" content="0; url=.` + target + `/">` +
		`<link rel="canonical" href=".` + target + `/"></head><body></body></html>` + "\n")
}
