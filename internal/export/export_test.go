package export

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/flix/flixsite/internal/checksum"
	"github.com/flix/flixsite/internal/pages"
	"github.com/flix/flixsite/internal/richtext"
	"github.com/flix/flixsite/internal/testutil"
	"github.com/flix/flixsite/internal/web"
)

func testRenderer(t *testing.T, reg *pages.Registry) *web.Renderer {
	t.Helper()
	r, err := web.NewRenderer(web.Site{Name: "Flix", BaseURL: "https://flix.dev"}, reg, richtext.NewHTMLRenderer())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func quietOpts() Options {
	return Options{Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

func TestPageFile(t *testing.T) {
	tests := map[string]string{
		"/principles":      "principles/index.html",
		"/getting-started": "getting-started/index.html",
		"/":                "index.html",
		"/a/b/":            "a/b/index.html",
	}
	for route, want := range tests {
		if got := PageFile(route); got != want {
			t.Errorf("PageFile(%q) = %q, want %q", route, got, want)
		}
	}
}

func TestRun(t *testing.T) {
	dir, out := testutil.TestOutDir(t)
	reg := pages.Default()

	m, err := Run(context.Background(), reg, testRenderer(t, reg), out, quietOpts())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "principles", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Find("title").Text(); got != "Flix | Design Principles" {
		t.Errorf("title = %q", got)
	}
	if n := doc.Find(".card").Length(); n != 19 {
		t.Errorf("cards = %d, want 19", n)
	}

	for _, f := range []string{"getting-started/index.html", "index.html", "static/site.css", "static/highlight.css", "static/install.svg", ManifestFile} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f))); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}

	if len(m.Pages) != 3 {
		t.Fatalf("manifest pages = %d, want 3", len(m.Pages))
	}
	if m.Pages[0].File != "index.html" || m.Pages[1].Route != "/getting-started" || m.Pages[2].Route != "/principles" {
		t.Errorf("manifest pages = %+v", m.Pages)
	}
	if m.Pages[2].Checksum != checksum.Sum(data) {
		t.Error("manifest checksum does not match file")
	}
	if m.Pages[2].Title != "Flix | Design Principles" {
		t.Errorf("manifest title = %q", m.Pages[2].Title)
	}

	raw, err := out.Read(ManifestFile)
	if err != nil {
		t.Fatal(err)
	}
	var onDisk Manifest
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if len(onDisk.Assets) != len(m.Assets) || len(onDisk.Assets) == 0 {
		t.Errorf("assets on disk = %d, returned = %d", len(onDisk.Assets), len(m.Assets))
	}
}

func TestRun_Deterministic(t *testing.T) {
	reg := pages.Default()
	r := testRenderer(t, reg)

	_, a := testutil.TestOutDir(t)
	_, b := testutil.TestOutDir(t)
	if _, err := Run(context.Background(), reg, r, a, quietOpts()); err != nil {
		t.Fatal(err)
	}
	if _, err := Run(context.Background(), reg, r, b, quietOpts()); err != nil {
		t.Fatal(err)
	}
	ma, _ := a.Read(ManifestFile)
	mb, _ := b.Read(ManifestFile)
	if !bytes.Equal(ma, mb) {
		t.Error("manifests differ between runs")
	}
}

func TestRun_Prune(t *testing.T) {
	dir, out := testutil.TestOutDir(t)
	if err := out.Write("stale/index.html", []byte("old")); err != nil {
		t.Fatal(err)
	}
	reg := pages.Default()

	opts := quietOpts()
	if _, err := Run(context.Background(), reg, testRenderer(t, reg), out, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "stale", "index.html")); err != nil {
		t.Error("stale file removed without Prune")
	}

	opts.Prune = true
	if _, err := Run(context.Background(), reg, testRenderer(t, reg), out, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "stale", "index.html")); !os.IsNotExist(err) {
		t.Errorf("stale file still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "principles", "index.html")); err != nil {
		t.Errorf("page pruned: %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	_, out := testutil.TestOutDir(t)
	reg := pages.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, reg, testRenderer(t, reg), out, quietOpts()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRun_AssetsOverride(t *testing.T) {
	assets := t.TempDir()
	if err := os.WriteFile(filepath.Join(assets, "custom.css"), []byte("main{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir, out := testutil.TestOutDir(t)
	reg := pages.Default()
	opts := quietOpts()
	opts.AssetsDir = assets
	if _, err := Run(context.Background(), reg, testRenderer(t, reg), out, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "static", "custom.css")); err != nil {
		t.Errorf("override asset not exported: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "static", "site.css")); !os.IsNotExist(err) {
		t.Error("embedded assets must not be mixed into an override")
	}
}
