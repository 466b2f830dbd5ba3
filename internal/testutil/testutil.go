// Package testutil provides shared test helpers for pageview stores and
// output directories.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flix/flixsite/internal/analytics"
	"github.com/flix/flixsite/internal/pageviews"
	"github.com/flix/flixsite/internal/storage"
)

// TestStore creates a temporary SQLite pageview store that is automatically cleaned up.
func TestStore(t *testing.T) *pageviews.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "flixsite-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	s, err := pageviews.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// RecordHits stores one hit of kind per path.
func RecordHits(t *testing.T, s *pageviews.Store, kind string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		hit := analytics.Hit{ID: uuid.NewString(), Kind: kind, Path: p, At: time.Now().UTC()}
		if err := s.Record(context.Background(), hit); err != nil {
			t.Fatalf("record %s: %v", p, err)
		}
	}
}

// TestOutDir creates a temporary output directory with a storage.Provider.
func TestOutDir(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	out, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, out
}
