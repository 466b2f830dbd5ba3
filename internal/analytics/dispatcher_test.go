package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/flix/flixsite/internal/lifecycle"
	"github.com/flix/flixsite/internal/models"
)

var _ lifecycle.Tracker = (*Dispatcher)(nil)
var _ lifecycle.Tracker = Discard

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type memorySink struct {
	mu   sync.Mutex
	hits []Hit
}

func (m *memorySink) Record(_ context.Context, hit Hit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits = append(m.hits, hit)
	return nil
}

func (m *memorySink) snapshot() []Hit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Hit(nil), m.hits...)
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestDispatcher_DeliversToAllSinks(t *testing.T) {
	a, b := &memorySink{}, &memorySink{}
	d := NewDispatcher(8, quietLogger(), a, b)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.RecordPageview(models.AnalyticsEvent{Path: "/principles#no-nulls"})
	d.RecordOutbound("https://github.com/flix/flix/releases")

	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool {
		return len(a.snapshot()) == 2 && len(b.snapshot()) == 2
	}, "hits not delivered to both sinks")

	hits := a.snapshot()
	if hits[0].Kind != KindPageview || hits[0].Path != "/principles#no-nulls" {
		t.Errorf("first hit = %+v", hits[0])
	}
	if hits[1].Kind != KindOutbound || hits[1].Path != "https://github.com/flix/flix/releases" {
		t.Errorf("second hit = %+v", hits[1])
	}
	if hits[0].ID == "" || hits[0].ID == hits[1].ID {
		t.Errorf("ids not unique: %q %q", hits[0].ID, hits[1].ID)
	}
}

func TestDispatcher_NeverBlocksWhenFull(t *testing.T) {
	d := NewDispatcher(2, quietLogger())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.RecordPageview(models.AnalyticsEvent{Path: "/p"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RecordPageview blocked with no worker running")
	}
	if d.Dropped() != 8 {
		t.Errorf("dropped = %d, want 8", d.Dropped())
	}
}

func TestDispatcher_SinkFailuresSwallowed(t *testing.T) {
	good := &memorySink{}
	failing := SinkFunc(func(context.Context, Hit) error { return errors.New("collector down") })
	panicking := SinkFunc(func(context.Context, Hit) error { panic("boom") })
	d := NewDispatcher(4, quietLogger(), failing, panicking, good)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.RecordPageview(models.AnalyticsEvent{Path: "/getting-started"})

	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool {
		return len(good.snapshot()) == 1
	}, "healthy sink did not receive hit")
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(8, quietLogger(), sink)

	d.RecordPageview(models.AnalyticsEvent{Path: "/a"})
	d.RecordPageview(models.AnalyticsEvent{Path: "/b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := len(sink.snapshot()); got != 2 {
		t.Errorf("drained %d hits, want 2", got)
	}
}

func TestDispatcher_WithLifecycle(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(8, quietLogger(), sink)
	doc := &lifecycle.Document{}

	c, err := lifecycle.New(models.PageMetadata{Title: "Flix | Getting Started"},
		func() models.Location { return models.Location{BasePath: "/getting-started"} }, doc, d)
	if err != nil {
		t.Fatal(err)
	}
	c.Activate()
	c.Activate()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = d.Run(ctx)

	hits := sink.snapshot()
	if len(hits) != 1 || hits[0].Path != "/getting-started" {
		t.Errorf("hits = %+v", hits)
	}
}
