package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/flix/flixsite/internal/analytics"
)

var _ analytics.Sink = (*Broker)(nil)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishAssetsChanged("site.css")

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: assets.changed") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"paths":["site.css"]`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestRecord_StatsThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	ctx := context.Background()
	// First hit triggers stats.updated, the second one inside the window does not.
	_ = b.Record(ctx, analytics.Hit{ID: "1", Kind: analytics.KindPageview, Path: "/principles"})
	_ = b.Record(ctx, analytics.Hit{ID: "2", Kind: analytics.KindOutbound, Path: "https://flix.dev"})

	time.Sleep(50 * time.Millisecond)
	statsCount, pageviews, outbound := 0, 0, 0
loop:
	for {
		select {
		case msg := <-ch:
			s := string(msg)
			switch {
			case strings.Contains(s, "event: stats.updated"):
				statsCount++
			case strings.Contains(s, "event: pageview"):
				pageviews++
				if !strings.Contains(s, `"path":"/principles"`) {
					t.Errorf("pageview payload = %q", s)
				}
			case strings.Contains(s, "event: outbound"):
				outbound++
			}
		default:
			break loop
		}
	}

	if pageviews != 1 || outbound != 1 {
		t.Errorf("pageview = %d, outbound = %d; want 1, 1", pageviews, outbound)
	}
	if statsCount != 1 {
		t.Errorf("stats events = %d, want 1 (throttled)", statsCount)
	}
}

func TestRecord_AfterClose(t *testing.T) {
	b := NewBroker(time.Second)
	b.Close()
	if err := b.Record(context.Background(), analytics.Hit{Kind: analytics.KindPageview}); err != nil {
		t.Errorf("Record after close = %v", err)
	}
	if b.ClientCount() != 0 {
		t.Error("closed broker should report 0 clients")
	}
}

// lockedRecorder guards the body while the handler writes from another goroutine.
type lockedRecorder struct {
	mu sync.Mutex
	*httptest.ResponseRecorder
}

func (l *lockedRecorder) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ResponseRecorder.Write(p)
}

func (l *lockedRecorder) body() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ResponseRecorder.Body.String()
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := &lockedRecorder{ResponseRecorder: httptest.NewRecorder()}

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	_ = b.Record(ctx, analytics.Hit{ID: "x", Kind: analytics.KindPageview, Path: "/getting-started"})
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	if body := w.body(); !strings.Contains(body, "event: pageview") {
		t.Errorf("handler output missing event: %q", body)
	}

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}
