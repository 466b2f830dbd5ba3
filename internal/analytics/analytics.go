// Package analytics is the pageview collaborator: it accepts events without
// blocking the caller and delivers them to sinks in the background.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/flix/flixsite/internal/models"
)

// Hit kinds.
const (
	KindPageview = "pageview"
	KindOutbound = "outbound"
)

// Hit is one recorded analytics event.
type Hit struct {
	ID   string    `json:"id"`
	Kind string    `json:"kind"`
	Path string    `json:"path"`
	At   time.Time `json:"at"`
}

// Sink stores or forwards hits.
type Sink interface {
	Record(ctx context.Context, hit Hit) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, hit Hit) error

// Record implements Sink.
func (f SinkFunc) Record(ctx context.Context, hit Hit) error {
	return f(ctx, hit)
}

// Recorder is the fire-and-forget surface used by page handlers.
type Recorder interface {
	RecordPageview(ev models.AnalyticsEvent)
	RecordOutbound(target string)
}

type discard struct{}

func (discard) RecordPageview(models.AnalyticsEvent) {}
func (discard) RecordOutbound(string)                {}

// Discard drops every event.
var Discard Recorder = discard{}

// LogSink writes every hit to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink logging at info level.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Record implements Sink.
func (s *LogSink) Record(ctx context.Context, hit Hit) error {
	s.logger.InfoContext(ctx, "analytics hit",
		slog.String("id", hit.ID),
		slog.String("kind", hit.Kind),
		slog.String("path", hit.Path))
	return nil
}
