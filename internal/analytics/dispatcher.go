package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/flix/flixsite/internal/models"
)

const sinkTimeout = 5 * time.Second

// Dispatcher queues hits in a bounded buffer and fans them out to sinks
// from a single worker. Enqueueing never blocks; when the buffer is full
// the hit is dropped and counted.
type Dispatcher struct {
	sinks  []Sink
	logger *slog.Logger
	queue  chan Hit

	dropped   atomic.Int64
	delivered atomic.Int64
	now       func() time.Time
}

// NewDispatcher creates a dispatcher with the given buffer size.
func NewDispatcher(buffer int, logger *slog.Logger, sinks ...Sink) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sinks:  sinks,
		logger: logger,
		queue:  make(chan Hit, buffer),
		now:    time.Now,
	}
}

// RecordPageview implements lifecycle.Tracker.
func (d *Dispatcher) RecordPageview(ev models.AnalyticsEvent) {
	d.enqueue(KindPageview, ev.Path)
}

// RecordOutbound records a click on an outbound link.
func (d *Dispatcher) RecordOutbound(target string) {
	d.enqueue(KindOutbound, target)
}

func (d *Dispatcher) enqueue(kind, path string) {
	hit := Hit{
		ID:   uuid.NewString(),
		Kind: kind,
		Path: path,
		At:   d.now().UTC(),
	}
	select {
	case d.queue <- hit:
	default:
		d.dropped.Add(1)
	}
}

// Run delivers queued hits until ctx is cancelled, then drains what is
// left in the buffer.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return nil
		case hit := <-d.queue:
			d.deliver(context.WithoutCancel(ctx), hit)
		}
	}
}

func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()
	for {
		select {
		case hit := <-d.queue:
			d.deliver(ctx, hit)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, hit Hit) {
	for _, s := range d.sinks {
		if err := d.record(ctx, s, hit); err != nil {
			d.logger.Debug("analytics: sink failed",
				slog.String("kind", hit.Kind),
				slog.String("path", hit.Path),
				slog.String("error", err.Error()))
		}
	}
	d.delivered.Add(1)
}

func (d *Dispatcher) record(ctx context.Context, s Sink, hit Hit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panic: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(ctx, sinkTimeout)
	defer cancel()
	return s.Record(ctx, hit)
}

// Dropped returns the number of hits discarded because the buffer was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Delivered returns the number of hits handed to all sinks.
func (d *Dispatcher) Delivered() int64 {
	return d.delivered.Load()
}
