package report

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/seawindow/internal/observability"
)

// Publisher forwards a completed batch to a sink, e.g. a Kafka topic.
type Publisher interface {
	Publish(ctx context.Context, rows []Row) error
}

// Runner re-evaluates the configured spots on a fixed interval, keeps the
// latest rows for the HTTP surface, and hands each batch to an optional
// publisher.
type Runner struct {
	reporter  *Reporter
	slugs     []string
	interval  time.Duration
	publisher Publisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	ready  atomic.Bool
	mu     sync.RWMutex
	latest []Row
}

// NewRunner creates a periodic runner. publisher may be nil.
func NewRunner(reporter *Reporter, slugs []string, interval time.Duration, publisher Publisher,
	clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		reporter:  reporter,
		slugs:     slugs,
		interval:  interval,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one batch has completed.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no batch evaluation has completed yet")
	}
	return nil
}

// Latest returns a copy of the most recent batch's rows, or nil before the
// first batch completes.
func (r *Runner) Latest() []Row {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return nil
	}
	rows := make([]Row, len(r.latest))
	copy(rows, r.latest)
	return rows
}

// Run executes batches until the context is cancelled. The first batch runs
// immediately; later ones follow the configured interval.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("reporter started", "interval", r.interval, "spots", len(r.slugs))
	r.metrics.ReporterActive.Set(1)
	defer r.metrics.ReporterActive.Set(0)

	for {
		r.runOnce(ctx)

		select {
		case <-ctx.Done():
			r.logger.Info("reporter stopping", "reason", ctx.Err())
			return nil
		case <-r.clock.After(r.interval):
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	start := r.clock.Now()
	rows := r.reporter.Run(ctx, r.slugs)

	r.mu.Lock()
	r.latest = rows
	r.mu.Unlock()
	r.ready.Store(true)

	r.metrics.BatchRuns.Inc()
	r.metrics.BatchSpots.Observe(float64(len(rows)))
	r.metrics.BatchDuration.Observe(r.clock.Since(start).Seconds())

	if ctx.Err() != nil {
		return
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, rows); err != nil {
			r.logger.Error("publish batch failed", "error", err, "rows", len(rows))
			r.metrics.PublishErrors.Inc()
		}
	}
	r.logger.Info("batch complete", "spots", len(rows), "duration", r.clock.Since(start))
}
