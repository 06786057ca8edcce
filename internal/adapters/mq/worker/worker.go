// Package worker defines worker contracts for asynchronous submission
// forwarding.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bardeals/happyhour/internal/domain/dedupe"
	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/pkg/logger"
	"github.com/bardeals/happyhour/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultForwarderCount = 2
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Submission abstracts what workers read off the queue.
type Submission = model.Submission

// Forwarder delivers a submission to the forms backend.
type Forwarder interface {
	Forward(ctx context.Context, s Submission) error
}

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Submission
}

// Releaser lets a worker give a failed submission back to the dedupe set so
// a retry is not rejected as a duplicate.
type Releaser interface {
	Unrecord(ctx context.Context, fingerprint string)
}

// Worker processes submissions using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker. It processes any remaining
	// submissions before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for forwarding submissions.
type InMemoryWorker struct {
	queue     Queue
	forwarder Forwarder
	releaser  Releaser
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, forwarder Forwarder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		forwarder: forwarder,
		name:      "forwarder",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("forwarder"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "forwarder" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	subs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case s, ok := <-subs:
			if !ok {
				return
			}

			if err := w.process(ctx, s); err != nil {
				w.logger.Error(ctx, "error forwarding submission", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process forwards a single submission.
func (w *InMemoryWorker) process(ctx context.Context, s Submission) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.forwarder.Forward(ctx, s); err != nil {
		metrics.RecordSubmissionFailed()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "forward_error")
		metrics.RecordErrorByType("forward_error", "high")
		if w.releaser != nil {
			w.releaser.Unrecord(ctx, dedupe.Fingerprint(s))
		}
		w.logger.Error(ctx, "forward failed for submission",
			logger.String("submissionID", s.ID),
			logger.Error(err),
		)
		return fmt.Errorf("forward submission %s: %w", s.ID, err)
	}

	metrics.RecordSubmissionForwarded()
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	forwarder Forwarder

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, forwarder Forwarder, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = defaultForwarderCount
	}

	pool := &Pool{
		workers:   make([]*InMemoryWorker, workerCount),
		queue:     queue,
		forwarder: forwarder,
		shutdown:  make(chan struct{}),
		logger:    logger.Get().Named("forwarder-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			forwarder,
			append(opts, WithName("forwarder-"+strconv.Itoa(i)))...,
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so no new submissions arrive.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
