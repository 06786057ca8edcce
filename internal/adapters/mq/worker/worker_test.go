package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/bardeals/happyhour/internal/adapters/mq/queue"
	"github.com/bardeals/happyhour/internal/domain/dedupe"
	"github.com/bardeals/happyhour/internal/domain/model"
	logging "github.com/bardeals/happyhour/pkg/logger"
)

type recordingForwarder struct {
	mu        sync.Mutex
	forwarded []model.Submission
	err       error
}

func (f *recordingForwarder) Forward(_ context.Context, s model.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.forwarded = append(f.forwarded, s)
	return nil
}

func (f *recordingForwarder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.forwarded)
}

type recordingReleaser struct {
	mu       sync.Mutex
	released []string
}

func (r *recordingReleaser) Unrecord(_ context.Context, fingerprint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = append(r.released, fingerprint)
}

func (r *recordingReleaser) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.released)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestWorker(t *testing.T) {
	Convey("Given a worker draining a queue", t, func() {
		_ = logging.Init()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16), queue.WithBufferSize(16))
		fwd := &recordingForwarder{}
		w := NewInMemoryWorker(q, fwd, WithName("test-forwarder"))
		go w.Run(ctx)

		Convey("When submissions are enqueued", func() {
			q.Enqueue(ctx, model.Submission{ID: "a", Kind: "new_bar", BarName: "Alpha"})
			q.Enqueue(ctx, model.Submission{ID: "b", Kind: "new_bar", BarName: "Beta"})

			Convey("Then both are forwarded", func() {
				So(waitFor(func() bool { return fwd.count() == 2 }), ShouldBeTrue)
			})
		})

		Convey("When the worker is shut down", func() {
			err := w.Shutdown(ctx)

			Convey("Then it stops cleanly", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given a forwarder that fails", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16), queue.WithBufferSize(16))
		fwd := &recordingForwarder{err: errors.New("backend down")}
		rel := &recordingReleaser{}
		w := NewInMemoryWorker(q, fwd, WithReleaser(rel))
		go w.Run(ctx)

		Convey("When a submission fails to forward", func() {
			sub := model.Submission{ID: "x", Kind: "new_bar", BarName: "Gamma", Address: "Somewhere 1"}
			q.Enqueue(ctx, sub)

			Convey("Then its fingerprint is released for retry", func() {
				So(waitFor(func() bool { return rel.count() == 1 }), ShouldBeTrue)
				rel.mu.Lock()
				released := rel.released[0]
				rel.mu.Unlock()
				So(released, ShouldEqual, dedupe.Fingerprint(sub))
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of forwarders", t, func() {
		_ = logging.Init()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(64), queue.WithBufferSize(64))
		fwd := &recordingForwarder{}
		pool := NewPool(3, q, fwd)
		pool.Start(ctx)

		Convey("When many submissions are enqueued", func() {
			for i := 0; i < 20; i++ {
				q.Enqueue(ctx, model.Submission{ID: string(rune('a' + i)), Kind: "new_bar"})
			}

			Convey("Then the pool drains them all", func() {
				So(waitFor(func() bool { return fwd.count() == 20 }), ShouldBeTrue)
			})
		})

		Convey("When the pool shuts down", func() {
			err := pool.Shutdown(ctx)

			Convey("Then the queue is closed and workers stop", func() {
				So(err, ShouldBeNil)
				So(q.IsClosed(), ShouldBeTrue)
			})
		})
	})
}
