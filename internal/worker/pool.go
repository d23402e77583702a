// Package worker provides a small fixed-size worker pool with a bounded
// queue. The wizard uses it to keep cloud API calls off the UI goroutine
// while capping how many requests can be in flight at once.
package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/nevihome/neviweb/internal/logging"
)

var (
	// ErrNotStarted is returned by Run before Start has been called.
	ErrNotStarted = errors.New("worker: pool not started")

	// ErrStopped is returned by Run once the pool's context is cancelled.
	ErrStopped = errors.New("worker: pool stopped")

	// ErrQueueFull is returned by Run when the queue has no room.
	ErrQueueFull = errors.New("worker: queue full")
)

// task carries a unit of work together with the caller context it should
// run under and the channel its result is reported on.
type task struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Pool runs submitted functions on a fixed set of goroutines.
type Pool struct {
	size  int
	queue chan task
	wg    sync.WaitGroup

	mu       sync.Mutex
	lifetime context.Context
}

// New creates a pool with the given number of workers and queue depth.
// Call Start() to begin processing.
func New(size, queueDepth int) *Pool {
	if size < 1 {
		size = 1
	}
	if queueDepth < 1 {
		queueDepth = size
	}
	return &Pool{
		size:  size,
		queue: make(chan task, queueDepth),
	}
}

// Start launches the worker goroutines. Workers exit when ctx is cancelled.
// Calling Start more than once has no effect.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	if p.lifetime != nil {
		p.mu.Unlock()
		return
	}
	p.lifetime = ctx
	p.mu.Unlock()

	p.wg.Add(p.size)
	for i := 0; i < p.size; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t := <-p.queue:
					t.done <- t.fn(t.ctx)
				}
			}
		}()
	}

	logging.Debug("Worker pool started",
		zap.Int("size", p.size),
		zap.Int("queue_depth", cap(p.queue)),
	)
}

// Stop waits for the worker goroutines to finish. The context passed to
// Start must be cancelled first or Stop blocks forever.
func (p *Pool) Stop() {
	p.wg.Wait()
}

// Run submits fn to the pool and blocks until it completes or ctx is
// cancelled. fn receives the caller's ctx so it can honour the same
// deadline. The returned error is fn's own error, ctx.Err() when the caller
// gave up first, or ErrQueueFull/ErrStopped when the pool cannot take work.
func (p *Pool) Run(ctx context.Context, fn func(context.Context) error) error {
	p.mu.Lock()
	lifetime := p.lifetime
	p.mu.Unlock()

	if lifetime == nil {
		return ErrNotStarted
	}

	t := task{
		ctx: ctx,
		fn:  fn,
		// Buffered so a worker never blocks reporting to a caller that
		// already gave up.
		done: make(chan error, 1),
	}

	// Submit without blocking. A full queue means the host is overloaded;
	// the caller decides whether to retry.
	select {
	case p.queue <- t:
	default:
		return ErrQueueFull
	}

	select {
	case err := <-t.done:
		return err
	case <-lifetime.Done():
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
