// Package background runs fire-and-forget tasks such as customer emails and
// status broadcasts outside the request that triggered them.
package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ErrDispatcherClosed is returned by Shutdown when called twice.
var ErrDispatcherClosed = errors.New("background dispatcher is closed")

const (
	DefaultConcurrency = 8
	DefaultTimeout     = 30 * time.Second
)

// Dispatcher runs tasks on their own goroutines, at most concurrency at a time.
// Each task gets a fresh context bounded by timeout; it is never tied to the
// caller's request. Errors and panics are logged and dropped.
type Dispatcher struct {
	logger  *zap.Logger
	sem     *semaphore.Weighted
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(logger *zap.Logger, concurrency int, timeout time.Duration) *Dispatcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		logger:  logger.With(zap.String("component", "background")),
		sem:     semaphore.NewWeighted(int64(concurrency)),
		timeout: timeout,
	}
}

// Go schedules task. After Shutdown the task is dropped with a warning.
func (d *Dispatcher) Go(name string, task func(ctx context.Context) error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("background task dropped after shutdown", zap.String("task", name))
		return
	}

	d.wg.Add(1)
	go d.run(name, task)
}

func (d *Dispatcher) run(name string, task func(ctx context.Context) error) {
	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sem.Acquire(ctx, 1); err != nil {
		d.logger.Warn("background task timed out waiting for a slot", zap.String("task", name), zap.Error(err))
		return
	}
	defer d.sem.Release(1)

	start := time.Now()
	if err := d.safeRun(ctx, task); err != nil {
		d.logger.Warn("background task failed",
			zap.String("task", name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	d.logger.Debug("background task done", zap.String("task", name), zap.Duration("elapsed", time.Since(start)))
}

func (d *Dispatcher) safeRun(ctx context.Context, task func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task(ctx)
}

// Shutdown stops accepting tasks and waits for running ones until ctx ends.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for background tasks: %w", ctx.Err())
	}
}
