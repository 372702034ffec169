// Package dispatch offloads blocking store operations to a bounded worker
// pool so the front end's update loop never waits on disk I/O directly.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many store operations run at once and how long each may
// take. Both knobs come from configuration, not constants.
type Pool struct {
	sem     *semaphore.Weighted
	timeout time.Duration
}

// NewPool creates a pool with the given worker bound and per-invocation
// timeout. workers < 1 falls back to 1; timeout <= 0 disables the deadline.
func NewPool(workers int, timeout time.Duration) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		sem:     semaphore.NewWeighted(int64(workers)),
		timeout: timeout,
	}
}

// Result carries an invocation's value or failure back to the submitter.
type Result[T any] struct {
	Value T
	Err   error
}

// Go submits fn to the pool and returns a 1-buffered channel that will
// receive exactly one Result. The buffer lets a caller walk away from a late
// result without leaking the worker. Once fn starts it runs to completion or
// failure; the per-invocation deadline is delivered through fn's context,
// never by killing the worker mid-statement.
func Go[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			ch <- Result[T]{Err: fmt.Errorf("acquire worker: %w", err)}
			return
		}
		defer p.sem.Release(1)

		runCtx := ctx
		if p.timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}

		v, err := fn(runCtx)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// Do submits fn and waits for its result. If ctx ends first the caller gets
// ctx's error and the in-flight invocation finishes on its own, its result
// discarded into the buffered channel.
func Do[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (T, error) {
	select {
	case r := <-Go(ctx, p, fn):
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
