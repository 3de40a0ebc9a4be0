package langserver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool runs compile jobs and feature-request tasks with a fixed bound
// on how many execute at once, sized to the machine's CPU count by
// default so one client connection cannot run unbounded concurrent
// compilations. Each submitted job gets its own goroutine, which waits
// for a free slot before running the job.
type Pool struct {
	sem chan struct{}
	eg  *errgroup.Group
	ctx context.Context
}

// NewPool creates a pool with the given concurrency limit, or
// runtime.NumCPU() workers if n <= 0.
func NewPool(ctx context.Context, n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	eg, ctx := errgroup.WithContext(ctx)
	return &Pool{sem: make(chan struct{}, n), eg: eg, ctx: ctx}
}

// Submit starts fn's goroutine and returns at once, never blocking the
// caller. That goroutine waits for a free slot before calling fn; if
// the pool's context ends first, fn does not run.
func (p *Pool) Submit(fn func()) {
	p.eg.Go(func() error {
		select {
		case p.sem <- struct{}{}:
		case <-p.ctx.Done():
			return p.ctx.Err()
		}
		defer func() { <-p.sem }()
		fn()
		return nil
	})
}

// Wait blocks until every submitted job has returned, used only by
// tests and graceful shutdown.
func (p *Pool) Wait() error {
	return p.eg.Wait()
}
