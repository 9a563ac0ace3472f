// Package worker runs independent jobs on a bounded pool.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/qainsight/pkg/logger"
	"github.com/okian/qainsight/pkg/metrics"
)

// Result is the outcome of job i.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// Pool bounds how many jobs run at once.
type Pool struct {
	size   int
	name   string
	logger logger.Logger
}

// NewPool creates a pool. A non-positive size defaults to the CPU count.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		size:   runtime.NumCPU(),
		name:   "worker-pool",
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named(p.name)
	return p
}

// Size returns the concurrency limit.
func (p *Pool) Size() int { return p.size }

// Map runs job for every index in [0, n) and returns results in index order.
// A failing or panicking job only fails its own result.
func Map[T any](ctx context.Context, p *Pool, n int, job func(ctx context.Context, i int) (T, error)) []Result[T] {
	results := make([]Result[T], n)
	if n == 0 {
		return results
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i] = runJob(gctx, i, job)
			return nil
		})
	}
	_ = g.Wait() // errors captured in Result.Err

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	p.logger.Debug(ctx, "jobs finished",
		logger.Int("jobs", n),
		logger.Int("failed", failed),
		logger.Int("workers", p.size),
		logger.Duration("took", time.Since(start)))
	return results
}

func runJob[T any](ctx context.Context, i int, job func(context.Context, int) (T, error)) (res Result[T]) {
	res.Index = i
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	metrics.UpdateWorkerInFlight(1)
	defer metrics.UpdateWorkerInFlight(-1)
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()

	res.Value, res.Err = job(ctx, i)
	return res
}
