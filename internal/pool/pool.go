// Package pool runs jobs with bounded concurrency.
package pool

import (
	"context"
	"log/slog"
	"sync"

	"searchbyimage/internal/slogs"
)

// DefaultSize is used when a pool is created with a non-positive size.
const DefaultSize = 4

// JobFn is a unit of work run by a WorkerPool.
type JobFn func(ctx context.Context) error

// WorkerPool runs at most Size jobs at once. Add blocks while the pool is
// full. A pool is drained once and must not be reused afterwards.
type WorkerPool struct {
	semC chan struct{}
	ctx  context.Context
	name string

	wg sync.WaitGroup

	mx      sync.Mutex
	errs    []error
	drained bool
}

// New returns a pool named name running jobs under ctx.
func New(ctx context.Context, size int, name string) *WorkerPool {
	if size <= 0 {
		size = DefaultSize
	}
	return &WorkerPool{
		semC: make(chan struct{}, size),
		ctx:  ctx,
		name: name,
	}
}

// Add schedules job, waiting for a free slot.
func (p *WorkerPool) Add(job JobFn) {
	p.semC <- struct{}{}
	p.wg.Add(1)

	go func() {
		defer func() {
			<-p.semC
			p.wg.Done()
		}()

		if err := job(p.ctx); err != nil {
			slog.Debug("Worker job failed", slogs.Name, p.name, slogs.Error, err)
			p.mx.Lock()
			p.errs = append(p.errs, err)
			p.mx.Unlock()
		}
	}()
}

// Drain waits for every added job and returns their errors.
func (p *WorkerPool) Drain() []error {
	p.wg.Wait()

	p.mx.Lock()
	defer p.mx.Unlock()
	if !p.drained {
		p.drained = true
		close(p.semC)
	}
	return p.errs
}

// Size returns the concurrency limit.
func (p *WorkerPool) Size() int { return cap(p.semC) }

// ActiveJobs returns the number of running jobs.
func (p *WorkerPool) ActiveJobs() int { return len(p.semC) }
