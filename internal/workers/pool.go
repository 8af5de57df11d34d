package workers

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit bounds concurrent background tasks when no limit is given.
const DefaultLimit = 8

// Pool runs fire-and-forget tasks on an errgroup with a concurrency limit.
// Go never blocks the caller: when every slot is busy the task waits for one
// on its own goroutine.
type Pool struct {
	g       errgroup.Group
	pending sync.WaitGroup
}

// New returns a pool running at most limit tasks at once. limit <= 0 uses
// DefaultLimit.
func New(limit int) *Pool {
	if limit <= 0 {
		limit = DefaultLimit
	}
	p := &Pool{}
	p.g.SetLimit(limit)
	return p
}

// Go schedules fn.
func (p *Pool) Go(fn func()) {
	task := func() error {
		fn()
		return nil
	}
	if p.g.TryGo(task) {
		return
	}
	p.pending.Add(1)
	go func() {
		defer p.pending.Done()
		p.g.Go(task)
	}()
}

// Wait blocks until every scheduled task has finished.
func (p *Pool) Wait() {
	p.pending.Wait()
	_ = p.g.Wait()
}
