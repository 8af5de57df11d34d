package collection

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type item string

func (i item) Identity() string { return string(i) }

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type recorder[T any] struct {
	mu     sync.Mutex
	states []State[T]
}

func (r *recorder[T]) observe(s State[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder[T]) all() []State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State[T], len(r.states))
	copy(out, r.states)
	return out
}

func (r *recorder[T]) last() (State[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return State[T]{}, false
	}
	return r.states[len(r.states)-1], true
}

// start runs c until the test ends and records every published state.
func start[T any](t *testing.T, c *Controller[T]) *recorder[T] {
	t.Helper()
	rec := &recorder[T]{}
	require.True(t, c.Observe(rec.observe))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return rec
}

func eventually[T any](t *testing.T, rec *recorder[T], cond func(State[T]) bool) State[T] {
	t.Helper()
	var got State[T]
	require.Eventually(t, func() bool {
		s, ok := rec.last()
		if !ok {
			return false
		}
		got = s
		return cond(got)
	}, 2*time.Second, 2*time.Millisecond)
	return got
}

func firstWhere[T any](states []State[T], cond func(State[T]) bool) (State[T], bool) {
	for _, s := range states {
		if cond(s) {
			return s, true
		}
	}
	return State[T]{}, false
}

func grid[T any](s State[T]) [][]T {
	out := make([][]T, 0, len(s.Sections))
	for _, sec := range s.Sections {
		out = append(out, sec.Items)
	}
	return out
}

func loaded[T any](s State[T]) bool { return !s.Loading && !s.IsFirstLoad }

// gated blocks every call until the test hands it a result.
type gated[T any] struct {
	calls   atomic.Int32
	offsets chan int
	results chan result[T]
}

type result[T any] struct {
	items []T
	err   error
}

func newGated[T any]() *gated[T] {
	return &gated[T]{offsets: make(chan int, 16), results: make(chan result[T])}
}

func (g *gated[T]) load(ctx context.Context) ([]T, error) {
	g.calls.Add(1)
	select {
	case r := <-g.results:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gated[T]) page(ctx context.Context, offset int) ([]T, error) {
	g.offsets <- offset
	return g.load(ctx)
}

func (g *gated[T]) reply(t *testing.T, items ...T) {
	t.Helper()
	select {
	case g.results <- result[T]{items: items}:
	case <-time.After(2 * time.Second):
		t.Fatal("loader was never called")
	}
}

func (g *gated[T]) fail(t *testing.T, err error) {
	t.Helper()
	select {
	case g.results <- result[T]{err: err}:
	case <-time.After(2 * time.Second):
		t.Fatal("loader was never called")
	}
}

// offset waits for the next page request.
func (g *gated[T]) offset(t *testing.T) int {
	t.Helper()
	return recv(t, g.offsets)
}

func recv[V any](t *testing.T, ch chan V) V {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("nothing received")
	}
	var zero V
	return zero
}

// manualPool queues tasks until the test runs them.
type manualPool struct {
	mu    sync.Mutex
	tasks []func()
}

func (p *manualPool) Go(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tasks = append(p.tasks, fn)
}

func (p *manualPool) pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}

// next waits for a queued task and removes it.
func (p *manualPool) next(t *testing.T) func() {
	t.Helper()
	require.Eventually(t, func() bool { return p.pending() > 0 }, 2*time.Second, 2*time.Millisecond)
	p.mu.Lock()
	defer p.mu.Unlock()
	fn := p.tasks[0]
	p.tasks = p.tasks[1:]
	return fn
}

func fixed[T any](v ...T) Loader[T] {
	return func(context.Context) ([]T, error) { return v, nil }
}
