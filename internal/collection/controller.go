package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jask/listkit/internal/workers"
)

var (
	ErrNoLoader  = errors.New("collection: loader is required")
	ErrNoBuilder = errors.New("collection: section builder is required")
)

// DefaultRevalidateDelay is how long an expired cache snapshot is shown before
// the background reload starts.
const DefaultRevalidateDelay = 200 * time.Millisecond

// Loader fetches the full list.
type Loader[T any] func(ctx context.Context) ([]T, error)

// PageLoader fetches the page starting at offset. An empty result marks the
// end of the data.
type PageLoader[T any] func(ctx context.Context, offset int) ([]T, error)

// SelectFunc is called on the owner goroutine when an item is selected.
type SelectFunc[T any] func(item T, at IndexPath)

// OffsetFunc derives the pagination offset from the current state.
type OffsetFunc[T any] func(State[T]) int

// PrimaryOffset is the default offset: the number of items in the first
// section.
func PrimaryOffset[T any](s State[T]) int {
	if len(s.Sections) == 0 {
		return 0
	}
	return len(s.Sections[0].Items)
}

// TotalOffset counts items across every section. Grouped lists whose page
// loader pages over the flat, ungrouped source use it.
func TotalOffset[T any](s State[T]) int { return s.ItemCount() }

// Config wires a controller to its collaborators. Only Loader is required.
type Config[T any] struct {
	// Name labels log lines.
	Name       string
	Loader     Loader[T]
	PageLoader PageLoader[T]
	OnSelect   SelectFunc[T]
	// Offset defaults to PrimaryOffset.
	Offset OffsetFunc[T]
	// MaxCount truncates every full load. Zero means no limit.
	MaxCount int
	Cache    Cache[T]
	Pool     Pool
	// RevalidateDelay defaults to DefaultRevalidateDelay.
	RevalidateDelay time.Duration
	Logger          *slog.Logger
	Now             func() time.Time
}

// Controller owns the State of one list screen.
//
// Thread-safety model:
//   - Load, LoadMore, Select, Observe and State: safe from any goroutine
//   - Run: exactly one goroutine; every reduction and observer call happens there
//
// Full loads and pages are independent state machines sharing one State. At
// most one fetch of each kind is outstanding; extra requests are dropped.
type Controller[T any] struct {
	load            Loader[T]
	loadPage        PageLoader[T]
	onSelect        SelectFunc[T]
	offset          OffsetFunc[T]
	cache           Cache[T]
	pool            Pool
	revalidateDelay time.Duration
	log             *slog.Logger
	now             func() time.Time

	reducer Reducer[T]
	queue   *eventQueue[T]

	// owned by the Run goroutine
	state        State[T]
	observers    []func(State[T])
	epoch        uint64
	cacheChecked bool
	restoring    bool
	reloadQueued bool

	mu       sync.RWMutex
	snapshot State[T]
}

// New returns an ungrouped controller: every load lands in one section.
func New[T any](cfg Config[T]) (*Controller[T], error) {
	return newController(cfg, nil)
}

func newController[T any](cfg Config[T], build SectionBuilder[T]) (*Controller[T], error) {
	if cfg.Loader == nil {
		return nil, ErrNoLoader
	}
	c := &Controller[T]{
		load:            cfg.Loader,
		loadPage:        cfg.PageLoader,
		onSelect:        cfg.OnSelect,
		offset:          cfg.Offset,
		cache:           cfg.Cache,
		pool:            cfg.Pool,
		revalidateDelay: cfg.RevalidateDelay,
		log:             cfg.Logger,
		now:             cfg.Now,
		reducer:         Reducer[T]{Build: build, MaxCount: cfg.MaxCount},
		queue:           newEventQueue[T](),
		state:           InitialState[T](),
	}
	if c.offset == nil {
		c.offset = PrimaryOffset[T]
	}
	if c.pool == nil {
		c.pool = workers.New(0)
	}
	if c.revalidateDelay <= 0 {
		c.revalidateDelay = DefaultRevalidateDelay
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if cfg.Name != "" {
		c.log = c.log.With("list", cfg.Name)
	}
	if c.now == nil {
		c.now = func() time.Time { return time.Now().UTC() }
	}
	c.snapshot = c.state
	return c, nil
}

// Load requests a full reload. Returns false once the controller has stopped.
func (c *Controller[T]) Load() bool {
	return c.queue.enqueue(event[T]{kind: evLoad})
}

// LoadMore requests the next page.
func (c *Controller[T]) LoadMore() bool {
	return c.queue.enqueue(event[T]{kind: evLoadMore})
}

// Select reports that the item at the given position was chosen.
func (c *Controller[T]) Select(at IndexPath) bool {
	return c.queue.enqueue(event[T]{kind: evSelect, at: at})
}

// Observe registers fn. It receives the current state first and then every
// new state, always on the Run goroutine. fn should return quickly.
func (c *Controller[T]) Observe(fn func(State[T])) bool {
	return c.queue.enqueue(event[T]{kind: evObserve, observer: fn})
}

// State returns the most recently published snapshot.
func (c *Controller[T]) State() State[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Run processes actions and completions until ctx is cancelled. Loaders
// receive ctx, so cancelling it also ends in-flight fetches.
func (c *Controller[T]) Run(ctx context.Context) error {
	c.log.Debug("controller starting")
	defer c.queue.close()

	for {
		if ev, ok := c.queue.tryDequeue(); ok {
			c.handle(ctx, ev)
			continue
		}
		select {
		case <-ctx.Done():
			c.log.Debug("controller stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-c.queue.wait():
		}
	}
}

func (c *Controller[T]) handle(ctx context.Context, ev event[T]) {
	switch ev.kind {
	case evObserve:
		c.observers = append(c.observers, ev.observer)
		ev.observer(c.state)
	case evLoad:
		c.requestLoad(ctx)
	case evRevalidate:
		if ev.epoch == c.epoch && !c.state.Loading {
			c.reload(ctx)
		}
	case evLoadMore:
		c.requestLoadMore(ctx)
	case evSelect:
		c.selectItem(ev.at)
	case evRestored:
		c.restored(ctx, ev)
	case evReloaded:
		c.reloaded(ctx, ev)
	case evMoreLoaded:
		c.moreLoaded(ev)
	}
}

func (c *Controller[T]) apply(m Mutation[T]) {
	c.state = c.reducer.Reduce(c.state, m)

	c.mu.Lock()
	c.snapshot = c.state
	c.mu.Unlock()

	for _, fn := range c.observers {
		fn(c.state)
	}
}

func (c *Controller[T]) requestLoad(ctx context.Context) {
	if c.state.Loading {
		return
	}
	if c.restoring {
		// honoured once the cached snapshot is on screen
		c.reloadQueued = true
		return
	}
	if c.cache != nil && !c.cacheChecked {
		c.cacheChecked = true
		c.restoring = true
		c.pool.Go(func() {
			c.queue.enqueue(c.readCache(ctx))
		})
		return
	}
	c.reload(ctx)
}

func (c *Controller[T]) readCache(ctx context.Context) event[T] {
	ev := event[T]{kind: evRestored}
	f, err := c.cache.Freshness(ctx)
	if err != nil {
		ev.err = err
		return ev
	}
	ev.freshness = f
	if f == CacheEmpty {
		return ev
	}
	ev.items, ev.storedAt, ev.err = c.cache.Pull(ctx)
	return ev
}

func (c *Controller[T]) restored(ctx context.Context, ev event[T]) {
	c.restoring = false
	queued := c.reloadQueued
	c.reloadQueued = false
	if ev.err != nil {
		c.log.Debug("cache read failed", "err", ev.err)
	}
	if ev.err != nil || ev.freshness == CacheEmpty || len(ev.items) == 0 {
		c.reload(ctx)
		return
	}

	c.log.Debug("serving cached snapshot", "freshness", ev.freshness, "items", len(ev.items), "stored_at", ev.storedAt)
	c.apply(Restored(ev.items, ev.storedAt))
	if queued {
		c.reload(ctx)
		return
	}
	if ev.freshness != CacheExpired {
		return
	}
	epoch := c.epoch
	delay := c.revalidateDelay
	c.pool.Go(func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			c.queue.enqueue(event[T]{kind: evRevalidate, epoch: epoch})
		case <-ctx.Done():
		}
	})
}

func (c *Controller[T]) reload(ctx context.Context) {
	c.epoch++
	c.apply(LoadInProgress[T](true))
	c.pool.Go(func() {
		items, err := c.fetchAll(ctx)
		c.queue.enqueue(event[T]{kind: evReloaded, items: items, err: err})
	})
}

func (c *Controller[T]) reloaded(ctx context.Context, ev event[T]) {
	if ev.err != nil {
		c.log.Debug("load failed", "err", ev.err)
		c.apply(LoadFailed[T](ev.err))
	} else {
		c.apply(Reloaded(ev.items, c.now()))
		c.storeSnapshot(ctx, c.reducer.Truncate(ev.items))
	}
	c.apply(LoadInProgress[T](false))
}

func (c *Controller[T]) storeSnapshot(ctx context.Context, items []T) {
	if c.cache == nil {
		return
	}
	items = slices.Clone(items)
	c.pool.Go(func() {
		if err := c.cache.Push(ctx, items); err != nil {
			c.log.Debug("cache write failed", "err", err)
		}
	})
}

func (c *Controller[T]) requestLoadMore(ctx context.Context) {
	if c.loadPage == nil || c.state.LoadingMore || c.state.EndOfData {
		return
	}
	if len(c.state.Sections) == 0 {
		return
	}
	offset := c.offset(c.state)
	epoch := c.epoch
	c.apply(LoadMoreInProgress[T](true))
	c.pool.Go(func() {
		items, err := c.fetchPage(ctx, offset)
		c.queue.enqueue(event[T]{kind: evMoreLoaded, items: items, err: err, epoch: epoch})
	})
}

func (c *Controller[T]) moreLoaded(ev event[T]) {
	switch {
	case ev.epoch != c.epoch:
		// a reload was issued after this page; its offset no longer applies
		c.log.Debug("discarding stale page", "items", len(ev.items))
	case ev.err != nil:
		c.log.Debug("load more failed", "err", ev.err)
		c.apply(LoadFailed[T](ev.err))
	default:
		c.apply(MoreLoaded(ev.items))
	}
	c.apply(LoadMoreInProgress[T](false))
}

func (c *Controller[T]) selectItem(at IndexPath) {
	if c.onSelect == nil {
		return
	}
	item, ok := c.state.Item(at)
	if !ok {
		c.log.Debug("selection out of range", "section", at.Section, "row", at.Row)
		return
	}
	c.onSelect(item, at)
}

func (c *Controller[T]) fetchAll(ctx context.Context) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInterrupted, r)
		}
	}()
	return c.load(ctx)
}

func (c *Controller[T]) fetchPage(ctx context.Context, offset int) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInterrupted, r)
		}
	}()
	return c.loadPage(ctx, offset)
}
