package collection

import (
	"sync"
	"time"
)

type eventKind int

const (
	evLoad eventKind = iota + 1
	evLoadMore
	evSelect
	evRevalidate
	evObserve
	evRestored
	evReloaded
	evMoreLoaded
)

// event is everything the owner goroutine processes: actions from callers and
// completions from background work.
type event[T any] struct {
	kind eventKind
	at   IndexPath

	observer func(State[T])

	items     []T
	err       error
	epoch     uint64
	freshness Freshness
	storedAt  time.Time
}

// eventQueue is an unbounded FIFO. Enqueue is safe from any goroutine; only
// the Run loop dequeues.
type eventQueue[T any] struct {
	mu     sync.Mutex
	events []event[T]
	closed bool
	signal chan struct{} // buffered, size 1
}

func newEventQueue[T any]() *eventQueue[T] {
	return &eventQueue[T]{
		events: make([]event[T], 0, 16),
		signal: make(chan struct{}, 1),
	}
}

func (q *eventQueue[T]) enqueue(e event[T]) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.events = append(q.events, e)

	// a buffer of one coalesces wakeups
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

func (q *eventQueue[T]) tryDequeue() (event[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return event[T]{}, false
	}
	e := q.events[0]
	q.events[0] = event[T]{}
	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}
	return e, true
}

func (q *eventQueue[T]) wait() <-chan struct{} {
	return q.signal
}

func (q *eventQueue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
