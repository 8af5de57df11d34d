package collection

import (
	"errors"
	"time"
)

// ErrInterrupted is the cause recorded when a load fails without an error value.
var ErrInterrupted = errors.New("collection: load interrupted")

// MutationKind enumerates the events that change State.
type MutationKind int

const (
	MutLoadInProgress MutationKind = iota + 1
	MutLoadMoreInProgress
	MutReloaded
	MutMoreLoaded
	MutLoadFailed
	MutRestored
)

// Mutation is the result of an operation, reduced into the next State.
type Mutation[T any] struct {
	Kind       MutationKind
	InProgress bool
	Items      []T
	Err        error
	// At is the load time for MutReloaded and the store time for MutRestored.
	At time.Time
}

func LoadInProgress[T any](v bool) Mutation[T] {
	return Mutation[T]{Kind: MutLoadInProgress, InProgress: v}
}

func LoadMoreInProgress[T any](v bool) Mutation[T] {
	return Mutation[T]{Kind: MutLoadMoreInProgress, InProgress: v}
}

func Reloaded[T any](items []T, at time.Time) Mutation[T] {
	return Mutation[T]{Kind: MutReloaded, Items: items, At: at}
}

func MoreLoaded[T any](items []T) Mutation[T] {
	return Mutation[T]{Kind: MutMoreLoaded, Items: items}
}

func LoadFailed[T any](err error) Mutation[T] {
	return Mutation[T]{Kind: MutLoadFailed, Err: err}
}

func Restored[T any](items []T, storedAt time.Time) Mutation[T] {
	return Mutation[T]{Kind: MutRestored, Items: items, At: storedAt}
}

// Reducer holds the configuration the pure reduction depends on.
type Reducer[T any] struct {
	// Build groups a batch of items. Nil means a single section.
	Build SectionBuilder[T]
	// MaxCount truncates full loads before grouping. Zero means no limit.
	MaxCount int
}

// Truncate applies MaxCount.
func (r Reducer[T]) Truncate(items []T) []T {
	if r.MaxCount > 0 && len(items) > r.MaxCount {
		return items[:r.MaxCount]
	}
	return items
}

func (r Reducer[T]) build(items []T) []Section[T] {
	if r.Build == nil {
		return SingleSection(items)
	}
	return r.Build(items)
}

// Reduce returns the state that follows s after m. It never modifies s.
func (r Reducer[T]) Reduce(s State[T], m Mutation[T]) State[T] {
	switch m.Kind {
	case MutLoadInProgress:
		s.Loading = m.InProgress

	case MutLoadMoreInProgress:
		s.LoadingMore = m.InProgress

	case MutReloaded:
		items := r.Truncate(m.Items)
		s.Sections = r.build(items)
		s.EndOfData = false
		s.IsFirstLoad = false
		s.Data = payloadState(len(items))
		s.LastLoadedAt = m.At

	case MutRestored:
		items := r.Truncate(m.Items)
		s.Sections = r.build(items)
		s.Data = payloadState(len(items))
		s.LastLoadedAt = m.At

	case MutMoreLoaded:
		if len(m.Items) == 0 {
			s.EndOfData = true
		} else if r.Build == nil {
			s.Sections = appendPrimary(s.Sections, m.Items)
		} else {
			s.Sections = MergeSections(s.Sections, r.Build(m.Items))
		}
		s.IsFirstLoad = false

	case MutLoadFailed:
		err := m.Err
		if err == nil {
			err = ErrInterrupted
		}
		s.Data = DataState{Kind: DataError, Err: err}
	}
	return s
}

func payloadState(n int) DataState {
	if n > 0 {
		return DataState{Kind: DataHasData}
	}
	return DataState{Kind: DataEmpty}
}

func appendPrimary[T any](sections []Section[T], items []T) []Section[T] {
	if len(sections) == 0 {
		return []Section[T]{NewSection("", items)}
	}
	out := make([]Section[T], len(sections))
	copy(out, sections)
	out[0] = out[0].Append(items...)
	return out
}
