package collection

import (
	"fmt"
	"time"
)

// DataKind describes payload presence, not loading activity.
type DataKind int

const (
	DataNone DataKind = iota
	DataHasData
	DataEmpty
	DataError
)

func (k DataKind) String() string {
	switch k {
	case DataHasData:
		return "hasData"
	case DataEmpty:
		return "empty"
	case DataError:
		return "error"
	default:
		return "none"
	}
}

// DataState pairs the payload kind with the failure cause when Kind is DataError.
type DataState struct {
	Kind DataKind
	Err  error
}

func (d DataState) String() string {
	if d.Kind == DataError && d.Err != nil {
		return fmt.Sprintf("error(%v)", d.Err)
	}
	return d.Kind.String()
}

// State is the single source of truth for one list screen. Values handed to
// observers are snapshots and must not be modified.
type State[T any] struct {
	Loading      bool
	LoadingMore  bool
	IsFirstLoad  bool
	EndOfData    bool
	Data         DataState
	Sections     []Section[T]
	LastLoadedAt time.Time
}

// InitialState returns the defaults every controller starts from.
func InitialState[T any]() State[T] {
	return State[T]{IsFirstLoad: true}
}

// FirstLoading reports a reload that runs before any load has completed.
func (s State[T]) FirstLoading() bool { return s.Loading && s.IsFirstLoad }

// Refreshing reports a reload over already loaded data (pull-to-refresh).
func (s State[T]) Refreshing() bool { return s.Loading && !s.IsFirstLoad }

// ItemCount returns the number of items across all sections.
func (s State[T]) ItemCount() int { return countItems(s.Sections) }

// Item returns the item at p, if p is in range.
func (s State[T]) Item(p IndexPath) (T, bool) {
	var zero T
	if p.Section < 0 || p.Section >= len(s.Sections) {
		return zero, false
	}
	items := s.Sections[p.Section].Items
	if p.Row < 0 || p.Row >= len(items) {
		return zero, false
	}
	return items[p.Row], true
}

// Flatten lists every item with its position, in display order.
func (s State[T]) Flatten() []Positioned[T] {
	out := make([]Positioned[T], 0, s.ItemCount())
	for si, sec := range s.Sections {
		for ri, it := range sec.Items {
			out = append(out, Positioned[T]{At: IndexPath{Section: si, Row: ri}, Item: it})
		}
	}
	return out
}

// Positioned is an item together with its index path.
type Positioned[T any] struct {
	At   IndexPath
	Item T
}
