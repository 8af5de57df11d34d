package collection

import (
	"context"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen -destination mock_cache_test.go -package collection -write_package_comment=false . Cache

// Freshness classifies what a cache currently holds.
type Freshness int

const (
	CacheEmpty Freshness = iota
	CacheExpired
	CacheFresh
)

func (f Freshness) String() string {
	switch f {
	case CacheExpired:
		return "expired"
	case CacheFresh:
		return "fresh"
	default:
		return "empty"
	}
}

// Cache stores the last successful full load of a list.
type Cache[T any] interface {
	Freshness(ctx context.Context) (Freshness, error)
	// Pull returns the stored items and the time they were stored.
	Pull(ctx context.Context) ([]T, time.Time, error)
	// Push replaces the stored items, stamping them with the current time.
	Push(ctx context.Context, items []T) error
}

// Pool runs background work. The controller never blocks on it.
type Pool interface {
	Go(fn func())
}
