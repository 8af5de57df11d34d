// Package cache persists list snapshots so a screen can paint before its
// first network load finishes.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/jask/listkit/internal/collection"
	"github.com/jask/listkit/internal/database/repository"
)

// Option configures a Snapshots cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used to stamp and age snapshots.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Snapshots stores one list under a key in the list_snapshots table.
// Items are CBOR encoded; times keep nanosecond precision.
type Snapshots[T any] struct {
	repo *repository.SnapshotRepo
	key  string
	ttl  time.Duration
	now  func() time.Time
	enc  cbor.EncMode
}

var _ collection.Cache[repository.Transaction] = (*Snapshots[repository.Transaction])(nil)

// New returns a cache for key. Snapshots older than ttl are reported as
// expired; ttl <= 0 treats every snapshot as expired.
func New[T any](repo *repository.SnapshotRepo, key string, ttl time.Duration, opts ...Option) (*Snapshots[T], error) {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	enc, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		return nil, fmt.Errorf("cache: encoder: %w", err)
	}
	return &Snapshots[T]{repo: repo, key: key, ttl: ttl, now: o.now, enc: enc}, nil
}

func (s *Snapshots[T]) Freshness(ctx context.Context) (collection.Freshness, error) {
	snap, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return collection.CacheEmpty, fmt.Errorf("cache %s: %w", s.key, err)
	}
	if snap == nil {
		return collection.CacheEmpty, nil
	}
	if s.ttl <= 0 || s.now().Sub(snap.StoredAt) > s.ttl {
		return collection.CacheExpired, nil
	}
	return collection.CacheFresh, nil
}

func (s *Snapshots[T]) Pull(ctx context.Context) ([]T, time.Time, error) {
	snap, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("cache %s: %w", s.key, err)
	}
	if snap == nil {
		return nil, time.Time{}, nil
	}
	var items []T
	if err := cbor.Unmarshal(snap.Payload, &items); err != nil {
		return nil, time.Time{}, fmt.Errorf("cache %s: decode: %w", s.key, err)
	}
	return items, snap.StoredAt, nil
}

func (s *Snapshots[T]) Push(ctx context.Context, items []T) error {
	payload, err := s.enc.Marshal(items)
	if err != nil {
		return fmt.Errorf("cache %s: encode: %w", s.key, err)
	}
	return s.repo.Put(ctx, repository.Snapshot{
		Key:       s.key,
		Payload:   payload,
		ItemCount: len(items),
		StoredAt:  s.now(),
	})
}

// Clear drops the stored snapshot.
func (s *Snapshots[T]) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.key)
}
