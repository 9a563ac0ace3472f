// Package memo stores computed values by content key so the same input is
// never computed twice.
package memo

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Store maps content keys to computed values.
type Store[V any] interface {
	// Do returns the value stored for key, computing and storing it with fn
	// when absent. Concurrent callers on the same key share one call to fn.
	// hit reports whether this caller's fn was not run. Errors from fn are
	// returned to every waiting caller and nothing is stored.
	Do(ctx context.Context, key string, fn func(context.Context) (V, error)) (v V, hit bool, err error)

	// Get returns the value stored for key.
	Get(ctx context.Context, key string) (V, bool)

	Size() int64
}

// inMemoryStore keeps every entry for the life of the process. Content keys
// change whenever content changes, so stale entries are never served.
type inMemoryStore[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	size    atomic.Int64
	flight  singleflight.Group
}

// NewInMemoryStore creates an unbounded in-memory store.
func NewInMemoryStore[V any](opts ...Option) Store[V] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return &inMemoryStore[V]{entries: make(map[string]V, c.capacity)}
}

func (s *inMemoryStore[V]) Get(_ context.Context, key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

func (s *inMemoryStore[V]) Do(ctx context.Context, key string, fn func(context.Context) (V, error)) (V, bool, error) {
	if v, ok := s.Get(ctx, key); ok {
		return v, true, nil
	}

	ran := false
	res, err, _ := s.flight.Do(key, func() (any, error) {
		// the previous flight may have stored between Get and Do
		if v, ok := s.Get(ctx, key); ok {
			return v, nil
		}
		ran = true
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.entries[key] = v
		s.mu.Unlock()
		s.size.Add(1)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), !ran, nil
}

// Size returns the current number of entries.
func (s *inMemoryStore[V]) Size() int64 {
	return s.size.Load()
}
