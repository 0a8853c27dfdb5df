package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMemoryCapacity bounds a MemoryStore created without WithCapacity.
const DefaultMemoryCapacity = 10000

// MemoryStore is an in-process Store backed by an LRU with per-entry TTL.
type MemoryStore struct {
	mu    sync.Mutex
	items *lru
	now   func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	capacity int
	now      func() time.Time
}

// WithCapacity sets the maximum number of entries kept.
func WithCapacity(n int) MemoryOption {
	return func(o *memoryOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	o := memoryOptions{capacity: DefaultMemoryCapacity, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore{items: newLRU(o.capacity), now: o.now}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items.get(key, s.now())
	if !ok {
		return nil, ErrMiss
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value. A non-positive ttl keeps the entry until it
// is evicted.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	s.items.put(key, append([]byte(nil), value...), expiresAt)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.delete(key)
	return nil
}

// Len returns the number of stored entries, expired ones included until
// they are read.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.len()
}
