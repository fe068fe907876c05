package cache

import (
	"container/list"
	"sync"
	"time"
)

type expiringEntry[K comparable] struct {
	key       K
	expiresAt time.Time
}

// ExpiringSet is a thread-safe set of keys with per-key expiry and LRU eviction.
type ExpiringSet[K comparable] struct {
	capacity int
	items    map[K]*list.Element
	order    *list.List // front = most recently claimed
	now      func() time.Time
	mu       sync.Mutex
}

// NewExpiringSet creates a set holding at most capacity live keys.
// The capacity must be positive, otherwise it panics.
func NewExpiringSet[K comparable](capacity int) *ExpiringSet[K] {
	if capacity <= 0 {
		panic("expiring set capacity must be positive")
	}
	return &ExpiringSet[K]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// SetClock replaces time.Now. Intended for tests.
func (s *ExpiringSet[K]) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now != nil {
		s.now = now
	}
}

// Claim records key for ttl and reports true, unless key is already present
// and unexpired, in which case it reports false and leaves the entry as is.
func (s *ExpiringSet[K]) Claim(key K, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if elem, ok := s.items[key]; ok {
		entry := elem.Value.(*expiringEntry[K])
		if now.Before(entry.expiresAt) {
			return false
		}
		entry.expiresAt = now.Add(ttl)
		s.order.MoveToFront(elem)
		return true
	}

	elem := s.order.PushFront(&expiringEntry[K]{key: key, expiresAt: now.Add(ttl)})
	s.items[key] = elem

	if s.order.Len() > s.capacity {
		s.evict(now)
	}
	return true
}

// Contains reports whether key is present and unexpired.
func (s *ExpiringSet[K]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return false
	}
	entry := elem.Value.(*expiringEntry[K])
	if !s.now().Before(entry.expiresAt) {
		s.remove(elem)
		return false
	}
	return true
}

// Release forgets key so it can be claimed again.
func (s *ExpiringSet[K]) Release(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if elem, ok := s.items[key]; ok {
		s.remove(elem)
	}
}

// Len returns the number of stored keys, including ones that have expired
// but not yet been evicted.
func (s *ExpiringSet[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Must be called with lock held. Drops expired entries first and falls back
// to the least recently claimed one.
func (s *ExpiringSet[K]) evict(now time.Time) {
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()
		if !now.Before(elem.Value.(*expiringEntry[K]).expiresAt) {
			s.remove(elem)
		}
		elem = prev
	}
	for s.order.Len() > s.capacity {
		s.remove(s.order.Back())
	}
}

// Must be called with lock held.
func (s *ExpiringSet[K]) remove(elem *list.Element) {
	s.order.Remove(elem)
	delete(s.items, elem.Value.(*expiringEntry[K]).key)
}
