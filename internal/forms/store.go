package forms

import (
	"sync"
	"time"
)

// Store keeps in-progress drafts between requests, keyed by session and form.
// Entries idle for longer than the TTL are dropped on access.
type Store[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]stored[T]
	now   func() time.Time
}

type stored[T any] struct {
	draft *T
	seen  time.Time
}

func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{ttl: ttl, items: map[string]stored[T]{}, now: time.Now}
}

// Get returns the draft under key, or nil.
func (s *Store[T]) Get(key string) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	it, ok := s.items[key]
	if !ok {
		return nil
	}
	it.seen = now
	s.items[key] = it
	return it.draft
}

func (s *Store[T]) Put(key string, d *T) {
	s.mu.Lock()
	s.items[key] = stored[T]{draft: d, seen: s.now()}
	s.mu.Unlock()
}

func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

func (s *Store[T]) sweep(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for k, it := range s.items {
		if now.Sub(it.seen) > s.ttl {
			delete(s.items, k)
		}
	}
}
