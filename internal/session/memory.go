package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps tokens in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memItem
}

type memItem struct {
	token   string
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[string]memItem{}}
}

func (m *MemoryStore) Get(_ context.Context, sid string) (string, error) {
	m.mu.RLock()
	it, ok := m.items[sid]
	m.mu.RUnlock()
	if !ok || (!it.expires.IsZero() && time.Now().After(it.expires)) {
		return "", ErrNoToken
	}
	return it.token, nil
}

func (m *MemoryStore) Put(_ context.Context, sid, token string, ttl time.Duration) error {
	it := memItem{token: token}
	if ttl > 0 {
		it.expires = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.items[sid] = it
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	delete(m.items, sid)
	m.mu.Unlock()
	return nil
}
