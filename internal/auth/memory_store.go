package auth

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryStoreSize bounds the number of sessions kept in process.
const DefaultMemoryStoreSize = 4096

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore keeps sessions in process. Expired entries are dropped on read
// and swept on every write; past the size bound the least recently used
// session is evicted.
type MemoryStore struct {
	mu      sync.Mutex
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore holding DefaultMemoryStoreSize sessions.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreSize(DefaultMemoryStoreSize)
}

// NewMemoryStoreSize creates an empty MemoryStore holding at most size sessions.
func NewMemoryStoreSize(size int) *MemoryStore {
	if size <= 0 {
		size = DefaultMemoryStoreSize
	}
	entries, _ := lru.New[string, memoryEntry](size)
	return &MemoryStore{entries: entries, now: time.Now}
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweep(now)
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	m.entries.Add(key, entry)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries.Get(key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	if entry.expired(m.now()) {
		m.entries.Remove(key)
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), entry.value...), nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.entries.Remove(key) {
		return ErrKeyNotFound
	}
	return nil
}

// Len reports how many entries are held, expired or not.
func (m *MemoryStore) Len() int {
	return m.entries.Len()
}

func (m *MemoryStore) sweep(now time.Time) {
	for _, key := range m.entries.Keys() {
		if entry, ok := m.entries.Peek(key); ok && entry.expired(now) {
			m.entries.Remove(key)
		}
	}
}
