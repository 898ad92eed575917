package services

import (
	"context"
	"sync"
	"time"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

// MemoryCacheBackend is an in-process CacheBackend for single-instance
// deployments and tests.
type MemoryCacheBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCacheBackend creates an empty in-memory backend.
func NewMemoryCacheBackend() *MemoryCacheBackend {
	return &MemoryCacheBackend{entries: make(map[string]memoryEntry)}
}

// Set stores a value with a TTL. A zero or negative TTL stores nothing.
func (m *MemoryCacheBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.sweepLocked()
	return nil
}

// Get retrieves a value; expired and absent entries are a cache miss.
func (m *MemoryCacheBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, domain.NewNotFoundError("CACHE_MISS", "cache miss")
	}
	return entry.value, nil
}

// Delete removes a key.
func (m *MemoryCacheBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Ping always succeeds for the in-memory backend.
func (m *MemoryCacheBackend) Ping(_ context.Context) error {
	return nil
}

// sweepLocked drops expired entries. Called with the write lock held; the
// key space here is tiny (one list key plus one key per course), so a full
// scan per write is fine.
func (m *MemoryCacheBackend) sweepLocked() {
	now := time.Now()
	for key, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
}
