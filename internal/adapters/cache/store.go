// Package cache memoizes fetched spreadsheet rows for a bounded time.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store keeps one set of raw rows. A miss is (nil, false, nil).
type Store interface {
	Get(ctx context.Context) ([][]string, bool, error)
	Set(ctx context.Context, rows [][]string) error
	// Name labels the backend in logs and metrics.
	Name() string
}

// MemoryStore is a process-local memo with a TTL.
type MemoryStore struct {
	mu      sync.RWMutex
	rows    [][]string
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a memo whose entries live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now}
}

// Name implements Store.
func (m *MemoryStore) Name() string { return "memory" }

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context) ([][]string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.expires.IsZero() || !m.now().Before(m.expires) {
		return nil, false, nil
	}
	return m.rows, true, nil
}

// Set implements Store. An empty result is cached too.
func (m *MemoryStore) Set(_ context.Context, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = rows
	m.expires = m.now().Add(m.ttl)
	return nil
}
