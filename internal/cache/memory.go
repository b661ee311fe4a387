package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	expireAt time.Time
	lastUsed time.Time
}

// Memory is an in-process Store with TTL expiry and least-recently-used
// eviction once maxEntries is reached.
type Memory struct {
	mu         sync.Mutex
	data       map[string]*memoryItem
	maxEntries int
	now        func() time.Time
}

// NewMemory creates a memory store holding at most maxEntries keys
// (default 256).
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &Memory{
		data:       make(map[string]*memoryItem),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	now := m.now()
	if !now.Before(it.expireAt) {
		delete(m.data, key)
		return nil, false, nil
	}
	it.lastUsed = now
	return append([]byte(nil), it.value...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.data[key]; !exists && len(m.data) >= m.maxEntries {
		m.evict(now)
	}
	m.data[key] = &memoryItem{
		value:    append([]byte(nil), value...),
		expireAt: now.Add(ttl),
		lastUsed: now,
	}
	return nil
}

// evict drops expired entries, or the least recently used one if none
// expired. Caller holds mu.
func (m *Memory) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	expired := false
	for k, it := range m.data {
		if !now.Before(it.expireAt) {
			delete(m.data, k)
			expired = true
			continue
		}
		if oldestKey == "" || it.lastUsed.Before(oldest) {
			oldestKey, oldest = k, it.lastUsed
		}
	}
	if !expired && oldestKey != "" {
		delete(m.data, oldestKey)
	}
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
