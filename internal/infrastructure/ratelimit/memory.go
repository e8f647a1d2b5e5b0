package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process counter store with expiration
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]*counter
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

type counter struct {
	value      int64
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := newMemoryStore(time.Now)

	// Start cleanup goroutine to remove expired counters
	go store.cleanupExpired(5 * time.Minute)

	return store
}

func newMemoryStore(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*counter),
		now:   now,
		stop:  make(chan struct{}),
	}
}

// Increment implements Store
func (ms *MemoryStore) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	item, exists := ms.items[key]
	if !exists || now.After(item.expireTime) {
		item = &counter{expireTime: now.Add(ttl)}
		ms.items[key] = item
	}
	item.value++
	return item.value, nil
}

// Len returns the number of tracked keys, expired or not
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.items)
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() {
	ms.once.Do(func() { close(ms.stop) })
}

// cleanupExpired periodically removes expired counters
func (ms *MemoryStore) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.sweep()
		}
	}
}

func (ms *MemoryStore) sweep() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, item := range ms.items {
		if now.After(item.expireTime) {
			delete(ms.items, key)
		}
	}
}
