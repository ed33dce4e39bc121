package ratelimit

import (
	"context"
	"sync"
	"time"
)

// In-process sliding window limiter. Keeps the request timestamps of the
// trailing window per client key; the whole map is guarded by one mutex so
// prune-check-append is atomic under concurrent requests from the same key.
// State is not persisted and resets on restart. Stale client keys are never
// evicted.
type MemorySlidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

func NewMemorySlidingWindow(limit int, window time.Duration) *MemorySlidingWindow {
	return &MemorySlidingWindow{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (m *MemorySlidingWindow) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	kept := m.prune(key, now)

	if len(kept) >= m.limit {
		m.hits[key] = kept
		return false, nil
	}

	m.hits[key] = append(kept, now)
	return true, nil
}

func (m *MemorySlidingWindow) Remaining(ctx context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.prune(key, m.now())
	m.hits[key] = kept

	remaining := m.limit - len(kept)
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}

func (m *MemorySlidingWindow) Limit() int {
	return m.limit
}

func (m *MemorySlidingWindow) Window() time.Duration {
	return m.window
}

// Reset returns the time the oldest recorded request leaves the window.
func (m *MemorySlidingWindow) Reset(ctx context.Context, key string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.prune(key, m.now())
	m.hits[key] = kept

	if len(kept) == 0 {
		return m.now(), nil
	}

	return kept[0].Add(m.window), nil
}

// prune drops timestamps older than the window start. Caller holds the lock.
func (m *MemorySlidingWindow) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-m.window)

	timestamps := m.hits[key]
	kept := timestamps[:0]
	for _, t := range timestamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	return kept
}
