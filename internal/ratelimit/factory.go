package ratelimit

import (
	"time"

	"github.com/avolkov/geotrack/internal/storage"
)

// NewLimiter picks the sliding window backend: Redis when a client is
// configured, otherwise the in-process window.
func NewLimiter(redis *storage.RedisClient, limit int, window time.Duration) Limiter {
	if redis != nil {
		return NewRedisSlidingWindow(redis, limit, window)
	}

	return NewMemorySlidingWindow(limit, window)
}
