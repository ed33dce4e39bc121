package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/avolkov/geotrack/internal/storage"
	"github.com/redis/go-redis/v9"
)

// Redis-backed sliding window for deployments running more than one
// instance; all replicas share one window per client key.
type RedisSlidingWindow struct {
	redis  *storage.RedisClient
	limit  int
	window time.Duration
}

func NewRedisSlidingWindow(redis *storage.RedisClient, limit int, window time.Duration) *RedisSlidingWindow {
	return &RedisSlidingWindow{
		redis:  redis,
		limit:  limit,
		window: window,
	}
}

func (r *RedisSlidingWindow) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:sliding:%s", key)
	now := time.Now()

	windowStart := now.Add(-r.window)

	// Sorted set with request timestamps as scores
	pipe := r.redis.Pipeline()

	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if countCmd.Val() >= int64(r.limit) {
		return false, nil
	}

	if err := r.redis.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	}); err != nil {
		return false, err
	}
	r.redis.Expire(ctx, redisKey, r.window)

	return true, nil
}

func (r *RedisSlidingWindow) Remaining(ctx context.Context, key string) (int, error) {
	redisKey := fmt.Sprintf("ratelimit:sliding:%s", key)
	now := time.Now()
	windowStart := now.Add(-r.window)

	count, err := r.redis.ZCount(ctx, redisKey, fmt.Sprintf("%d", windowStart.UnixNano()), fmt.Sprintf("%d", now.UnixNano()))
	if err != nil {
		return 0, err
	}

	remaining := r.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (r *RedisSlidingWindow) Limit() int {
	return r.limit
}

func (r *RedisSlidingWindow) Window() time.Duration {
	return r.window
}

func (r *RedisSlidingWindow) Reset(ctx context.Context, key string) (time.Time, error) {
	redisKey := fmt.Sprintf("ratelimit:sliding:%s", key)

	oldest, err := r.redis.ZRange(ctx, redisKey, 0, 0)
	if err != nil || len(oldest) == 0 {
		// No entries, window resets now
		return time.Now(), nil
	}

	var oldestNano int64
	fmt.Sscanf(oldest[0], "%d", &oldestNano)

	return time.Unix(0, oldestNano).Add(r.window), nil
}
