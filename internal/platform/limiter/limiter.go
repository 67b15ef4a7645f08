// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package limiter implements per-client request rate limiting for /api paths.

Two implementations of the [Limiter] contract are provided:

  - RedisLimiter: a fixed-window counter (INCR + EXPIRE) shared across
    processes. The increment-and-check is atomic on the Redis side, so
    concurrent requests can never undercount.
  - MemoryLimiter: the same fixed-window semantics per client IP for
    single-process deployments and tests, with background eviction of
    idle clients.

Both are configured from the same immutable settings (max requests per
window) established at startup.
*/
package limiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wayfarer-travel/wayfarer/internal/platform/constants"
)

// Limiter is the contract consumed by the rate-limiting middleware.
type Limiter interface {
	// Allow records one request for the client key and reports whether it is
	// within the limit. retryAfter is a client hint, meaningful only when
	// allowed is false.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// # Redis Fixed Window

// RedisLimiter counts requests per client in fixed windows backed by Redis.
//
// The Nth request within a window is allowed iff N <= Max: with Max = 100,
// the 100th request passes and the 101st is rejected until the window rolls.
type RedisLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewRedisLimiter constructs a Redis-backed fixed-window limiter.
func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, max: int64(max), window: window}
}

// Allow atomically increments the client's window counter and checks it.
//
// INCR and EXPIRE run in a pipeline; EXPIRE NX only stamps the TTL when the
// key is fresh, so the window is anchored to the first request in it.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := constants.RedisPrefixRateLimit + key

	pipe := l.client.TxPipeline()
	countCmd := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	ttlCmd := pipe.TTL(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("limiter: redis pipeline failed: %w", err)
	}

	if countCmd.Val() > l.max {
		retryAfter := ttlCmd.Val()
		if retryAfter < 0 {
			retryAfter = l.window
		}
		return false, retryAfter, nil
	}

	return true, 0, nil
}

// # In-Memory Fixed Window

type memoryWindow struct {
	count       int
	windowStart time.Time
	lastSeen    time.Time
}

// MemoryLimiter counts requests per client in fixed windows, mirroring the
// Redis semantics in a single process. The window is anchored to the first
// request in it and the budget never replenishes mid-window. It is the
// fallback when no Redis URL is configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*memoryWindow

	max    int
	window time.Duration

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewMemoryLimiter constructs the in-process limiter and starts a cleanup
// goroutine that evicts idle clients until ctx is cancelled.
func NewMemoryLimiter(ctx context.Context, max int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		clients: make(map[string]*memoryWindow),
		max:     max,
		window:  window,
		now:     time.Now,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.mu.Lock()
				for ip, clientInfo := range l.clients {
					if time.Since(clientInfo.lastSeen) > constants.RateLimitClientTTL {
						delete(l.clients, ip)
					}
				}
				l.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return l
}

// Allow increments the client's window counter and checks it against the
// budget. The increment-and-check happens under the limiter mutex, so
// concurrent requests cannot undercount. The Nth request within a window is
// allowed iff N <= max, matching [RedisLimiter].
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	clientInfo, found := l.clients[key]
	if !found || now.Sub(clientInfo.windowStart) >= l.window {
		clientInfo = &memoryWindow{windowStart: now}
		l.clients[key] = clientInfo
	}

	clientInfo.lastSeen = now
	clientInfo.count++

	if clientInfo.count > l.max {
		return false, clientInfo.windowStart.Add(l.window).Sub(now), nil
	}

	return true, 0, nil
}
