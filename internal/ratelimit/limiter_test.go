package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonworks/compass/internal/monitoring"
)

func newFallbackLimiter(t *testing.T, config Config) *RateLimiter {
	t.Helper()

	limiter := NewRateLimiter(&RedisClient{enabled: false}, config, monitoring.NewMetrics())
	t.Cleanup(func() { _ = limiter.Close() })
	return limiter
}

func TestRateLimiterFallbackMode(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx := context.Background()
	key := "test:fallback"
	rateLimit := Rate{Limit: 5, Period: time.Minute}

	// First 5 requests should be allowed
	for i := 0; i < 5; i++ {
		result, err := limiter.Allow(ctx, key, rateLimit)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "Request %d should be allowed", i+1)
		assert.Equal(t, 5, result.Limit)
	}

	// 6th request should be blocked
	result, err := limiter.Allow(ctx, key, rateLimit)
	require.NoError(t, err)
	assert.False(t, result.Allowed, "6th request should be blocked")
	assert.Greater(t, result.RetryAfter, time.Duration(0))
}

func TestRateLimiterBurstCapacity(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx := context.Background()
	key := "test:burst"
	rateLimit := Rate{Limit: 5, Burst: 10, Period: time.Minute}

	allowedCount := 0
	for i := 0; i < 15; i++ {
		result, err := limiter.Allow(ctx, key, rateLimit)
		require.NoError(t, err)
		if result.Allowed {
			allowedCount++
		}
	}

	// Burst capacity governs the initial window
	assert.GreaterOrEqual(t, allowedCount, 10, "Should allow the burst capacity")
	assert.LessOrEqual(t, allowedCount, 11, "Should not allow far beyond the burst capacity")
}

func TestRateLimiterMultipleKeys(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx := context.Background()
	rateLimit := Rate{Limit: 3, Period: time.Minute}

	// Test that different keys have independent rate limits
	keys := []string{"client:1", "client:2", "client:3"}

	for _, key := range keys {
		for i := 0; i < 3; i++ {
			result, err := limiter.Allow(ctx, key, rateLimit)
			require.NoError(t, err)
			assert.True(t, result.Allowed, "Key %s request %d should be allowed", key, i+1)
		}

		// 4th request for each key should be blocked
		result, err := limiter.Allow(ctx, key, rateLimit)
		require.NoError(t, err)
		assert.False(t, result.Allowed, "Key %s 4th request should be blocked", key)
	}
}

func TestRateLimiterAllowIPUsesBurstMultiplier(t *testing.T) {
	limiter := newFallbackLimiter(t, Config{
		IPLimitPerMin:   2,
		BurstMultiplier: 2,
		EnableFallback:  true,
		CleanupInterval: time.Hour,
	})

	ctx := context.Background()

	allowed := 0
	for i := 0; i < 6; i++ {
		result, err := limiter.AllowIP(ctx, "203.0.113.7")
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		}
	}

	assert.Equal(t, 4, allowed, "burst multiplier of 2 should double the initial window")
}

func TestRateLimiterFailsOpenWithoutFallback(t *testing.T) {
	limiter := newFallbackLimiter(t, Config{
		IPLimitPerMin:   1,
		BurstMultiplier: 1,
		EnableFallback:  false,
		CleanupInterval: time.Hour,
	})

	ctx := context.Background()
	rateLimit := Rate{Limit: 1, Period: time.Minute}

	for i := 0; i < 5; i++ {
		result, err := limiter.Allow(ctx, "test:failopen", rateLimit)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestRateLimiterStats(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx := context.Background()
	rateLimit := Rate{Limit: 5, Period: time.Minute}

	// Make some requests
	for i := 0; i < 3; i++ {
		_, _ = limiter.Allow(ctx, "test:stats", rateLimit)
	}

	stats := limiter.GetStats()
	assert.NotNil(t, stats)
	assert.False(t, stats["redis_enabled"].(bool))
	assert.True(t, stats["fallback_enabled"].(bool))
	assert.Equal(t, 1, stats["fallback_limiters"].(int))

	statsConfig := stats["config"].(map[string]interface{})
	assert.Equal(t, 60, statsConfig["ip_limit_per_min"])
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx := context.Background()
	rateLimit := Rate{Limit: 5, Period: time.Minute}

	// Create enough limiters to cross the sweep threshold
	for i := 0; i <= maxFallbackEntries; i++ {
		key := fmt.Sprintf("test:cleanup:%d", i)
		_, _ = limiter.Allow(ctx, key, rateLimit)
	}

	limiter.cleanup()

	stats := limiter.GetStats()
	assert.Equal(t, 0, stats["fallback_limiters"].(int), "Cleanup should have cleared the limiter map")
}

func TestRateLimiterConcurrency(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx := context.Background()
	key := "test:concurrent"
	rateLimit := Rate{Limit: 1000, Period: time.Second}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, err := limiter.Allow(ctx, key, rateLimit)
				assert.NoError(t, err)
			}
		}()
	}

	wg.Wait()
}

func TestRateLimiterContextCancellation(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	// Should still work with cancelled context in fallback mode
	result, err := limiter.Allow(ctx, "test:cancelled", Rate{Limit: 5, Period: time.Minute})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.True(t, result.Allowed)
}

func TestInvalidateIP(t *testing.T) {
	limiter := newFallbackLimiter(t, Config{
		IPLimitPerMin:   3,
		BurstMultiplier: 1,
		EnableFallback:  true,
		CleanupInterval: time.Hour,
	})

	ctx := context.Background()
	ip := "192.168.1.1"

	// Use up all requests
	for i := 0; i < 3; i++ {
		_, err := limiter.AllowIP(ctx, ip)
		require.NoError(t, err)
	}

	// Next request should be blocked
	result, err := limiter.AllowIP(ctx, ip)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	// Invalidate IP
	require.NoError(t, limiter.InvalidateIP(ctx, ip))

	// After invalidation, the IP should have fresh limits
	result, err = limiter.AllowIP(ctx, ip)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "request should be allowed after invalidation")
}

func TestInvalidateAll(t *testing.T) {
	limiter := newFallbackLimiter(t, DefaultConfig())

	ctx := context.Background()
	rateLimit := Rate{Limit: 5, Period: time.Minute}

	for _, key := range []string{"a", "b", "c"} {
		_, err := limiter.Allow(ctx, key, rateLimit)
		require.NoError(t, err)
	}

	count, err := limiter.KeyCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, limiter.InvalidateAll(ctx))

	count, err = limiter.KeyCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
