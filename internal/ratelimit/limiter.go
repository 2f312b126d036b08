package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"

	"github.com/halcyonworks/compass/internal/monitoring"
	"github.com/halcyonworks/compass/internal/resilience"
)

// Config holds rate limiter configuration
type Config struct {
	IPLimitPerMin   int           // IP-based rate limit per minute
	BurstMultiplier int           // Burst capacity multiplier for the IP limit
	EnableFallback  bool          // Use in-memory limiting when Redis is unavailable
	CleanupInterval time.Duration // How often idle fallback limiters are swept
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() Config {
	return Config{
		IPLimitPerMin:   60,
		BurstMultiplier: 2,
		EnableFallback:  true,
		CleanupInterval: time.Hour,
	}
}

// Rate describes one limit window. Burst defaults to Limit when zero.
type Rate struct {
	Limit  int
	Burst  int
	Period time.Duration
}

func (r Rate) burst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// maxFallbackEntries caps the fallback limiter map before a sweep clears it.
const maxFallbackEntries = 1000

// RateLimiter provides distributed rate limiting with Redis and in-memory fallback
type RateLimiter struct {
	redisLimiter *redis_rate.Limiter
	redisClient  *RedisClient
	config       Config
	metrics      *monitoring.Metrics

	// Guards the Redis path so a dead Redis is not retried on every request
	breaker *resilience.CircuitBreaker

	// In-memory fallback rate limiters
	fallbackLimiters map[string]*rate.Limiter
	fallbackMutex    sync.RWMutex

	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// NewRateLimiter creates a new rate limiter with Redis and in-memory fallback
func NewRateLimiter(redisClient *RedisClient, config Config, metrics *monitoring.Metrics) *RateLimiter {
	rl := &RateLimiter{
		redisClient:      redisClient,
		config:           config,
		metrics:          metrics,
		breaker:          resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{}),
		fallbackLimiters: make(map[string]*rate.Limiter),
		stopCleanup:      make(chan struct{}),
	}

	// Initialize Redis rate limiter if enabled
	if redisClient.IsEnabled() {
		rl.redisLimiter = redis_rate.NewLimiter(redisClient.GetClient())
		slog.Info("Redis rate limiter initialized")
	} else {
		slog.Warn("Redis unavailable, using in-memory rate limiting only")
	}

	go rl.cleanupLoop()

	return rl
}

// Close stops the background cleanup goroutine.
func (rl *RateLimiter) Close() error {
	rl.closeOnce.Do(func() {
		close(rl.stopCleanup)
	})
	return nil
}

// AllowIP checks if an IP address is allowed to make a request (per-minute limit)
func (rl *RateLimiter) AllowIP(ctx context.Context, ip string) (*Result, error) {
	key := fmt.Sprintf("ratelimit:ip:%s", ip)
	r := Rate{
		Limit:  rl.config.IPLimitPerMin,
		Period: time.Minute,
	}
	if rl.config.BurstMultiplier > 1 {
		r.Burst = rl.config.IPLimitPerMin * rl.config.BurstMultiplier
	}

	return rl.Allow(ctx, key, r)
}

// Allow performs a rate limit check for key using Redis or the fallback
func (rl *RateLimiter) Allow(ctx context.Context, key string, r Rate) (*Result, error) {
	// Try Redis first if enabled, behind the circuit breaker
	if rl.redisClient.IsEnabled() && rl.redisLimiter != nil {
		var result *Result
		err := rl.breaker.Call(func() error {
			var callErr error
			result, callErr = rl.allowRedis(ctx, key, r)
			return callErr
		})
		if err == nil {
			return result, nil
		}

		if errors.Is(err, resilience.ErrCircuitOpen) {
			slog.Debug("Redis rate limiter circuit open, using fallback", "key", key)
			if rl.metrics != nil {
				rl.metrics.IncrementRateLimitFallback()
			}
		} else {
			slog.Warn("Redis rate limit check failed, using fallback", "key", key, "error", err)
			if rl.metrics != nil {
				rl.metrics.IncrementRateLimitRedisError()
			}
		}
		return rl.allowFallback(key, r)
	}

	// Use in-memory fallback
	if rl.metrics != nil {
		rl.metrics.IncrementRateLimitFallback()
	}
	return rl.allowFallback(key, r)
}

// allowRedis performs rate limiting using Redis sliding window
func (rl *RateLimiter) allowRedis(ctx context.Context, key string, r Rate) (*Result, error) {
	rateLimit := redis_rate.Limit{
		Rate:   r.Limit,
		Burst:  r.burst(),
		Period: r.Period,
	}

	res, err := rl.redisLimiter.Allow(ctx, key, rateLimit)
	if err != nil {
		return nil, fmt.Errorf("redis rate limit check failed: %w", err)
	}

	return &Result{
		Allowed:    res.Allowed > 0,
		Limit:      res.Limit.Rate,
		Remaining:  res.Remaining,
		ResetAt:    time.Now().Add(res.ResetAfter),
		RetryAfter: res.RetryAfter,
	}, nil
}

// allowFallback performs rate limiting using in-memory token bucket
func (rl *RateLimiter) allowFallback(key string, r Rate) (*Result, error) {
	if !rl.config.EnableFallback {
		// Fail open rather than deny all traffic when nothing can count it
		return &Result{
			Allowed:   true,
			Limit:     r.Limit,
			Remaining: r.Limit,
			ResetAt:   time.Now().Add(r.Period),
		}, nil
	}

	rl.fallbackMutex.Lock()
	limiter, exists := rl.fallbackLimiters[key]
	if !exists {
		rps := rate.Limit(float64(r.Limit) / r.Period.Seconds())
		limiter = rate.NewLimiter(rps, r.burst())
		rl.fallbackLimiters[key] = limiter
	}
	rl.fallbackMutex.Unlock()

	allowed := limiter.Allow()

	remaining := int(limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}

	result := &Result{
		Allowed:   allowed,
		Limit:     r.Limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(r.Period),
	}

	if !allowed {
		result.RetryAfter = time.Until(result.ResetAt)
	}

	return result, nil
}

// cleanupLoop periodically sweeps the fallback limiter map.
func (rl *RateLimiter) cleanupLoop() {
	interval := rl.config.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup clears the fallback map once it outgrows maxFallbackEntries.
// Limiters are cheap to rebuild, so a full sweep beats per-entry bookkeeping.
func (rl *RateLimiter) cleanup() {
	rl.fallbackMutex.Lock()
	defer rl.fallbackMutex.Unlock()

	if len(rl.fallbackLimiters) > maxFallbackEntries {
		slog.Info("Cleaning up fallback rate limiters", "count", len(rl.fallbackLimiters))
		rl.fallbackLimiters = make(map[string]*rate.Limiter)
	}
}

// GetStats returns rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.fallbackMutex.RLock()
	fallbackCount := len(rl.fallbackLimiters)
	rl.fallbackMutex.RUnlock()

	stats := map[string]interface{}{
		"redis_enabled":     rl.redisClient.IsEnabled(),
		"fallback_enabled":  rl.config.EnableFallback,
		"fallback_limiters": fallbackCount,
		"config": map[string]interface{}{
			"ip_limit_per_min": rl.config.IPLimitPerMin,
			"burst_multiplier": rl.config.BurstMultiplier,
		},
	}

	// Add Redis pool stats if available
	if rl.redisClient.IsEnabled() {
		stats["redis_pool"] = rl.redisClient.GetPoolStats()
		stats["redis_breaker"] = rl.breaker.Snapshot()
	}

	return stats
}
