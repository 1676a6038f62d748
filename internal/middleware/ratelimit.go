package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"github.com/mathieu-neron/cineshelf/internal/metrics"
	"github.com/mathieu-neron/cineshelf/pkg/hash"
)

// RateLimitConfig defines the limit for a specific route or group.
type RateLimitConfig struct {
	Name   string                   // Namespaces keys in the store and labels metrics
	Max    int                      // Maximum requests allowed in the window
	Window time.Duration            // Time window for the limit
	KeyFn  func(c fiber.Ctx) string // Returns the key to rate limit on (IP, userID, etc.)
}

// Store counts hits per key in fixed windows.
type Store interface {
	// Hit records one request for key and returns the number of requests in
	// the current window and when that window ends.
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

// entry tracks request count and window end for a single key.
type entry struct {
	count     int
	windowEnd time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewMemoryStore creates a MemoryStore that sweeps expired keys every 5 minutes.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{entries: make(map[string]*entry)}
	go s.cleanup()
	return s
}

func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, exists := s.entries[key]
	if !exists || now.After(e.windowEnd) {
		e = &entry{windowEnd: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.windowEnd, nil
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for key, e := range s.entries {
			if now.After(e.windowEnd) {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}

// hitScript increments the window counter, starting the expiry on the first hit.
var hitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {count, ttl}
`)

// RedisStore shares limiter windows across server instances.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "ratelimit:"}
}

func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := hitScript.Run(ctx, s.rdb, []string{s.prefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit hit: %w", err)
	}
	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	return int(res[0]), time.Now().Add(ttl), nil
}

// RateLimiter enforces a RateLimitConfig against a Store.
type RateLimiter struct {
	store  Store
	config RateLimitConfig
}

// NewRateLimiter creates a rate limiter with the given config.
func NewRateLimiter(cfg RateLimitConfig, store Store) *RateLimiter {
	return &RateLimiter{store: store, config: cfg}
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
// A failing store lets the request through.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := rl.config.Name + ":" + rl.config.KeyFn(c)

		count, resetAt, err := rl.store.Hit(c.Context(), key, rl.config.Window)
		if err != nil {
			Logger.Warn().Err(err).Str("limiter", rl.config.Name).Msg("rate limit store unavailable")
			return c.Next()
		}

		remaining := rl.config.Max - count
		setRateLimitHeaders(c, rl.config.Max, remaining, resetAt)

		if remaining < 0 {
			metrics.RateLimited.WithLabelValues(rl.config.Name).Inc()
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":       "RATE_LIMITED",
					"message":    fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
					"retryAfter": retryAfter,
				},
			})
		}

		return c.Next()
	}
}

// Allow checks if a request with the given key is allowed.
func (rl *RateLimiter) Allow(key string) bool {
	count, _, err := rl.store.Hit(context.Background(), rl.config.Name+":"+key, rl.config.Window)
	if err != nil {
		return true
	}
	return count <= rl.config.Max
}

func setRateLimitHeaders(c fiber.Ctx, limit, remaining int, resetAt time.Time) {
	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(remaining, 0)))
	c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))
}

// KeyByIP returns a hash of the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + hash.Prefix(c.IP(), 16)
}

// KeyByUserID keys on the authenticated user, falling back to the client IP.
func KeyByUserID(c fiber.Ctx) string {
	if id, ok := ActorID(c); ok {
		return fmt.Sprintf("user:%d", id)
	}
	return KeyByIP(c)
}

// --- Pre-configured rate limiters ---

// NewMutationRateLimiter: 60 req/min per user for watch, rate, list and like writes.
func NewMutationRateLimiter(store Store) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Name:   "mutation",
		Max:    60,
		Window: time.Minute,
		KeyFn:  KeyByUserID,
	}, store)
}

// NewCommentRateLimiter: 10 req/min per user
func NewCommentRateLimiter(store Store) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Name:   "comment",
		Max:    10,
		Window: time.Minute,
		KeyFn:  KeyByUserID,
	}, store)
}

// NewCatalogRateLimiter: 100 req/min per IP, protecting the upstream quota.
func NewCatalogRateLimiter(store Store) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Name:   "catalog",
		Max:    100,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	}, store)
}

// NewSearchRateLimiter: 30 req/min per IP
func NewSearchRateLimiter(store Store) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Name:   "search",
		Max:    30,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	}, store)
}
