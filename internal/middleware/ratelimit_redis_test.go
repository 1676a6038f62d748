//go:build integration

package middleware

import (
	"testing"
	"time"

	"github.com/mathieu-neron/cineshelf/internal/testdb"
)

func TestRedisStore_SharedWindow(t *testing.T) {
	rdb := testdb.NewRedis(t)

	// Two limiters on one Redis behave like two server instances.
	cfg := RateLimitConfig{Name: "shared", Max: 3, Window: 200 * time.Millisecond, KeyFn: KeyByIP}
	a := NewRateLimiter(cfg, NewRedisStore(rdb))
	b := NewRateLimiter(cfg, NewRedisStore(rdb))

	a.Allow("k")
	b.Allow("k")
	a.Allow("k")
	if b.Allow("k") {
		t.Fatal("4th hit across instances should be blocked")
	}

	time.Sleep(250 * time.Millisecond)
	if !a.Allow("k") {
		t.Fatal("window should have expired")
	}
}
