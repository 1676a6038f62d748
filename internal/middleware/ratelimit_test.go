package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

func newTestLimiter(max int, window time.Duration) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Name:   "test",
		Max:    max,
		Window: window,
		KeyFn:  KeyByIP,
	}, NewMemoryStore())
}

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		rl.Allow("test-ip")
	}

	if rl.Allow("test-ip") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := newTestLimiter(2, time.Minute)

	rl.Allow("ip-a")
	rl.Allow("ip-a")

	// ip-a is exhausted
	if rl.Allow("ip-a") {
		t.Fatal("ip-a should be blocked")
	}

	// ip-b should still be allowed
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b should be allowed (independent key)")
	}
}

func TestRateLimiter_NamesDoNotShareWindows(t *testing.T) {
	store := NewMemoryStore()
	a := NewRateLimiter(RateLimitConfig{Name: "a", Max: 1, Window: time.Minute, KeyFn: KeyByIP}, store)
	b := NewRateLimiter(RateLimitConfig{Name: "b", Max: 1, Window: time.Minute, KeyFn: KeyByIP}, store)

	a.Allow("k")
	if !b.Allow("k") {
		t.Fatal("limiter b should not see limiter a's hits")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := newTestLimiter(2, 50*time.Millisecond)

	rl.Allow("test")
	rl.Allow("test")

	if rl.Allow("test") {
		t.Fatal("should be blocked within window")
	}

	// Wait for window to expire
	time.Sleep(60 * time.Millisecond)

	if !rl.Allow("test") {
		t.Fatal("should be allowed after window reset")
	}
}

func TestRateLimiter_HandlerRejectsWith429(t *testing.T) {
	app := fiber.New()
	app.Use(newTestLimiter(1, time.Minute).Handler())
	app.Get("/", func(c fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("remaining = %q, want 0", resp.Header.Get("X-RateLimit-Remaining"))
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", resp.StatusCode)
	}
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("store down")
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Name: "x", Max: 1, Window: time.Minute, KeyFn: KeyByIP}, failingStore{})
	app := fiber.New()
	app.Use(rl.Handler())
	app.Get("/", func(c fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, resp.StatusCode)
		}
	}
}
