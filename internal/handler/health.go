package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Probe checks one dependency.
type Probe func(ctx context.Context) error

type HealthHandler struct {
	database Probe
	redis    Probe // nil when Redis is not configured
	startAt  time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	h := &HealthHandler{database: pool.Ping, startAt: time.Now()}
	if rdb != nil {
		h.redis = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return h
}

// Live handles GET /health/live
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready. The database is required; Redis only
// degrades readiness when it is configured.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	database := runProbe(ctx, h.database)
	cache := runProbe(ctx, h.redis)

	overall := "healthy"
	if database["status"] != "up" {
		overall = "unhealthy"
	} else if cache["status"] == "down" {
		overall = "degraded"
	}

	status := fiber.StatusOK
	if overall != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status":         overall,
		"checks":         fiber.Map{"database": database, "redis": cache},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	})
}

func runProbe(ctx context.Context, p Probe) fiber.Map {
	if p == nil {
		return fiber.Map{"status": "disabled"}
	}
	start := time.Now()
	err := p(ctx)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return fiber.Map{"status": "down", "latency_ms": latency, "error": "connection failed"}
	}
	return fiber.Map{"status": "up", "latency_ms": latency}
}
