package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// ActorHeader carries the authenticated user id set by the gateway.
const ActorHeader = "X-User-ID"

const actorKey = "actorID"

// OptionalActor parses X-User-ID when present. A malformed header is rejected;
// an absent one leaves the request anonymous.
func OptionalActor() fiber.Handler {
	return func(c fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(ActorHeader))
		if raw == "" {
			return c.Next()
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "X-User-ID must be a positive integer")
		}
		c.Locals(actorKey, id)
		return c.Next()
	}
}

// RequireActor rejects anonymous requests. It expects OptionalActor to have run.
func RequireActor() fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, ok := ActorID(c); !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		}
		return c.Next()
	}
}

// ActorID returns the authenticated user id, if any.
func ActorID(c fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(actorKey).(int64)
	return id, ok
}

// ViewerID returns the actor id or 0 for anonymous viewers.
func ViewerID(c fiber.Ctx) int64 {
	id, _ := ActorID(c)
	return id
}
