package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/cineshelf/pkg/hash"
)

// Logger is the package-level zerolog logger used throughout the application.
var Logger = zerolog.Nop()

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

const localRequestID = "requestId"

// InitLogger sets up the global zerolog logger with structured JSON output.
// Level is parsed from the given string (e.g. "debug", "info", "warn", "error").
func InitLogger(level, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", service).
		Logger()
	return Logger
}

// SanitizePath replaces identifiers that follow a known collection segment
// with placeholders, keeping usernames out of logs and metric labels.
func SanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i := range parts {
		if i == 0 || parts[i] == "" {
			continue
		}
		switch parts[i-1] {
		case "users":
			parts[i] = ":username"
		case "lists":
			if !isStaticListSegment(parts[i]) {
				parts[i] = ":listId"
			}
		case "comments":
			parts[i] = ":commentId"
		case "reviews":
			if parts[i] != "popular" {
				parts[i] = ":ratingId"
			}
		case "movie", "tv":
			if isDigits(parts[i]) {
				parts[i] = ":id"
			}
		}
	}
	// /users/:username/lists/<slug>
	if len(parts) > 5 && parts[3] == ":username" && parts[4] == "lists" {
		parts[5] = ":slug"
	}
	return strings.Join(parts, "/")
}

func isStaticListSegment(s string) bool {
	switch s {
	case "popular", "top", "search":
		return true
	}
	return false
}

func isDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}

// RequestID returns the id assigned to the current request.
func RequestID(c fiber.Ctx) string {
	if v, ok := c.Locals(localRequestID).(string); ok {
		return v
	}
	return ""
}

// NewRequestID assigns each request an id, reusing a well-formed incoming
// X-Request-ID, and echoes it on the response.
func NewRequestID() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(localRequestID, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// NewRequestLogger returns a Fiber middleware that logs each request as
// structured JSON via zerolog. Raw IPs are hashed and dynamic path
// segments are sanitized.
func NewRequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		evt := Logger.Info()
		if status >= 500 {
			evt = Logger.Error()
		} else if status >= 400 {
			evt = Logger.Warn()
		}

		evt.
			Str("request_id", RequestID(c)).
			Str("method", c.Method()).
			Str("path", SanitizePath(c.Path())).
			Int("status", status).
			Dur("duration_ms", duration).
			Str("ip_hash", hash.Prefix(c.IP(), 12)).
			Int("bytes_sent", len(c.Response().Body())).
			Msg("request")

		return err
	}
}
