package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phuslu/log"
)

// Logger logs each HTTP request as one JSON line.
// Fields: request_id (set by RequestID), method, path, status, latency in milliseconds.
func Logger(l *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Collect fields after the handler ran to capture the final status.
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		entry := l.Info()
		if status >= fiber.StatusInternalServerError {
			entry = l.Error()
		}
		entry.
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("")

		return err
	}
}

// Noop passes the request through. Stands in for optional middleware that is switched off.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
