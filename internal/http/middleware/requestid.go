package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RequestIDHeader   = "X-Request-ID"
	RequestIDLocalKey = "request_id"

	// maxRequestIDLen bounds caller-supplied ids before they reach logs.
	maxRequestIDLen = 128
)

// RequestID tags every request with an id, reusing the caller's X-Request-ID when
// it is present and reasonably short. The id is echoed back on the response and
// kept in locals for the logger and error payloads.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}
