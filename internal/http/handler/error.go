package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"documind/internal/extract"
	"documind/internal/http/middleware"
	"documind/internal/pipeline"
	"documind/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// serviceErrors maps domain sentinels onto responses. First match wins.
var serviceErrors = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "document not found"},
	{service.ErrNoSource, fiber.StatusNotFound, "SOURCE_NOT_FOUND", "document has no stored source"},
	{pipeline.ErrRunNotFound, fiber.StatusNotFound, "RUN_NOT_FOUND", "run not found"},
	{pipeline.ErrNotRetryable, fiber.StatusConflict, "NOT_RETRYABLE", "only failed runs can be retried"},
	{extract.ErrUnsupportedType, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "unsupported file type, PDF and text files are accepted"},
	{service.ErrIDRequired, fiber.StatusBadRequest, "ID_REQUIRED", "id is required"},
	{service.ErrSessionRequired, fiber.StatusBadRequest, "SESSION_REQUIRED", "session is required"},
	{service.ErrEmptyMessage, fiber.StatusBadRequest, "TEXT_REQUIRED", "message text is required"},
	{service.ErrChatClosed, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "chat is shutting down"},
}

// writeServiceError translates a service error, falling back to 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, m.message)
		}
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
