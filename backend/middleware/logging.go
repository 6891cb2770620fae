package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestContext gives every request a context bounded by timeout and
// carrying a request-scoped logger.
func RequestContext(logger zerolog.Logger, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		reqLogger := logger.With().Str("request_id", requestID).Logger()
		c.SetUserContext(reqLogger.WithContext(ctx))
		return c.Next()
	}
}

func LoggingMiddleware(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		event := logger.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logger.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			event = logger.Warn()
		}
		if s, ok := CurrentSession(c); ok {
			event = event.Str("user_id", s.UserID.String())
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("request_id", string(c.Response().Header.Peek(fiber.HeaderXRequestID))).
			Msg("request")
		return err
	}
}
