package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/salvaclients/stock-ledger-api/pkg/logger"
)

// RequestLogger registra cada petición con zerolog (método, ruta, status, duración).
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
