package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wagnermocelin/pedidosIHS/pkg/logger"
)

// HeaderRequestID header de correlação propagado na resposta.
const HeaderRequestID = "X-Request-Id"

// LoggingMiddleware registra cada requisição com request id, método, rota,
// status e duração. Reaproveita o X-Request-Id do cliente quando presente.
func LoggingMiddleware(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)

		start := time.Now()
		err := c.Next()

		evt := log.Info()
		if err != nil || c.Response().StatusCode() >= 500 {
			evt = log.Error().Err(err)
		}
		evt.
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
