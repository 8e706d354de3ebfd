package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedesk/pkg/logger"
)

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
func NewLoggerMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("ip", c.IP()),
		)

		log.Debug(requestCtx, "request started")

		err := c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Warn(requestCtx, "request failed", append(fields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "request completed", fields...)
		return nil
	}
}
