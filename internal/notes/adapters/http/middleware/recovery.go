package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedesk/pkg/logger"
)

// NewRecoveryMiddleware перехватывает панику обработчика и превращает ее в ошибку 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		requestCtx := RequestContext(c)

		defer func() {
			if r := recover(); r != nil {
				logger.Log(requestCtx).Error(requestCtx, "server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = fiber.ErrInternalServerError
			}
		}()

		return c.Next()
	}
}
