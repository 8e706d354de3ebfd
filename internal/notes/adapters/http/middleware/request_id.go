package middleware

import (
	"github.com/gofiber/fiber/v3"

	"notedesk/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или создает новый
// и кладет контекст с ним в Locals.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := logger.NewRequestIDContext(c.Context(), c.Get(HeaderRequestID))
		c.Locals(localRequestContext, ctx)
		if id, ok := logger.GetRequestID(ctx); ok {
			c.Set(HeaderRequestID, id)
		}
		return c.Next()
	}
}
