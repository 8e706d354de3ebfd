// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"notedesk/internal/notes/ports/repositories"
)

// Ключи значений запроса в fiber.Ctx.Locals.
const (
	localRequestContext = "requestContext"
	localRepository     = "noteRepository"
)

// ErrNoRepository возвращается, если маршрут не обернут NewStoreMiddleware.
var ErrNoRepository = errors.New("note repository is not bound to request")

// RequestContext возвращает контекст запроса с логгером и идентификатором запроса.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// Repository возвращает репозиторий, закрепленный за текущим запросом.
func Repository(c fiber.Ctx) (repositories.NoteRepository, error) {
	repo, ok := c.Locals(localRepository).(repositories.NoteRepository)
	if !ok || repo == nil {
		return nil, ErrNoRepository
	}
	return repo, nil
}
