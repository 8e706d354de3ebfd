package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"notedesk/internal/notes/ports/repositories"
)

// ErrAcquireStore - ошибка получения соединения для запроса.
const ErrAcquireStore = "failed to acquire store for request"

// NewStoreMiddleware закрепляет за запросом одно соединение с хранилищем
// и освобождает его после завершения обработчика на любом пути выхода.
func NewStoreMiddleware(store repositories.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		repo, release, err := store.Acquire(RequestContext(c))
		if err != nil {
			return fmt.Errorf("%s: %w", ErrAcquireStore, err)
		}
		defer release()

		c.Locals(localRepository, repo)
		defer c.Locals(localRepository, nil)

		return c.Next()
	}
}
