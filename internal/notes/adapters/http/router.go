// Package http содержит HTTP-сервер сервиса заметок.
package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedesk/internal/notes/adapters/http/middleware"
	"notedesk/internal/notes/adapters/http/notes"
	"notedesk/internal/notes/adapters/http/templates"
	"notedesk/internal/notes/app"
	"notedesk/internal/notes/app/dto"
	"notedesk/internal/notes/config"
	"notedesk/internal/notes/domain/entities"
	"notedesk/internal/notes/ports/repositories"
	"notedesk/pkg/logger"
)

// Константы ответов об ошибках.
const (
	ErrMsgNotFound     = "Not found"
	ErrMsgInternal     = "Internal Server Error"
	ErrMsgRenderFailed = "failed to render error page"
	LogUnhandledError  = "unhandled request error"
)

const apiPrefix = "/api/"

// NewServer создает приложение fiber с обработчиком ошибок, отрисовывающим страницы.
func NewServer(cfg *config.HTTPConfig, pages *templates.Renderer) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "notedesk",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: NewErrorHandler(pages),
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(server *fiber.App, store repositories.Store, useCase *app.NoteUseCase, pages *templates.Renderer) {
	handler := notes.NewHandler(useCase, pages)

	// Middleware для всех запросов.
	server.Use(middleware.NewRequestIDMiddleware())
	server.Use(middleware.NewLoggerMiddleware())
	server.Use(middleware.NewRecoveryMiddleware())

	// Соединение с хранилищем берется только маршрутами заметок.
	scoped := middleware.NewStoreMiddleware(store)

	server.Get("/", handler.Index, scoped)

	notesRoutes := server.Group("/notes")
	notesRoutes.Use(scoped)
	notesRoutes.Post("", handler.Create)
	notesRoutes.Get("/:id/edit", handler.Edit)
	notesRoutes.Post("/:id/edit", handler.Update)
	notesRoutes.Post("/:id/pin", handler.TogglePin)
	notesRoutes.Post("/:id/archive", handler.ToggleArchive)
	notesRoutes.Post("/:id/trash", handler.Trash)
	notesRoutes.Post("/:id/restore", handler.Restore)
	notesRoutes.Post("/:id/purge", handler.Purge)

	apiNotes := server.Group("/api/notes")
	apiNotes.Use(scoped)
	apiNotes.Get("", handler.ListAPI)
	apiNotes.Get("/:id", handler.GetAPI)

	// Обработчик для несуществующих маршрутов.
	server.Use(func(c fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}

// NewErrorHandler сопоставляет ошибки со статусами: проверка - 400, отсутствие заметки - 404,
// остальное - 500. Для /api/ ответ отдается в JSON, иначе страницей.
func NewErrorHandler(pages *templates.Renderer) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		ctx := middleware.RequestContext(c)

		status, message := classify(err)
		if status >= fiber.StatusInternalServerError {
			logger.Log(ctx).Error(ctx, LogUnhandledError,
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		if strings.HasPrefix(c.Path(), apiPrefix) {
			return c.Status(status).JSON(dto.ErrorResponse{Error: message})
		}

		page := templates.PageError
		if status == fiber.StatusNotFound {
			page = templates.PageNotFound
		}
		if renderErr := pages.Send(c, status, page, nil); renderErr != nil {
			logger.Log(ctx).Error(ctx, ErrMsgRenderFailed, zap.Error(renderErr))
			return c.Status(status).SendString(message)
		}
		return nil
	}
}

func classify(err error) (int, string) {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, entities.ErrNoteNotFound):
		return fiber.StatusNotFound, ErrMsgNotFound
	case errors.Is(err, entities.ErrValidation):
		return fiber.StatusBadRequest, validationMessage(err)
	case errors.As(err, &fiberErr):
		if fiberErr.Code == fiber.StatusNotFound {
			return fiberErr.Code, ErrMsgNotFound
		}
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, ErrMsgInternal
	}
}

func validationMessage(err error) string {
	var verr *entities.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
