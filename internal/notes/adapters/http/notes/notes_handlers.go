// Package notes содержит HTTP-обработчики страниц и API заметок.
package notes

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedesk/internal/notes/adapters/http/middleware"
	"notedesk/internal/notes/adapters/http/templates"
	"notedesk/internal/notes/app"
	"notedesk/internal/notes/app/dto"
	"notedesk/internal/notes/domain/entities"
	"notedesk/internal/notes/ports/repositories"
	"notedesk/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerIndex     = "handling index request"
	LogHandlerCreate    = "handling create note request"
	LogHandlerEdit      = "handling edit note request"
	LogHandlerUpdate    = "handling update note request"
	LogHandlerTransform = "handling note state change"
	LogInputRejected    = "note input rejected"
)

// Имена полей запроса.
const (
	paramID   = "id"
	fieldNext = "next"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notes *app.NoteUseCase
	pages *templates.Renderer
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes *app.NoteUseCase, pages *templates.Renderer) *Handler {
	return &Handler{notes: notes, pages: pages}
}

// Index показывает список заметок с фильтрами из строки запроса.
func (h *Handler) Index(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerIndex, zap.String("url", c.OriginalURL()))

	return h.renderIndex(c, dto.DefaultNoteForm(), "", fiber.StatusOK)
}

// Create создает заметку и возвращает к списку.
func (h *Handler) Create(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx).With(zap.String("handler", "Handler.Create"))
	log.Debug(ctx, LogHandlerCreate)

	repo, err := middleware.Repository(c)
	if err != nil {
		return err
	}

	in := noteInput(c)
	if _, err := h.notes.Create(ctx, repo, in); err != nil {
		var verr *entities.ValidationError
		if errors.As(err, &verr) {
			log.Info(ctx, LogInputRejected, zap.String("field", verr.Field))
			return h.renderIndex(c, dto.NewNoteForm(in), verr.Message, fiber.StatusBadRequest)
		}
		return err
	}

	return c.Redirect().Status(fiber.StatusSeeOther).To(IndexURL)
}

// Edit показывает форму редактирования заметки, не находящейся в корзине.
func (h *Handler) Edit(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerEdit)

	id, err := noteID(c)
	if err != nil {
		return err
	}
	repo, err := middleware.Repository(c)
	if err != nil {
		return err
	}

	note, err := h.notes.GetEditable(ctx, repo, id)
	if err != nil {
		return err
	}

	return h.renderEdit(c, id, dto.FormFromRecord(dto.NewNoteRecord(note)), "",
		SanitizeNext(c.Query(fieldNext), IndexURL), fiber.StatusOK)
}

// Update сохраняет изменения заметки и перенаправляет на next.
func (h *Handler) Update(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx).With(zap.String("handler", "Handler.Update"))
	log.Debug(ctx, LogHandlerUpdate)

	id, err := noteID(c)
	if err != nil {
		return err
	}
	repo, err := middleware.Repository(c)
	if err != nil {
		return err
	}

	note, err := h.notes.GetEditable(ctx, repo, id)
	if err != nil {
		return err
	}

	in := noteInput(c)
	next := SanitizeNext(c.FormValue(fieldNext), IndexURL)

	if err := h.notes.Update(ctx, repo, id, in); err != nil {
		var verr *entities.ValidationError
		if errors.As(err, &verr) {
			log.Info(ctx, LogInputRejected, zap.String("field", verr.Field), zap.Int64("noteID", id))
			form := dto.FormFromRecord(dto.NewNoteRecord(note)).Merge(in)
			return h.renderEdit(c, id, form, verr.Message, next, fiber.StatusBadRequest)
		}
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To(next)
}

// TogglePin закрепляет или открепляет заметку.
func (h *Handler) TogglePin(c fiber.Ctx) error {
	return h.transition(c, "pin", h.notes.TogglePin)
}

// ToggleArchive перемещает заметку в архив или обратно.
func (h *Handler) ToggleArchive(c fiber.Ctx) error {
	return h.transition(c, "archive", h.notes.ToggleArchive)
}

// Trash перемещает заметку в корзину.
func (h *Handler) Trash(c fiber.Ctx) error {
	return h.transition(c, "trash", h.notes.Trash)
}

// Restore возвращает заметку из корзины.
func (h *Handler) Restore(c fiber.Ctx) error {
	return h.transition(c, "restore", h.notes.Restore)
}

// Purge безвозвратно удаляет заметку.
func (h *Handler) Purge(c fiber.Ctx) error {
	return h.transition(c, "purge", h.notes.Purge)
}

// ListAPI возвращает список заметок, фильтр и счетчики в JSON.
func (h *Handler) ListAPI(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	repo, err := middleware.Repository(c)
	if err != nil {
		return err
	}

	filter := filterFromQuery(c)
	notes, err := h.notes.List(ctx, repo, filter)
	if err != nil {
		return err
	}
	counts, err := h.notes.Counts(ctx, repo)
	if err != nil {
		return err
	}

	return c.JSON(dto.ListResponse{
		Filters: filter,
		Counts:  counts,
		Notes:   dto.NewNoteRecords(notes),
	})
}

// GetAPI возвращает заметку в любом состоянии в JSON.
func (h *Handler) GetAPI(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)

	id, err := noteID(c)
	if err != nil {
		return err
	}
	repo, err := middleware.Repository(c)
	if err != nil {
		return err
	}

	note, err := h.notes.Get(ctx, repo, id)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewNoteRecord(note))
}

type transitionFunc func(ctx context.Context, repo repositories.NoteRepository, id int64) error

func (h *Handler) transition(c fiber.Ctx, action string, apply transitionFunc) error {
	ctx := middleware.RequestContext(c)

	id, err := noteID(c)
	if err != nil {
		return err
	}
	logger.Log(ctx).Debug(ctx, LogHandlerTransform, zap.String("action", action), zap.Int64("noteID", id))

	repo, err := middleware.Repository(c)
	if err != nil {
		return err
	}

	if err := apply(ctx, repo, id); err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To(SanitizeNext(c.FormValue(fieldNext), IndexURL))
}

func (h *Handler) renderIndex(c fiber.Ctx, form dto.NoteForm, errMsg string, status int) error {
	ctx := middleware.RequestContext(c)
	repo, err := middleware.Repository(c)
	if err != nil {
		return err
	}

	filter := filterFromQuery(c)
	notes, err := h.notes.List(ctx, repo, filter)
	if err != nil {
		return err
	}
	counts, err := h.notes.Counts(ctx, repo)
	if err != nil {
		return err
	}
	categories, err := h.notes.Categories(ctx, repo)
	if err != nil {
		return err
	}

	return h.pages.Send(c, status, templates.PageIndex, templates.IndexPage{
		Notes:      dto.NewNoteRecords(notes),
		Filters:    filter,
		Counts:     counts,
		Categories: categories,
		Views:      entities.Views,
		Statuses:   dto.StatusOptions(),
		Priorities: dto.PriorityOptions(),
		Form:       form,
		Error:      errMsg,
		CurrentURL: currentURL(c),
	})
}

func (h *Handler) renderEdit(c fiber.Ctx, id int64, form dto.NoteForm, errMsg, next string, status int) error {
	return h.pages.Send(c, status, templates.PageEdit, templates.EditPage{
		NoteID:     id,
		Form:       form,
		Statuses:   dto.StatusOptions(),
		Priorities: dto.PriorityOptions(),
		Error:      errMsg,
		NextURL:    next,
	})
}

// noteID разбирает идентификатор из пути; нечисловой идентификатор означает 404.
func noteID(c fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params(paramID), 10, 64)
	if err != nil || id < 0 {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

func noteInput(c fiber.Ctx) entities.NoteInput {
	defaults := entities.DefaultNoteInput()
	return entities.NoteInput{
		Title:    c.FormValue(entities.FieldTitle),
		Content:  c.FormValue(entities.FieldContent),
		Category: c.FormValue(entities.FieldCategory),
		Status:   formValue(c, entities.FieldStatus, defaults.Status),
		Priority: formValue(c, entities.FieldPriority, defaults.Priority),
		DueDate:  c.FormValue(entities.FieldDueDate),
		IsPinned: c.FormValue(entities.FieldIsPinned),
	}
}

// formValue возвращает поле тела формы или fallback, если поле не передано.
// Переданное пустое значение возвращается как есть.
func formValue(c fiber.Ctx, key, fallback string) string {
	if args := c.Request().PostArgs(); args.Has(key) {
		return string(args.Peek(key))
	}
	if form, err := c.MultipartForm(); err == nil {
		if values, ok := form.Value[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return fallback
}

func filterFromQuery(c fiber.Ctx) entities.Filter {
	values := make(map[string]string, len(entities.FilterKeys))
	for _, key := range entities.FilterKeys {
		values[key] = c.Query(key)
	}
	return entities.NormalizeFilter(values)
}

func currentURL(c fiber.Ctx) string {
	return strings.TrimSuffix(c.OriginalURL(), "?")
}
