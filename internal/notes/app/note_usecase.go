// Package app реализует бизнес-логику сервиса заметок.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notedesk/internal/notes/domain/entities"
	"notedesk/internal/notes/ports/cache"
	"notedesk/internal/notes/ports/repositories"
	"notedesk/pkg/logger"
)

// ErrNotFound возвращается, когда заметки нет или операция для нее недопустима.
var ErrNotFound = entities.ErrNoteNotFound

// Константы для сообщений об ошибках.
const (
	ErrCreateNote    = "failed to create note"
	ErrUpdateNote    = "failed to update note"
	ErrTogglePin     = "failed to toggle pin"
	ErrToggleArchive = "failed to toggle archive"
	ErrTrashNote     = "failed to trash note"
	ErrRestoreNote   = "failed to restore note"
	ErrPurgeNote     = "failed to purge note"
	ErrGetNote       = "failed to get note"
	ErrListNotes     = "failed to list notes"
	ErrCountNotes    = "failed to count notes"
	ErrCategories    = "failed to list categories"

	LogCountsCacheRead       = "counts cache read failed, using store"
	LogCountsCacheWrite      = "counts cache write failed"
	LogCountsCacheInvalidate = "counts cache invalidation failed"
)

// NoteUseCase управляет жизненным циклом заметок. Репозиторий передается
// в каждый вызов, так как он привязан к соединению конкретного запроса.
type NoteUseCase struct {
	counts cache.CountsCache
	now    func() time.Time
}

// NewNoteUseCase создает новый экземпляр NoteUseCase. Если clock равен nil,
// используется time.Now.
func NewNoteUseCase(counts cache.CountsCache, clock func() time.Time) *NoteUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &NoteUseCase{counts: counts, now: clock}
}

// Create проверяет ввод и сохраняет новую активную заметку.
func (uc *NoteUseCase) Create(ctx context.Context, repo repositories.NoteRepository, in entities.NoteInput) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Create"))

	fields, err := in.Validate()
	if err != nil {
		log.Debug(ctx, "note input rejected", zap.Error(err))
		return 0, err
	}

	id, err := repo.Create(ctx, entities.NewNote(fields, uc.timestamp()))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrCreateNote, err)
	}

	uc.invalidateCounts(ctx)
	log.Info(ctx, "note created", zap.Int64("noteID", id))
	return id, nil
}

// Update перезаписывает изменяемые поля заметки, не находящейся в корзине.
// Отсутствие флажка закрепления снимает закрепление.
func (uc *NoteUseCase) Update(ctx context.Context, repo repositories.NoteRepository, id int64, in entities.NoteInput) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Update"), zap.Int64("noteID", id))

	fields, err := in.Validate()
	if err != nil {
		log.Debug(ctx, "note input rejected", zap.Error(err))
		return err
	}

	if err := repo.Update(ctx, id, fields, uc.timestamp()); err != nil {
		return fmt.Errorf("%s: %w", ErrUpdateNote, err)
	}

	uc.invalidateCounts(ctx)
	log.Info(ctx, "note updated")
	return nil
}

// TogglePin инвертирует закрепление заметки.
func (uc *NoteUseCase) TogglePin(ctx context.Context, repo repositories.NoteRepository, id int64) error {
	if err := repo.TogglePin(ctx, id, uc.timestamp()); err != nil {
		return fmt.Errorf("%s: %w", ErrTogglePin, err)
	}
	uc.invalidateCounts(ctx)
	return nil
}

// ToggleArchive перемещает заметку между активным представлением и архивом.
func (uc *NoteUseCase) ToggleArchive(ctx context.Context, repo repositories.NoteRepository, id int64) error {
	if err := repo.ToggleArchive(ctx, id, uc.timestamp()); err != nil {
		return fmt.Errorf("%s: %w", ErrToggleArchive, err)
	}
	uc.invalidateCounts(ctx)
	return nil
}

// Trash перемещает заметку в корзину, снимая архив и закрепление.
func (uc *NoteUseCase) Trash(ctx context.Context, repo repositories.NoteRepository, id int64) error {
	if err := repo.Trash(ctx, id, uc.timestamp()); err != nil {
		return fmt.Errorf("%s: %w", ErrTrashNote, err)
	}
	uc.invalidateCounts(ctx)
	logger.Log(ctx).Info(ctx, "note moved to trash", zap.Int64("noteID", id))
	return nil
}

// Restore возвращает заметку из корзины в активное представление.
// Для заметки вне корзины ничего не делает.
func (uc *NoteUseCase) Restore(ctx context.Context, repo repositories.NoteRepository, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Restore"), zap.Int64("noteID", id))

	var restored bool
	err := repo.InTx(ctx, func(tx repositories.NoteRepository) error {
		var err error
		restored, err = tx.Restore(ctx, id, uc.timestamp())
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrRestoreNote, err)
	}

	if !restored {
		log.Debug(ctx, "note is not in trash, nothing to restore")
		return nil
	}

	uc.invalidateCounts(ctx)
	log.Info(ctx, "note restored")
	return nil
}

// Purge безвозвратно удаляет заметку в любом состоянии.
func (uc *NoteUseCase) Purge(ctx context.Context, repo repositories.NoteRepository, id int64) error {
	if err := repo.Purge(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrPurgeNote, err)
	}
	uc.invalidateCounts(ctx)
	logger.Log(ctx).Info(ctx, "note purged", zap.Int64("noteID", id))
	return nil
}

// Get возвращает заметку в любом состоянии.
func (uc *NoteUseCase) Get(ctx context.Context, repo repositories.NoteRepository, id int64) (*entities.Note, error) {
	note, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetNote, err)
	}
	return note, nil
}

// GetEditable возвращает заметку для редактирования; заметки в корзине считаются отсутствующими.
func (uc *NoteUseCase) GetEditable(ctx context.Context, repo repositories.NoteRepository, id int64) (*entities.Note, error) {
	note, err := uc.Get(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !note.Editable() {
		return nil, ErrNotFound
	}
	return note, nil
}

// List возвращает заметки, подходящие под фильтр.
func (uc *NoteUseCase) List(ctx context.Context, repo repositories.NoteRepository, filter entities.Filter) ([]*entities.Note, error) {
	notes, err := repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}
	return notes, nil
}

// Counts возвращает количество заметок по представлениям, используя кэш, если он доступен.
func (uc *NoteUseCase) Counts(ctx context.Context, repo repositories.NoteRepository) (entities.ViewCounts, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Counts"))

	entry, cacheErr := uc.counts.Get(ctx)
	switch {
	case cacheErr != nil:
		log.Warn(ctx, LogCountsCacheRead, zap.Error(cacheErr))
	case entry.Hit:
		return entry.Counts, nil
	}

	counts, err := repo.Counts(ctx)
	if err != nil {
		return entities.ViewCounts{}, fmt.Errorf("%s: %w", ErrCountNotes, err)
	}

	if cacheErr == nil {
		if err := uc.counts.Set(ctx, entry.Version, counts); err != nil {
			log.Warn(ctx, LogCountsCacheWrite, zap.Error(err))
		}
	}
	return counts, nil
}

// Categories возвращает список категорий для фильтра.
func (uc *NoteUseCase) Categories(ctx context.Context, repo repositories.NoteRepository) ([]string, error) {
	categories, err := repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCategories, err)
	}
	return categories, nil
}

func (uc *NoteUseCase) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Second)
}

func (uc *NoteUseCase) invalidateCounts(ctx context.Context) {
	if err := uc.counts.Invalidate(ctx); err != nil {
		logger.Log(ctx).Warn(ctx, LogCountsCacheInvalidate, zap.Error(err))
	}
}
