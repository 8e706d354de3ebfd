// Package repositories определяет интерфейсы хранилища сервиса заметок.
package repositories

import (
	"context"
	"time"

	"notedesk/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
// Update, TogglePin, ToggleArchive и Trash возвращают entities.ErrNoteNotFound,
// если заметки нет или она уже в корзине. Purge - только если заметки нет.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Note, error)
	List(ctx context.Context, filter entities.Filter) ([]*entities.Note, error)
	Counts(ctx context.Context) (entities.ViewCounts, error)
	Categories(ctx context.Context) ([]string, error)

	Update(ctx context.Context, id int64, fields entities.NoteFields, at time.Time) error
	TogglePin(ctx context.Context, id int64, at time.Time) error
	ToggleArchive(ctx context.Context, id int64, at time.Time) error
	Trash(ctx context.Context, id int64, at time.Time) error
	// Restore возвращает false, если заметка существует, но не находится в корзине.
	Restore(ctx context.Context, id int64, at time.Time) (bool, error)
	Purge(ctx context.Context, id int64) error

	// InTx выполняет fn в одной транзакции; ошибка fn откатывает транзакцию.
	InTx(ctx context.Context, fn func(repo NoteRepository) error) error
}

// Store выдает репозиторий поверх соединения, закрепленного за одним запросом.
// Функция release должна быть вызвана ровно один раз на любом пути выхода.
type Store interface {
	Acquire(ctx context.Context) (repo NoteRepository, release func(), err error)
}
