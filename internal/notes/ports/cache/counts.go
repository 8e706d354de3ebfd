// Package cache определяет интерфейсы кэширования сервиса заметок.
package cache

import (
	"context"

	"notedesk/internal/notes/domain/entities"
)

// CountsEntry - результат чтения кэша счетчиков.
type CountsEntry struct {
	Counts entities.ViewCounts
	// Version - версия кэша на момент чтения. После промаха значение из хранилища
	// записывается именно под этой версией.
	Version int64
	Hit     bool
}

// CountsCache хранит количество заметок по представлениям.
// Invalidate повышает версию, поэтому Set со старой версией уже не виден читателям.
type CountsCache interface {
	Get(ctx context.Context) (CountsEntry, error)
	Set(ctx context.Context, version int64, counts entities.ViewCounts) error
	Invalidate(ctx context.Context) error
	Close() error
}
