package cache

import (
	"context"

	"notedesk/internal/notes/domain/entities"
	"notedesk/internal/notes/ports/cache"
)

// NoopCounts используется, когда Redis выключен: кэш всегда пуст.
type NoopCounts struct{}

// NewNoopCounts создает пустой кэш счетчиков.
func NewNoopCounts() cache.CountsCache {
	return NoopCounts{}
}

func (NoopCounts) Get(context.Context) (cache.CountsEntry, error) {
	return cache.CountsEntry{}, nil
}

func (NoopCounts) Set(context.Context, int64, entities.ViewCounts) error { return nil }

func (NoopCounts) Invalidate(context.Context) error { return nil }

func (NoopCounts) Close() error { return nil }
