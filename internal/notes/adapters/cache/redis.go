// Package cache содержит реализации кэша количества заметок.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"notedesk/internal/notes/domain/entities"
	"notedesk/internal/notes/ports/cache"
	"notedesk/pkg/db/redis"
	"notedesk/pkg/logger"
)

// Ключи Redis кэша счетчиков. Значение хранится под CountsKeyPrefix + версия.
const (
	CountsVersionKey = "notes:counts:version"
	CountsKeyPrefix  = "notes:counts:v"
)

// Константы для логирования.
const (
	ErrorFailedToGet        = "failed to get counts from redis"
	ErrorFailedToGetVersion = "failed to get counts version from redis"
	ErrorFailedToSet        = "failed to set counts in redis"
	ErrorFailedToInvalidate = "failed to invalidate counts in redis"
	ErrorFailedToDecode     = "failed to decode cached counts"
	ErrorFailedToEncode     = "failed to encode counts"
	LogStaleDeleteFailed    = "failed to delete stale counts"
)

// Store - операции Redis, нужные кэшу счетчиков.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// RedisCounts хранит счетчики представлений в Redis в виде JSON.
type RedisCounts struct {
	store Store
	ttl   time.Duration
}

// NewRedisCounts создает кэш счетчиков поверх клиента Redis.
func NewRedisCounts(store Store, ttl time.Duration) cache.CountsCache {
	return &RedisCounts{store: store, ttl: ttl}
}

// CountsKey возвращает ключ значения для версии.
func CountsKey(version int64) string {
	return CountsKeyPrefix + strconv.FormatInt(version, 10)
}

// Get возвращает счетчики текущей версии.
func (c *RedisCounts) Get(ctx context.Context) (cache.CountsEntry, error) {
	log := logger.Log(ctx).With(zap.String("method", "RedisCounts.Get"))

	version, err := c.version(ctx)
	if err != nil {
		log.Warn(ctx, ErrorFailedToGetVersion, zap.Error(err))
		return cache.CountsEntry{}, err
	}

	entry := cache.CountsEntry{Version: version}
	raw, err := c.store.Get(ctx, CountsKey(version))
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return entry, nil
		}
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return entry, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	if err := json.Unmarshal(raw, &entry.Counts); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return cache.CountsEntry{Version: version}, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	log.Debug(ctx, "counts cache hit", zap.Int64("version", version))
	entry.Hit = true
	return entry, nil
}

// Set сохраняет счетчики, прочитанные при версии version, с настроенным TTL.
func (c *RedisCounts) Set(ctx context.Context, version int64, counts entities.ViewCounts) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	if err := c.store.Set(ctx, CountsKey(version), raw, c.ttl); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Invalidate повышает версию кэша и удаляет значение предыдущей версии.
func (c *RedisCounts) Invalidate(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", "RedisCounts.Invalidate"))

	version, err := c.store.Incr(ctx, CountsVersionKey)
	if err != nil {
		log.Warn(ctx, ErrorFailedToInvalidate, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToInvalidate, err)
	}

	// Старое значение больше не читается; при ошибке оно истечет по TTL.
	if err := c.store.Delete(ctx, CountsKey(version-1)); err != nil {
		log.Warn(ctx, LogStaleDeleteFailed, zap.Error(err))
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisCounts) Close() error {
	return c.store.Close()
}

func (c *RedisCounts) version(ctx context.Context) (int64, error) {
	raw, err := c.store.Get(ctx, CountsVersionKey)
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", ErrorFailedToGetVersion, err)
	}

	version, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrorFailedToGetVersion, err)
	}
	return version, nil
}
