// Package redis предоставляет общую реализацию клиента Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound возвращается, когда ключ отсутствует.
var ErrKeyNotFound = errors.New("key not found")

const errConnect = "failed to connect to Redis"

// Client обертывает клиент Redis и предоставляет базовые операции.
type Client struct {
	client *redis.Client
}

// NewClient создает клиент Redis и проверяет соединение.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", errConnect, err)
	}

	return &Client{client: rdb}, nil
}

// Get получает значение по ключу. Для отсутствующего ключа возвращает ErrKeyNotFound.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

// Set устанавливает значение с указанным TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Incr атомарно увеличивает целое значение ключа и возвращает новое значение.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, key).Result()
}

// Delete удаляет ключи.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// Close закрывает соединение с Redis.
func (c *Client) Close() error {
	return c.client.Close()
}
