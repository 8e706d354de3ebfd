// Package postgres содержит общие компоненты для работы с PostgreSQL:
// пул соединений и применение миграций.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"notedesk/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting        = "connecting to Postgres database"
	LogConnected         = "successfully connected to Postgres"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
	LogMigrationsNoop    = "database schema is up to date"
)

// Константы для сообщений об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
	ErrAcquireConn  = "failed to acquire connection"
)

// Database представляет соединение с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New создает пул соединений с базой данных Postgres и проверяет его доступность.
func New(ctx context.Context, dsn string, minConn, maxConn int) (*Database, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogConnecting)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}

	poolCfg.MinConns = int32(minConn) //nolint:gosec
	poolCfg.MaxConns = int32(maxConn) //nolint:gosec

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected,
		zap.Int32("min_conns", poolCfg.MinConns),
		zap.Int32("max_conns", poolCfg.MaxConns))
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Acquire берет одно соединение из пула. Вызывающий обязан вернуть его через Release.
func (db *Database) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrAcquireConn, err)
	}
	return conn, nil
}

// Close закрывает пул соединений.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
