// Package db предоставляет функционал для работы с базой данных сервиса заметок.
package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notedesk/internal/notes/config"
	"notedesk/migrations"
	"notedesk/pkg/db/postgres"
	"notedesk/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing notes database"
	LogDBInitialized     = "notes database initialized successfully"
	LogMigrationStarting = "starting database migrations for notes service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply notes database migrations"
	ErrDBConnection      = "failed to connect to notes database"
	ErrDBCheckConnection = "error checking the database connection"
)

// DB представляет соединение с базой данных сервиса заметок.
type DB struct {
	database *postgres.Database
}

// Migrate приводит схему базы данных к актуальному виду.
func Migrate(ctx context.Context, cfg *config.PostgresConfig) error {
	logger.Log(ctx).Info(ctx, LogMigrationStarting,
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	if err := postgres.MigrateFS(ctx, cfg.GetConnectionURL(), migrations.FS, migrations.NotesDir); err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	return nil
}

// New инициализирует соединение с базой данных, предварительно применив миграции.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	if err := Migrate(ctx, cfg); err != nil {
		return nil, err
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}

// Database возвращает доступ к базовой реализации для расширенных операций.
func (db *DB) Database() *postgres.Database {
	return db.database
}
