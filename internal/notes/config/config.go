// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"

	"go.uber.org/zap"

	"notedesk/pkg/config"
	"notedesk/pkg/logger"
)

// ServiceName - имя сервиса в логах загрузки конфигурации.
const ServiceName = "notes"

// Config представляет полную конфигурацию сервиса заметок.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	HTTP     HTTPConfig     `yaml:"http"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения или из YAML-файла, если указан path.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := config.Load[Config](ctx, ServiceName, path)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, "notes configuration",
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("postgres_db", cfg.Postgres.Database),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
