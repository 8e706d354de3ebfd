// Package config предоставляет функциональность для загрузки конфигурации
// из переменных окружения или YAML-файла.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"notedesk/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
	attrSource  = "source"

	sourceEnv  = "env"
	sourceFile = "file"
)

// Load заполняет структуру T. Если path пустой, значения берутся из окружения,
// иначе читается файл (переменные окружения при этом имеют приоритет).
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx)

	source := sourceEnv
	if path != "" {
		source = sourceFile
	}

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrSource, source),
		zap.String(attrPath, path))

	var cfg T

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded,
		zap.String(attrService, serviceName))

	return &cfg, nil
}
