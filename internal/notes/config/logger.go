package config

import (
	"notedesk/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment возвращает режим логгера; см. logger.ParseEnvironment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	return logger.ParseEnvironment(l.Mode)
}
