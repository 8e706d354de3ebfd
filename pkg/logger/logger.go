// Package logger предоставляет структурированное логирование на основе zap
// с привязкой к контексту запроса.
package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment определяет режим работы logger.
type Environment string

// Поддерживаемые режимы.
const (
	Development Environment = "development"
	Production  Environment = "production"
)

// ParseEnvironment разбирает режим без учета регистра; все, кроме production, - Development.
func ParseEnvironment(mode string) Environment {
	if strings.EqualFold(strings.TrimSpace(mode), string(Production)) {
		return Production
	}
	return Development
}

// RequestID - имя поля с идентификатором запроса.
const RequestID = "request_id"

// Logger оборачивает zap.Logger и добавляет request_id из контекста.
type Logger struct {
	l *zap.Logger
}

// NewLogger создает logger для указанного окружения и уровня.
// Неизвестный или пустой уровень трактуется как info.
func NewLogger(env Environment, level string) (*Logger, error) {
	var cfg zap.Config
	if env == Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{l: zl}, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// With возвращает копию logger с дополнительными полями.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Info(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Warn(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Error(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Debug(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Fatal(msg, addRequestID(ctx, fields)...)
}

// Sync сбрасывает буферизованные записи.
func (l *Logger) Sync() error {
	return l.l.Sync()
}

func addRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if id, ok := GetRequestID(ctx); ok {
		return append(fields, zap.String(RequestID, id))
	}
	return fields
}
