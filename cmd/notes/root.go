package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notedesk/internal/notes/config"
	"notedesk/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Note-taking web application backed by PostgreSQL",
	Long: `notes serves a small note manager: a filterable HTML listing with
pinning, archiving and a trash, plus a read-only JSON API.`,
	SilenceUsage: true,
}

// Execute запускает корневую команду.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to a YAML config file (environment variables are used when empty)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// action - тело подкоманды, получающее загруженную конфигурацию и итоговый логгер.
type action func(ctx context.Context, cfg *config.Config, log *logger.Logger) error

// run поднимает логгер из окружения, загружает конфигурацию, пересоздает логгер
// по ее настройкам и выполняет fn.
func run(fn action) error {
	log, err := logger.NewLogger(logger.ParseEnvironment(os.Getenv(EnvLoggerMode)), os.Getenv(EnvLoggerLevel))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	defer func() {
		syncLogger(log)
	}()

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return err
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return err
	}
	logger.SetGlobalLogger(finalLogger)
	log = finalLogger

	log.Debug(ctx, "logger configured",
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	return fn(ctx, cfg, log)
}

func syncLogger(log *logger.Logger) {
	if err := log.Sync(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
			return
		}
		if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
			panic(writeErr)
		}
	}
}
