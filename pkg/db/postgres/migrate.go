package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres:// для migrate
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"notedesk/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrOpenMigrationSource     = "failed to open migration source"
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
)

const sourceName = "iofs"

// MigrateFS применяет миграции из каталога dir файловой системы fsys.
// Повторный запуск без новых миграций не считается ошибкой.
func MigrateFS(ctx context.Context, dsn string, fsys fs.FS, dir string) error {
	log := logger.Log(ctx).With(zap.String("migrations_dir", dir))

	src, err := iofs.New(fsys, dir)
	if err != nil {
		log.Error(ctx, ErrOpenMigrationSource, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrOpenMigrationSource, err)
	}

	m, err := migrate.NewWithSourceInstance(sourceName, src, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "failed to close migration instance",
				zap.NamedError("source_error", srcErr),
				zap.NamedError("database_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info(ctx, LogMigrationsNoop)
			return nil
		}
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}
