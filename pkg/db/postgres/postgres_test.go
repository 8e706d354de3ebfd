package postgres_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedesk/pkg/db/postgres"
)

const (
	invalidDSN = "host=localhost port=not_a_port"
	//nolint:gosec
	unreachableDSN = "host=127.0.0.1 port=1 user=u password=p dbname=d sslmode=disable connect_timeout=1"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid dsn", func(t *testing.T) {
		database, err := postgres.New(ctx, invalidDSN, 1, 2)
		require.Error(t, err)
		assert.Nil(t, database)
		assert.Contains(t, err.Error(), postgres.ErrParseConfig)
	})

	t.Run("unreachable host", func(t *testing.T) {
		database, err := postgres.New(ctx, unreachableDSN, 1, 2)
		require.Error(t, err)
		assert.Nil(t, database)
		assert.Contains(t, err.Error(), postgres.ErrPingDatabase)
	})
}

func TestMigrateFS(t *testing.T) {
	t.Run("missing migrations directory", func(t *testing.T) {
		err := postgres.MigrateFS(context.Background(), "postgres://u:p@127.0.0.1:1/d?sslmode=disable",
			fstest.MapFS{}, "absent")
		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrOpenMigrationSource)
	})
}
