package migrations_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedesk/migrations"
	"notedesk/pkg/db/postgres"
)

// EnvTestDatabaseURL указывает на одноразовую базу: тест удаляет таблицу notes.
const EnvTestDatabaseURL = "NOTES_TEST_DATABASE_URL"

const skipNoDatabaseMsg = "Skipping test - " + EnvTestDatabaseURL + " is not set"

const legacySchema = `
DROP TABLE IF EXISTS notes;
DROP TABLE IF EXISTS schema_migrations;
CREATE TABLE notes (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
INSERT INTO notes (title, content, created_at) VALUES
    ('Legacy one', 'kept body', '2024-01-02 03:04:05'),
    ('Legacy two', NULL, '2024-02-03 04:05:06');`

func TestMigrate_UpgradesLegacyTable(t *testing.T) {
	url := os.Getenv(EnvTestDatabaseURL)
	if url == "" {
		t.Skip(skipNoDatabaseMsg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	defer func() { assert.NoError(t, conn.Close(ctx)) }()

	_, err = conn.Exec(ctx, legacySchema)
	require.NoError(t, err)

	require.NoError(t, postgres.MigrateFS(ctx, url, migrations.FS, migrations.NotesDir))
	// Повторный запуск ничего не меняет.
	require.NoError(t, postgres.MigrateFS(ctx, url, migrations.FS, migrations.NotesDir))

	t.Run("existing rows keep data and get defaults", func(t *testing.T) {
		rows, err := conn.Query(ctx, `
			SELECT title, content, category, status, priority, due_date IS NULL,
			       is_pinned, is_archived, is_deleted, updated_at = created_at
			  FROM notes ORDER BY id`)
		require.NoError(t, err)
		defer rows.Close()

		type row struct {
			title, content, category, status, priority string
			noDue, pinned, archived, deleted, sameTime bool
		}
		var got []row
		for rows.Next() {
			var r row
			require.NoError(t, rows.Scan(&r.title, &r.content, &r.category, &r.status, &r.priority,
				&r.noDue, &r.pinned, &r.archived, &r.deleted, &r.sameTime))
			got = append(got, r)
		}
		require.NoError(t, rows.Err())

		assert.Equal(t, []row{
			{"Legacy one", "kept body", "general", "todo", "medium", true, false, false, false, true},
			{"Legacy two", "", "general", "todo", "medium", true, false, false, false, true},
		}, got)
	})

	t.Run("indexes exist", func(t *testing.T) {
		for _, index := range []string{"idx_notes_state", "idx_notes_status", "idx_notes_category"} {
			var exists bool
			err := conn.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE tablename = 'notes' AND indexname = $1)`,
				index).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, index)
		}
	})

	t.Run("new rows use column defaults", func(t *testing.T) {
		var category, status, priority string
		var pinned bool
		err := conn.QueryRow(ctx,
			`INSERT INTO notes (title) VALUES ('Fresh') RETURNING category, status, priority, is_pinned`).
			Scan(&category, &status, &priority, &pinned)
		require.NoError(t, err)
		assert.Equal(t, "general", category)
		assert.Equal(t, "todo", status)
		assert.Equal(t, "medium", priority)
		assert.False(t, pinned)
	})
}
