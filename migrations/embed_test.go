package migrations_test

import (
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedesk/migrations"
)

func TestFS_ContainsOrderedUpMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, migrations.NotesDir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{
		"000001_create_notes_table.up.sql",
		"000002_note_metadata.up.sql",
	}, names)
}

func TestFS_MetadataMigrationIsAdditive(t *testing.T) {
	raw, err := fs.ReadFile(migrations.FS, migrations.NotesDir+"/000002_note_metadata.up.sql")
	require.NoError(t, err)
	sql := string(raw)

	for _, column := range []string{
		"category", "status", "priority", "due_date",
		"is_pinned", "is_archived", "is_deleted", "updated_at",
	} {
		assert.Contains(t, sql, "ADD COLUMN IF NOT EXISTS "+column+" ", column)
	}
	for _, index := range []string{"idx_notes_state", "idx_notes_status", "idx_notes_category"} {
		assert.Contains(t, sql, "CREATE INDEX IF NOT EXISTS "+index)
	}
	assert.NotContains(t, strings.ToUpper(sql), "DROP ")
}

func TestFS_MigrateSource(t *testing.T) {
	src, err := iofs.New(migrations.FS, migrations.NotesDir)
	require.NoError(t, err)
	defer func() { assert.NoError(t, src.Close()) }()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	_, err = src.Next(next)
	require.ErrorIs(t, err, fs.ErrNotExist)

	for _, version := range []uint{first, next} {
		body, identifier, err := src.ReadUp(version)
		require.NoError(t, err)
		raw, err := io.ReadAll(body)
		require.NoError(t, err)
		require.NoError(t, body.Close())
		assert.NotEmpty(t, identifier)
		assert.NotEmpty(t, strings.TrimSpace(string(raw)))

		_, _, err = src.ReadDown(version)
		require.ErrorIs(t, err, fs.ErrNotExist, "version %d must not have a down migration", version)
	}
}
