package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/dining-scout/migrations"
	"github.com/pkordes/dining-scout/testutil"
)

// tables lists every table the migrations create.
var tables = []string{"venue_rows"}

// TestMigrations_Postgres runs the up/down round-trip against the Postgres
// test database. Skipped when TEST_DATABASE_URL is not set.
func TestMigrations_Postgres(t *testing.T) {
	db := testutil.NewSQLDB(t)
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	roundTrip(t, db, goose.DialectPostgres, q)
}

// TestMigrations_SQLite runs the same round-trip against a fresh SQLite file.
func TestMigrations_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	const q = `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`
	roundTrip(t, db, goose.DialectSQLite3, q)
}

// roundTrip resets to version 0, applies every migration, checks the tables
// exist, rolls everything back and checks they are gone. existsQuery takes
// the table name as its only parameter.
func roundTrip(t *testing.T, db *sql.DB, dialect goose.Dialect, existsQuery string) {
	t.Helper()
	ctx := context.Background()

	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	// Another package's TestMain may already have migrated a shared database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")
	for _, table := range tables {
		assert.True(t, tableExists(t, db, existsQuery, table), "expected table %q to exist", table)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	for _, table := range tables {
		assert.False(t, tableExists(t, db, existsQuery, table), "expected table %q to be dropped", table)
	}
}

func tableExists(t *testing.T, db *sql.DB, query, table string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRowContext(context.Background(), query, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)
	return exists
}
