package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/migrations"
	"github.com/jtreml/wayfarer/backend/testutil"
)

var allTables = []string{
	"trips", "destinations", "accommodations", "transports",
	"day_plans", "day_activities", "expenses", "tasks", "documents",
	"packing_lists", "packing_categories", "packing_items",
	"gamification_stats", "achievement_unlocks",
}

// TestMigrations is an integration test that verifies the full migration
// round-trip against a real Postgres database:
//
//  1. Apply all migrations (goose up).
//  2. Assert every expected table exists.
//  3. Roll back all migrations (goose down-to 0).
//  4. Assert every table has been removed.
//
// The test is skipped automatically when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(
		goose.DialectPostgres,
		db,
		migrations.FS,
	)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may have already applied migrations against
	// this shared test DB. Reset to version 0 first so this test is
	// order-independent, whether run alone or as part of the full suite.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations: initial reset: %v", err)
	}

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")

	for _, table := range allTables {
		assertTablePresence(t, db, table, true)
	}

	// Every ordered collection carries a deferred uniqueness constraint on its
	// order_index so concurrent appends cannot mint duplicate positions, while
	// in-transaction renumbering may still pass rows through each other.
	for _, constraint := range []string{
		"destinations_trip_order_key",
		"day_activities_plan_order_key",
		"packing_categories_list_order_key",
		"packing_items_category_order_key",
	} {
		assertDeferredUnique(t, db, constraint)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range allTables {
		assertTablePresence(t, db, table, false)
	}
}

func assertDeferredUnique(t *testing.T, db *sql.DB, name string) {
	t.Helper()

	const q = `
		SELECT contype, condeferrable, condeferred
		FROM pg_constraint
		WHERE conname = $1`
	var (
		contype                       string
		deferrable, deferredByDefault bool
	)
	err := db.QueryRowContext(context.Background(), q, name).Scan(&contype, &deferrable, &deferredByDefault)
	require.NoError(t, err, "constraint %q not found", name)

	assert.Equal(t, "u", contype, "constraint %q should be a unique constraint", name)
	assert.True(t, deferrable, "constraint %q should be deferrable", name)
	assert.True(t, deferredByDefault, "constraint %q should be initially deferred", name)
}

func assertTablePresence(t *testing.T, db *sql.DB, table string, shouldExist bool) {
	t.Helper()

	// Use the information_schema to check table existence in a portable way.
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)

	if shouldExist {
		assert.True(t, exists, "expected table %q to exist", table)
	} else {
		assert.False(t, exists, "expected table %q to not exist", table)
	}
}
