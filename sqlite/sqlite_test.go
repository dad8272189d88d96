package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagekeep/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		// Verify the settings table exists by querying it
		var count int
		err = db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM settings").Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}

func TestDB_Migrate(t *testing.T) {
	t.Parallel()

	t.Run("records current schema version", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)

		v, err := db.Version(context.Background())
		require.NoError(t, err)
		assert.Equal(t, sqlite.SchemaVersion, v)
	})

	t.Run("is idempotent across reopen", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pagekeep.db")
		for i := 0; i < 2; i++ {
			db := sqlite.NewDB(path)
			require.NoError(t, db.Open())
			v, err := db.Version(context.Background())
			require.NoError(t, err)
			assert.Equal(t, sqlite.SchemaVersion, v)
			require.NoError(t, db.Close())
		}
	})

	t.Run("upgrades a version 1 database keeping valid settings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "old.db")
		raw, err := sql.Open("sqlite3", path)
		require.NoError(t, err)
		_, err = raw.Exec(`
			CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TEXT NOT NULL);
			INSERT INTO settings VALUES ('serverUrl', '"http://10.0.0.5:5000"', '2024-01-01T00:00:00Z');
			INSERT INTO settings VALUES ('whitelistedDomains', 'not json', '2024-01-01T00:00:00Z');
			INSERT INTO settings VALUES ('theme', '"dark"', '2024-01-01T00:00:00Z');
			PRAGMA user_version = 1;
		`)
		require.NoError(t, err)
		require.NoError(t, raw.Close())

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		settings, err := sqlite.NewSettingsService(db).Settings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.5:5000", settings.ServerURL)
		assert.Empty(t, settings.WhitelistedDomains)

		var count int
		require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM settings").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("rejects unknown keys and non-JSON values", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		ctx := context.Background()

		_, err := db.ExecContext(ctx, `INSERT INTO settings VALUES ('theme', '"dark"', '')`)
		assert.Error(t, err)

		_, err = db.ExecContext(ctx, `INSERT INTO settings VALUES ('serverUrl', 'http://x', '')`)
		assert.Error(t, err)
	})

	t.Run("refuses a database from a newer version", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.db")
		raw, err := sql.Open("sqlite3", path)
		require.NoError(t, err)
		_, err = raw.Exec("PRAGMA user_version = 99")
		require.NoError(t, err)
		require.NoError(t, raw.Close())

		err = sqlite.NewDB(path).Open()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "newer than supported")
	})
}

// openDB opens an in-memory database and closes it when the test ends.
func openDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}
