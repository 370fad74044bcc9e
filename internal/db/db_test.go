package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	sqlDB, err := Open(":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, Migrate(sqlDB))
	require.NoError(t, Migrate(sqlDB))

	for _, table := range []string{"users", "games", "game_links", "daily_results"} {
		var name string
		err := sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	var n int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrateFSOrderAndFailure(t *testing.T) {
	sqlDB, err := Open(":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()

	files := fstest.MapFS{
		"002_b.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('b');`)},
		"001_a.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
	}
	require.NoError(t, migrateFS(sqlDB, files))

	var v string
	require.NoError(t, sqlDB.QueryRow(`SELECT v FROM t`).Scan(&v))
	assert.Equal(t, "b", v)

	bad := fstest.MapFS{"003_bad.sql": {Data: []byte(`NOT SQL AT ALL;`)}}
	assert.Error(t, migrateFS(sqlDB, bad))
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	sqlDB, err := Open(path)
	require.NoError(t, err)
	defer sqlDB.Close()
	require.NoError(t, Migrate(sqlDB))
}
