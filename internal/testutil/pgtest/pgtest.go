// Package pgtest поднимает схему в тестовой базе PostgreSQL.
// Тесты пропускаются, если NEIGHBORLY_TEST_DATABASE_DSN не задан.
// Схема пересоздаётся в каждом тесте, поэтому пакеты запускаются с go test -p 1.
package pgtest

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/AnushkaaaaS/Neighborly/pkg/dbmetrics"
)

// EnvDSN переменная окружения со строкой подключения к тестовой базе
const EnvDSN = "NEIGHBORLY_TEST_DATABASE_DSN"

// Open подключается к тестовой базе и пересоздаёт схему из migrations/
func Open(t *testing.T) *dbmetrics.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Ping())

	applyMigration(t, db, "001_init.down.sql")
	applyMigration(t, db, "001_init.up.sql")

	return dbmetrics.Wrap(db, nil)
}

func applyMigration(t *testing.T, db *sql.DB, name string) {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations", name)

	script, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(string(script))
	require.NoError(t, err, "apply %s", name)
}
