// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lumetric/internal/storage"
)

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTestStore opens a migrated in-memory store scoped to the test.
// The shared-cache DSN is keyed by test name so the connection pool
// sees one database per test.
func SetupTestStore(t *testing.T) *storage.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	store := storage.NewStore(db, QuietLogger())
	require.NoError(t, store.Migrate())
	return store
}
