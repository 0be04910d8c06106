// Package storetest opens throwaway SQLite databases with the full schema
// migrated, for tests that need a real relational store.
package storetest

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petmeet/petmeet/models"
)

var seq atomic.Int64

// NewDB returns an in-memory database private to the calling test, with
// foreign keys enforced. It is closed when the test finishes.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", name, seq.Add(1))
	// One connection: the shared-cache database lives as long as it does.
	return open(t, dsn, 1)
}

// NewFileDB returns a WAL-mode database file in a temp dir served by up to
// conns connections, so concurrent writers really overlap.
func NewFileDB(t testing.TB, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "petmeet.db")
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)"
	return open(t, dsn, conns)
}

func open(t testing.TB, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}
