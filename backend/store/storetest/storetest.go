// Package storetest opens throwaway stores for tests.
package storetest

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"coursecms/backend/config"
	"coursecms/backend/store"
)

// New returns a migrated sqlite-backed store living in the test's temp dir.
func New(t testing.TB) *store.GormStore {
	t.Helper()

	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "content.db"),
	}
	st, err := store.NewGorm(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("opening sqlite store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}
