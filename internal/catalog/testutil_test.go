package catalog

import (
	"database/sql"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestSeries(t *testing.T, store *Store, name string) *Series {
	t.Helper()
	s := &Series{Name: name}
	if err := store.AddSeries(s); err != nil {
		t.Fatalf("create test series: %v", err)
	}
	return s
}

func ptr[T any](v T) *T {
	return &v
}
