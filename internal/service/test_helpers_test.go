package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pcannon/fishlog-cli/internal/db"
	"github.com/pcannon/fishlog-cli/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fishlog.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func mustCreateTrip(t *testing.T, sqldb *sql.DB, in service.CreateTripInput) int64 {
	t.Helper()
	id, err := service.CreateTrip(sqldb, in)
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return id
}

func mustCreateCatch(t *testing.T, sqldb *sql.DB, in service.CreateCatchInput) int64 {
	t.Helper()
	id, err := service.CreateCatch(sqldb, in)
	if err != nil {
		t.Fatalf("create catch: %v", err)
	}
	return id
}
