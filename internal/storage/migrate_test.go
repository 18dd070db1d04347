package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRerunKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-rerun.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	if err := repo.SetPreference(t.Context(), Preference{Key: KeyTheme, Value: "dark"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}
	got, err := repo.GetPreference(t.Context(), KeyTheme)
	if err != nil {
		t.Fatalf("get after rerun failed: %v", err)
	}
	if got.Value != "dark" {
		t.Fatalf("unexpected value after rerun: %q", got.Value)
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "twice.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	for i := 0; i < 2; i++ {
		if err := MigrateUp(db); err != nil {
			t.Fatalf("migrate up #%d: %v", i+1, err)
		}
	}
}
