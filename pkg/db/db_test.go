package db

import (
	"path/filepath"
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// every connection to :memory: is a separate database
	database.SetMaxOpenConns(1)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestOpenPath_InitializesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "runs.db")

	db, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	defer db.Close()

	if db.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", db.Path(), dbPath)
	}

	for _, table := range []string{"documents", "runs", "run_metrics"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	// reopening an initialized database must not fail
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	db2, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("second OpenPath() error = %v", err)
	}
	db2.Close()
}
