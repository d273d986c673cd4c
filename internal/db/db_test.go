package db_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/careconnect/homecare/internal/db"
)

// TestInit_WALMode verifies the DSN parameters enable WAL journal mode, the
// key SQLite setting for concurrent reads with single-writer throughput.
func TestInit_WALMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal_test.db")
	if err := db.Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}

	var mode string
	db.Conn().Raw("PRAGMA journal_mode").Scan(&mode)
	if mode != "wal" {
		t.Errorf("expected journal_mode=wal, got %q", mode)
	}
}

// TestInit_CreatesIndexes verifies Init() creates the composite booking
// indexes that GORM does not derive from struct tags.
func TestInit_CreatesIndexes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx_test.db")
	if err := db.Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}

	sqlDB, err := db.Conn().DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}

	found := indexNames(t, sqlDB, "bookings")
	for _, want := range []string{"idx_booking_caregiver_status", "idx_booking_customer_status"} {
		if !found[want] {
			t.Errorf("index %q missing from bookings table; found: %v", want, found)
		}
	}
}

func indexNames(t *testing.T, sqlDB *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := sqlDB.Query("PRAGMA index_list(" + table + ")")
	if err != nil {
		t.Fatalf("PRAGMA index_list: %v", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var seq int
		var name string
		var unique bool
		var origin, partial string
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			t.Fatalf("scan: %v", err)
		}
		out[name] = true
	}
	return out
}
