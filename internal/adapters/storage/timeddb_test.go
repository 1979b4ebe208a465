package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"venueadmin/internal/adapters/http/perf"
)

func openTimedTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return db
}

const insertVenue = `INSERT INTO venue (id, name, sport, capacity, created_at) VALUES (?, ?, 'tennis', 4, '2026-01-01T00:00:00Z')`

// TestTimedDB_RecordsEveryCall verifies each wrapped call lands in the collector.
func TestTimedDB_RecordsEveryCall(t *testing.T) {
	collector := perf.NewCollector(100)
	tdb := NewTimedDB(openTimedTestDB(t), collector, 0)
	ctx := context.Background()

	if _, err := tdb.ExecContext(ctx, insertVenue, "v1", "Court 1"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	rows, err := tdb.QueryContext(ctx, "SELECT id FROM venue")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	rows.Close()

	var name string
	if err := tdb.QueryRowContext(ctx, "SELECT name FROM venue WHERE id = ?", "v1").Scan(&name); err != nil {
		t.Fatalf("QueryRowContext: %v", err)
	}
	if name != "Court 1" {
		t.Errorf("name = %q, want Court 1", name)
	}

	tx, err := tdb.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	tx.Rollback()

	if got := collector.TotalRecorded(); got != 4 {
		t.Errorf("TotalRecorded = %d, want 4", got)
	}
}

// TestTimedDB_NilCollector verifies the wrapper works without a collector.
func TestTimedDB_NilCollector(t *testing.T) {
	tdb := NewTimedDB(openTimedTestDB(t), nil, 0)
	if _, err := tdb.ExecContext(context.Background(), insertVenue, "v1", "Court 1"); err != nil {
		t.Fatalf("ExecContext with nil collector: %v", err)
	}
}

// TestTimedDB_ErrorPassthrough verifies driver errors are returned unchanged.
func TestTimedDB_ErrorPassthrough(t *testing.T) {
	tdb := NewTimedDB(openTimedTestDB(t), perf.NewCollector(10), 0)
	ctx := context.Background()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO missing_table VALUES (1)"); err == nil {
		t.Error("ExecContext on missing table: expected error")
	}
	var name string
	err := tdb.QueryRowContext(ctx, "SELECT name FROM venue WHERE id = ?", "nope").Scan(&name)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("QueryRowContext error = %v, want sql.ErrNoRows", err)
	}
}

// TestTimedDB_ResultPassthrough verifies sql.Result values are returned unchanged.
func TestTimedDB_ResultPassthrough(t *testing.T) {
	tdb := NewTimedDB(openTimedTestDB(t), nil, 0)
	result, err := tdb.ExecContext(context.Background(), insertVenue, "v1", "Court 1")
	if err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	if n, _ := result.RowsAffected(); n != 1 {
		t.Errorf("RowsAffected = %d, want 1", n)
	}
}

// TestTimedDB_RawDB verifies RawDB returns the original *sql.DB.
func TestTimedDB_RawDB(t *testing.T) {
	db := openTimedTestDB(t)
	tdb := NewTimedDB(db, nil, 0)
	if tdb.RawDB() != db {
		t.Error("RawDB() should return the original *sql.DB")
	}
}

// BenchmarkTimedDB_QueryRow measures instrumentation overhead on a point lookup.
func BenchmarkTimedDB_QueryRow(b *testing.B) {
	db, _ := sql.Open("sqlite", ":memory:")
	defer db.Close()
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		b.Fatalf("InitDB: %v", err)
	}
	db.Exec(insertVenue, "v1", "Court 1")
	tdb := NewTimedDB(db, perf.NewCollector(10000), 0)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var name string
		tdb.QueryRowContext(ctx, "SELECT name FROM venue WHERE id = ?", "v1").Scan(&name)
	}
}
