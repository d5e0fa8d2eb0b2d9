package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SetupSharedTestDB creates a file-backed SQLite database in a temp directory
// and returns two independent connections to it, schema applied.
//
// WHY: In-memory databases are private to their connection, so write-lock
// contention between connections can only be exercised against a shared file.
// The busy timeout is zeroed so lock conflicts surface immediately instead of
// being absorbed inside the driver.
func SetupSharedTestDB(t *testing.T) (*sql.DB, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "journal.db")

	first := openSharedTestDB(t, path)
	if err := createTestSchema(first); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	second := openSharedTestDB(t, path)

	return first, second
}

func openSharedTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(0)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection per handle keeps lock ownership unambiguous.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Open positions, one row per ticker
		CREATE TABLE position (
			ticker VARCHAR(10) NOT NULL PRIMARY KEY,
			shares INTEGER NOT NULL,
			buy_price TEXT NOT NULL,
			stop_loss TEXT,
			cost_basis TEXT NOT NULL
		);

		-- Single-row cash account
		CREATE TABLE cash (
			id INTEGER PRIMARY KEY CHECK (id = 0),
			balance TEXT NOT NULL
		);

		-- Append-only trade log
		CREATE TABLE trade_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date DATE NOT NULL,
			ticker VARCHAR(10) NOT NULL,
			shares_bought INTEGER NOT NULL DEFAULT 0,
			buy_price TEXT NOT NULL DEFAULT '0',
			cost_basis TEXT NOT NULL DEFAULT '0',
			pnl TEXT NOT NULL DEFAULT '0',
			reason TEXT NOT NULL DEFAULT '',
			shares_sold INTEGER NOT NULL DEFAULT 0,
			sell_price TEXT NOT NULL DEFAULT '0',
			deposit TEXT NOT NULL DEFAULT '0',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Daily valuation rows including the TOTAL aggregate
		CREATE TABLE portfolio_history (
			date DATE NOT NULL,
			ticker VARCHAR(10) NOT NULL,
			shares INTEGER NOT NULL DEFAULT 0,
			cost_basis TEXT NOT NULL DEFAULT '0',
			stop_loss TEXT,
			current_price TEXT NOT NULL DEFAULT '0',
			total_value TEXT NOT NULL DEFAULT '0',
			pnl TEXT NOT NULL DEFAULT '0',
			action VARCHAR(10) NOT NULL DEFAULT '',
			cash_balance TEXT NOT NULL DEFAULT '0',
			total_equity TEXT NOT NULL DEFAULT '0',
			PRIMARY KEY (date, ticker)
		);

		CREATE INDEX ix_trade_log_date ON trade_log(date);
		CREATE INDEX ix_trade_log_ticker ON trade_log(ticker);
		CREATE INDEX ix_portfolio_history_date ON portfolio_history(date);
		CREATE INDEX ix_portfolio_history_ticker ON portfolio_history(ticker);
	`

	_, err := db.Exec(schema)
	return err
}
