package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS venue (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		sport TEXT NOT NULL,
		capacity INTEGER NOT NULL,
		hourly_rate_cents INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS client (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		document TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS booking (
		id TEXT PRIMARY KEY,
		venue_id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		starts_at TEXT NOT NULL,
		ends_at TEXT NOT NULL,
		status TEXT NOT NULL,
		price_cents INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (venue_id) REFERENCES venue(id),
		FOREIGN KEY (client_id) REFERENCES client(id)
	);

	CREATE INDEX IF NOT EXISTS idx_booking_venue_start ON booking(venue_id, starts_at);

	CREATE TABLE IF NOT EXISTS receivable (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		booking_id TEXT,
		description TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		due_date TEXT NOT NULL,
		paid_at TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (client_id) REFERENCES client(id)
	);

	CREATE TABLE IF NOT EXISTS user_group (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		permissions TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS app_user (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		group_id TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		FOREIGN KEY (group_id) REFERENCES user_group(id)
	);

	CREATE TABLE IF NOT EXISTS table_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
