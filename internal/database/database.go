package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultSessionID is the session used when none has been started
const DefaultSessionID = "default"

// Open creates and opens the SQLite database at path with proper settings
func Open(path string) (*sql.DB, error) {
	// Create the parent directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open with DSN options for SQLite pragmas
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates all necessary tables and the default session
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS screenings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		experience_years INTEGER NOT NULL DEFAULT 0,
		qualification TEXT NOT NULL DEFAULT 'unknown',
		score INTEGER NOT NULL,
		verdict TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT 'manual',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
		CHECK(experience_years >= 0),
		CHECK(score BETWEEN 0 AND 100),
		CHECK(verdict IN ('Weak', 'Average', 'Strong')),
		CHECK(source IN ('manual', 'bulk', 'document'))
	);

	CREATE INDEX IF NOT EXISTS idx_screenings_session ON screenings(session_id);
	CREATE INDEX IF NOT EXISTS idx_screenings_verdict ON screenings(verdict);

	INSERT OR IGNORE INTO sessions (id, name) VALUES ('default', 'Default session');
	`

	_, err := db.Exec(schema)
	return err
}
