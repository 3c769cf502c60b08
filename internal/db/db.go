package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps sql.DB for the babycare bot record store.
type DB struct {
	*sql.DB
}

// New opens the database at path and runs migrations.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if err := createTables(conn); err != nil {
		return nil, err
	}
	return &DB{conn}, nil
}

func createTables(conn *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS families (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			invite_code TEXT UNIQUE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS family_members (
			family_id INTEGER NOT NULL,
			user_id INTEGER PRIMARY KEY,
			role TEXT NOT NULL DEFAULT 'Parent',
			name TEXT NOT NULL DEFAULT '',
			joined_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (family_id) REFERENCES families(id)
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			family_id INTEGER PRIMARY KEY,
			feed_interval INTEGER NOT NULL DEFAULT 3,
			diaper_interval INTEGER NOT NULL DEFAULT 2,
			tips_enabled BOOLEAN NOT NULL DEFAULT 1,
			bath_reminder_enabled BOOLEAN NOT NULL DEFAULT 1,
			baby_birth_date DATETIME,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (family_id) REFERENCES families(id)
		)`,

		// Append-only caregiving event log, one table for all kinds.
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			family_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			author_id INTEGER NOT NULL,
			author_role TEXT NOT NULL DEFAULT '',
			author_name TEXT NOT NULL DEFAULT '',
			timestamp DATETIME NOT NULL,
			FOREIGN KEY (family_id) REFERENCES families(id)
		)`,

		// Notification ledger: at most one row per (family, kind).
		`CREATE TABLE IF NOT EXISTS notification_log (
			family_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			last_sent_at DATETIME NOT NULL,
			PRIMARY KEY (family_id, kind),
			FOREIGN KEY (family_id) REFERENCES families(id)
		)`,

		`CREATE TABLE IF NOT EXISTS tips (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			age_months INTEGER NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_members_family ON family_members(family_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_family_kind_time ON events(family_id, kind, timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notification_log_sent ON notification_log(last_sent_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tips_age ON tips(age_months)`,
	}

	for _, q := range queries {
		if _, err := conn.Exec(q); err != nil {
			return fmt.Errorf("exec migration %s: %w", trimSQL(q), err)
		}
	}
	return nil
}

func trimSQL(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
