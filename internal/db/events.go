package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"babycarebot/internal/model"
)

// AddEvent appends one event log entry.
func (db *DB) AddEvent(ctx context.Context, e *model.EventEntry) error {
	res, err := db.ExecContext(ctx, `
		INSERT INTO events (family_id, kind, author_id, author_role, author_name, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.FamilyID, e.Kind, e.AuthorID, e.AuthorRole, e.AuthorName, e.Timestamp)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

// LastEventTime returns the timestamp of the most recent event of the given
// kind, or nil when the family has never logged one.
func (db *DB) LastEventTime(ctx context.Context, familyID int64, kind model.EventKind) (*time.Time, error) {
	var ts time.Time
	err := db.QueryRowContext(ctx, `
		SELECT timestamp FROM events
		WHERE family_id = ? AND kind = ?
		ORDER BY timestamp DESC LIMIT 1`, familyID, kind).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// EventHistory returns the most recent entries of a kind, newest first.
func (db *DB) EventHistory(ctx context.Context, familyID int64, kind model.EventKind, limit int) ([]model.EventEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, family_id, kind, author_id, author_role, author_name, timestamp
		FROM events
		WHERE family_id = ? AND kind = ?
		ORDER BY timestamp DESC LIMIT ?`, familyID, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.EventEntry
	for rows.Next() {
		var e model.EventEntry
		if err := rows.Scan(&e.ID, &e.FamilyID, &e.Kind, &e.AuthorID,
			&e.AuthorRole, &e.AuthorName, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentEvents returns the most recent entries across all kinds, newest
// first. Used by the history view and exports.
func (db *DB) RecentEvents(ctx context.Context, familyID int64, limit int) ([]model.EventEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, family_id, kind, author_id, author_role, author_name, timestamp
		FROM events
		WHERE family_id = ?
		ORDER BY timestamp DESC LIMIT ?`, familyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.EventEntry
	for rows.Next() {
		var e model.EventEntry
		if err := rows.Scan(&e.ID, &e.FamilyID, &e.Kind, &e.AuthorID,
			&e.AuthorRole, &e.AuthorName, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// EventStats counts entries of a kind since the given time and reports the
// most recent timestamp.
func (db *DB) EventStats(ctx context.Context, familyID int64, kind model.EventKind, since time.Time) (*model.EventStats, error) {
	var stats model.EventStats
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM events
		WHERE family_id = ? AND kind = ? AND timestamp >= ?`,
		familyID, kind, since).Scan(&stats.Count)
	if err != nil {
		return nil, err
	}
	last, err := db.LastEventTime(ctx, familyID, kind)
	if err != nil {
		return nil, err
	}
	stats.LastTime = last
	return &stats, nil
}

// HasRecentEvent reports whether an event of the kind was logged within the
// threshold; the bot layer uses this for duplicate confirmation.
func (db *DB) HasRecentEvent(ctx context.Context, familyID int64, kind model.EventKind, within time.Duration, now time.Time) (bool, error) {
	last, err := db.LastEventTime(ctx, familyID, kind)
	if err != nil {
		return false, err
	}
	if last == nil {
		return false, nil
	}
	return now.Sub(*last) < within, nil
}
