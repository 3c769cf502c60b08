package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"babycarebot/internal/model"
)

// LastNotified returns when a notification kind was last recorded for a
// family, or nil when no ledger entry exists.
func (db *DB) LastNotified(ctx context.Context, familyID int64, kind model.NotificationKind) (*time.Time, error) {
	var ts time.Time
	err := db.QueryRowContext(ctx, `
		SELECT last_sent_at FROM notification_log
		WHERE family_id = ? AND kind = ?`, familyID, kind).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// UpsertNotified records the send time for (family, kind) as a single atomic
// upsert, keeping at most one row per key.
func (db *DB) UpsertNotified(ctx context.Context, familyID int64, kind model.NotificationKind, at time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO notification_log (family_id, kind, last_sent_at)
		VALUES (?, ?, ?)
		ON CONFLICT(family_id, kind) DO UPDATE SET
			last_sent_at = excluded.last_sent_at`,
		familyID, kind, at)
	return err
}

// DeleteNotified removes ledger entries for the given kinds.
func (db *DB) DeleteNotified(ctx context.Context, familyID int64, kinds ...model.NotificationKind) error {
	if len(kinds) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(kinds))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, 0, len(kinds)+1)
	args = append(args, familyID)
	for _, k := range kinds {
		args = append(args, k)
	}
	_, err := db.ExecContext(ctx,
		`DELETE FROM notification_log WHERE family_id = ? AND kind IN (`+placeholders+`)`,
		args...)
	return err
}

// PurgeNotifiedBefore deletes ledger entries older than the cutoff and
// returns how many were removed. Advisory housekeeping only.
func (db *DB) PurgeNotifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM notification_log WHERE last_sent_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
