package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"babycarebot/internal/model"
)

// GetSettings returns settings for a family. A family with no settings row
// gets defaults; that is a valid state, not an error.
func (db *DB) GetSettings(ctx context.Context, familyID int64) (*model.Settings, error) {
	row := db.QueryRowContext(ctx, `
		SELECT family_id, feed_interval, diaper_interval, tips_enabled,
		       bath_reminder_enabled, baby_birth_date, updated_at
		FROM settings
		WHERE family_id = ?`, familyID)

	var s model.Settings
	var birth sql.NullTime
	err := row.Scan(&s.FamilyID, &s.FeedIntervalHours, &s.DiaperIntervalHours,
		&s.TipsEnabled, &s.BathReminderEnabled, &birth, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(familyID), nil
	}
	if err != nil {
		return nil, err
	}
	if birth.Valid {
		t := birth.Time
		s.BabyBirthDate = &t
	}
	return &s, nil
}

// SetIntervals updates the feeding and/or diaper intervals. A nil pointer
// leaves that interval unchanged.
func (db *DB) SetIntervals(ctx context.Context, familyID int64, feedHours, diaperHours *int) error {
	s, err := db.GetSettings(ctx, familyID)
	if err != nil {
		return err
	}
	if feedHours != nil {
		s.FeedIntervalHours = *feedHours
	}
	if diaperHours != nil {
		s.DiaperIntervalHours = *diaperHours
	}
	return db.upsertSettings(ctx, s)
}

// SetTipsEnabled toggles the daily-tips feature for a family.
func (db *DB) SetTipsEnabled(ctx context.Context, familyID int64, enabled bool) error {
	s, err := db.GetSettings(ctx, familyID)
	if err != nil {
		return err
	}
	s.TipsEnabled = enabled
	return db.upsertSettings(ctx, s)
}

// SetBathReminderEnabled toggles bath reminders for a family.
func (db *DB) SetBathReminderEnabled(ctx context.Context, familyID int64, enabled bool) error {
	s, err := db.GetSettings(ctx, familyID)
	if err != nil {
		return err
	}
	s.BathReminderEnabled = enabled
	return db.upsertSettings(ctx, s)
}

// SetBirthDate records the baby's birth date.
func (db *DB) SetBirthDate(ctx context.Context, familyID int64, birthDate time.Time) error {
	s, err := db.GetSettings(ctx, familyID)
	if err != nil {
		return err
	}
	s.BabyBirthDate = &birthDate
	return db.upsertSettings(ctx, s)
}

func (db *DB) upsertSettings(ctx context.Context, s *model.Settings) error {
	var birth interface{}
	if s.BabyBirthDate != nil {
		birth = *s.BabyBirthDate
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (family_id, feed_interval, diaper_interval, tips_enabled,
		                      bath_reminder_enabled, baby_birth_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(family_id) DO UPDATE SET
			feed_interval = excluded.feed_interval,
			diaper_interval = excluded.diaper_interval,
			tips_enabled = excluded.tips_enabled,
			bath_reminder_enabled = excluded.bath_reminder_enabled,
			baby_birth_date = excluded.baby_birth_date,
			updated_at = excluded.updated_at`,
		s.FamilyID, s.FeedIntervalHours, s.DiaperIntervalHours, s.TipsEnabled,
		s.BathReminderEnabled, birth, time.Now())
	return err
}
