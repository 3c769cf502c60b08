package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"babycarebot/internal/model"

	"github.com/google/uuid"
)

var (
	// ErrFamilyNotFound is returned when an invite code or family ID
	// matches no family.
	ErrFamilyNotFound = errors.New("family not found")
	// ErrAlreadyMember is returned when a user already belongs to a family.
	ErrAlreadyMember = errors.New("user already belongs to a family")
)

// CreateFamily registers a new family with its creator as first member and
// default settings. Returns the family with its generated invite code.
func (db *DB) CreateFamily(ctx context.Context, name string, creatorID int64) (*model.Family, error) {
	var existing int64
	err := db.QueryRowContext(ctx,
		`SELECT family_id FROM family_members WHERE user_id = ?`, creatorID).Scan(&existing)
	if err == nil {
		return nil, ErrAlreadyMember
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check membership: %w", err)
	}

	code := strings.ToUpper(uuid.NewString()[:8])
	now := time.Now()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO families (name, invite_code, created_at) VALUES (?, ?, ?)`,
		name, code, now)
	if err != nil {
		return nil, fmt.Errorf("insert family: %w", err)
	}
	familyID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("family id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO family_members (family_id, user_id, role, name, joined_at)
		 VALUES (?, ?, 'Parent', '', ?)`,
		familyID, creatorID, now); err != nil {
		return nil, fmt.Errorf("insert creator: %w", err)
	}

	def := model.DefaultSettings(familyID)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO settings (family_id, feed_interval, diaper_interval, tips_enabled, bath_reminder_enabled, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		familyID, def.FeedIntervalHours, def.DiaperIntervalHours, def.TipsEnabled, def.BathReminderEnabled, now); err != nil {
		return nil, fmt.Errorf("insert settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &model.Family{ID: familyID, Name: name, InviteCode: code, CreatedAt: now}, nil
}

// JoinFamily adds a user to the family matching the invite code.
func (db *DB) JoinFamily(ctx context.Context, inviteCode string, userID int64) (*model.Family, error) {
	var f model.Family
	err := db.QueryRowContext(ctx,
		`SELECT id, name, invite_code, created_at FROM families WHERE invite_code = ?`,
		strings.ToUpper(strings.TrimSpace(inviteCode))).
		Scan(&f.ID, &f.Name, &f.InviteCode, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFamilyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find family: %w", err)
	}

	var existing int64
	err = db.QueryRowContext(ctx,
		`SELECT family_id FROM family_members WHERE user_id = ?`, userID).Scan(&existing)
	if err == nil {
		return nil, ErrAlreadyMember
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check membership: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO family_members (family_id, user_id, role, name, joined_at)
		 VALUES (?, ?, 'Parent', '', ?)`,
		f.ID, userID, time.Now()); err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return &f, nil
}

// GetFamily returns a family by ID.
func (db *DB) GetFamily(ctx context.Context, familyID int64) (*model.Family, error) {
	var f model.Family
	err := db.QueryRowContext(ctx,
		`SELECT id, name, invite_code, created_at FROM families WHERE id = ?`, familyID).
		Scan(&f.ID, &f.Name, &f.InviteCode, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFamilyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FamilyIDForUser returns the family a user belongs to, or 0 when none.
func (db *DB) FamilyIDForUser(ctx context.Context, userID int64) (int64, error) {
	var familyID int64
	err := db.QueryRowContext(ctx,
		`SELECT family_id FROM family_members WHERE user_id = ?`, userID).Scan(&familyID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return familyID, nil
}

// ListFamilyIDs enumerates every family, for the periodic scan.
func (db *DB) ListFamilyIDs(ctx context.Context) ([]int64, error) {
	rows, err := db.QueryContext(ctx, `SELECT id FROM families ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FamilyMembers returns every member of a family.
func (db *DB) FamilyMembers(ctx context.Context, familyID int64) ([]model.Member, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT family_id, user_id, role, name, joined_at
		 FROM family_members WHERE family_id = ? ORDER BY joined_at`, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.FamilyID, &m.UserID, &m.Role, &m.Name, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// SetMemberInfo updates a member's role and display name.
func (db *DB) SetMemberInfo(ctx context.Context, userID int64, role, name string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE family_members SET role = ?, name = ? WHERE user_id = ?`, role, name, userID)
	return err
}
