package db

import (
	"context"
	"database/sql"
	"errors"

	"babycarebot/internal/model"
)

// fallbackTip is returned when the tips table has nothing for any age.
const fallbackTip = "Every baby is unique! Follow your pediatrician's advice and trust your instincts."

// RandomTip returns a random tip for the given age in months. When no tip
// exists for the exact age it falls back to the nearest younger age, then the
// nearest older age up to 12 months, then a generic tip.
func (db *DB) RandomTip(ctx context.Context, ageMonths int) (string, error) {
	tip, err := db.randomTipForAge(ctx, ageMonths)
	if err != nil {
		return "", err
	}
	if tip != "" {
		return tip, nil
	}

	for age := ageMonths - 1; age >= 0; age-- {
		tip, err = db.randomTipForAge(ctx, age)
		if err != nil {
			return "", err
		}
		if tip != "" {
			return tip, nil
		}
	}
	for age := ageMonths + 1; age <= 12; age++ {
		tip, err = db.randomTipForAge(ctx, age)
		if err != nil {
			return "", err
		}
		if tip != "" {
			return tip, nil
		}
	}
	return fallbackTip, nil
}

func (db *DB) randomTipForAge(ctx context.Context, ageMonths int) (string, error) {
	var content string
	err := db.QueryRowContext(ctx, `
		SELECT content FROM tips
		WHERE age_months = ?
		ORDER BY RANDOM() LIMIT 1`, ageMonths).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// AddTip inserts a tip.
func (db *DB) AddTip(ctx context.Context, t *model.Tip) error {
	res, err := db.ExecContext(ctx,
		`INSERT INTO tips (age_months, category, content) VALUES (?, ?, ?)`,
		t.AgeMonths, t.Category, t.Content)
	if err != nil {
		return err
	}
	t.ID, _ = res.LastInsertId()
	return nil
}
