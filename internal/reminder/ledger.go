package reminder

import (
	"context"
	"time"

	"babycarebot/internal/model"
)

// Ledger answers "was kind K sent to family F recently?" over the persisted
// notification log. The scanner is the only writer of send entries; the
// acknowledgment path is the only writer that clears them.
type Ledger struct {
	store Store
	now   func() time.Time
}

// NewLedger creates a cooldown ledger over the store.
func NewLedger(store Store, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{store: store, now: now}
}

// RecentlySent reports whether a notification of this kind was recorded
// within the window. A missing entry is simply "not sent".
func (l *Ledger) RecentlySent(ctx context.Context, familyID int64, kind model.NotificationKind, window time.Duration) (bool, error) {
	last, err := l.store.LastNotified(ctx, familyID, kind)
	if err != nil {
		return false, err
	}
	if last == nil {
		return false, nil
	}
	return l.now().Sub(*last) < window, nil
}

// RecordSent upserts the send time for (family, kind).
func (l *Ledger) RecordSent(ctx context.Context, familyID int64, kind model.NotificationKind, at time.Time) error {
	return l.store.UpsertNotified(ctx, familyID, kind, at)
}

// Clear removes ledger entries so the next legitimate due cycle is not
// suppressed by stale cooldown state.
func (l *Ledger) Clear(ctx context.Context, familyID int64, kinds ...model.NotificationKind) error {
	return l.store.DeleteNotified(ctx, familyID, kinds...)
}

// Purge drops entries older than the retention window. Housekeeping, not
// correctness: an old entry only wastes a row.
func (l *Ledger) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	return l.store.PurgeNotifiedBefore(ctx, l.now().Add(-retention))
}
