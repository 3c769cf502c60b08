package reminder

import (
	"context"
	"testing"
	"time"

	"babycarebot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRecentlySent(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 600 * time.Minute

	tests := []struct {
		name   string
		sentAt *time.Time
		recent bool
	}{
		{"never sent", nil, false},
		{"just sent", ptr(now.Add(-time.Second)), true},
		{"inside window", ptr(now.Add(-599 * time.Minute)), true},
		{"exactly at window", ptr(now.Add(-window)), false},
		{"outside window", ptr(now.Add(-601 * time.Minute)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			if tt.sentAt != nil {
				store.notified[ledgerKey(1, model.NotifyDueFeeding)] = *tt.sentAt
			}
			ledger := NewLedger(store, func() time.Time { return now })

			recent, err := ledger.RecentlySent(context.Background(), 1, model.NotifyDueFeeding, window)
			require.NoError(t, err)
			assert.Equal(t, tt.recent, recent)
		})
	}
}

func TestLedgerClearOnlyNamedKinds(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	for _, k := range []model.NotificationKind{
		model.NotifyDueFeeding, model.NotifyOverdueFeeding, model.NotifyDueDiaper,
	} {
		store.notified[ledgerKey(1, k)] = now
	}
	ledger := NewLedger(store, func() time.Time { return now })

	err := ledger.Clear(context.Background(), 1, model.KindsForEvent(model.EventFeeding)...)
	require.NoError(t, err)

	_, feedDue := store.notified[ledgerKey(1, model.NotifyDueFeeding)]
	_, feedOver := store.notified[ledgerKey(1, model.NotifyOverdueFeeding)]
	_, diaperDue := store.notified[ledgerKey(1, model.NotifyDueDiaper)]
	assert.False(t, feedDue)
	assert.False(t, feedOver)
	assert.True(t, diaperDue, "other event's entries untouched")
}

func TestLedgerPurgeCutoff(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.notified[ledgerKey(1, model.NotifyDueFeeding)] = now.Add(-8 * 24 * time.Hour)
	store.notified[ledgerKey(2, model.NotifyDueFeeding)] = now.Add(-time.Hour)
	ledger := NewLedger(store, func() time.Time { return now })

	purged, err := ledger.Purge(context.Background(), 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	assert.Equal(t, now.Add(-7*24*time.Hour), store.purgeCutoff)
	_, fresh := store.notified[ledgerKey(2, model.NotifyDueFeeding)]
	assert.True(t, fresh)
}

func ptr(t time.Time) *time.Time { return &t }
