package reminder

import (
	"context"
	"testing"
	"time"

	"babycarebot/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(store *fakeStore, now time.Time) *Engine {
	e := NewEngine(DefaultConfig(), store, nil, zerolog.Nop())
	e.now = func() time.Time { return now }
	return e
}

func TestOnEventLoggedClearsCooldowns(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.addFamily(1, 100)
	store.setLast(1, model.EventFeeding, now.Add(-4*time.Hour))
	store.setLast(1, model.EventDiaper, now.Add(-time.Hour))

	e := newTestEngine(store, now)
	e.TickNow(context.Background())
	require.Len(t, drainAll(e.Queue()), 1)

	// Logging a feeding clears the feeding cooldowns, so the next due
	// cycle is not swallowed by the ledger.
	require.NoError(t, e.OnEventLogged(context.Background(), 1, model.EventFeeding))
	_, stillWarm := store.notified[ledgerKey(1, model.NotifyDueFeeding)]
	assert.False(t, stillWarm)

	// Interval passes again after the fresh feeding; the reminder repeats
	// even though the cooldown window has not elapsed since the first send.
	store.setLast(1, model.EventFeeding, now)
	e.now = func() time.Time { return now.Add(3*time.Hour + time.Minute) }
	e.TickNow(context.Background())
	assert.Len(t, drainAll(e.Queue()), 1)
}

func TestCurrentStatusIgnoresLedger(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.addFamily(1, 100)
	store.setLast(1, model.EventFeeding, now.Add(-3*time.Hour-30*time.Minute))
	// Warm cooldown must not hide the live state from an explicit check.
	store.notified[ledgerKey(1, model.NotifyDueFeeding)] = now.Add(-time.Minute)

	e := newTestEngine(store, now)
	reads := store.ledgerReads
	st, err := e.CurrentStatus(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, st.NeedsFeeding)
	assert.True(t, st.NeedsDiaper, "never-logged kinds are due immediately")
	assert.False(t, st.DiaperTracked)
	assert.True(t, st.FeedingTracked)
	assert.InDelta(t, 3.5, st.HoursSinceFeeding, 1e-9)
	assert.Equal(t, 3, st.FeedIntervalHours)
	assert.Equal(t, store.ledgerReads, reads, "status path never reads the ledger")
}

func TestEngineStartStop(t *testing.T) {
	store := newFakeStore()
	cfg := DefaultConfig()
	cfg.ScanInterval = 10 * time.Millisecond
	cfg.DrainInterval = 10 * time.Millisecond
	e := NewEngine(cfg, store, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	e.Stop()

	// Stop again is a no-op.
	e.Stop()
}

func TestTicksSerialized(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.addFamily(1, 100)
	store.setLast(1, model.EventFeeding, now.Add(-4*time.Hour))
	store.setLast(1, model.EventDiaper, now.Add(-time.Hour))

	e := newTestEngine(store, now)
	done := make(chan struct{}, 2)
	for i := 0; i < 2; i++ {
		go func() {
			e.TickNow(context.Background())
			done <- struct{}{}
		}()
	}
	<-done
	<-done

	// The second tick observed the first one's ledger writes.
	assert.Len(t, drainAll(e.Queue()), 1)
}
