// Package reminder implements the multi-tenant reminder evaluation and
// delivery engine: the periodic family scan, the cooldown ledger, the
// in-memory notification queue and the delivery loop that drains it.
package reminder

import (
	"context"
	"sync"
	"time"

	"babycarebot/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Config holds the engine's scheduling and policy knobs.
type Config struct {
	// ScanInterval is how often all families are evaluated.
	ScanInterval time.Duration
	// DrainInterval is how often the delivery queue is drained.
	DrainInterval time.Duration
	// CooldownWindow suppresses repeat due/overdue notifications.
	CooldownWindow time.Duration
	// TickTimeout bounds one evaluation tick; exceeding it abandons the
	// remainder of that tick's family loop.
	TickTimeout time.Duration
	// LedgerRetention is how long sent entries are kept before purging.
	LedgerRetention time.Duration
	// MaintenanceInterval is how often the ledger purge runs.
	MaintenanceInterval time.Duration
	// SendRate and SendBurst throttle outbound channel sends.
	SendRate  float64
	SendBurst int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		ScanInterval:        5 * time.Minute,
		DrainInterval:       10 * time.Second,
		CooldownWindow:      600 * time.Minute,
		TickTimeout:         2 * time.Minute,
		LedgerRetention:     7 * 24 * time.Hour,
		MaintenanceInterval: 24 * time.Hour,
		SendRate:            20,
		SendBurst:           30,
	}
}

func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.ScanInterval <= 0 {
		c.ScanInterval = d.ScanInterval
	}
	if c.DrainInterval <= 0 {
		c.DrainInterval = d.DrainInterval
	}
	if c.CooldownWindow <= 0 {
		c.CooldownWindow = d.CooldownWindow
	}
	if c.TickTimeout <= 0 {
		c.TickTimeout = d.TickTimeout
	}
	if c.LedgerRetention <= 0 {
		c.LedgerRetention = d.LedgerRetention
	}
	if c.MaintenanceInterval <= 0 {
		c.MaintenanceInterval = d.MaintenanceInterval
	}
	if c.SendRate <= 0 {
		c.SendRate = d.SendRate
	}
	if c.SendBurst <= 0 {
		c.SendBurst = d.SendBurst
	}
}

// Engine owns the evaluation and delivery loops. The scan tick and the
// drain tick are independently scheduled; only scan ticks are serialized.
type Engine struct {
	cfg      *Config
	store    Store
	queue    *Queue
	ledger   *Ledger
	scanner  *Scanner
	delivery *DeliveryLoop
	logger   zerolog.Logger
	metrics  *Metrics
	now      func() time.Time

	chMu    sync.RWMutex
	channel Channel

	scanMu sync.Mutex

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewEngine wires the engine from its dependencies. The channel may be set
// later with SetChannel; until then delivery is a no-op and the queue grows.
func NewEngine(cfg *Config, store Store, metrics *Metrics, logger zerolog.Logger) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.fillDefaults()

	e := &Engine{
		cfg:     cfg,
		store:   store,
		queue:   NewQueue(),
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	e.ledger = NewLedger(store, func() time.Time { return e.now() })
	e.scanner = NewScanner(store, e.ledger, e.queue, Scenarios(cfg.CooldownWindow),
		metrics, logger, func() time.Time { return e.now() })
	e.delivery = NewDeliveryLoop(e.queue, e.currentChannel,
		rate.NewLimiter(rate.Limit(cfg.SendRate), cfg.SendBurst), metrics, logger)
	return e
}

// SetChannel installs or replaces the outbound delivery channel. Pass nil to
// mark the channel disconnected.
func (e *Engine) SetChannel(ch Channel) {
	e.chMu.Lock()
	e.channel = ch
	e.chMu.Unlock()
}

func (e *Engine) currentChannel() Channel {
	e.chMu.RLock()
	defer e.chMu.RUnlock()
	return e.channel
}

// Queue exposes the delivery queue, mainly for tests and diagnostics.
func (e *Engine) Queue() *Queue {
	return e.queue
}

// Ledger exposes the cooldown ledger for the acknowledgment path.
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

// Start launches the scan, drain and maintenance loops.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.wg.Add(3)
	go e.scanLoop(ctx)
	go e.drainLoop(ctx)
	go e.maintenanceLoop(ctx)

	e.logger.Info().
		Dur("scan_interval", e.cfg.ScanInterval).
		Dur("drain_interval", e.cfg.DrainInterval).
		Dur("cooldown", e.cfg.CooldownWindow).
		Msg("reminder engine started")
}

// Stop halts the loops and waits for in-flight work to finish.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.mu.Unlock()

	close(e.stopCh)
	e.wg.Wait()
	e.logger.Info().Msg("reminder engine stopped")
}

func (e *Engine) scanLoop(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.TickNow(ctx)
		}
	}
}

func (e *Engine) drainLoop(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.cfg.DrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.delivery.Drain(ctx)
		}
	}
}

func (e *Engine) maintenanceLoop(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.cfg.MaintenanceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopCh:
			return
		case <-ticker.C:
			purged, err := e.ledger.Purge(ctx, e.cfg.LedgerRetention)
			if err != nil {
				e.logger.Error().Err(err).Msg("ledger purge failed")
				continue
			}
			e.metrics.AddLedgerPurged(purged)
			if purged > 0 {
				e.logger.Info().Int64("purged", purged).Msg("ledger entries purged")
			}
		}
	}
}

// TickNow runs one evaluation tick immediately. Ticks are serialized
// globally: a new tick waits for the previous one's writes to land.
func (e *Engine) TickNow(ctx context.Context) {
	e.scanMu.Lock()
	defer e.scanMu.Unlock()

	tickCtx, cancel := context.WithTimeout(ctx, e.cfg.TickTimeout)
	defer cancel()
	e.scanner.Run(tickCtx)
}

// DrainNow drains the delivery queue immediately.
func (e *Engine) DrainNow(ctx context.Context) {
	e.delivery.Drain(ctx)
}

// OnEventLogged is the acknowledgment hook: the CRUD layer calls it right
// after a successful event write so the cooldown does not suppress the next
// legitimate reminder cycle for the freshly reset clock.
func (e *Engine) OnEventLogged(ctx context.Context, familyID int64, event model.EventKind) error {
	kinds := model.KindsForEvent(event)
	if len(kinds) == 0 {
		return nil
	}
	return e.ledger.Clear(ctx, familyID, kinds...)
}

// Status is a read-only projection for "check now" views. It uses the
// evaluator directly and never touches the ledger, so on-demand checks are
// independent of notification suppression.
type Status struct {
	NeedsFeeding        bool
	NeedsDiaper         bool
	FeedingTracked      bool
	DiaperTracked       bool
	HoursSinceFeeding   float64
	HoursSinceDiaper    float64
	FeedIntervalHours   int
	DiaperIntervalHours int
}

// CurrentStatus computes the family's live due state.
func (e *Engine) CurrentStatus(ctx context.Context, familyID int64) (*Status, error) {
	settings, err := e.store.GetSettings(ctx, familyID)
	if err != nil {
		return nil, err
	}
	now := e.now()

	lastFeed, err := e.store.LastEventTime(ctx, familyID, model.EventFeeding)
	if err != nil {
		return nil, err
	}
	lastDiaper, err := e.store.LastEventTime(ctx, familyID, model.EventDiaper)
	if err != nil {
		return nil, err
	}

	feed := Classify(lastFeed, settings.FeedIntervalHours, now)
	diaper := Classify(lastDiaper, settings.DiaperIntervalHours, now)

	return &Status{
		NeedsFeeding:        feed.Due,
		NeedsDiaper:         diaper.Due,
		FeedingTracked:      feed.HasHistory,
		DiaperTracked:       diaper.HasHistory,
		HoursSinceFeeding:   feed.ElapsedHours,
		HoursSinceDiaper:    diaper.ElapsedHours,
		FeedIntervalHours:   settings.FeedIntervalHours,
		DiaperIntervalHours: settings.DiaperIntervalHours,
	}, nil
}
