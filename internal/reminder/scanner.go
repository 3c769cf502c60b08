package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"babycarebot/internal/db"
	"babycarebot/internal/model"

	"github.com/rs/zerolog"
)

// Scanner evaluates every family once per tick and turns due/overdue state
// into queued notification requests, consulting the ledger so nobody is
// notified twice within a cooldown window.
type Scanner struct {
	store     Store
	ledger    *Ledger
	queue     *Queue
	scenarios []Scenario
	metrics   *Metrics
	logger    zerolog.Logger
	now       func() time.Time
}

// NewScanner wires a scanner from its collaborators.
func NewScanner(store Store, ledger *Ledger, queue *Queue, scenarios []Scenario, metrics *Metrics, logger zerolog.Logger, now func() time.Time) *Scanner {
	if now == nil {
		now = time.Now
	}
	return &Scanner{
		store:     store,
		ledger:    ledger,
		queue:     queue,
		scenarios: scenarios,
		metrics:   metrics,
		logger:    logger,
		now:       now,
	}
}

// dedupKey guards against enqueueing the same (family, member, scenario,
// kind-set) combination twice within a single tick.
type dedupKey struct {
	familyID int64
	userID   int64
	scenario ScenarioKind
	kinds    string
}

// Run executes one tick. One family's failure never aborts the rest; the
// context deadline bounds the whole tick.
func (s *Scanner) Run(ctx context.Context) {
	start := s.now()

	families, err := s.store.ListFamilyIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("scan: list families failed, skipping tick")
		return
	}

	dedup := make(map[dedupKey]struct{})
	queued := 0

	for _, familyID := range families {
		if ctx.Err() != nil {
			s.logger.Warn().
				Int64("family_id", familyID).
				Msg("scan: tick deadline reached, aborting remaining families")
			break
		}
		n, err := s.scanFamily(ctx, familyID, dedup)
		if err != nil {
			s.metrics.IncFamilyFailures()
			s.logger.Error().Err(err).Int64("family_id", familyID).Msg("scan: family failed")
			continue
		}
		queued += n
	}

	s.metrics.ObserveScanDuration(time.Since(start).Seconds())
	s.metrics.SetQueueSize(s.queue.Len())
	if queued > 0 {
		s.logger.Info().Int("queued", queued).Int("families", len(families)).Msg("scan: reminders queued")
	}
}

// scanFamily evaluates one family against every scenario. Returns how many
// requests were enqueued.
func (s *Scanner) scanFamily(ctx context.Context, familyID int64, dedup map[dedupKey]struct{}) (queued int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic evaluating family %d: %v", familyID, r)
		}
	}()

	settings, err := s.store.GetSettings(ctx, familyID)
	if err != nil {
		return 0, fmt.Errorf("settings: %w", err)
	}

	now := s.now()
	cls := make(map[model.EventKind]Classification, len(model.TrackedKinds))
	for _, event := range model.TrackedKinds {
		interval := settings.IntervalHours(event)
		if interval <= 0 {
			s.logger.Warn().
				Int64("family_id", familyID).
				Str("event", string(event)).
				Int("interval_hours", interval).
				Msg("scan: non-positive interval, skipping event for this tick")
			continue
		}
		last, err := s.store.LastEventTime(ctx, familyID, event)
		if err != nil {
			return 0, fmt.Errorf("last %s: %w", event, err)
		}
		cls[event] = Classify(last, interval, now)
	}

	for _, scenario := range s.scenarios {
		n, err := s.runScenario(ctx, familyID, settings, scenario, cls, dedup)
		if err != nil {
			return queued, err
		}
		queued += n
	}
	return queued, nil
}

func (s *Scanner) runScenario(ctx context.Context, familyID int64, settings *model.Settings, scenario Scenario, cls map[model.EventKind]Classification, dedup map[dedupKey]struct{}) (int, error) {
	var triggered []Rule
	for _, rule := range scenario.Rules {
		c, ok := cls[rule.Event]
		if !ok || !scenario.Fires(c) {
			continue
		}
		suppressed := false
		for _, cd := range rule.Cooldowns {
			recent, err := s.ledger.RecentlySent(ctx, familyID, cd.Kind, cd.Window)
			if err != nil {
				return 0, fmt.Errorf("ledger check %s: %w", cd.Kind, err)
			}
			if recent {
				suppressed = true
				break
			}
		}
		if !suppressed {
			triggered = append(triggered, rule)
		}
	}
	if len(triggered) == 0 {
		return 0, nil
	}

	// A family with no members is skipped without recording anything, so
	// the first member to join still gets the pending reminder.
	members, err := s.store.FamilyMembers(ctx, familyID)
	if err != nil {
		return 0, fmt.Errorf("members: %w", err)
	}
	if len(members) == 0 {
		return 0, nil
	}

	text := buildMessage(scenario.Kind, triggered, cls, settings)
	actions := make([]Action, 0, len(triggered))
	kindNames := make([]string, 0, len(triggered))
	for _, rule := range triggered {
		actions = append(actions, actionFor(rule.Event))
		kindNames = append(kindNames, string(rule.Notify))
	}
	kindSet := strings.Join(kindNames, ",")

	queued := 0
	for _, m := range members {
		key := dedupKey{familyID: familyID, userID: m.UserID, scenario: scenario.Kind, kinds: kindSet}
		if _, seen := dedup[key]; seen {
			continue
		}
		dedup[key] = struct{}{}
		s.queue.Enqueue(Request{
			FamilyID:    familyID,
			RecipientID: m.UserID,
			Text:        text,
			Actions:     actions,
		})
		queued++
	}

	// Record every triggered kind even though delivery may still fail:
	// the contract is at-most-once per window, not at-least-once delivered.
	sentAt := s.now()
	for _, rule := range triggered {
		err := db.WithRetry(ctx, db.DefaultRetryConfig(), &s.logger, "ledger_record", func() error {
			return s.ledger.RecordSent(ctx, familyID, rule.Notify, sentAt)
		})
		if err != nil {
			return queued, fmt.Errorf("ledger record %s: %w", rule.Notify, err)
		}
		s.metrics.IncQueued(string(rule.Notify))
	}
	return queued, nil
}
