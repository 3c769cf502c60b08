package reminder

import (
	"time"

	"babycarebot/internal/model"
)

// ScenarioKind tags one of the closed set of scan scenarios.
type ScenarioKind string

const (
	ScenarioDue     ScenarioKind = "due"
	ScenarioOverdue ScenarioKind = "overdue"
)

// Cooldown pairs a ledger kind with its suppression window.
type Cooldown struct {
	Kind   model.NotificationKind
	Window time.Duration
}

// Rule describes how one event kind participates in a scenario: the ledger
// kind written on send and every cooldown consulted before sending. Due and
// overdue list each other's kinds so either send suppresses both.
type Rule struct {
	Event     model.EventKind
	Notify    model.NotificationKind
	Cooldowns []Cooldown
}

// Scenario is one scan pass: a flag selector over the classification plus
// the per-event rules. A plain data table, not dispatched callbacks, so the
// set is closed and checkable.
type Scenario struct {
	Kind  ScenarioKind
	Fires func(Classification) bool
	Rules []Rule
}

// Scenarios builds the due and overdue scan table with the configured
// cooldown window (600 minutes by default).
func Scenarios(window time.Duration) []Scenario {
	return []Scenario{
		{
			Kind:  ScenarioDue,
			Fires: func(c Classification) bool { return c.Due },
			Rules: []Rule{
				{
					Event:  model.EventFeeding,
					Notify: model.NotifyDueFeeding,
					Cooldowns: []Cooldown{
						{model.NotifyDueFeeding, window},
						{model.NotifyOverdueFeeding, window},
					},
				},
				{
					Event:  model.EventDiaper,
					Notify: model.NotifyDueDiaper,
					Cooldowns: []Cooldown{
						{model.NotifyDueDiaper, window},
						{model.NotifyOverdueDiaper, window},
					},
				},
			},
		},
		{
			Kind:  ScenarioOverdue,
			Fires: func(c Classification) bool { return c.Overdue },
			Rules: []Rule{
				{
					Event:  model.EventFeeding,
					Notify: model.NotifyOverdueFeeding,
					Cooldowns: []Cooldown{
						{model.NotifyOverdueFeeding, window},
						{model.NotifyDueFeeding, window},
					},
				},
				{
					Event:  model.EventDiaper,
					Notify: model.NotifyOverdueDiaper,
					Cooldowns: []Cooldown{
						{model.NotifyOverdueDiaper, window},
						{model.NotifyDueDiaper, window},
					},
				},
			},
		},
	}
}
