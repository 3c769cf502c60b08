package model

import "time"

// EventKind is a kind of tracked caregiving event.
type EventKind string

const (
	EventFeeding  EventKind = "feeding"
	EventDiaper   EventKind = "diaper"
	EventBath     EventKind = "bath"
	EventActivity EventKind = "activity"
)

// TrackedKinds are the event kinds that drive reminder escalation.
// Bath and activity entries are logged but never escalate.
var TrackedKinds = []EventKind{EventFeeding, EventDiaper}

// NotificationKind identifies one row of the notification ledger.
type NotificationKind string

const (
	NotifyDueFeeding     NotificationKind = "due_feeding"
	NotifyOverdueFeeding NotificationKind = "overdue_feeding"
	NotifyPreFeeding     NotificationKind = "pre_feeding"
	NotifyDueDiaper      NotificationKind = "due_diaper"
	NotifyOverdueDiaper  NotificationKind = "overdue_diaper"
	NotifyPreDiaper      NotificationKind = "pre_diaper"
)

// KindsForEvent returns every notification kind tied to an event kind,
// in the order they are cleared on acknowledgment.
func KindsForEvent(event EventKind) []NotificationKind {
	switch event {
	case EventFeeding:
		return []NotificationKind{NotifyDueFeeding, NotifyOverdueFeeding, NotifyPreFeeding}
	case EventDiaper:
		return []NotificationKind{NotifyDueDiaper, NotifyOverdueDiaper, NotifyPreDiaper}
	default:
		return nil
	}
}

// Family is a household, the unit of isolation for all reminder state.
type Family struct {
	ID         int64
	Name       string
	InviteCode string
	CreatedAt  time.Time
}

// Member belongs to exactly one family.
type Member struct {
	FamilyID int64
	UserID   int64
	Role     string
	Name     string
	JoinedAt time.Time
}

// Settings holds per-family intervals and feature toggles.
type Settings struct {
	FamilyID            int64
	FeedIntervalHours   int
	DiaperIntervalHours int
	TipsEnabled         bool
	BathReminderEnabled bool
	BabyBirthDate       *time.Time
	UpdatedAt           time.Time
}

// DefaultSettings returns the settings a freshly created family starts with.
func DefaultSettings(familyID int64) *Settings {
	return &Settings{
		FamilyID:            familyID,
		FeedIntervalHours:   3,
		DiaperIntervalHours: 2,
		TipsEnabled:         true,
		BathReminderEnabled: true,
	}
}

// IntervalHours returns the configured interval for a tracked event kind.
func (s *Settings) IntervalHours(event EventKind) int {
	switch event {
	case EventFeeding:
		return s.FeedIntervalHours
	case EventDiaper:
		return s.DiaperIntervalHours
	default:
		return 0
	}
}

// BabyAgeMonths computes the baby's age in whole months at the given time.
// Returns 0 when the birth date is unset or in the future.
func (s *Settings) BabyAgeMonths(now time.Time) int {
	if s.BabyBirthDate == nil {
		return 0
	}
	b := *s.BabyBirthDate
	months := (now.Year()-b.Year())*12 + int(now.Month()) - int(b.Month())
	if now.Day() < b.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// EventEntry is one append-only event log record.
type EventEntry struct {
	ID         int64
	FamilyID   int64
	Kind       EventKind
	AuthorID   int64
	AuthorRole string
	AuthorName string
	Timestamp  time.Time
}

// LedgerEntry records when a notification kind was last sent to a family.
type LedgerEntry struct {
	FamilyID   int64
	Kind       NotificationKind
	LastSentAt time.Time
}

// Tip is one piece of age-targeted advice.
type Tip struct {
	ID        int64
	AgeMonths int
	Category  string
	Content   string
}

// EventStats summarizes one event kind over a window.
type EventStats struct {
	Count    int
	LastTime *time.Time
}
