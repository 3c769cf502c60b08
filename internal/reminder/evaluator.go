package reminder

import "time"

const (
	// OverdueGraceMinutes is how far past the due threshold an event must be
	// before it escalates to overdue.
	OverdueGraceMinutes = 25

	// PreWindowMinutes is how close to the due threshold an event must be
	// for the pre-due classification to fire.
	PreWindowMinutes = 5

	// neverTrackedHours is the elapsed-hours sentinel reported when a family
	// has never logged the event, so status views can render "long ago".
	neverTrackedHours = 24
)

// Classification is the due/overdue/pre-due state of one event kind.
type Classification struct {
	// HasHistory is false when the family has never logged this event.
	HasHistory bool
	// ElapsedHours since the last event, fractional. When HasHistory is
	// false this holds the display sentinel, not a measurement.
	ElapsedHours float64
	// RemainingMinutes until the due threshold; negative once due.
	RemainingMinutes float64
	Due              bool
	Overdue          bool
	Pre              bool
}

// Classify computes the reminder state for one event kind. Pure and total:
// it always returns a value and never errs. A non-positive interval is a
// configuration problem the caller must surface; Classify is not the place.
//
// No history means due immediately but never overdue: without a last event
// there is nothing to measure an escalation against.
func Classify(last *time.Time, intervalHours int, now time.Time) Classification {
	if last == nil {
		return Classification{
			HasHistory:   false,
			ElapsedHours: neverTrackedHours,
			Due:          true,
		}
	}

	// Duration arithmetic, not float hours: the due, overdue and pre
	// boundaries must be exact at the minute marks.
	elapsed := now.Sub(*last)
	interval := time.Duration(intervalHours) * time.Hour
	remaining := interval - elapsed

	c := Classification{
		HasHistory:       true,
		ElapsedHours:     elapsed.Hours(),
		RemainingMinutes: remaining.Minutes(),
	}
	c.Due = elapsed >= interval
	c.Overdue = elapsed-interval >= OverdueGraceMinutes*time.Minute
	c.Pre = remaining > 0 && remaining <= PreWindowMinutes*time.Minute
	return c
}
