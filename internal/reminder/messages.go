package reminder

import (
	"fmt"
	"strings"

	"babycarebot/internal/model"
)

// actionFor maps an event kind to the inline button attached to reminders.
func actionFor(event model.EventKind) Action {
	switch event {
	case model.EventFeeding:
		return Action{Label: "🍼 Log feeding", Data: "feed_now"}
	case model.EventDiaper:
		return Action{Label: "🧷 Log diaper change", Data: "diaper_now"}
	default:
		return Action{}
	}
}

// FormatElapsed renders fractional hours as "3h 26m" or "45m".
func FormatElapsed(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func eventNoun(event model.EventKind) string {
	switch event {
	case model.EventFeeding:
		return "feeding"
	case model.EventDiaper:
		return "diaper change"
	default:
		return string(event)
	}
}

// buildMessage assembles one combined reminder for every event kind that
// triggered in the same scenario, so a family needing both feeding and
// diaper reminders gets a single message.
func buildMessage(kind ScenarioKind, triggered []Rule, cls map[model.EventKind]Classification, settings *model.Settings) string {
	var b strings.Builder

	names := make([]string, 0, len(triggered))
	for _, r := range triggered {
		names = append(names, eventNoun(r.Event))
	}
	switch kind {
	case ScenarioOverdue:
		b.WriteString("⏰ Overdue: " + strings.Join(names, " and ") + "!\n\n")
	default:
		b.WriteString("🔔 Time for " + strings.Join(names, " and ") + "!\n\n")
	}

	for _, r := range triggered {
		c := cls[r.Event]
		b.WriteString(fmt.Sprintf("• %s: ", eventNoun(r.Event)))
		if c.HasHistory {
			b.WriteString(fmt.Sprintf("last %s ago", FormatElapsed(c.ElapsedHours)))
		} else {
			b.WriteString("not tracked yet")
		}
		b.WriteString(fmt.Sprintf(" (interval %dh)\n", settings.IntervalHours(r.Event)))
	}

	b.WriteString("\nQuick actions below 👇")
	return b.String()
}
