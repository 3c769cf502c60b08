package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"babycarebot/internal/db"
	"babycarebot/internal/export"
	"babycarebot/internal/model"
	"babycarebot/internal/reminder"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	familyID, err := b.familyID(ctx, msg.From.ID)
	if err != nil {
		b.reply(msg.Chat.ID, "Something went wrong, please try again.")
		return
	}
	if familyID == 0 {
		out := tgbotapi.NewMessage(msg.Chat.ID,
			"👋 Hi! I help families track feedings, diaper changes and more.\n\n"+
				"First, set up your family:")
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👨‍👩‍👧 Create a family", "family:create"),
				tgbotapi.NewInlineKeyboardButtonData("🔗 Join by code", "family:join"),
			),
		)
		_, _ = b.tg.Send(out)
		return
	}

	// Refresh the display name on every /start; people rename themselves.
	name := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	if err := b.db.SetMemberInfo(ctx, msg.From.ID, "parent", name); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("update member info failed")
	}
	b.sendMainMenu(msg.Chat.ID)
}

func (b *Bot) finishCreateFamily(ctx context.Context, msg *tgbotapi.Message, name string) {
	b.state.reset(msg.From.ID)
	if name == "" {
		b.reply(msg.Chat.ID, "Family name cannot be empty. Try /start again.")
		return
	}
	fam, err := b.db.CreateFamily(ctx, name, msg.From.ID)
	if err != nil {
		if errors.Is(err, db.ErrAlreadyMember) {
			b.reply(msg.Chat.ID, "You already belong to a family.")
			return
		}
		b.reply(msg.Chat.ID, "Could not create the family, please try again.")
		return
	}
	b.cache.Put(ctx, msg.From.ID, fam.ID)
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"✅ Family %q created!\n\nInvite code: %s\nShare it so others can join with /start.",
		fam.Name, fam.InviteCode))
	b.sendMainMenu(msg.Chat.ID)
}

func (b *Bot) finishJoinFamily(ctx context.Context, msg *tgbotapi.Message, code string) {
	b.state.reset(msg.From.ID)
	fam, err := b.db.JoinFamily(ctx, strings.ToUpper(code), msg.From.ID)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrFamilyNotFound):
			b.reply(msg.Chat.ID, "Unknown invite code. Check it and try /start again.")
		case errors.Is(err, db.ErrAlreadyMember):
			b.reply(msg.Chat.ID, "You already belong to a family.")
		default:
			b.reply(msg.Chat.ID, "Could not join, please try again.")
		}
		return
	}
	name := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	_ = b.db.SetMemberInfo(ctx, msg.From.ID, "parent", name)
	b.cache.Put(ctx, msg.From.ID, fam.ID)
	b.reply(msg.Chat.ID, fmt.Sprintf("✅ Welcome to %q!", fam.Name))
	b.sendMainMenu(msg.Chat.ID)
}

// sendLogTimes offers the backdating choices for a tracked event.
func (b *Bot) sendLogTimes(chatID int64, kind model.EventKind) {
	out := tgbotapi.NewMessage(chatID, "When did it happen?")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Just now", fmt.Sprintf("logat:%s:0", kind)),
			tgbotapi.NewInlineKeyboardButtonData("15 min ago", fmt.Sprintf("logat:%s:15", kind)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("30 min ago", fmt.Sprintf("logat:%s:30", kind)),
			tgbotapi.NewInlineKeyboardButtonData("Other time…", fmt.Sprintf("logcustom:%s", kind)),
		),
	)
	_, _ = b.tg.Send(out)
}

// logEvent writes the event, resets the matching reminder cooldowns and
// confirms to the user. When confirmed is false a same-kind event within the
// duplicate window asks for confirmation instead of writing.
func (b *Bot) logEvent(ctx context.Context, chatID int64, from *tgbotapi.User, kind model.EventKind, minutesAgo int, confirmed bool) {
	l := zerolog.Ctx(ctx)
	familyID, err := b.familyID(ctx, from.ID)
	if err != nil {
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}
	if familyID == 0 {
		b.reply(chatID, "Set up a family first with /start.")
		return
	}

	now := b.now()
	if !confirmed {
		recent, err := b.db.HasRecentEvent(ctx, familyID, kind, duplicateWindow, now)
		if err != nil {
			l.Error().Err(err).Msg("duplicate check failed")
		} else if recent {
			out := tgbotapi.NewMessage(chatID, fmt.Sprintf(
				"A %s was already logged in the last 30 minutes. Log another one?", eventLabel(kind)))
			out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("Yes, log it",
						fmt.Sprintf("logok:%s:%d", kind, minutesAgo)),
					tgbotapi.NewInlineKeyboardButtonData("No", "menu"),
				),
			)
			_, _ = b.tg.Send(out)
			return
		}
	}

	entry := &model.EventEntry{
		FamilyID:   familyID,
		Kind:       kind,
		AuthorID:   from.ID,
		AuthorRole: "parent",
		AuthorName: strings.TrimSpace(from.FirstName + " " + from.LastName),
		Timestamp:  now.Add(-time.Duration(minutesAgo) * time.Minute),
	}
	err = db.WithRetry(ctx, db.DefaultRetryConfig(), l, "add_event", func() error {
		return b.db.AddEvent(ctx, entry)
	})
	if err != nil {
		l.Error().Err(err).Str("kind", string(kind)).Msg("add event failed")
		b.reply(chatID, "Could not save the event, please try again.")
		return
	}
	if err := b.engine.OnEventLogged(ctx, familyID, kind); err != nil {
		l.Warn().Err(err).Msg("cooldown reset failed")
	}
	b.sheets.Record(entry)

	b.reply(chatID, fmt.Sprintf("✅ %s logged at %s.",
		capitalize(eventLabel(kind)), entry.Timestamp.In(b.loc).Format("15:04")))
}

func (b *Bot) finishCustomTime(ctx context.Context, msg *tgbotapi.Message, st *userState, text string) {
	kind := st.PendingEvent
	b.state.reset(msg.From.ID)
	ts, err := parseCustomTime(text, b.now(), b.loc)
	if err != nil {
		b.reply(msg.Chat.ID, "Could not parse the time. Use minutes ago (e.g. 45) or a clock time (e.g. 14:30).")
		return
	}
	minutes := int(b.now().Sub(ts) / time.Minute)
	b.logEvent(ctx, msg.Chat.ID, msg.From, kind, minutes, false)
}

// parseCustomTime accepts either "45" (minutes ago) or "14:30" (today's
// clock time in loc; yesterday when still in the future).
func parseCustomTime(text string, now time.Time, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, ":") {
		clock, err := time.Parse("15:04", text)
		if err != nil {
			return time.Time{}, err
		}
		local := now.In(loc)
		ts := time.Date(local.Year(), local.Month(), local.Day(),
			clock.Hour(), clock.Minute(), 0, 0, loc)
		if ts.After(now) {
			ts = ts.AddDate(0, 0, -1)
		}
		return ts, nil
	}
	minutes, err := strconv.Atoi(text)
	if err != nil || minutes < 0 || minutes > 24*60 {
		return time.Time{}, fmt.Errorf("invalid minutes %q", text)
	}
	return now.Add(-time.Duration(minutes) * time.Minute), nil
}

func (b *Bot) handleStatus(ctx context.Context, chatID, userID int64) {
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		b.reply(chatID, "Set up a family first with /start.")
		return
	}
	st, err := b.engine.CurrentStatus(ctx, familyID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("status failed")
		b.reply(chatID, "Could not load the status, please try again.")
		return
	}
	b.reply(chatID, formatStatus(st))
}

func formatStatus(st *reminder.Status) string {
	var sb strings.Builder
	sb.WriteString("📊 Current status\n\n")

	line := func(emoji, noun string, tracked, needs bool, hours float64, interval int) {
		sb.WriteString(emoji + " " + capitalize(noun) + ": ")
		switch {
		case !tracked:
			sb.WriteString("not tracked yet")
		case needs:
			sb.WriteString(fmt.Sprintf("⚠️ due (last %s ago)", reminder.FormatElapsed(hours)))
		default:
			sb.WriteString(fmt.Sprintf("ok, last %s ago", reminder.FormatElapsed(hours)))
		}
		sb.WriteString(fmt.Sprintf(" · every %dh\n", interval))
	}
	line("🍼", "feeding", st.FeedingTracked, st.NeedsFeeding, st.HoursSinceFeeding, st.FeedIntervalHours)
	line("🧷", "diaper", st.DiaperTracked, st.NeedsDiaper, st.HoursSinceDiaper, st.DiaperIntervalHours)
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Bot) handleHistory(ctx context.Context, chatID, userID int64) {
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		b.reply(chatID, "Set up a family first with /start.")
		return
	}
	entries, err := b.db.RecentEvents(ctx, familyID, b.histLen)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("history failed")
		b.reply(chatID, "Could not load the history, please try again.")
		return
	}
	if len(entries) == 0 {
		b.reply(chatID, "Nothing logged yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Recent events\n\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s  %s %s",
			e.Timestamp.In(b.loc).Format("02.01 15:04"),
			eventEmoji(e.Kind), eventLabel(e.Kind)))
		if e.AuthorName != "" {
			sb.WriteString(" · " + e.AuthorName)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nUse /export for a spreadsheet.")
	b.reply(chatID, sb.String())
}

func (b *Bot) handleStats(ctx context.Context, chatID, userID int64) {
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		b.reply(chatID, "Set up a family first with /start.")
		return
	}
	since := b.now().Add(-24 * time.Hour)

	var sb strings.Builder
	sb.WriteString("📈 Last 24 hours\n\n")
	for _, kind := range []model.EventKind{
		model.EventFeeding, model.EventDiaper, model.EventBath, model.EventActivity,
	} {
		stats, err := b.db.EventStats(ctx, familyID, kind, since)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("kind", string(kind)).Msg("stats failed")
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s: %d", eventEmoji(kind), capitalize(eventLabel(kind)), stats.Count))
		if stats.LastTime != nil {
			sb.WriteString(", last at " + stats.LastTime.In(b.loc).Format("15:04"))
		}
		sb.WriteString("\n")
	}
	b.reply(chatID, strings.TrimRight(sb.String(), "\n"))
}

func (b *Bot) handleTip(ctx context.Context, chatID, userID int64) {
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		b.reply(chatID, "Set up a family first with /start.")
		return
	}
	settings, err := b.db.GetSettings(ctx, familyID)
	if err != nil {
		b.reply(chatID, "Could not load the settings, please try again.")
		return
	}
	tip, err := b.db.RandomTip(ctx, settings.BabyAgeMonths(b.now()))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("tip lookup failed")
		b.reply(chatID, "No tips available right now.")
		return
	}
	out := tgbotapi.NewMessage(chatID, "💡 "+tip)
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Another one", "tip:more"),
		),
	)
	_, _ = b.tg.Send(out)
}

func (b *Bot) handleSettings(ctx context.Context, chatID, userID int64) {
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		b.reply(chatID, "Set up a family first with /start.")
		return
	}
	settings, err := b.db.GetSettings(ctx, familyID)
	if err != nil {
		b.reply(chatID, "Could not load the settings, please try again.")
		return
	}

	text := fmt.Sprintf("⚙️ Settings\n\n"+
		"🍼 Feeding interval: every %dh\n"+
		"🧷 Diaper interval: every %dh\n"+
		"💡 Tips: %s\n"+
		"🛁 Bath reminders: %s\n"+
		"🎂 Birth date: %s",
		settings.FeedIntervalHours, settings.DiaperIntervalHours,
		onOff(settings.TipsEnabled), onOff(settings.BathReminderEnabled),
		birthDateLabel(settings.BabyBirthDate))

	out := tgbotapi.NewMessage(chatID, text)
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍼 Feeding interval", "set:feed"),
			tgbotapi.NewInlineKeyboardButtonData("🧷 Diaper interval", "set:diaper"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💡 Toggle tips", "set:tips"),
			tgbotapi.NewInlineKeyboardButtonData("🛁 Toggle bath", "set:bath"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎂 Birth date", "set:birth"),
			tgbotapi.NewInlineKeyboardButtonData("👥 Family", "set:family"),
		),
	)
	_, _ = b.tg.Send(out)
}

func (b *Bot) handleFamilyMembers(ctx context.Context, chatID, userID int64) {
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		b.reply(chatID, "Set up a family first with /start.")
		return
	}
	family, err := b.db.GetFamily(ctx, familyID)
	if err != nil {
		b.reply(chatID, "Could not load the family, please try again.")
		return
	}
	members, err := b.db.FamilyMembers(ctx, familyID)
	if err != nil {
		b.reply(chatID, "Could not load the family, please try again.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 %s\n\n", family.Name)
	for _, m := range members {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("user %d", m.UserID)
		}
		fmt.Fprintf(&sb, "• %s (%s)\n", name, m.Role)
	}
	fmt.Fprintf(&sb, "\nInvite code: %s", family.InviteCode)
	b.reply(chatID, sb.String())
}

func (b *Bot) sendIntervalChoices(chatID int64, which string) {
	row := make([]tgbotapi.InlineKeyboardButton, 0, 4)
	for _, h := range []int{1, 2, 3, 4} {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%dh", h), fmt.Sprintf("int:%s:%d", which, h)))
	}
	out := tgbotapi.NewMessage(chatID, "Remind every:")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	_, _ = b.tg.Send(out)
}

func (b *Bot) finishBirthDate(ctx context.Context, msg *tgbotapi.Message, text string) {
	b.state.reset(msg.From.ID)
	familyID, err := b.familyID(ctx, msg.From.ID)
	if err != nil || familyID == 0 {
		b.reply(msg.Chat.ID, "Set up a family first with /start.")
		return
	}
	birth, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(text), b.loc)
	if err != nil || birth.After(b.now()) {
		b.reply(msg.Chat.ID, "Use the format YYYY-MM-DD, e.g. 2025-01-15.")
		return
	}
	if err := b.db.SetBirthDate(ctx, familyID, birth); err != nil {
		b.reply(msg.Chat.ID, "Could not save, please try again.")
		return
	}
	b.reply(msg.Chat.ID, "🎂 Birth date saved. Tips will match the baby's age.")
}

func (b *Bot) handleExport(ctx context.Context, chatID, userID int64) {
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		b.reply(chatID, "Set up a family first with /start.")
		return
	}
	entries, err := b.db.RecentEvents(ctx, familyID, 500)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("export query failed")
		b.reply(chatID, "Could not build the export, please try again.")
		return
	}
	if len(entries) == 0 {
		b.reply(chatID, "Nothing logged yet.")
		return
	}
	data, err := export.EventsWorkbook(entries, b.loc)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("export render failed")
		b.reply(chatID, "Could not build the export, please try again.")
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("history-%s.xlsx", b.now().In(b.loc).Format("2006-01-02")),
		Bytes: data,
	})
	if _, err := b.tg.Send(doc); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("export send failed")
	}
}

func (b *Bot) handleAddTip(ctx context.Context, msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	// /addtip <age_months> <text>
	parts := strings.SplitN(strings.TrimSpace(msg.Text), " ", 3)
	if len(parts) < 3 {
		b.reply(msg.Chat.ID, "Usage: /addtip <age_months> <text>")
		return
	}
	age, err := strconv.Atoi(parts[1])
	if err != nil || age < 0 {
		b.reply(msg.Chat.ID, "Usage: /addtip <age_months> <text>")
		return
	}
	if err := b.db.AddTip(ctx, &model.Tip{AgeMonths: age, Content: parts[2]}); err != nil {
		b.reply(msg.Chat.ID, "Could not save the tip.")
		return
	}
	b.reply(msg.Chat.ID, "Tip saved.")
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq == nil || cq.Message == nil {
		return
	}
	data := cq.Data
	_ = b.answerCallback(cq.ID)
	if data == "noop" {
		return
	}

	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	switch {
	case data == "family:create":
		b.state.get(userID).Step = stepFamilyName
		b.reply(chatID, "What should I call your family?")
	case data == "family:join":
		b.state.get(userID).Step = stepJoinCode
		b.reply(chatID, "Enter the invite code:")
	case strings.HasPrefix(data, "logat:"):
		kind, minutes, ok := parseLogData(strings.TrimPrefix(data, "logat:"))
		if ok {
			b.logEvent(ctx, chatID, cq.From, kind, minutes, false)
		}
	case strings.HasPrefix(data, "logok:"):
		kind, minutes, ok := parseLogData(strings.TrimPrefix(data, "logok:"))
		if ok {
			b.logEvent(ctx, chatID, cq.From, kind, minutes, true)
		}
	case strings.HasPrefix(data, "logcustom:"):
		kind := model.EventKind(strings.TrimPrefix(data, "logcustom:"))
		st := b.state.get(userID)
		st.Step = stepCustomTime
		st.PendingEvent = kind
		b.reply(chatID, "How long ago? Send minutes (e.g. 45) or a clock time (e.g. 14:30).")
	// Buttons attached to reminder messages.
	case data == "feed_now":
		b.logEvent(ctx, chatID, cq.From, model.EventFeeding, 0, false)
	case data == "diaper_now":
		b.logEvent(ctx, chatID, cq.From, model.EventDiaper, 0, false)
	case data == "set:feed":
		b.sendIntervalChoices(chatID, "feed")
	case data == "set:diaper":
		b.sendIntervalChoices(chatID, "diaper")
	case data == "set:tips":
		b.toggleTips(ctx, chatID, userID)
	case data == "set:bath":
		b.toggleBath(ctx, chatID, userID)
	case data == "set:family":
		b.handleFamilyMembers(ctx, chatID, userID)
	case data == "set:birth":
		b.state.get(userID).Step = stepBirthDate
		b.reply(chatID, "Send the birth date as YYYY-MM-DD:")
	case strings.HasPrefix(data, "int:"):
		b.setInterval(ctx, chatID, userID, strings.TrimPrefix(data, "int:"))
	case data == "tip:more":
		b.handleTip(ctx, chatID, userID)
	case data == "menu":
		b.sendMainMenu(chatID)
	}
}

func parseLogData(data string) (model.EventKind, int, bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return "", 0, false
	}
	kind := model.EventKind(parts[0])
	switch kind {
	case model.EventFeeding, model.EventDiaper, model.EventBath, model.EventActivity:
	default:
		return "", 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 {
		return "", 0, false
	}
	return kind, minutes, true
}

func (b *Bot) setInterval(ctx context.Context, chatID, userID int64, data string) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return
	}
	hours, err := strconv.Atoi(parts[1])
	if err != nil || hours < 1 || hours > 12 {
		return
	}
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		return
	}

	var feedPtr, diaperPtr *int
	switch parts[0] {
	case "feed":
		feedPtr = &hours
	case "diaper":
		diaperPtr = &hours
	default:
		return
	}
	if err := b.db.SetIntervals(ctx, familyID, feedPtr, diaperPtr); err != nil {
		b.reply(chatID, "Could not save, please try again.")
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Interval set to every %dh.", hours))
}

func (b *Bot) toggleTips(ctx context.Context, chatID, userID int64) {
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		return
	}
	settings, err := b.db.GetSettings(ctx, familyID)
	if err != nil {
		return
	}
	if err := b.db.SetTipsEnabled(ctx, familyID, !settings.TipsEnabled); err != nil {
		b.reply(chatID, "Could not save, please try again.")
		return
	}
	b.reply(chatID, "💡 Tips are now "+onOff(!settings.TipsEnabled)+".")
}

func (b *Bot) toggleBath(ctx context.Context, chatID, userID int64) {
	familyID, err := b.familyID(ctx, userID)
	if err != nil || familyID == 0 {
		return
	}
	settings, err := b.db.GetSettings(ctx, familyID)
	if err != nil {
		return
	}
	if err := b.db.SetBathReminderEnabled(ctx, familyID, !settings.BathReminderEnabled); err != nil {
		b.reply(chatID, "Could not save, please try again.")
		return
	}
	b.reply(chatID, "🛁 Bath reminders are now "+onOff(!settings.BathReminderEnabled)+".")
}

func eventLabel(kind model.EventKind) string {
	switch kind {
	case model.EventFeeding:
		return "feeding"
	case model.EventDiaper:
		return "diaper change"
	case model.EventBath:
		return "bath"
	case model.EventActivity:
		return "activity"
	default:
		return string(kind)
	}
}

func eventEmoji(kind model.EventKind) string {
	switch kind {
	case model.EventFeeding:
		return "🍼"
	case model.EventDiaper:
		return "🧷"
	case model.EventBath:
		return "🛁"
	case model.EventActivity:
		return "🎯"
	default:
		return "•"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func birthDateLabel(t *time.Time) string {
	if t == nil {
		return "not set"
	}
	return t.Format("2006-01-02")
}
