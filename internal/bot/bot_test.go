package bot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"babycarebot/internal/db"
	"babycarebot/internal/model"
	"babycarebot/internal/reminder"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTG struct {
	sent []tgbotapi.Chattable
}

func (f *fakeTG) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeTG) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTG) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeTG) SelfUser() tgbotapi.User {
	return tgbotapi.User{UserName: "test_bot"}
}

func TestParseCustomTime(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, loc)

	t.Run("MinutesAgo", func(t *testing.T) {
		ts, err := parseCustomTime("45", now, loc)
		require.NoError(t, err)
		assert.Equal(t, now.Add(-45*time.Minute), ts)
	})

	t.Run("ClockTimeToday", func(t *testing.T) {
		ts, err := parseCustomTime("09:30", now, loc)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 9, 30, 0, 0, loc), ts)
	})

	t.Run("ClockTimeYesterday", func(t *testing.T) {
		// 14:30 has not happened yet at noon, so it means yesterday.
		ts, err := parseCustomTime("14:30", now, loc)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 2, 28, 14, 30, 0, 0, loc), ts)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, input := range []string{"", "abc", "-5", "99:99", "1500"} {
			_, err := parseCustomTime(input, now, loc)
			assert.Error(t, err, "input: %s", input)
		}
	})
}

func TestParseLogData(t *testing.T) {
	tests := []struct {
		data    string
		kind    model.EventKind
		minutes int
		ok      bool
	}{
		{"feeding:0", model.EventFeeding, 0, true},
		{"diaper:30", model.EventDiaper, 30, true},
		{"bath:15", model.EventBath, 15, true},
		{"feeding:-1", "", 0, false},
		{"unknown:0", "", 0, false},
		{"feeding", "", 0, false},
		{"feeding:x", "", 0, false},
	}
	for _, tt := range tests {
		kind, minutes, ok := parseLogData(tt.data)
		assert.Equal(t, tt.ok, ok, "data: %s", tt.data)
		if tt.ok {
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.minutes, minutes)
		}
	}
}

func TestFormatStatus(t *testing.T) {
	st := &reminder.Status{
		NeedsFeeding:        true,
		FeedingTracked:      true,
		HoursSinceFeeding:   3.5,
		FeedIntervalHours:   3,
		DiaperTracked:       false,
		DiaperIntervalHours: 2,
	}

	text := formatStatus(st)
	assert.Contains(t, text, "due (last 3h 30m ago)")
	assert.Contains(t, text, "not tracked yet")
	assert.Contains(t, text, "every 3h")
}

func TestReminderChannelKeyboard(t *testing.T) {
	tg := &fakeTG{}
	ch := &reminderChannel{tg: tg}

	err := ch.SendMessage(context.Background(), 42, "time to feed", []reminder.Action{
		{Label: "🍼 Log feeding", Data: "feed_now"},
	})
	require.NoError(t, err)
	require.Len(t, tg.sent, 1)

	msg, ok := tg.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "time to feed", msg.Text)

	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, "🍼 Log feeding", markup.InlineKeyboard[0][0].Text)
}

func TestHandleFamilyMembers(t *testing.T) {
	database, err := db.New(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	family, err := database.CreateFamily(ctx, "Smiths", 100)
	require.NoError(t, err)
	_, err = database.JoinFamily(ctx, family.InviteCode, 200)
	require.NoError(t, err)
	require.NoError(t, database.SetMemberInfo(ctx, 200, "parent", "Dana"))

	tg := &fakeTG{}
	logger := zerolog.Nop()
	b, err := NewWithTelegramClient(tg, database, nil, Options{}, &logger)
	require.NoError(t, err)

	b.handleFamilyMembers(ctx, 100, 100)

	require.Len(t, tg.sent, 1)
	msg, ok := tg.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Smiths")
	assert.Contains(t, msg.Text, "user 100")
	assert.Contains(t, msg.Text, "Dana")
	assert.Contains(t, msg.Text, family.InviteCode)
}

func TestStateStore(t *testing.T) {
	s := newStateStore()

	st := s.get(1)
	assert.Equal(t, stepNone, st.Step)

	st.Step = stepCustomTime
	st.PendingEvent = model.EventFeeding
	assert.Equal(t, stepCustomTime, s.get(1).Step)

	s.reset(1)
	assert.Equal(t, stepNone, s.get(1).Step)
}

func TestEventLabels(t *testing.T) {
	assert.Equal(t, "diaper change", eventLabel(model.EventDiaper))
	assert.Equal(t, "Feeding", capitalize(eventLabel(model.EventFeeding)))
	assert.Equal(t, "🛁", eventEmoji(model.EventBath))
	assert.Equal(t, "on", onOff(true))
}
