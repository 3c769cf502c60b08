// Package bot is the Telegram front end: family onboarding, event logging
// with duplicate confirmation, status and settings views, and the outbound
// channel the reminder engine delivers through.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"babycarebot/internal/cache"
	"babycarebot/internal/db"
	"babycarebot/internal/export"
	"babycarebot/internal/model"
	"babycarebot/internal/reminder"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type telegramClient interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	SelfUser() tgbotapi.User
}

type realTelegramClient struct {
	api *tgbotapi.BotAPI
}

func (c *realTelegramClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

func (c *realTelegramClient) Request(msg tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return c.api.Request(msg)
}

func (c *realTelegramClient) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return c.api.GetUpdatesChan(cfg)
}

func (c *realTelegramClient) SelfUser() tgbotapi.User {
	return c.api.Self
}

// reminderEngine is the slice of the engine the bot needs.
type reminderEngine interface {
	OnEventLogged(ctx context.Context, familyID int64, event model.EventKind) error
	CurrentStatus(ctx context.Context, familyID int64) (*reminder.Status, error)
}

// duplicateWindow is how recent a same-kind event must be to trigger the
// "already logged, are you sure?" confirmation.
const duplicateWindow = 30 * time.Minute

// Bot handles Telegram updates for the baby care tracker.
type Bot struct {
	db      *db.DB
	cache   *cache.FamilyCache
	engine  reminderEngine
	sheets  *export.SheetsService
	tg      telegramClient
	state   *stateStore
	admins  map[int64]struct{}
	loc     *time.Location
	histLen int
	logger  *zerolog.Logger
	now     func() time.Time
}

// Options carries the optional collaborators and display settings.
type Options struct {
	Cache        *cache.FamilyCache
	Sheets       *export.SheetsService
	Admins       []int64
	Location     *time.Location
	HistoryLimit int
}

// New connects to Telegram and builds the bot.
func New(token string, database *db.DB, engine reminderEngine, opts Options, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newBot(&realTelegramClient{api: api}, database, engine, opts, logger)
}

// NewWithTelegramClient allows injecting a mocked Telegram client for tests.
func NewWithTelegramClient(tg telegramClient, database *db.DB, engine reminderEngine, opts Options, logger *zerolog.Logger) (*Bot, error) {
	return newBot(tg, database, engine, opts, logger)
}

func newBot(tg telegramClient, database *db.DB, engine reminderEngine, opts Options, logger *zerolog.Logger) (*Bot, error) {
	if tg == nil {
		return nil, fmt.Errorf("telegram client is nil")
	}
	admins := make(map[int64]struct{})
	for _, id := range opts.Admins {
		admins[id] = struct{}{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 20
	}
	return &Bot{
		db:      database,
		cache:   opts.Cache,
		engine:  engine,
		sheets:  opts.Sheets,
		tg:      tg,
		state:   newStateStore(),
		admins:  admins,
		loc:     opts.Location,
		histLen: opts.HistoryLimit,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Channel returns the outbound surface the reminder engine delivers through.
func (b *Bot) Channel() reminder.Channel {
	return &reminderChannel{tg: b.tg}
}

var mainMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("🍼 Feeding"),
		tgbotapi.NewKeyboardButton("🧷 Diaper"),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("🛁 Bath"),
		tgbotapi.NewKeyboardButton("🎯 Activity"),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("📊 Status"),
		tgbotapi.NewKeyboardButton("📋 History"),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("💡 Tip"),
		tgbotapi.NewKeyboardButton("⚙️ Settings"),
	),
)

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "What would you like to do?")
	msg.ReplyMarkup = mainMenu
	_, _ = b.tg.Send(msg)
}

// Start begins polling updates until the context ends.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)
	b.logger.Info().Str("username", b.tg.SelfUser().UserName).Msg("bot authorized")

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			requestID := uuid.New().String()
			l := b.logger.With().Str("request_id", requestID).Logger()
			updateCtx := l.WithContext(ctx)
			b.handleUpdate(updateCtx, &update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	l := zerolog.Ctx(ctx)
	if update.CallbackQuery != nil {
		l.Debug().
			Int64("user_id", update.CallbackQuery.From.ID).
			Str("data", update.CallbackQuery.Data).
			Msg("Handling callback query")
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message != nil {
		l.Debug().
			Int64("user_id", update.Message.From.ID).
			Str("text", update.Message.Text).
			Msg("Handling message")
		b.handleMessage(ctx, update.Message)
		return
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil || msg.From == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)

	// Commands and menu buttons interrupt any active flow.
	switch {
	case strings.HasPrefix(text, "/start"):
		b.state.reset(msg.From.ID)
		b.handleStart(ctx, msg)
		return
	case text == "/help" || text == "ℹ️ Help":
		b.reply(msg.Chat.ID, "Log feedings, diaper changes, baths and activities; "+
			"I remind everyone in the family when the next one is due.\n\n"+
			"Commands: /status /history /settings /tip /stats /export /cancel")
		return
	case text == "🍼 Feeding":
		b.sendLogTimes(msg.Chat.ID, model.EventFeeding)
		return
	case text == "🧷 Diaper":
		b.sendLogTimes(msg.Chat.ID, model.EventDiaper)
		return
	case text == "🛁 Bath":
		b.logEvent(ctx, msg.Chat.ID, msg.From, model.EventBath, 0, false)
		return
	case text == "🎯 Activity":
		b.logEvent(ctx, msg.Chat.ID, msg.From, model.EventActivity, 0, false)
		return
	case text == "📊 Status" || text == "/status":
		b.handleStatus(ctx, msg.Chat.ID, msg.From.ID)
		return
	case text == "📋 History" || text == "/history":
		b.handleHistory(ctx, msg.Chat.ID, msg.From.ID)
		return
	case text == "💡 Tip" || text == "/tip":
		b.handleTip(ctx, msg.Chat.ID, msg.From.ID)
		return
	case text == "⚙️ Settings" || text == "/settings":
		b.handleSettings(ctx, msg.Chat.ID, msg.From.ID)
		return
	case text == "/stats":
		b.handleStats(ctx, msg.Chat.ID, msg.From.ID)
		return
	case text == "/export":
		b.handleExport(ctx, msg.Chat.ID, msg.From.ID)
		return
	case strings.HasPrefix(text, "/addtip"):
		b.handleAddTip(ctx, msg)
		return
	case text == "/cancel":
		b.state.reset(msg.From.ID)
		b.reply(msg.Chat.ID, "Cancelled.")
		b.sendMainMenu(msg.Chat.ID)
		return
	}

	st := b.state.get(msg.From.ID)
	switch st.Step {
	case stepFamilyName:
		b.finishCreateFamily(ctx, msg, text)
	case stepJoinCode:
		b.finishJoinFamily(ctx, msg, text)
	case stepCustomTime:
		b.finishCustomTime(ctx, msg, st, text)
	case stepBirthDate:
		b.finishBirthDate(ctx, msg, text)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.tg.Send(msg)
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}

func (b *Bot) answerCallback(id string) error {
	_, err := b.tg.Request(tgbotapi.NewCallback(id, ""))
	return err
}

func (b *Bot) isAdmin(userID int64) bool {
	_, ok := b.admins[userID]
	return ok
}

// familyID resolves the user's family, consulting the cache first. Zero
// means the user has not joined a family yet.
func (b *Bot) familyID(ctx context.Context, userID int64) (int64, error) {
	if id, ok := b.cache.Get(ctx, userID); ok {
		return id, nil
	}
	id, err := b.db.FamilyIDForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if id != 0 {
		b.cache.Put(ctx, userID, id)
	}
	return id, nil
}
