package bot

import (
	"context"

	"babycarebot/internal/reminder"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// reminderChannel adapts the Telegram client to the engine's delivery
// surface. Actions become one row of inline buttons.
type reminderChannel struct {
	tg telegramClient
}

func (c *reminderChannel) SendMessage(ctx context.Context, recipientID int64, text string, actions []reminder.Action) error {
	msg := tgbotapi.NewMessage(recipientID, text)
	if len(actions) > 0 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(actions))
		for _, a := range actions {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(a.Label, a.Data))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	}
	_, err := c.tg.Send(msg)
	return err
}
