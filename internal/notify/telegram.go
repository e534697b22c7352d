package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pricesmart/internal/domain"
	applog "pricesmart/internal/log"
)

// TelegramDispatcher posts alerts to a single chat. Useful when no
// SMTP relay is available.
type TelegramDispatcher struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramDispatcher(token string, chatID int64) (*TelegramDispatcher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramDispatcher{bot: bot, chatID: chatID}, nil
}

func (d *TelegramDispatcher) Send(ev domain.AlertEvent) bool {
	text := fmt.Sprintf(
		"Price Drop Alert\n\nProduct: %s\nWas: ₹%d\nNow: ₹%d\nYou save: ₹%d",
		ev.ProductName, ev.OldPrice, ev.NewPrice, ev.Savings,
	)
	if _, err := d.bot.Send(tgbotapi.NewMessage(d.chatID, text)); err != nil {
		applog.BgError("notify.telegram.send.fail", err, map[string]any{"product": ev.ProductName})
		return false
	}
	applog.BgInfo("notify.telegram.sent", map[string]any{"product": ev.ProductName})
	return true
}
