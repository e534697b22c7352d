package notify

import (
	"pricesmart/internal/domain"
	applog "pricesmart/internal/log"
)

// LogDispatcher just logs the alert. Default in development so sweeps
// work without SMTP or Telegram credentials.
type LogDispatcher struct{}

func (LogDispatcher) Send(ev domain.AlertEvent) bool {
	applog.BgInfo("notify.log", map[string]any{
		"to":      ev.Email,
		"product": ev.ProductName,
		"old":     ev.OldPrice,
		"new":     ev.NewPrice,
		"savings": ev.Savings,
	})
	return true
}
