package services

import (
	"pricesmart/internal/domain"
	applog "pricesmart/internal/log"
	"pricesmart/internal/repos"
)

// WatchlistStore is what the sweep needs from persistence.
// *repos.WatchlistRepo satisfies it.
type WatchlistStore interface {
	ListActiveWithEmail() ([]repos.ActiveRow, error)
	MarkChecked(entryID string) error
}

// Dispatcher delivers one alert. A false return means the alert was
// not delivered; the sweep then skips the last-checked update for that
// entry and moves on.
type Dispatcher interface {
	Send(ev domain.AlertEvent) bool
}

// AlertService evaluates watchlists against their target prices and
// emits alert events.
type AlertService struct {
	Store    WatchlistStore
	Dispatch Dispatcher
}

func NewAlertService(store WatchlistStore, dispatch Dispatcher) *AlertService {
	return &AlertService{Store: store, Dispatch: dispatch}
}

// Sweep checks every active entry and returns the number of alerts
// sent. An entry qualifies iff currentPrice <= targetPrice. There is
// no cooldown: an entry still under target on the next sweep is
// alerted again.
func (s *AlertService) Sweep() int {
	rows, err := s.Store.ListActiveWithEmail()
	if err != nil {
		applog.BgError("sweep.list.fail", err, nil)
		return 0
	}

	sent := 0
	for _, row := range rows {
		if row.CurrentPrice > row.TargetPrice {
			continue
		}
		ev := domain.AlertEvent{
			Email:       row.Email,
			ProductName: row.ProductName,
			OldPrice:    row.TargetPrice,
			NewPrice:    row.CurrentPrice,
			Savings:     row.TargetPrice - row.CurrentPrice,
		}
		if !s.Dispatch.Send(ev) {
			applog.BgWarn("sweep.dispatch.fail", map[string]any{
				"entry": row.ID, "product": row.ProductName,
			})
			continue
		}
		if err := s.Store.MarkChecked(row.ID); err != nil {
			applog.BgError("sweep.mark.fail", err, map[string]any{"entry": row.ID})
		}
		sent++
	}

	applog.BgInfo("sweep.done", map[string]any{"checked": len(rows), "sent": sent})
	return sent
}

// PriceDropped is the relative-drop policy: true when the current
// price fell at least 10% below a previously stored price. It is
// deliberately not wired into Sweep; integrators can schedule it
// separately against HistoryRepo.LatestPrice.
func PriceDropped(currentPrice, storedPrice int) (bool, int) {
	if storedPrice <= 0 {
		return false, 0
	}
	// Integer math keeps the 10% boundary exact.
	drop := storedPrice - currentPrice
	if drop*10 >= storedPrice {
		return true, drop
	}
	return false, 0
}
