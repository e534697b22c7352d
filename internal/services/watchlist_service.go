package services

import (
	"pricesmart/internal/domain"
	"pricesmart/internal/repos"
)

type WatchlistService struct {
	Repo *repos.WatchlistRepo
}

func NewWatchlistService(r *repos.WatchlistRepo) *WatchlistService {
	return &WatchlistService{Repo: r}
}

// Add tracks a product for a user. A zero target defaults to 90% of
// the current price.
func (s *WatchlistService) Add(userID, productName string, currentPrice, targetPrice int) (string, error) {
	if targetPrice <= 0 {
		targetPrice = currentPrice * 9 / 10
	}
	return s.Repo.Upsert(userID, productName, currentPrice, targetPrice)
}

func (s *WatchlistService) List(userID string) ([]domain.WatchlistEntry, error) {
	return s.Repo.ListByUser(userID)
}

func (s *WatchlistService) SetTarget(userID, entryID string, targetPrice int) error {
	return s.Repo.SetTarget(userID, entryID, targetPrice)
}

func (s *WatchlistService) Remove(userID, entryID string) error {
	return s.Repo.Deactivate(userID, entryID)
}
