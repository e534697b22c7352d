package handlers

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"pricesmart/internal/config"
	"pricesmart/internal/fetch"
	"pricesmart/internal/randx"
	"pricesmart/internal/repos"
	"pricesmart/internal/services"
)

type Deps struct {
	AuthHandler      *AuthHandler
	SearchHandler    *SearchHandler
	TrendingHandler  *TrendingHandler
	WatchlistHandler *WatchlistHandler

	Auth   *services.AuthService
	Alerts *services.AlertService
}

func NewDeps(db *sqlx.DB, cfg config.Config, rnd randx.Source, dispatch services.Dispatcher) *Deps {
	userRepo := repos.NewUserRepo(db)
	watchRepo := repos.NewWatchlistRepo(db)
	searchRepo := repos.NewSearchRepo(db)
	histRepo := repos.NewHistoryRepo(db)

	client := &http.Client{Timeout: cfg.FetchTimeout}
	fetchers := []fetch.Fetcher{
		fetch.NewAmazonFetcher(client, rnd),
		fetch.NewFlipkartFetcher(client, rnd),
	}

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)
	predictor := services.NewPredictor(rnd)
	agg := services.NewAggregator(fetchers, fetch.NewFallback(rnd), predictor, cfg.FetchTimeout)
	agg.Searches = searchRepo
	agg.History = histRepo
	watchSvc := services.NewWatchlistService(watchRepo)
	trendSvc := services.NewTrendingService(searchRepo, rnd)
	alertSvc := services.NewAlertService(watchRepo, dispatch)

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: authSvc},
		SearchHandler:    &SearchHandler{Agg: agg},
		TrendingHandler:  &TrendingHandler{Trends: trendSvc},
		WatchlistHandler: &WatchlistHandler{Watch: watchSvc},
		Auth:             authSvc,
		Alerts:           alertSvc,
	}
}
