package services

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"pricesmart/internal/domain"
	"pricesmart/internal/fetch"
	applog "pricesmart/internal/log"
	"pricesmart/internal/repos"
)

// SearchResult is what one product query produces: the merged quotes,
// comparative statistics over them, and the 7-day forecast.
type SearchResult struct {
	Query    string                `json:"query"`
	Quotes   []domain.Quote        `json:"results"`
	Stats    domain.AggregateStats `json:"statistics"`
	Forecast domain.Forecast       `json:"predictions"`
}

// Aggregator fans a query out to all configured sources, merges their
// quotes and substitutes the synthetic roster when every source comes
// back empty. It never returns an error to the caller: source failures
// are absorbed below it, and an empty merged set after fallback is a
// programming defect that gets logged loudly.
type Aggregator struct {
	Fetchers  []fetch.Fetcher
	Fallback  *fetch.Fallback
	Predictor *Predictor
	Searches  *repos.SearchRepo  // optional, best-effort logging
	History   *repos.HistoryRepo // optional, best-effort logging
	Timeout   time.Duration      // per-source fetch budget
}

func NewAggregator(fetchers []fetch.Fetcher, fb *fetch.Fallback, p *Predictor, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Aggregator{Fetchers: fetchers, Fallback: fb, Predictor: p, Timeout: timeout}
}

// Search runs one aggregation pass. query is assumed validated
// (non-empty, >=2 chars) by the HTTP layer. userID may be empty.
func (a *Aggregator) Search(ctx context.Context, query, userID string) SearchResult {
	quotes := a.collect(ctx, query)

	if len(quotes) == 0 {
		applog.BgInfo("search.fallback", map[string]any{"query": query})
		quotes = a.Fallback.Generate(query)
	}
	if len(quotes) == 0 {
		// Unreachable: the fallback guarantees a full roster.
		applog.BgError("search.empty_after_fallback", nil, map[string]any{"query": query})
		return SearchResult{Query: query}
	}

	markBestPrice(quotes)
	stats := Stats(quotes)
	forecast := a.Predictor.Predict(stats.LowestPrice)

	a.record(query, userID, quotes, stats)

	return SearchResult{Query: query, Quotes: quotes, Stats: stats, Forecast: forecast}
}

// collect runs every fetcher in parallel, each under its own timeout.
// A timed-out or failed source contributes nothing; the slowest source
// bounds the wait, there are no partial results.
func (a *Aggregator) collect(ctx context.Context, query string) []domain.Quote {
	results := make([][]domain.Quote, len(a.Fetchers))
	var wg sync.WaitGroup
	for i, f := range a.Fetchers {
		wg.Add(1)
		go func(i int, f fetch.Fetcher) {
			defer wg.Done()
			fctx, cancel := context.WithTimeout(ctx, a.Timeout)
			defer cancel()
			results[i] = f.Fetch(fctx, query)
		}(i, f)
	}
	wg.Wait()

	var merged []domain.Quote
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}

// markBestPrice stable-sorts by ascending price and flags exactly one
// best quote; ties go to the first quote encountered.
func markBestPrice(quotes []domain.Quote) {
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Price < quotes[j].Price })
	for i := range quotes {
		quotes[i].IsBestPrice = i == 0
	}
}

// Stats computes comparative statistics over a non-empty quote set.
func Stats(quotes []domain.Quote) domain.AggregateStats {
	lowest, highest := quotes[0].Price, quotes[0].Price
	bestPlatform := quotes[0].Platform
	maxOriginal := quotes[0].OriginalPrice
	var sumPrice, sumOriginal int
	for _, q := range quotes {
		if q.Price < lowest {
			lowest = q.Price
			bestPlatform = q.Platform
		}
		if q.Price > highest {
			highest = q.Price
		}
		if q.OriginalPrice > maxOriginal {
			maxOriginal = q.OriginalPrice
		}
		sumPrice += q.Price
		sumOriginal += q.OriginalPrice
	}

	avgDiscount := 0
	if sumOriginal > 0 {
		avgDiscount = int(math.Floor(float64(sumOriginal-sumPrice) / float64(sumOriginal) * 100))
	}

	return domain.AggregateStats{
		LowestPrice:     lowest,
		HighestPrice:    highest,
		AveragePrice:    int(math.Floor(float64(sumPrice) / float64(len(quotes)))),
		StoresCompared:  len(quotes),
		MaxSavings:      maxOriginal - lowest,
		AverageDiscount: avgDiscount,
		BestPlatform:    bestPlatform,
	}
}

// record logs the search and the observed lowest price. Failures here
// never fail the request.
func (a *Aggregator) record(query, userID string, quotes []domain.Quote, stats domain.AggregateStats) {
	if a.Searches != nil {
		if err := a.Searches.Log(query, len(quotes), userID); err != nil {
			applog.BgError("search.log.fail", err, map[string]any{"query": query})
		}
	}
	if a.History != nil {
		if err := a.History.Record(query, stats.LowestPrice, stats.BestPlatform); err != nil {
			applog.BgError("search.history.fail", err, map[string]any{"query": query})
		}
	}
}
