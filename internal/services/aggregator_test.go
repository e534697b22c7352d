package services_test

import (
	"context"
	"testing"
	"time"

	"pricesmart/internal/domain"
	"pricesmart/internal/fetch"
	"pricesmart/internal/randx"
	"pricesmart/internal/services"
)

// fakeFetcher returns canned quotes, optionally after a delay.
type fakeFetcher struct {
	platform string
	quotes   []domain.Quote
	delay    time.Duration
}

func (f *fakeFetcher) Platform() string { return f.platform }

func (f *fakeFetcher) Fetch(ctx context.Context, query string) []domain.Quote {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil
		}
	}
	return f.quotes
}

func quote(platform string, price, original int) domain.Quote {
	return domain.Quote{
		Platform:      platform,
		Title:         "item",
		Price:         price,
		OriginalPrice: original,
		Source:        domain.SourceReal,
	}
}

func newAggregator(fetchers ...fetch.Fetcher) *services.Aggregator {
	return services.NewAggregator(
		fetchers,
		fetch.NewFallback(randx.New(1)),
		services.NewPredictor(randx.New(2)),
		time.Second,
	)
}

func TestSearchMergesAndFlagsBestPrice(t *testing.T) {
	a := newAggregator(
		&fakeFetcher{platform: "Amazon", quotes: []domain.Quote{quote("Amazon", 500, 600)}},
		&fakeFetcher{platform: "Flipkart", quotes: []domain.Quote{
			quote("Flipkart", 300, 450), quote("Flipkart", 700, 800),
		}},
	)

	res := a.Search(context.Background(), "test phone", "")

	if len(res.Quotes) != 3 {
		t.Fatalf("want 3 merged quotes, got %d", len(res.Quotes))
	}
	best := 0
	for i, q := range res.Quotes {
		if i > 0 && res.Quotes[i-1].Price > q.Price {
			t.Fatal("quotes not sorted ascending")
		}
		if q.IsBestPrice {
			best++
			if q.Price != res.Stats.LowestPrice {
				t.Fatalf("best price %d != lowest %d", q.Price, res.Stats.LowestPrice)
			}
		}
		if q.Price < res.Stats.LowestPrice || q.Price > res.Stats.HighestPrice {
			t.Fatalf("price %d outside [%d,%d]", q.Price, res.Stats.LowestPrice, res.Stats.HighestPrice)
		}
	}
	if best != 1 {
		t.Fatalf("want exactly one best price, got %d", best)
	}
	if res.Stats.BestPlatform != "Flipkart" {
		t.Fatalf("best platform: %s", res.Stats.BestPlatform)
	}
}

func TestStatsFormulas(t *testing.T) {
	quotes := []domain.Quote{
		quote("A", 100, 150),
		quote("B", 200, 260),
		quote("C", 300, 330),
	}
	s := services.Stats(quotes)

	if s.LowestPrice != 100 || s.HighestPrice != 300 {
		t.Fatalf("range: %+v", s)
	}
	if s.AveragePrice != 200 { // floor(600/3)
		t.Fatalf("average: %d", s.AveragePrice)
	}
	if s.StoresCompared != 3 {
		t.Fatalf("stores: %d", s.StoresCompared)
	}
	if s.MaxSavings != 230 { // max(original)=330 - min(price)=100
		t.Fatalf("max savings: %d", s.MaxSavings)
	}
	if s.AverageDiscount != 18 { // floor((740-600)/740*100)
		t.Fatalf("average discount: %d", s.AverageDiscount)
	}
	if s.BestPlatform != "A" {
		t.Fatalf("best platform: %s", s.BestPlatform)
	}
}

func TestStatsAverageFloors(t *testing.T) {
	s := services.Stats([]domain.Quote{quote("A", 100, 100), quote("B", 101, 101)})
	if s.AveragePrice != 100 { // floor(201/2)
		t.Fatalf("average must floor: %d", s.AveragePrice)
	}
}

func TestSearchEmptySourcesUsesFallbackRoster(t *testing.T) {
	a := newAggregator(
		&fakeFetcher{platform: "Amazon"},
		&fakeFetcher{platform: "Flipkart"},
	)

	res := a.Search(context.Background(), "wireless headphones", "")

	if len(res.Quotes) != fetch.RosterSize() {
		t.Fatalf("want fallback roster of %d, got %d", fetch.RosterSize(), len(res.Quotes))
	}
	best := 0
	for _, q := range res.Quotes {
		if q.Source != domain.SourceSynthetic {
			t.Fatalf("want all synthetic, got %q on %s", q.Source, q.Platform)
		}
		if q.IsBestPrice {
			best++
		}
	}
	if best != 1 {
		t.Fatalf("want exactly one best price, got %d", best)
	}
	if res.Forecast.CurrentPrice != res.Stats.LowestPrice {
		t.Fatal("forecast must start from the lowest price")
	}
	if len(res.Forecast.Predictions) != 7 {
		t.Fatalf("forecast days: %d", len(res.Forecast.Predictions))
	}
}

func TestSearchSlowSourceTimesOutToEmpty(t *testing.T) {
	a := newAggregator(
		&fakeFetcher{platform: "Amazon", quotes: []domain.Quote{quote("Amazon", 900, 1000)}},
		&fakeFetcher{platform: "Flipkart", delay: 5 * time.Second,
			quotes: []domain.Quote{quote("Flipkart", 100, 100)}},
	)
	a.Timeout = 30 * time.Millisecond

	start := time.Now()
	res := a.Search(context.Background(), "test phone", "")
	if time.Since(start) > 2*time.Second {
		t.Fatal("search must not wait past the per-source timeout")
	}

	// The slow source contributes nothing; the fast one still wins.
	if len(res.Quotes) != 1 || res.Quotes[0].Platform != "Amazon" {
		t.Fatalf("want only the fast source's quote, got %+v", res.Quotes)
	}
}

func TestSearchAlwaysReturnsQuotes(t *testing.T) {
	// Even with zero fetchers configured the fallback guarantees data.
	a := newAggregator()
	res := a.Search(context.Background(), "garden hose", "")
	if len(res.Quotes) == 0 {
		t.Fatal("search must never return an empty quote set")
	}
}
