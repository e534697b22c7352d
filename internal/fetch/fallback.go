package fetch

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pricesmart/internal/domain"
	"pricesmart/internal/randx"
)

// basePrice maps a query keyword to a plausible base price. Ordered:
// the first matching keyword wins.
type basePrice struct {
	keyword string
	price   int
}

var basePrices = []basePrice{
	{"iphone", 75000},
	{"macbook", 120000},
	{"airpods", 25000},
	{"watch", 35000},
	{"samsung", 55000},
	{"nike", 12000},
	{"sony", 45000},
	{"camera", 60000},
	{"laptop", 80000},
	{"headphone", 15000},
	{"tv", 50000},
	{"tablet", 40000},
}

const defaultBasePrice = 25000

var fallbackPlatforms = []string{
	"Amazon", "Flipkart", "Myntra", "Reliance Digital", "Croma", "Tata CLiQ",
}

var (
	stockOptions = []string{domain.StockIn, domain.StockLimited, domain.StockOut}
	stockWeights = []float64{0.7, 0.2, 0.1}
	shippingOpts = []string{"FREE Delivery", "FREE Shipping", "₹49 Shipping"}
	sellerKinds  = []string{"Authorized", "Certified", "Official"}
)

// Fallback produces synthetic quotes when every real source comes back
// empty. Shape is deterministic (full platform roster, one quote each);
// values are drawn from the injected source, so a seeded source makes
// the output reproducible.
type Fallback struct {
	rnd randx.Source
}

func NewFallback(rnd randx.Source) *Fallback { return &Fallback{rnd: rnd} }

// BasePriceFor classifies a query against the keyword table.
func BasePriceFor(query string) int {
	q := strings.ToLower(query)
	for _, bp := range basePrices {
		if strings.Contains(q, bp.keyword) {
			return bp.price
		}
	}
	return defaultBasePrice
}

// Generate returns one synthetic quote per roster platform, sorted by
// ascending price with the first marked best.
func (f *Fallback) Generate(query string) []domain.Quote {
	base := BasePriceFor(query)
	category := categoryFor(query)

	quotes := make([]domain.Quote, 0, len(fallbackPlatforms))
	for _, platform := range fallbackPlatforms {
		variation := f.rnd.Uniform(0.85, 1.15)
		price := roundTo100(int(float64(base) * variation))
		originalPrice := int(float64(price) * f.rnd.Uniform(1.1, 1.3))

		quotes = append(quotes, domain.Quote{
			Platform:        platform,
			Title:           fmt.Sprintf("%s - %s Exclusive", titleCase(query), platform),
			Price:           price,
			OriginalPrice:   originalPrice,
			DiscountPercent: domain.DiscountPercent(originalPrice, price),
			Rating:          round1(f.rnd.Uniform(3.5, 4.8)),
			ReviewsCount:    f.rnd.IntBetween(100, 50000),
			URL:             searchURL(platform, query),
			StockStatus:     f.rnd.WeightedChoice(stockOptions, stockWeights),
			Shipping:        f.rnd.Choice(shippingOpts),
			Delivery:        fmt.Sprintf("%d-%d days", f.rnd.IntBetween(1, 3), f.rnd.IntBetween(3, 7)),
			Seller:          fmt.Sprintf("%s %s Seller", platform, f.rnd.Choice(sellerKinds)),
			Category:        category,
			Source:          domain.SourceSynthetic,
		})
	}

	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Price < quotes[j].Price })
	quotes[0].IsBestPrice = true
	return quotes
}

// RosterSize is the number of quotes Generate always returns.
func RosterSize() int { return len(fallbackPlatforms) }

func roundTo100(price int) int {
	return int(math.Round(float64(price)/100)) * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func searchURL(platform, query string) string {
	host := strings.ReplaceAll(strings.ToLower(platform), " ", "")
	return "https://www." + host + ".com/search?q=" + strings.ReplaceAll(query, " ", "+")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
