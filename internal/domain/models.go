package domain

import "math"

// SourceKind says whether a quote came from a live marketplace page or
// was synthesized by the fallback generator.
type SourceKind string

const (
	SourceReal      SourceKind = "real"
	SourceSynthetic SourceKind = "synthetic"
)

// Stock status labels as shown to users.
const (
	StockIn      = "In Stock"
	StockLimited = "Limited Stock"
	StockOut     = "Out of Stock"
)

// Quote is one normalized price listing for a product at one marketplace.
// Prices are integer currency units. Immutable once produced.
type Quote struct {
	Platform        string     `json:"platform"`
	Title           string     `json:"title"`
	Price           int        `json:"price"`
	OriginalPrice   int        `json:"original_price"`
	DiscountPercent int        `json:"discount_percent"`
	Rating          float64    `json:"rating"`
	ReviewsCount    int        `json:"reviews_count"`
	URL             string     `json:"url"`
	StockStatus     string     `json:"stock_status"`
	Shipping        string     `json:"shipping"`
	Delivery        string     `json:"delivery"`
	Seller          string     `json:"seller"`
	Category        string     `json:"category"`
	Source          SourceKind `json:"source"`
	IsBestPrice     bool       `json:"is_best_price"`
}

// DiscountPercent derives the discount from original vs. current price.
// A listing priced above its "original" yields a negative discount;
// that is part of the contract and must not be clamped.
func DiscountPercent(originalPrice, price int) int {
	if originalPrice == 0 {
		return 0
	}
	return int(math.Round(float64(originalPrice-price) / float64(originalPrice) * 100))
}

// AggregateStats summarizes a non-empty set of quotes.
type AggregateStats struct {
	LowestPrice     int    `json:"lowest_price"`
	HighestPrice    int    `json:"highest_price"`
	AveragePrice    int    `json:"average_price"`
	StoresCompared  int    `json:"stores_compared"`
	MaxSavings      int    `json:"max_savings"`
	AverageDiscount int    `json:"average_discount"`
	BestPlatform    string `json:"best_platform"`
}

// DayPrediction is one step of the 7-day forecast.
type DayPrediction struct {
	Date           string  `json:"date"` // "Tomorrow", "Day 2", ...
	Day            string  `json:"day"`  // weekday label
	PredictedPrice int     `json:"predicted_price"`
	ChangePercent  float64 `json:"change_percent"`
	IsCheaper      bool    `json:"is_cheaper"`
	Confidence     float64 `json:"confidence"`
}

// Trend labels for the forecast.
const (
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Forecast is the 7-step predicted price sequence plus the buy/wait call.
type Forecast struct {
	CurrentPrice    int             `json:"current_lowest_price"`
	Predictions     []DayPrediction `json:"predictions"`
	Trend           string          `json:"trend"`
	Recommendation  string          `json:"recommendation"`
	BestDay         DayPrediction   `json:"best_time_to_buy"`
	Savings         int             `json:"savings"`
	ModelConfidence float64         `json:"model_confidence"`
}

// WatchlistEntry is a tracked product with a target price.
type WatchlistEntry struct {
	ID           string `db:"id" json:"id"`
	UserID       string `db:"user_id" json:"-"`
	ProductName  string `db:"product_name" json:"name"`
	CurrentPrice int    `db:"current_price" json:"current_price"`
	TargetPrice  int    `db:"target_price" json:"target_price"`
	AddedAt      string `db:"added_at" json:"added_at"`
	LastChecked  string `db:"last_checked" json:"last_checked,omitempty"`
	Active       bool   `db:"is_active" json:"-"`
}

// AlertEvent is produced and consumed within one sweep; never persisted.
type AlertEvent struct {
	Email       string
	ProductName string
	OldPrice    int // target price at trigger time
	NewPrice    int // current price at trigger time
	Savings     int // OldPrice - NewPrice
}
