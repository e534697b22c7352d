package services

import (
	"fmt"
	"math"

	"pricesmart/internal/domain"
	"pricesmart/internal/randx"
)

var (
	dayDates = []string{"Tomorrow", "Day 2", "Day 3", "Day 4", "Day 5", "Day 6", "Day 7"}
	dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// Predictor produces the heuristic 7-day price forecast. It is a
// stated placeholder, not a fitted model: per-day changes are drawn
// from a volatility band and floored at a fraction of the current
// price. All randomness comes from the injected source.
type Predictor struct {
	rnd randx.Source

	ChangeMin, ChangeMax       float64 // per-day change band
	FloorRatio                 float64 // hard lower bound vs. current price
	ConfMin, ConfMax           float64 // per-day confidence band
	ModelConfMin, ModelConfMax float64 // whole-forecast confidence band
}

func NewPredictor(rnd randx.Source) *Predictor {
	return &Predictor{
		rnd:          rnd,
		ChangeMin:    -0.04,
		ChangeMax:    0.02,
		FloorRatio:   0.85,
		ConfMin:      0.75,
		ConfMax:      0.92,
		ModelConfMin: 0.82,
		ModelConfMax: 0.95,
	}
}

// Predict builds the 7-day forecast for the given current price.
func (p *Predictor) Predict(currentPrice int) domain.Forecast {
	floor := int(float64(currentPrice) * p.FloorRatio)

	predictions := make([]domain.DayPrediction, 0, 7)
	for i := 0; i < 7; i++ {
		change := p.rnd.Uniform(p.ChangeMin, p.ChangeMax)
		predicted := int(float64(currentPrice) * (1 + change))
		if predicted < floor {
			predicted = floor
		}
		predictions = append(predictions, domain.DayPrediction{
			Date:           dayDates[i],
			Day:            dayNames[i],
			PredictedPrice: predicted,
			ChangePercent:  math.Round(change*1000) / 10,
			IsCheaper:      change < 0,
			Confidence:     round2(p.rnd.Uniform(p.ConfMin, p.ConfMax)),
		})
	}

	// Earliest day wins ties.
	best := predictions[0]
	for _, d := range predictions[1:] {
		if d.PredictedPrice < best.PredictedPrice {
			best = d
		}
	}
	savings := currentPrice - best.PredictedPrice

	var trend, recommendation string
	switch {
	case float64(savings) > float64(currentPrice)*0.05:
		trend = domain.TrendDecreasing
		recommendation = fmt.Sprintf("Wait for %s (%s) to save ₹%d", best.Date, best.Day, savings)
	case float64(savings) > float64(currentPrice)*0.02:
		trend = domain.TrendStable
		recommendation = "Good time to buy, but wait 2-3 days for better deal"
	default:
		trend = domain.TrendStable
		recommendation = "Buy now! Prices are at their lowest"
	}

	return domain.Forecast{
		CurrentPrice:    currentPrice,
		Predictions:     predictions,
		Trend:           trend,
		Recommendation:  recommendation,
		BestDay:         best,
		Savings:         savings,
		ModelConfidence: round2(p.rnd.Uniform(p.ModelConfMin, p.ModelConfMax)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
