package services_test

import (
	"strings"
	"testing"

	"pricesmart/internal/domain"
	"pricesmart/internal/randx"
	"pricesmart/internal/services"
)

// scripted feeds Uniform from a queue; the predictor draws, in order,
// (change, confidence) per day and one model confidence at the end.
type scripted struct {
	floats []float64
}

func (s *scripted) Uniform(min, max float64) float64 {
	if len(s.floats) == 0 {
		return min
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scripted) IntBetween(min, max int) int                   { return min }
func (s *scripted) Choice(options []string) string                { return options[0] }
func (s *scripted) WeightedChoice(o []string, w []float64) string { return o[0] }

func scriptDays(changes []float64, modelConf float64) *scripted {
	var q []float64
	for _, c := range changes {
		q = append(q, c, 0.80) // per-day confidence
	}
	q = append(q, modelConf)
	return &scripted{floats: q}
}

func TestPredictFixedScript(t *testing.T) {
	changes := []float64{-0.03, -0.01, 0.01, 0, -0.02, 0.01, -0.01}
	p := services.NewPredictor(scriptDays(changes, 0.9))

	f := p.Predict(50000)

	if len(f.Predictions) != 7 {
		t.Fatalf("want 7 days, got %d", len(f.Predictions))
	}
	if f.BestDay.Date != "Tomorrow" || f.BestDay.PredictedPrice != 48500 {
		t.Fatalf("best day wrong: %+v", f.BestDay)
	}
	if f.Savings != 1500 {
		t.Fatalf("savings: want 1500, got %d", f.Savings)
	}
	// 1500 is 3% of 50000: above the 2% tier, below the 5% tier.
	if f.Trend != domain.TrendStable {
		t.Fatalf("trend: want stable, got %s", f.Trend)
	}
	if !strings.Contains(f.Recommendation, "wait 2-3 days") {
		t.Fatalf("recommendation: %q", f.Recommendation)
	}
	if f.ModelConfidence != 0.9 {
		t.Fatalf("model confidence: %v", f.ModelConfidence)
	}
	if f.Predictions[0].ChangePercent != -3 || !f.Predictions[0].IsCheaper {
		t.Fatalf("day 1 fields: %+v", f.Predictions[0])
	}
	if f.Predictions[2].IsCheaper {
		t.Fatal("positive change must not be cheaper")
	}
}

func TestPredictFloorsAtEightyFivePercent(t *testing.T) {
	// A catastrophic drop gets clamped to the floor.
	p := services.NewPredictor(scriptDays([]float64{-0.5, 0, 0, 0, 0, 0, 0}, 0.9))
	p.ChangeMin = -0.6 // widen the band so the script is in range

	f := p.Predict(10000)
	floor := int(0.85 * 10000)
	for i, d := range f.Predictions {
		if d.PredictedPrice < floor {
			t.Fatalf("day %d price %d below floor %d", i+1, d.PredictedPrice, floor)
		}
	}
	if f.Predictions[0].PredictedPrice != floor {
		t.Fatalf("clamped day should sit on the floor, got %d", f.Predictions[0].PredictedPrice)
	}
}

func TestPredictBestDayEarliestWinsTies(t *testing.T) {
	p := services.NewPredictor(scriptDays([]float64{-0.02, -0.02, -0.02, 0, 0, 0, 0}, 0.9))
	f := p.Predict(10000)
	if f.BestDay.Date != "Tomorrow" {
		t.Fatalf("tie must go to earliest day, got %s", f.BestDay.Date)
	}
}

func TestRecommendationTierBoundaries(t *testing.T) {
	cases := []struct {
		change   float64
		trend    string
		fragment string
	}{
		// savings exactly 5% falls into the <=5% branch
		{-0.05, domain.TrendStable, "wait 2-3 days"},
		// just past 5%: decreasing, wait for best day
		{-0.06, domain.TrendDecreasing, "Wait for"},
		// savings exactly 2% falls into the lowest branch
		{-0.02, domain.TrendStable, "Buy now"},
		// no movement at all
		{0, domain.TrendStable, "Buy now"},
	}
	for _, c := range cases {
		p := services.NewPredictor(scriptDays([]float64{c.change, 0, 0, 0, 0, 0, 0}, 0.9))
		p.ChangeMin = -0.1
		f := p.Predict(10000)
		if f.Trend != c.trend {
			t.Errorf("change %v: trend %s, want %s", c.change, f.Trend, c.trend)
		}
		if !strings.Contains(f.Recommendation, c.fragment) {
			t.Errorf("change %v: recommendation %q, want fragment %q", c.change, f.Recommendation, c.fragment)
		}
	}
}

func TestPredictBandsWithSeededSource(t *testing.T) {
	p := services.NewPredictor(randx.New(5))
	f := p.Predict(40000)
	for i, d := range f.Predictions {
		if d.Confidence < 0.75 || d.Confidence > 0.92 {
			t.Errorf("day %d confidence %v out of band", i+1, d.Confidence)
		}
		if d.PredictedPrice < int(0.85*40000) {
			t.Errorf("day %d below floor", i+1)
		}
	}
	if f.ModelConfidence < 0.82 || f.ModelConfidence > 0.95 {
		t.Errorf("model confidence %v out of band", f.ModelConfidence)
	}
	min := f.Predictions[0].PredictedPrice
	for _, d := range f.Predictions[1:] {
		if d.PredictedPrice < min {
			min = d.PredictedPrice
		}
	}
	if f.BestDay.PredictedPrice != min {
		t.Fatalf("best day %d is not the minimum %d", f.BestDay.PredictedPrice, min)
	}
}
