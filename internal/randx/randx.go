// Package randx provides the injectable random source used by the
// fallback generator and the trend predictor. Both components take a
// Source instead of reaching for package-level randomness so that
// tests can seed or script them.
package randx

import "math/rand"

// Source is the randomness capability the pricing heuristics consume.
type Source interface {
	// Uniform returns a float64 in [min, max).
	Uniform(min, max float64) float64
	// IntBetween returns an int in [min, max] inclusive.
	IntBetween(min, max int) int
	// Choice picks one option with equal probability.
	Choice(options []string) string
	// WeightedChoice picks one option according to the given weights.
	// Weights need not sum to 1; the last option wins on rounding drift.
	WeightedChoice(options []string, weights []float64) string
}

type source struct{ r *rand.Rand }

// New returns a seeded Source. The same seed yields the same draw
// sequence, which is what the generator tests rely on.
func New(seed int64) Source {
	return &source{r: rand.New(rand.NewSource(seed))}
}

func (s *source) Uniform(min, max float64) float64 {
	return min + s.r.Float64()*(max-min)
}

func (s *source) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

func (s *source) Choice(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[s.r.Intn(len(options))]
}

func (s *source) WeightedChoice(options []string, weights []float64) string {
	if len(options) == 0 {
		return ""
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return options[0]
	}
	target := s.r.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if target < acc {
			return options[i]
		}
	}
	return options[len(options)-1]
}
