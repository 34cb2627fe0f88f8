package simulation

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/aristath/goal-planner/internal/modules/portfolio"
)

// returnSampler draws one year of jointly-correlated asset class returns.
// Independent standard normals are transformed through the Cholesky factor
// of the correlation matrix, then scaled to each class's lognormal return
// model. Every sampler owns its own random stream, so samplers on
// different goroutines never share mutable state.
type returnSampler struct {
	assumptions Assumptions
	factor      *mat.TriDense
	rng         *rand.Rand
}

func newReturnSampler(a Assumptions, factor *mat.TriDense, rng *rand.Rand) *returnSampler {
	return &returnSampler{
		assumptions: a,
		factor:      factor,
		rng:         rng,
	}
}

// growthFactors returns one year's multiplicative growth factor per asset
// class: exp((mu - sigma^2/2) + sigma*z) with z correlated across classes.
// The lognormal form keeps asset values strictly positive no matter how
// adverse the draw. Each call is an independent draw; there is no
// autocorrelation between years.
func (s *returnSampler) growthFactors() [portfolio.NumAssetClasses]float64 {
	n := portfolio.NumAssetClasses

	// Independent standard normal draws.
	// Using math/rand is acceptable for Monte Carlo simulation (not crypto)
	//nolint:gosec // G404: Monte Carlo simulation doesn't require crypto-grade randomness
	var z [portfolio.NumAssetClasses]float64
	for i := 0; i < n; i++ {
		z[i] = s.rng.NormFloat64()
	}

	// Correlate via the lower-triangular factor: corr = L·z
	var growth [portfolio.NumAssetClasses]float64
	for i := 0; i < n; i++ {
		correlated := 0.0
		for j := 0; j <= i; j++ {
			correlated += s.factor.At(i, j) * z[j]
		}

		mu := s.assumptions.Mean[i]
		sigma := s.assumptions.Volatility[i]
		growth[i] = math.Exp((mu - 0.5*sigma*sigma) + sigma*correlated)
	}

	return growth
}
