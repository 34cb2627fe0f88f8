package simulation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aristath/goal-planner/internal/modules/portfolio"
)

// Assumptions holds the capital market assumptions driving a simulation:
// annual expected return and volatility per asset class, and the pairwise
// correlation between class returns. Constructed once, passed by value,
// never mutated.
type Assumptions struct {
	Mean        [portfolio.NumAssetClasses]float64
	Volatility  [portfolio.NumAssetClasses]float64
	Correlation [portfolio.NumAssetClasses][portfolio.NumAssetClasses]float64
}

// Default returns the illustrative assumption set used for goal planning.
// The correlation structure captures flight-to-safety behavior: bonds and
// commodities hedge equities, cash is uncorrelated with everything.
// Order: Equities, Fixed_Income, Real_Estate, Commodities, Crypto, Cash.
func Default() Assumptions {
	return Assumptions{
		Mean:       [portfolio.NumAssetClasses]float64{0.085, 0.040, 0.060, 0.050, 0.200, 0.025},
		Volatility: [portfolio.NumAssetClasses]float64{0.19, 0.06, 0.15, 0.16, 0.75, 0.01},
		Correlation: [portfolio.NumAssetClasses][portfolio.NumAssetClasses]float64{
			{1.0, 0.1, 0.6, 0.2, 0.5, 0.0},
			{0.1, 1.0, 0.1, -0.1, -0.1, 0.2},
			{0.6, 0.1, 1.0, 0.3, 0.2, 0.0},
			{0.2, -0.1, 0.3, 1.0, 0.2, 0.0},
			{0.5, -0.1, 0.2, 0.2, 1.0, 0.0},
			{0.0, 0.2, 0.0, 0.0, 0.0, 1.0},
		},
	}
}

// Validate checks the assumption set for configuration errors: negative
// volatility, an asymmetric correlation matrix, off-unit diagonal, or
// correlations outside [-1, 1]. Positive definiteness is checked separately
// by the Cholesky factorization in NewRunner.
func (a Assumptions) Validate() error {
	n := portfolio.NumAssetClasses

	for i := 0; i < n; i++ {
		if a.Volatility[i] < 0 {
			return fmt.Errorf("volatility for %s is negative: %f", portfolio.AssetClass(i), a.Volatility[i])
		}
	}

	for i := 0; i < n; i++ {
		if a.Correlation[i][i] != 1.0 {
			return fmt.Errorf("correlation matrix diagonal must be 1.0, got %f at %s",
				a.Correlation[i][i], portfolio.AssetClass(i))
		}
		for j := 0; j < n; j++ {
			if math.Abs(a.Correlation[i][j]) > 1.0 {
				return fmt.Errorf("correlation between %s and %s is out of range: %f",
					portfolio.AssetClass(i), portfolio.AssetClass(j), a.Correlation[i][j])
			}
			if a.Correlation[i][j] != a.Correlation[j][i] {
				return fmt.Errorf("correlation matrix is not symmetric at (%s, %s)",
					portfolio.AssetClass(i), portfolio.AssetClass(j))
			}
		}
	}

	return nil
}

// choleskyFactor returns the lower-triangular factor L of the correlation
// matrix, with L·Lᵀ equal to the matrix. Factorization failure means the
// matrix is not positive definite, which is a fatal configuration error.
func (a Assumptions) choleskyFactor() (*mat.TriDense, error) {
	n := portfolio.NumAssetClasses

	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = a.Correlation[i][j]
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(mat.NewSymDense(n, data)); !ok {
		return nil, fmt.Errorf("correlation matrix is not positive definite")
	}

	var l mat.TriDense
	chol.LTo(&l)
	return &l, nil
}
