package simulation

import (
	"testing"

	"github.com/aristath/goal-planner/internal/modules/portfolio"
)

func TestDefault_IsValid(t *testing.T) {
	a := Default()
	if err := a.Validate(); err != nil {
		t.Fatalf("default assumptions should validate: %v", err)
	}
	if _, err := a.choleskyFactor(); err != nil {
		t.Fatalf("default correlation matrix should factorize: %v", err)
	}
}

func TestValidate_RejectsAsymmetry(t *testing.T) {
	a := Default()
	a.Correlation[0][1] = 0.3 // [1][0] stays 0.1

	if err := a.Validate(); err == nil {
		t.Error("expected error for asymmetric correlation matrix")
	}
}

func TestValidate_RejectsOffUnitDiagonal(t *testing.T) {
	a := Default()
	a.Correlation[2][2] = 0.9

	if err := a.Validate(); err == nil {
		t.Error("expected error for non-unit diagonal")
	}
}

func TestValidate_RejectsOutOfRangeCorrelation(t *testing.T) {
	a := Default()
	a.Correlation[0][1] = 1.5
	a.Correlation[1][0] = 1.5

	if err := a.Validate(); err == nil {
		t.Error("expected error for correlation above 1")
	}
}

func TestValidate_RejectsNegativeVolatility(t *testing.T) {
	a := Default()
	a.Volatility[portfolio.Crypto] = -0.1

	if err := a.Validate(); err == nil {
		t.Error("expected error for negative volatility")
	}
}

func TestCholeskyFactor_RejectsNonPositiveDefinite(t *testing.T) {
	// Symmetric with unit diagonal but not positive definite:
	// rho(0,1)=0.9, rho(0,2)=0.9, rho(1,2)=-0.9 is internally inconsistent.
	a := Default()
	for i := range a.Correlation {
		for j := range a.Correlation[i] {
			if i == j {
				a.Correlation[i][j] = 1.0
			} else {
				a.Correlation[i][j] = 0.0
			}
		}
	}
	a.Correlation[0][1], a.Correlation[1][0] = 0.9, 0.9
	a.Correlation[0][2], a.Correlation[2][0] = 0.9, 0.9
	a.Correlation[1][2], a.Correlation[2][1] = -0.9, -0.9

	if err := a.Validate(); err != nil {
		t.Fatalf("matrix passes shape validation: %v", err)
	}
	if _, err := a.choleskyFactor(); err == nil {
		t.Error("expected factorization failure for non positive definite matrix")
	}
}

func TestCholeskyFactor_ReproducesCorrelation(t *testing.T) {
	a := Default()
	l, err := a.choleskyFactor()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// L·Lᵀ must reproduce the correlation matrix
	n := portfolio.NumAssetClasses
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			got := 0.0
			for k := 0; k < n; k++ {
				got += l.At(i, k) * l.At(j, k)
			}
			want := a.Correlation[i][j]
			if diff := got - want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("L·Lᵀ mismatch at (%d,%d): got %f, want %f", i, j, got, want)
			}
		}
	}
}
