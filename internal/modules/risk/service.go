package risk

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/goal-planner/internal/modules/portfolio"
	"github.com/aristath/goal-planner/internal/modules/simulation"
)

// Assessment maps a portfolio's weighted volatility to a risk tolerance tier
type Assessment struct {
	WeightedVolatility string `json:"weighted_volatility"`
	RiskToleranceTier  string `json:"risk_tolerance_tier"`
	PrimaryRiskDriver  string `json:"primary_risk_driver"`
}

// Service assesses portfolio risk tolerance using the same per-class
// volatility assumptions that drive the simulation engine.
type Service struct {
	volatility [portfolio.NumAssetClasses]float64
	log        zerolog.Logger
}

// NewService creates a risk assessment service
func NewService(a simulation.Assumptions, log zerolog.Logger) *Service {
	return &Service{
		volatility: a.Volatility,
		log:        log.With().Str("service", "risk").Logger(),
	}
}

// Assess computes the value-weighted portfolio volatility and maps it to a
// tier. This is a simplified linear weighting for a quick assessment, not
// the full correlated portfolio variance.
func (s *Service) Assess(p portfolio.Portfolio) (*Assessment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	total := p.Total()
	if total <= 0 {
		return nil, fmt.Errorf("portfolio total must be greater than zero")
	}

	weighted := 0.0
	driver := portfolio.Equities
	for i, value := range p {
		weighted += (value / total) * s.volatility[i]
		if value > p[driver] {
			driver = portfolio.AssetClass(i)
		}
	}

	return &Assessment{
		WeightedVolatility: fmt.Sprintf("%.2f%%", weighted*100),
		RiskToleranceTier:  tierFor(weighted),
		PrimaryRiskDriver:  driver.String(),
	}, nil
}

// tierFor maps weighted volatility to a risk tolerance tier
func tierFor(volatility float64) string {
	switch {
	case volatility < 0.04:
		return "Conservative (Preservation focused)"
	case volatility < 0.09:
		return "Moderate-Conservative (Income focused)"
	case volatility < 0.14:
		return "Moderate (Balanced Growth)"
	case volatility < 0.20:
		return "Aggressive (Growth focused)"
	default:
		return "Very Aggressive (Speculative/High Growth)"
	}
}
