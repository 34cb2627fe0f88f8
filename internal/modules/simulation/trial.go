package simulation

import (
	"github.com/aristath/goal-planner/internal/modules/portfolio"
)

// TrialOutcome is the result of one simulated path: the ending per-class
// breakdown and its total. Outcomes are ephemeral, created and discarded
// within a single run.
type TrialOutcome struct {
	Ending portfolio.Portfolio
	Total  float64
}

// runTrial compounds the starting portfolio forward one year at a time.
// Classes with zero starting value stay zero: growth is multiplicative and
// no new capital is introduced during the projection window.
func runTrial(start portfolio.Portfolio, years int, sampler *returnSampler) TrialOutcome {
	current := start
	for year := 0; year < years; year++ {
		growth := sampler.growthFactors()
		for i := range current {
			current[i] *= growth[i]
		}
	}

	return TrialOutcome{
		Ending: current,
		Total:  current.Total(),
	}
}
