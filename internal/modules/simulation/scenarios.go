package simulation

import (
	"fmt"
	"math"
	"sort"

	"github.com/aristath/goal-planner/internal/modules/portfolio"
)

// extractScenarios orders trials by ending total ascending and selects the
// trials at the 10th, 50th and 90th percentile ranks (nearest-rank, no
// interpolation). Each scenario carries the full breakdown of the selected
// trial, so its asset values sum exactly to its total.
func extractScenarios(outcomes []TrialOutcome) (bottom, median, top Scenario) {
	n := len(outcomes)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return outcomes[order[a]].Total < outcomes[order[b]].Total
	})

	rank := func(q float64) TrialOutcome {
		return outcomes[order[int(q*float64(n-1))]]
	}

	bottom = newScenario(rank(0.10))
	median = newScenario(rank(0.50))
	top = newScenario(rank(0.90))
	return bottom, median, top
}

// newScenario rounds the selected trial's figures to cents for reporting
func newScenario(outcome TrialOutcome) Scenario {
	var rounded portfolio.Portfolio
	for i, v := range outcome.Ending {
		rounded[i] = roundCents(v)
	}
	return Scenario{
		Total:     roundCents(outcome.Total),
		Portfolio: rounded,
	}
}

// goalProbability computes the fraction of trials whose ending total meets
// or exceeds the target. The probability is evaluated against the scalar
// total only, never per asset class. 0.00% and 100.00% are valid outputs
// for extreme targets.
func goalProbability(outcomes []TrialOutcome, target float64) GoalAnalysis {
	met := 0
	for _, o := range outcomes {
		if o.Total >= target {
			met++
		}
	}

	probability := float64(met) / float64(len(outcomes))
	return GoalAnalysis{
		Target:             target,
		SuccessProbability: fmt.Sprintf("%.2f%%", probability*100),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
