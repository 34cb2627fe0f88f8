package simulation

import (
	"github.com/aristath/goal-planner/internal/modules/portfolio"
)

// Request describes one simulation call: the starting portfolio snapshot,
// the projection horizon in years, an optional target value and an optional
// seed. A zero seed means the run is seeded from the clock; a non-zero seed
// pins the random stream for reproducible results.
type Request struct {
	Portfolio  portfolio.Portfolio `json:"portfolio"`
	Years      int                 `json:"years"`
	TargetGoal *float64            `json:"target_goal,omitempty"`
	Seed       int64               `json:"seed,omitempty"`
}

// GoalAnalysis reports the probability of the portfolio reaching the target
type GoalAnalysis struct {
	Target             float64 `json:"target"`
	SuccessProbability string  `json:"success_probability"`
}

// Scenario is one representative trial: its ending total and the ending
// per-class breakdown as realized in that specific trial. The breakdown
// always sums to the total because it belongs to a single path, not to
// independently computed per-class percentiles.
type Scenario struct {
	Total     float64             `json:"total"`
	Portfolio portfolio.Portfolio `json:"portfolio"`
}

// Result is the complete artifact returned to the caller
type Result struct {
	GoalAnalysis            *GoalAnalysis `json:"goal_analysis,omitempty"`
	MedianScenario          Scenario      `json:"median_scenario"`
	Bottom10PercentScenario Scenario      `json:"bottom_10_percent_scenario"`
	Top10PercentScenario    Scenario      `json:"top_10_percent_scenario"`
}
