package simulation

import (
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aristath/goal-planner/internal/modules/portfolio"
	"github.com/aristath/goal-planner/pkg/formulas"
)

func testPortfolio() portfolio.Portfolio {
	p := portfolio.New()
	p[portfolio.Equities] = 700000
	p[portfolio.FixedIncome] = 200000
	p[portfolio.Cash] = 100000
	return p
}

func TestRunner_Deterministic(t *testing.T) {
	runner, err := NewRunner(Default(), 500, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := runner.Run(testPortfolio(), 10, 42)
	second := runner.Run(testPortfolio(), 10, 42)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical seeds must produce bit-identical outcomes")
	}

	third := runner.Run(testPortfolio(), 10, 43)
	if reflect.DeepEqual(first, third) {
		t.Error("different seeds should produce different outcomes")
	}
}

func TestRunner_TrialIndependence(t *testing.T) {
	runner, err := NewRunner(Default(), 200, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outcomes := runner.Run(testPortfolio(), 5, 7)

	if len(outcomes) != 200 {
		t.Fatalf("expected 200 outcomes, got %d", len(outcomes))
	}

	// Trials draw from independent streams; all identical would mean the
	// streams are shared
	allSame := true
	for _, o := range outcomes[1:] {
		if o.Total != outcomes[0].Total {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("all trials produced the same total; random streams are not independent")
	}
}

func TestRunner_RejectsBadConfiguration(t *testing.T) {
	a := Default()
	a.Correlation[0][1] = 0.7 // breaks symmetry

	if _, err := NewRunner(a, 100, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid assumptions")
	}
}

func TestNewRunner_RejectsNonPositiveTrialCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		if _, err := NewRunner(Default(), count, zerolog.Nop()); err == nil {
			t.Errorf("expected error for trial count %d", count)
		}
	}
}

func TestExtractScenarios_RankOrdering(t *testing.T) {
	runner, err := NewRunner(Default(), 1000, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outcomes := runner.Run(testPortfolio(), 10, 11)
	bottom, median, top := extractScenarios(outcomes)

	if bottom.Total > median.Total {
		t.Errorf("bottom (%.2f) exceeds median (%.2f)", bottom.Total, median.Total)
	}
	if median.Total > top.Total {
		t.Errorf("median (%.2f) exceeds top (%.2f)", median.Total, top.Total)
	}

	// Nearest-rank selection should sit right on the empirical quantile
	totals := make([]float64, len(outcomes))
	for i, o := range outcomes {
		totals[i] = o.Total
	}
	q50 := formulas.Quantile(0.50, totals)
	if diff := math.Abs(median.Total-q50) / q50; diff > 0.05 {
		t.Errorf("median scenario %.2f too far from empirical median %.2f", median.Total, q50)
	}
}

func TestExtractScenarios_BreakdownSumsToTotal(t *testing.T) {
	runner, err := NewRunner(Default(), 1000, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outcomes := runner.Run(testPortfolio(), 10, 11)
	bottom, median, top := extractScenarios(outcomes)

	for _, scenario := range []Scenario{bottom, median, top} {
		// Per-class values and totals are rounded to cents independently
		if diff := math.Abs(scenario.Portfolio.Total() - scenario.Total); diff > 0.05 {
			t.Errorf("breakdown sums to %.4f, total is %.4f (diff %.4f)",
				scenario.Portfolio.Total(), scenario.Total, diff)
		}
	}
}

func TestExtractScenarios_NearestRank(t *testing.T) {
	// Synthetic outcomes with known totals 1..10: ranks 10/50/90 select
	// index 0, 4 and 8 of the sorted order
	outcomes := make([]TrialOutcome, 10)
	for i := range outcomes {
		var p portfolio.Portfolio
		p[portfolio.Equities] = float64(10 - i) // descending, extractor must sort
		outcomes[i] = TrialOutcome{Ending: p, Total: p.Total()}
	}

	bottom, median, top := extractScenarios(outcomes)

	if bottom.Total != 1 {
		t.Errorf("expected bottom total 1, got %.2f", bottom.Total)
	}
	if median.Total != 5 {
		t.Errorf("expected median total 5, got %.2f", median.Total)
	}
	if top.Total != 9 {
		t.Errorf("expected top total 9, got %.2f", top.Total)
	}
}

func TestGoalProbability(t *testing.T) {
	outcomes := make([]TrialOutcome, 4)
	for i, total := range []float64{100, 200, 300, 400} {
		outcomes[i] = TrialOutcome{Total: total}
	}

	tests := []struct {
		name   string
		target float64
		want   string
	}{
		{name: "all meet", target: 50, want: "100.00%"},
		{name: "boundary counts as met", target: 200, want: "75.00%"},
		{name: "half", target: 250, want: "50.00%"},
		{name: "none meet", target: 500, want: "0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := goalProbability(outcomes, tt.target)
			if analysis.SuccessProbability != tt.want {
				t.Errorf("target %.0f: expected %s, got %s", tt.target, tt.want, analysis.SuccessProbability)
			}
			if analysis.Target != tt.target {
				t.Errorf("expected target %.0f echoed back, got %.0f", tt.target, analysis.Target)
			}
		})
	}
}
