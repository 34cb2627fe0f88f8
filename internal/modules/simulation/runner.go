package simulation

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/rs/zerolog"

	"github.com/aristath/goal-planner/internal/modules/portfolio"
	"github.com/aristath/goal-planner/pkg/formulas"
)

// Runner executes independent Monte Carlo trials against a fixed assumption
// set. The correlation matrix is factorized once at construction; a failed
// factorization is a configuration error and no Runner is returned.
type Runner struct {
	assumptions Assumptions
	factor      *mat.TriDense
	trialCount  int
	workers     int
	log         zerolog.Logger
}

// NewRunner validates the assumptions, factorizes the correlation matrix
// and returns a Runner executing trialCount trials per run.
func NewRunner(a Assumptions, trialCount int, log zerolog.Logger) (*Runner, error) {
	if trialCount <= 0 {
		return nil, fmt.Errorf("trial count must be positive, got %d", trialCount)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	factor, err := a.choleskyFactor()
	if err != nil {
		return nil, err
	}

	return &Runner{
		assumptions: a,
		factor:      factor,
		trialCount:  trialCount,
		workers:     runtime.NumCPU(),
		log:         log.With().Str("component", "runner").Logger(),
	}, nil
}

// trialSeed derives the random stream seed for one trial. The golden-ratio
// stride keeps streams for adjacent trials and adjacent base seeds disjoint.
func trialSeed(seed int64, trial int) int64 {
	const stride uint64 = 0x9E3779B97F4A7C15
	return int64(uint64(seed) + (uint64(trial)+1)*stride)
}

// TrialCount returns the number of trials executed per run
func (r *Runner) TrialCount() int {
	return r.trialCount
}

// Run executes all trials and returns their outcomes, indexed by trial.
// Trials are embarrassingly parallel: each one reads only the shared
// immutable assumptions and draws from its own random stream, derived from
// the base seed and the trial index. That makes results bit-identical for
// a given seed regardless of how trials are scheduled across workers.
func (r *Runner) Run(start portfolio.Portfolio, years int, seed int64) []TrialOutcome {
	outcomes := make([]TrialOutcome, r.trialCount)

	var wg sync.WaitGroup
	trials := make(chan int)

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := range trials {
				rng := rand.New(rand.NewSource(trialSeed(seed, trial)))
				sampler := newReturnSampler(r.assumptions, r.factor, rng)
				outcomes[trial] = runTrial(start, years, sampler)
			}
		}()
	}

	for trial := 0; trial < r.trialCount; trial++ {
		trials <- trial
	}
	close(trials)
	wg.Wait()

	if e := r.log.Debug(); e.Enabled() {
		totals := make([]float64, len(outcomes))
		for i, o := range outcomes {
			totals[i] = o.Total
		}
		e.Int("trials", r.trialCount).
			Int("years", years).
			Float64("mean_total", formulas.Mean(totals)).
			Float64("min_total", formulas.Min(totals)).
			Float64("max_total", formulas.Max(totals)).
			Msg("Simulation run completed")
	}

	return outcomes
}
