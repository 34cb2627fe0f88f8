package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalidInput marks per-call validation failures. Callers can recover
// by correcting the request; nothing is simulated when it is returned.
var ErrInvalidInput = errors.New("invalid simulation input")

// Service runs the goal-planning simulation pipeline:
// validate -> run trials -> extract scenarios -> goal probability.
// A request either fully succeeds or fails validation before any trial
// work begins; there is no partial-result path.
type Service struct {
	runner *Runner
	log    zerolog.Logger
}

// NewService creates a simulation service. The assumption set is validated
// and factorized here; an error at this point is a fatal configuration
// error, not a per-request condition.
func NewService(a Assumptions, trialCount int, log zerolog.Logger) (*Service, error) {
	runner, err := NewRunner(a, trialCount, log)
	if err != nil {
		return nil, fmt.Errorf("simulation configuration: %w", err)
	}

	return &Service{
		runner: runner,
		log:    log.With().Str("service", "simulation").Logger(),
	}, nil
}

// TrialCount returns the configured number of trials per run
func (s *Service) TrialCount() int {
	return s.runner.TrialCount()
}

// Simulate validates the request, runs all trials and assembles the result
func (s *Service) Simulate(req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	outcomes := s.runner.Run(req.Portfolio, req.Years, seed)

	bottom, median, top := extractScenarios(outcomes)

	result := &Result{
		MedianScenario:          median,
		Bottom10PercentScenario: bottom,
		Top10PercentScenario:    top,
	}

	if req.TargetGoal != nil {
		analysis := goalProbability(outcomes, *req.TargetGoal)
		result.GoalAnalysis = &analysis
	}

	s.log.Info().
		Int("years", req.Years).
		Int("trials", len(outcomes)).
		Float64("starting_total", req.Portfolio.Total()).
		Float64("median_total", median.Total).
		Dur("elapsed", time.Since(start)).
		Msg("Simulation completed")

	return result, nil
}

// validateRequest rejects invalid input before any trial work starts
func validateRequest(req Request) error {
	if req.Years <= 0 {
		return fmt.Errorf("%w: years must be a positive integer, got %d", ErrInvalidInput, req.Years)
	}

	if err := req.Portfolio.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Portfolio.Total() <= 0 {
		return fmt.Errorf("%w: portfolio total must be greater than zero", ErrInvalidInput)
	}

	if req.TargetGoal != nil && *req.TargetGoal < 0 {
		return fmt.Errorf("%w: target goal must be non-negative, got %.2f", ErrInvalidInput, *req.TargetGoal)
	}

	return nil
}
