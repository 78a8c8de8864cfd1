// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package interval

import (
	"math"

	"github.com/AleutianAI/fabci/interval/quantile"
	"github.com/AleutianAI/fabci/interval/solve"
	"github.com/AleutianAI/fabci/interval/spend"
)

// ZEngine builds FAB intervals for areas with known sampling variance.
//
// Thread Safety: immutable after construction, safe for concurrent use.
type ZEngine struct {
	alpha  float64
	solver *solve.Solver
}

// NewZEngine creates a ZEngine with the given options.
//
// Default configuration: alpha DefaultAlpha, solver defaults (see the
// solve package).
func NewZEngine(opts ...Option) *ZEngine {
	cfg := newEngineConfig(opts)
	return &ZEngine{
		alpha:  cfg.alpha,
		solver: solve.New(cfg.solverOpts...),
	}
}

// Alpha returns the configured error rate.
func (e *ZEngine) Alpha() float64 {
	return e.alpha
}

// Interval constructs the FAB z-interval for one area.
//
// Description:
//
//	Instantiates the normal-prior spending function from the linking prior
//	and the known sampling scale, then solves the two implicit endpoint
//	equations with standard normal quantiles. A non-informative prior
//	(Variance = +Inf) produces the classical direct interval.
//
// Inputs:
//   - obs: the area's estimate and known sampling variance.
//   - prior: linking prior fit from the other areas' data. See the
//     package documentation for the leave-one-out precondition.
//
// Outputs:
//   - ConfidenceInterval with Lower <= Upper at the configured alpha.
//   - error: ErrInvalidAlpha, ErrInvalidVariance, or ErrInvalidPrior for
//     bad input (nothing computed); solver errors otherwise.
//
// Thread Safety: safe for concurrent use; areas are independent.
func (e *ZEngine) Interval(obs AreaObservation, prior LinkingPrior) (ConfidenceInterval, error) {
	sf, sigma, err := e.prepare(obs, prior)
	if err != nil {
		return ConfidenceInterval{}, err
	}
	return solveInterval(e.solver, obs.Estimate, sigma, e.alpha, sf, quantile.Normal{})
}

// Spending returns the spending function Interval would use, for
// introspection (plotting spending against theta, tests).
func (e *ZEngine) Spending(obs AreaObservation, prior LinkingPrior) (spend.Function, error) {
	sf, _, err := e.prepare(obs, prior)
	if err != nil {
		return nil, err
	}
	return sf, nil
}

// prepare validates inputs and builds the spending function and scale.
func (e *ZEngine) prepare(obs AreaObservation, prior LinkingPrior) (spend.Function, float64, error) {
	if err := checkAlpha(e.alpha); err != nil {
		return nil, 0, err
	}
	if err := checkPositiveFinite("known variance", obs.KnownVariance); err != nil {
		return nil, 0, err
	}
	if err := prior.Validate(); err != nil {
		return nil, 0, err
	}

	sigma := math.Sqrt(obs.KnownVariance)
	sf := buildSpending(prior, sigma, e.alpha, quantile.Normal{})
	return sf, sigma, nil
}
