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
	"fmt"
	"math"

	"github.com/AleutianAI/fabci/interval/quantile"
	"github.com/AleutianAI/fabci/interval/solve"
	"github.com/AleutianAI/fabci/interval/spend"
)

// TEngine builds FAB intervals for areas whose sampling variance is itself
// estimated.
//
// The area's variance estimate is combined with an inverse-gamma prior
// (shape nu0, scale s0²) through the standard conjugate update under a
// normal sampling model:
//
//	nu     = sampleDF + nu0
//	scale² = (nu0*s0² + sampleDF*s²) / nu
//
// nu parameterizes the Student-t quantiles and scale the interval width.
// The spending tilt is measured against s0, the prior's own guess of the
// sampling scale, so that the allocation stays independent of the target
// area's data. With nu0 = 0 (or a non-informative mean prior) the engine
// reduces to the ordinary t-interval.
//
// Thread Safety: immutable after construction, safe for concurrent use.
type TEngine struct {
	alpha  float64
	solver *solve.Solver
}

// NewTEngine creates a TEngine with the given options.
func NewTEngine(opts ...Option) *TEngine {
	cfg := newEngineConfig(opts)
	return &TEngine{
		alpha:  cfg.alpha,
		solver: solve.New(cfg.solverOpts...),
	}
}

// Alpha returns the configured error rate.
func (e *TEngine) Alpha() float64 {
	return e.alpha
}

// Interval constructs the FAB t-interval for one area.
//
// Inputs:
//   - obs: the area's estimate, sample variance estimate, and its degrees
//     of freedom.
//   - prior: linking prior, including the inverse-gamma belief about the
//     sampling variance. Leave-one-out precondition applies.
//
// Outputs:
//   - ConfidenceInterval with Lower <= Upper at the configured alpha.
//   - error: ErrInvalidAlpha, ErrInvalidVariance,
//     ErrInvalidDegreesOfFreedom, or ErrInvalidPrior for bad input
//     (nothing computed); solver errors otherwise.
//
// Thread Safety: safe for concurrent use; areas are independent.
func (e *TEngine) Interval(obs AreaObservation, prior LinkingPrior) (ConfidenceInterval, error) {
	sf, scale, q, err := e.prepare(obs, prior)
	if err != nil {
		return ConfidenceInterval{}, err
	}
	return solveInterval(e.solver, obs.Estimate, scale, e.alpha, sf, q)
}

// Spending returns the spending function Interval would use, for
// introspection.
func (e *TEngine) Spending(obs AreaObservation, prior LinkingPrior) (spend.Function, error) {
	sf, _, _, err := e.prepare(obs, prior)
	if err != nil {
		return nil, err
	}
	return sf, nil
}

// CombinedDF returns the degrees of freedom the t quantiles would use.
func (e *TEngine) CombinedDF(obs AreaObservation, prior LinkingPrior) float64 {
	return obs.SampleDF + prior.VarianceShape
}

// prepare validates inputs and builds the spending function, posterior
// scale, and quantile provider.
func (e *TEngine) prepare(obs AreaObservation, prior LinkingPrior) (spend.Function, float64, quantile.Provider, error) {
	if err := checkAlpha(e.alpha); err != nil {
		return nil, 0, nil, err
	}
	if err := checkPositiveFinite("sample variance", obs.SampleVariance); err != nil {
		return nil, 0, nil, err
	}
	if !(obs.SampleDF > 0) || math.IsNaN(obs.SampleDF) {
		return nil, 0, nil, fmt.Errorf("%w: sample df = %v", ErrInvalidDegreesOfFreedom, obs.SampleDF)
	}
	if err := prior.Validate(); err != nil {
		return nil, 0, nil, err
	}

	nu := obs.SampleDF + prior.VarianceShape
	scale2 := (prior.VarianceShape*prior.VarianceScale + obs.SampleDF*obs.SampleVariance) / nu
	q := quantile.NewStudentsT(nu)

	// An informative tilt needs both a finite mean-prior variance and a
	// variance prior to anchor the tilt scale; otherwise fall back to the
	// ordinary t allocation.
	var sf spend.Function = spend.Flat{}
	if prior.Informative() && prior.VarianceShape > 0 {
		sf = spend.NewNormalPrior(prior.Mean, prior.Variance, math.Sqrt(prior.VarianceScale), e.alpha, q)
	}

	return sf, math.Sqrt(scale2), q, nil
}
