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

// DefaultAlpha is the error rate used when no option overrides it.
const DefaultAlpha = 0.05

// Option is a functional option shared by both engines.
type Option func(*engineConfig)

type engineConfig struct {
	alpha      float64
	solverOpts []solve.Option
}

func newEngineConfig(opts []Option) engineConfig {
	cfg := engineConfig{alpha: DefaultAlpha}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithAlpha sets the total error rate. The default is DefaultAlpha;
// validity is checked on the first Interval call.
func WithAlpha(alpha float64) Option {
	return func(c *engineConfig) {
		c.alpha = alpha
	}
}

// WithTolerance sets the solver's absolute tolerance on the endpoints.
func WithTolerance(tol float64) Option {
	return func(c *engineConfig) {
		c.solverOpts = append(c.solverOpts, solve.WithTolerance(tol))
	}
}

// WithMaxBracketExpansions sets the solver's bracket expansion budget.
func WithMaxBracketExpansions(n int) Option {
	return func(c *engineConfig) {
		c.solverOpts = append(c.solverOpts, solve.WithMaxBracketExpansions(n))
	}
}

// WithMaxBisectionIterations sets the solver's bisection budget.
func WithMaxBisectionIterations(n int) Option {
	return func(c *engineConfig) {
		c.solverOpts = append(c.solverOpts, solve.WithMaxBisectionIterations(n))
	}
}

// checkAlpha validates the configured error rate.
func checkAlpha(alpha float64) error {
	if !(alpha > 0 && alpha < 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidAlpha, alpha)
	}
	return nil
}

// checkPositiveFinite validates a variance-like input.
func checkPositiveFinite(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) || math.IsNaN(v) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidVariance, name, v)
	}
	return nil
}

// buildSpending instantiates the spending function for an informative
// prior, or the flat fallback for a non-informative one.
//
// tiltScale is the sampling-scale figure the allocation steepness is
// measured against; it must be independent of the target area's own
// estimate.
func buildSpending(prior LinkingPrior, tiltScale, alpha float64, q quantile.Provider) spend.Function {
	if !prior.Informative() {
		return spend.Flat{}
	}
	return spend.NewNormalPrior(prior.Mean, prior.Variance, tiltScale, alpha, q)
}

// solveInterval runs the endpoint solver and wraps the result.
func solveInterval(solver *solve.Solver, estimate, scale, alpha float64, sf spend.Function, q quantile.Provider) (ConfidenceInterval, error) {
	lower, upper, err := solver.Endpoints(solve.Problem{
		Estimate: estimate,
		Scale:    scale,
		Alpha:    alpha,
		Spend:    sf,
		Q:        q,
	})
	if err != nil {
		return ConfidenceInterval{}, err
	}
	return ConfidenceInterval{
		Lower:  lower,
		Upper:  upper,
		Alpha:  alpha,
		Center: estimate,
	}, nil
}
