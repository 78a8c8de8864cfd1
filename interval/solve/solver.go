// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package solve finds the FAB interval endpoints.
//
// The endpoints are defined implicitly: the quantile level each endpoint is
// computed at depends on the endpoint itself through the spending function.
// Because the spending function is non-decreasing and the quantile function
// strictly increasing, each defining map is strictly decreasing in theta and
// has exactly one root, which is bracketed by geometric expansion outward
// from the closed-form direct (flat-spending) endpoint and then bisected.
//
// The solver is generic over any (Provider, Function) pair and is
// independently testable with synthetic monotone functions.
package solve

import (
	"fmt"
	"math"

	"github.com/AleutianAI/fabci/interval/quantile"
	"github.com/AleutianAI/fabci/interval/spend"
)

// Default budgets and tolerances. All overridable via options.
const (
	// DefaultMaxBracketExpansions bounds the geometric bracket search.
	// Each expansion doubles the step, so 60 expansions cover a range of
	// 2^60 sampling scales around the direct endpoint.
	DefaultMaxBracketExpansions = 60

	// DefaultMaxBisectionIterations bounds the bisection loop. 200 halvings
	// exceed float64 resolution for any bracket that can be represented.
	DefaultMaxBisectionIterations = 200

	// levelEps clamps the spending fraction away from exactly 0 or 1
	// before quantile evaluation, where the inverse CDF diverges.
	levelEps = 1e-10
)

// Problem is one endpoint-solving instance.
//
// All fields are read-only inputs; the zero value is not usable.
type Problem struct {
	// Estimate is the observed area estimate y.
	Estimate float64

	// Scale is the sampling scale sigma (or its posterior point estimate
	// in the t case). Must be positive.
	Scale float64

	// Alpha is the total error rate, in (0, 1).
	Alpha float64

	// Spend is the spending function, fixed before y was observed.
	Spend spend.Function

	// Q is the reference quantile provider.
	Q quantile.Provider
}

// Option is a functional option for configuring Solver.
type Option func(*Solver)

// Solver finds both roots of the implicit endpoint equations.
//
// Thread Safety: Solver is stateless after construction and reentrant; one
// instance may serve any number of goroutines.
type Solver struct {
	tol       float64 // 0 means derive from the problem scale
	maxExpand int
	maxBisect int
}

// New creates a Solver with the given options.
//
// Default configuration:
//   - tolerance: 1e-9 * (1 + |estimate| + scale), derived per problem
//   - maxBracketExpansions: DefaultMaxBracketExpansions
//   - maxBisectionIterations: DefaultMaxBisectionIterations
func New(opts ...Option) *Solver {
	s := &Solver{
		maxExpand: DefaultMaxBracketExpansions,
		maxBisect: DefaultMaxBisectionIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTolerance sets the absolute tolerance on theta. Non-positive values
// restore the scale-derived default.
func WithTolerance(tol float64) Option {
	return func(s *Solver) {
		if tol > 0 {
			s.tol = tol
		} else {
			s.tol = 0
		}
	}
}

// WithMaxBracketExpansions sets the bracket expansion budget.
func WithMaxBracketExpansions(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxExpand = n
		}
	}
}

// WithMaxBisectionIterations sets the bisection iteration budget.
func WithMaxBisectionIterations(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxBisect = n
		}
	}
}

// Endpoints solves both implicit equations for a problem.
//
// Description:
//
//	The lower endpoint solves  theta = y + scale*Q(alpha*(1-s(theta)))
//	and the upper endpoint     theta = y + scale*Q(1-alpha*s(theta)).
//	Both residual maps are strictly decreasing under the spending-function
//	contract, so each has a unique root.
//
// Outputs:
//   - lower, upper: the endpoints, lower <= upper, each within the
//     configured absolute tolerance of the exact root.
//   - error: ErrZeroScale or ErrInvalidAlpha for invalid input (no
//     computation attempted); ErrBracketNotFound, annotated with the
//     searched theta-range, when no sign change appears within the
//     expansion budget; ErrNonConvergence, annotated with the last
//     bracket, when bisection exhausts its budget.
//
// Thread Safety: safe for concurrent use.
func (s *Solver) Endpoints(p Problem) (lower, upper float64, err error) {
	if !(p.Scale > 0) || math.IsInf(p.Scale, 1) || math.IsNaN(p.Scale) {
		return 0, 0, fmt.Errorf("%w: got %v", ErrZeroScale, p.Scale)
	}
	if !(p.Alpha > 0 && p.Alpha < 1) {
		return 0, 0, fmt.Errorf("%w: got %v", ErrInvalidAlpha, p.Alpha)
	}

	tol := s.tol
	if tol == 0 {
		tol = 1e-9 * (1 + math.Abs(p.Estimate) + p.Scale)
	}

	// Direct-interval endpoints (the closed-form s=1/2 solution) seed the
	// bracket search. When the spending function is width-optimal the FAB
	// endpoints are never farther from the estimate, so this is a warm
	// start; correctness does not depend on it.
	half := p.Scale * p.Q.Quantile(1-p.Alpha/2)

	lower, err = s.root(p, lowerResidual, p.Estimate-half, tol)
	if err != nil {
		return 0, 0, fmt.Errorf("lower endpoint: %w", err)
	}
	upper, err = s.root(p, upperResidual, p.Estimate+half, tol)
	if err != nil {
		return 0, 0, fmt.Errorf("upper endpoint: %w", err)
	}

	if lower > upper {
		// Unreachable for alpha < 1/2 under the contract; kept as a
		// contract-violation diagnostic for exotic spending functions.
		return 0, 0, fmt.Errorf("%w: endpoints inverted (lower=%v upper=%v)",
			ErrBracketNotFound, lower, upper)
	}
	return lower, upper, nil
}

// residualFunc evaluates one defining equation as a root problem in theta.
type residualFunc func(p Problem, theta float64) float64

// lowerResidual is y + scale*Q(alpha*(1-s(theta))) - theta.
func lowerResidual(p Problem, theta float64) float64 {
	level := p.Alpha * (1 - clampFraction(p.Spend.At(theta)))
	return p.Estimate + p.Scale*p.Q.Quantile(level) - theta
}

// upperResidual is y + scale*Q(1-alpha*s(theta)) - theta.
func upperResidual(p Problem, theta float64) float64 {
	level := 1 - p.Alpha*clampFraction(p.Spend.At(theta))
	return p.Estimate + p.Scale*p.Q.Quantile(level) - theta
}

// clampFraction keeps a spending value inside [levelEps, 1-levelEps].
func clampFraction(f float64) float64 {
	switch {
	case f < levelEps:
		return levelEps
	case f > 1-levelEps:
		return 1 - levelEps
	default:
		return f
	}
}

// root brackets and bisects one strictly decreasing residual.
func (s *Solver) root(p Problem, f residualFunc, seed, tol float64) (float64, error) {
	lo, hi, err := s.bracket(p, f, seed)
	if err != nil {
		return 0, err
	}

	// Invariant: f(lo) >= 0 >= f(hi), f strictly decreasing.
	for i := 0; i < s.maxBisect; i++ {
		if hi-lo <= tol {
			return 0.5 * (lo + hi), nil
		}
		mid := 0.5 * (lo + hi)
		if mid <= lo || mid >= hi {
			// Bracket collapsed to adjacent floats before tol was met.
			return mid, nil
		}
		if f(p, mid) >= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, fmt.Errorf("%w: last bracket [%v, %v], tolerance %v",
		ErrNonConvergence, lo, hi, tol)
}

// bracket expands geometrically outward from the seed until the residual
// changes sign. The residual is decreasing, so the left edge must go
// positive and the right edge negative.
func (s *Solver) bracket(p Problem, f residualFunc, seed float64) (lo, hi float64, err error) {
	step := p.Scale
	lo, hi = seed-step, seed+step

	fLo, fHi := f(p, lo), f(p, hi)
	for i := 0; i < s.maxExpand && !(fLo >= 0 && fHi <= 0); i++ {
		step *= 2
		if fLo < 0 {
			lo -= step
			fLo = f(p, lo)
		}
		if fHi > 0 {
			hi += step
			fHi = f(p, hi)
		}
	}
	if math.IsNaN(fLo) || math.IsNaN(fHi) || !(fLo >= 0 && fHi <= 0) {
		return 0, 0, fmt.Errorf("%w: searched theta range [%v, %v]",
			ErrBracketNotFound, lo, hi)
	}
	return lo, hi, nil
}
