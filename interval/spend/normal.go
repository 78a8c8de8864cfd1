// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spend

import (
	"math"

	"github.com/AleutianAI/fabci/interval/quantile"
)

const (
	// fractionEps keeps the inversion away from the quantile singularities
	// at 0 and 1. Values beyond it are reported as exactly 0 or 1.
	fractionEps = 1e-12

	// invertTol is the bisection tolerance on the spending fraction.
	invertTol = 1e-13

	// maxInvertIter bounds the inversion loop. 64 halvings of [0,1] already
	// reach invertTol; the cap only guards a broken quantile provider.
	maxInvertIter = 200
)

// NormalPrior is the expected-width-optimal spending function for a normal
// prior on the area mean.
//
// Description:
//
//	For a prior mean mu and prior variance tau2, the allocation s(theta)
//	minimizing Pratt expected interval width subject to exact coverage
//	satisfies the first-order condition
//
//	    Q(alpha*s) - Q(alpha*(1-s)) = 2*scale*(theta-mu)/tau2
//
//	where Q is the reference quantile function. The left side is strictly
//	increasing in s, so s(theta) is obtained by monotone bisection.
//
//	The same condition serves both engines: the z case passes the standard
//	normal quantiles and the known sampling scale, the t case passes
//	Student-t quantiles with combined degrees of freedom and the posterior
//	scale estimate.
//
// Properties (the package contract, plus optimality):
//
//   - s(mu) = 1/2, strictly increasing, limits 0 and 1
//   - steeper as the prior variance shrinks relative to the sampling scale
//   - tau2 -> +Inf degenerates to the Flat function
//
// Thread Safety: immutable after construction, safe for concurrent use.
type NormalPrior struct {
	mean  float64
	tilt  float64 // 2*scale/tau2; 0 for a non-informative prior
	alpha float64
	q     quantile.Provider
}

// NewNormalPrior builds the width-optimal spending function.
//
// Inputs:
//   - priorMean: prior mean for the area's true value.
//   - priorVariance: prior variance, positive. +Inf yields the flat
//     allocation (direct interval).
//   - scale: sampling scale (standard deviation of the estimate, or its
//     posterior point estimate in the t case). Positive.
//   - alpha: total error rate in (0, 1).
//   - q: quantile provider matching the engine's reference distribution.
//
// Callers validate the numeric preconditions; this constructor only folds
// them into the tilt coefficient.
func NewNormalPrior(priorMean, priorVariance, scale, alpha float64, q quantile.Provider) NormalPrior {
	tilt := 0.0
	if !math.IsInf(priorVariance, 1) {
		tilt = 2 * scale / priorVariance
	}
	return NormalPrior{mean: priorMean, tilt: tilt, alpha: alpha, q: q}
}

// Mean returns the prior mean the allocation is centered on.
func (s NormalPrior) Mean() float64 {
	return s.mean
}

// At returns the spending fraction at theta.
func (s NormalPrior) At(theta float64) float64 {
	target := s.tilt * (theta - s.mean)
	if target == 0 {
		return 0.5
	}

	// The quantile gap is strictly increasing in the fraction, from -Inf
	// near 0 to +Inf near 1, and 0 at 1/2. Outside the representable range
	// the exact limit value is returned.
	lo, hi := fractionEps, 1-fractionEps
	if target <= s.gap(lo) {
		return 0
	}
	if target >= s.gap(hi) {
		return 1
	}

	for i := 0; i < maxInvertIter && hi-lo > invertTol; i++ {
		mid := 0.5 * (lo + hi)
		if s.gap(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// gap evaluates Q(alpha*f) - Q(alpha*(1-f)), the tilt implied by spending
// fraction f.
func (s NormalPrior) gap(f float64) float64 {
	return s.q.Quantile(s.alpha*f) - s.q.Quantile(s.alpha*(1-f))
}
