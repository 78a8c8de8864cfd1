// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package quantile provides inverse-CDF providers for interval construction.
//
// The endpoint solver is generic over any Provider; the two implementations
// here cover the known-sampling-variance case (standard normal) and the
// unknown-sampling-variance case (Student-t with combined degrees of
// freedom). Both are thin wrappers over gonum's distuv distributions.
package quantile

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Provider exposes the inverse CDF of a reference distribution.
//
// Implementations must be strictly increasing on (0, 1) and diverge at the
// boundaries; callers are responsible for clamping probabilities away from
// 0 and 1 before calling Quantile.
//
// Thread Safety: implementations are stateless and safe for concurrent use.
type Provider interface {
	// Quantile returns the value x with CDF(x) = p. p must be in (0, 1).
	Quantile(p float64) float64

	// CDF returns the cumulative probability at x.
	CDF(x float64) float64
}

// Normal is the standard normal quantile provider.
type Normal struct{}

// Quantile returns the standard normal inverse CDF at p.
func (Normal) Quantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// CDF returns the standard normal CDF at x.
func (Normal) CDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// StudentsT is a Student-t quantile provider with Nu degrees of freedom.
//
// Nu need not be integral: the combined degrees of freedom from a sample
// variance estimate and an inverse-gamma prior is generally fractional.
type StudentsT struct {
	dist distuv.StudentsT
}

// NewStudentsT creates a Student-t provider with nu degrees of freedom.
// nu must be positive; callers validate before construction.
func NewStudentsT(nu float64) StudentsT {
	return StudentsT{dist: distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}}
}

// Nu returns the degrees of freedom.
func (t StudentsT) Nu() float64 {
	return t.dist.Nu
}

// Quantile returns the Student-t inverse CDF at p.
func (t StudentsT) Quantile(p float64) float64 {
	return t.dist.Quantile(p)
}

// CDF returns the Student-t CDF at x.
func (t StudentsT) CDF(x float64) float64 {
	return t.dist.CDF(x)
}
