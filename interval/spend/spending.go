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

// Function maps a candidate true value to the fraction of the error rate
// alpha spent on the lower tail.
//
// See the package documentation for the full contract. The endpoint solver
// relies on monotonicity for root uniqueness and on the boundary limits for
// root existence; a value violating either is surfaced by the solver as a
// bracketing failure, never silently coerced.
type Function interface {
	// At returns the spending fraction at theta, in [0, 1].
	At(theta float64) float64
}

// Flat is the constant one-half spending function.
//
// It allocates alpha/2 to each tail regardless of theta, which reduces the
// FAB construction to the classical direct interval. Used as the fallback
// for non-informative priors and as the reference case in tests.
type Flat struct{}

// At returns 1/2 for every theta.
func (Flat) At(theta float64) float64 {
	return 0.5
}
