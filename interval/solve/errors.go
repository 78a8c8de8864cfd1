// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package solve

import "errors"

// Sentinel errors for the solve package.
var (
	// ErrZeroScale indicates a degenerate (non-positive) sampling scale.
	ErrZeroScale = errors.New("sampling scale must be positive")

	// ErrInvalidAlpha indicates alpha outside (0, 1).
	ErrInvalidAlpha = errors.New("alpha must be in (0, 1)")

	// ErrBracketNotFound indicates no sign change was found within the
	// bracket expansion budget. This is the diagnostic for a spending
	// function violating its monotonicity or boundary-limit contract.
	ErrBracketNotFound = errors.New("no sign change within bracket expansion budget")

	// ErrNonConvergence indicates bisection exhausted its iteration budget
	// before reaching the requested tolerance.
	ErrNonConvergence = errors.New("bisection exceeded iteration budget")
)
