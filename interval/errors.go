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

import "errors"

// Sentinel errors for the interval package. All indicate invalid input;
// the engines fail before any computation is attempted.
var (
	// ErrInvalidAlpha indicates an error rate outside (0, 1).
	ErrInvalidAlpha = errors.New("alpha must be in (0, 1)")

	// ErrInvalidVariance indicates a non-positive or non-finite variance
	// input on the observation.
	ErrInvalidVariance = errors.New("variance must be positive and finite")

	// ErrInvalidDegreesOfFreedom indicates non-positive sample degrees of
	// freedom.
	ErrInvalidDegreesOfFreedom = errors.New("degrees of freedom must be positive")

	// ErrInvalidPrior indicates linking-prior parameters outside their
	// domain.
	ErrInvalidPrior = errors.New("invalid linking prior")
)
