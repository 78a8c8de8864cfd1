// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package spend defines the spending-function contract used by the FAB
// interval construction, plus the two stock instances.
//
// A spending function decides how much of the total error rate alpha is
// allocated to the lower tail as a function of the candidate true value.
// Tilting the allocation toward an externally supplied prior shortens the
// interval on average without affecting coverage, because the allocation is
// fixed before the target area's own estimate is observed.
//
// # Contract
//
// Every Function must be:
//
//   - total on the reals, with values in [0, 1]
//   - non-decreasing
//   - 0 in the limit at -infinity and 1 in the limit at +infinity
//   - pure: no mutable state, identical output for identical input
//
// The constant one-half function (Flat) is always a valid instance and
// reduces the construction to the classical direct interval.
//
// # Instances
//
//   - Flat: constant 1/2. Reference/fallback; recovers the direct interval.
//   - NormalPrior: expected-width-optimal allocation for a normal prior on
//     the area mean. Serves both the z case (normal quantiles, known
//     sampling scale) and the t case (Student-t quantiles, posterior scale).
//
// # Coverage precondition
//
// A spending function must be built from prior parameters fit WITHOUT the
// target area's own observation (leave-one-out). The core cannot verify
// this; violating it silently destroys area-specific coverage.
//
// # Thread Safety
//
// All instances are immutable after construction and safe for concurrent use.
package spend
