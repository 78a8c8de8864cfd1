// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package interval constructs FAB (Frequentist, Assisted by Bayes)
// confidence intervals for area means.
//
// A FAB interval has exact area-specific frequentist coverage for every
// possible true value, yet is narrower on average than the classical direct
// interval because the error-rate allocation between the two tails is
// tilted toward an externally supplied prior.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│                        INTERVAL ENGINES                          │
//	├──────────────────────────────────────────────────────────────────┤
//	│                                                                  │
//	│  AreaObservation ─┐                                              │
//	│                   ├─► ZEngine ──► spend.NormalPrior ─┐           │
//	│  LinkingPrior ────┤      │        (normal quantiles) │           │
//	│                   │      │                           ▼           │
//	│                   ├─► TEngine ──► spend.NormalPrior ─► solve.    │
//	│                   │      │        (t quantiles,        Solver    │
//	│                   │      │         combined df)          │       │
//	│                   │      ▼                               ▼       │
//	│                   │   quantile.Provider        ConfidenceInterval│
//	│                                                                  │
//	└──────────────────────────────────────────────────────────────────┘
//
// ZEngine handles the known-sampling-variance case; TEngine combines the
// area's own variance estimate with an inverse-gamma prior into a posterior
// scale and combined degrees of freedom. Both delegate endpoint finding to
// the solve package.
//
// # Coverage precondition
//
// The LinkingPrior for an area MUST be fit from the other areas' data only
// (leave-one-out), never from the target area's own observation. The
// engines cannot verify this; violating it silently destroys the coverage
// guarantee without any runtime error. Interval width, but not coverage,
// depends on the prior being any good.
//
// # Thread Safety
//
// Engines are immutable after construction and safe for concurrent use.
// Areas are independent; a batch of areas may be fanned out across
// goroutines with no coordination (see the batch package).
package interval
