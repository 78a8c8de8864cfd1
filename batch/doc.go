// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package batch fans interval construction out across many areas.
//
// Each area's interval is independent of every other area's, so a batch is
// embarrassingly parallel: the runner distributes areas over a bounded
// worker pool with no cross-area coordination. A failure on one area is
// captured in that area's result and never affects the rest of the batch.
//
//	┌────────────────────────────────────────────────────────────┐
//	│                         RUNNER                             │
//	│                                                            │
//	│   []Area ──► worker pool (errgroup, bounded) ──► []Result  │
//	│                     │                                      │
//	│                     └─► per-area engine call,              │
//	│                         per-area error isolation           │
//	│                                                            │
//	└────────────────────────────────────────────────────────────┘
//
// The caller remains responsible for the leave-one-out precondition: each
// area's LinkingPrior must be fit from the other areas' data before the
// batch is submitted. The runner cannot verify this.
//
// Runs are tagged with a uuid and traced with an otel span; both are
// no-ops unless the host application wires a tracer provider and log
// handler.
package batch
