// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package batch

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/fabci/interval"
	"github.com/AleutianAI/fabci/pkg/logging"
)

// maxWorkers caps the pool regardless of CPU count. Interval construction
// is CPU-bound scalar work; excessive parallelism only adds scheduling.
const maxWorkers = 16

var runnerTracer = otel.Tracer("fabci.batch")

// Engine constructs one area's interval. Both interval.ZEngine and
// interval.TEngine satisfy it.
type Engine interface {
	Interval(obs interval.AreaObservation, prior interval.LinkingPrior) (interval.ConfidenceInterval, error)
}

// Area is one unit of batch work.
type Area struct {
	// ID identifies the area in results and logs.
	ID string

	// Observation is the area's summary data.
	Observation interval.AreaObservation

	// Prior is the area's linking prior, fit leave-one-out by the caller.
	Prior interval.LinkingPrior
}

// Result is one area's outcome. Exactly one of Interval/Err is meaningful.
type Result struct {
	// ID echoes the area ID.
	ID string

	// Interval is the constructed interval when Err is nil.
	Interval interval.ConfidenceInterval

	// Err is the area's failure, if any. Other areas are unaffected.
	Err error
}

// RunnerOption is a functional option for configuring Runner.
type RunnerOption func(*Runner)

// Runner computes intervals for a batch of areas in parallel.
//
// Thread Safety: Runner is immutable after construction; Run is safe for
// concurrent use.
type Runner struct {
	engine  Engine
	workers int
	logger  *logging.Logger
}

// NewRunner creates a Runner for the given engine.
//
// Default configuration:
//   - workers: min(GOMAXPROCS, 16)
//   - logger: logging.Default()
func NewRunner(engine Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:  engine,
		workers: min(runtime.GOMAXPROCS(0), maxWorkers),
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithWorkers sets the worker pool size.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger for run summaries and per-area failures.
func WithLogger(l *logging.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// Run computes one result per area, in input order.
//
// Description:
//
//	Fans areas out over the worker pool. Per-area failures are recorded in
//	the corresponding Result and logged; they never abort the batch. Only
//	context cancellation stops the run early, in which case unstarted
//	areas carry the context error.
//
// Inputs:
//   - ctx: Context for cancellation. Must not be nil.
//   - areas: The batch. May be empty.
//
// Outputs:
//   - []Result: one per area, aligned with the input slice.
//
// Thread Safety: safe for concurrent use.
func (r *Runner) Run(ctx context.Context, areas []Area) []Result {
	runID := uuid.NewString()
	ctx, span := runnerTracer.Start(ctx, "batch.Run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("area_count", len(areas)),
			attribute.Int("workers", r.workers),
		),
	)
	defer span.End()

	results := make([]Result, len(areas))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, area := range areas {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{ID: area.ID, Err: err}
				return nil
			}
			ci, err := r.engine.Interval(area.Observation, area.Prior)
			results[i] = Result{ID: area.ID, Interval: ci, Err: err}
			if err != nil {
				r.logger.Warn("area interval failed",
					"run_id", runID, "area_id", area.ID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("failed", failed))
	r.logger.Info("batch complete",
		"run_id", runID, "areas", len(areas), "failed", failed)

	return results
}
