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

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// intervalValidate is the validator instance for interval datatypes.
var intervalValidate = validator.New()

// AreaObservation is one sampled area's summary data.
//
// Exactly one of the two variance descriptions is consumed per call:
// ZEngine reads KnownVariance, TEngine reads SampleVariance and SampleDF.
// Immutable; one value per area per call.
type AreaObservation struct {
	// Estimate is the direct estimate of the area's true value.
	Estimate float64 `json:"estimate"`

	// KnownVariance is the known sampling variance of Estimate (z case).
	KnownVariance float64 `json:"known_variance,omitempty"`

	// SampleVariance is the estimated sampling variance of Estimate
	// (t case).
	SampleVariance float64 `json:"sample_variance,omitempty"`

	// SampleDF is the degrees of freedom behind SampleVariance (t case).
	// Need not be integral.
	SampleDF float64 `json:"sample_df,omitempty"`
}

// LinkingPrior is the externally supplied belief about an area's true value.
//
// It must be fit from the OTHER areas' data (leave-one-out), never from the
// target area's own observation. That independence is a caller obligation;
// it preserves coverage and cannot be checked here.
type LinkingPrior struct {
	// Mean is the prior mean for the area's true value.
	Mean float64 `json:"mean"`

	// Variance is the prior variance, positive. +Inf marks a
	// non-informative prior and reduces the engines to the direct
	// interval.
	Variance float64 `json:"variance" validate:"gt=0"`

	// VarianceShape is nu0, the shape parameter of the inverse-gamma
	// belief about the sampling variance (t case). Zero marks a
	// non-informative variance prior.
	VarianceShape float64 `json:"variance_shape,omitempty" validate:"gte=0"`

	// VarianceScale is s0², the scale parameter of the inverse-gamma
	// belief (t case). Must be positive when VarianceShape is.
	VarianceScale float64 `json:"variance_scale,omitempty" validate:"gte=0"`
}

// Validate checks the prior parameters against their domain.
func (p LinkingPrior) Validate() error {
	if err := intervalValidate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPrior, err)
	}
	if math.IsNaN(p.Mean) || math.IsNaN(p.Variance) {
		return fmt.Errorf("%w: NaN parameter", ErrInvalidPrior)
	}
	if p.VarianceShape > 0 && !(p.VarianceScale > 0) {
		return fmt.Errorf("%w: variance scale must be positive when shape is set (shape=%v scale=%v)",
			ErrInvalidPrior, p.VarianceShape, p.VarianceScale)
	}
	return nil
}

// Informative reports whether the prior on the mean carries information.
func (p LinkingPrior) Informative() bool {
	return !math.IsInf(p.Variance, 1)
}

// ConfidenceInterval is the pure output value of an engine.
type ConfidenceInterval struct {
	// Lower is the lower endpoint.
	Lower float64 `json:"lower"`

	// Upper is the upper endpoint. Always >= Lower.
	Upper float64 `json:"upper"`

	// Alpha is the total error rate the interval was built at.
	Alpha float64 `json:"alpha"`

	// Center is the point estimate the interval was built around.
	Center float64 `json:"center"`
}

// Contains returns true if the interval contains the value.
func (ci ConfidenceInterval) Contains(v float64) bool {
	return v >= ci.Lower && v <= ci.Upper
}

// Width returns the interval width.
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}
