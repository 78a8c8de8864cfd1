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
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/fabci/interval"
)

// configValidate is the validator instance for batch configuration.
var configValidate = validator.New()

// Config holds the recognized engine and runner options, loadable from
// YAML. Zero values mean "use the default".
//
// Example file:
//
//	alpha: 0.05
//	tolerance: 1e-9
//	max_bracket_expansions: 60
//	max_bisection_iterations: 200
//	workers: 8
type Config struct {
	// Alpha is the total error rate. Default: interval.DefaultAlpha.
	Alpha float64 `yaml:"alpha" validate:"gte=0,lt=1"`

	// Tolerance is the solver's absolute tolerance on endpoints.
	// Default: derived from each problem's scale.
	Tolerance float64 `yaml:"tolerance" validate:"gte=0"`

	// MaxBracketExpansions bounds the solver's bracket search.
	MaxBracketExpansions int `yaml:"max_bracket_expansions" validate:"gte=0"`

	// MaxBisectionIterations bounds the solver's bisection loop.
	MaxBisectionIterations int `yaml:"max_bisection_iterations" validate:"gte=0"`

	// Workers is the runner's worker pool size.
	Workers int `yaml:"workers" validate:"gte=0"`
}

// Validate checks the configuration domain.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid batch config: %w", err)
	}
	return nil
}

// EngineOptions translates the config into engine options, skipping
// zero-valued fields so engine defaults apply.
func (c Config) EngineOptions() []interval.Option {
	var opts []interval.Option
	if c.Alpha > 0 {
		opts = append(opts, interval.WithAlpha(c.Alpha))
	}
	if c.Tolerance > 0 {
		opts = append(opts, interval.WithTolerance(c.Tolerance))
	}
	if c.MaxBracketExpansions > 0 {
		opts = append(opts, interval.WithMaxBracketExpansions(c.MaxBracketExpansions))
	}
	if c.MaxBisectionIterations > 0 {
		opts = append(opts, interval.WithMaxBisectionIterations(c.MaxBisectionIterations))
	}
	return opts
}

// RunnerOptions translates the config into runner options.
func (c Config) RunnerOptions() []RunnerOption {
	var opts []RunnerOption
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read batch config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse batch config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
