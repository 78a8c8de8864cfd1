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

import (
	"errors"
	"math"
	"testing"

	"github.com/AleutianAI/fabci/interval/quantile"
	"github.com/AleutianAI/fabci/interval/spend"
)

// logistic is a synthetic spending function satisfying the contract.
type logistic struct {
	center, steep float64
}

func (l logistic) At(theta float64) float64 {
	return 1 / (1 + math.Exp(-l.steep*(theta-l.center)))
}

// stuck is a pathological function pinned near 1, pushing the lower root
// far from the direct endpoint.
type stuck struct{}

func (stuck) At(theta float64) float64 { return 1 }

func TestSolver_FlatReproducesDirectInterval(t *testing.T) {
	tests := []struct {
		name        string
		y, sigma, a float64
	}{
		{"standard", 100, 5, 0.05},
		{"tight alpha", -3, 0.5, 0.01},
		{"wide alpha", 0, 1, 0.2},
		{"tiny scale", 7, 1e-6, 0.05},
	}

	solver := New()
	q := quantile.Normal{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, err := solver.Endpoints(Problem{
				Estimate: tt.y, Scale: tt.sigma, Alpha: tt.a,
				Spend: spend.Flat{}, Q: q,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			z := q.Quantile(1 - tt.a/2)
			tol := 1e-8 * (1 + math.Abs(tt.y) + tt.sigma)
			if math.Abs(lo-(tt.y-tt.sigma*z)) > tol {
				t.Errorf("lower = %v, want %v", lo, tt.y-tt.sigma*z)
			}
			if math.Abs(hi-(tt.y+tt.sigma*z)) > tol {
				t.Errorf("upper = %v, want %v", hi, tt.y+tt.sigma*z)
			}
		})
	}
}

func TestSolver_SyntheticSpendingSolvesDefiningEquations(t *testing.T) {
	solver := New(WithTolerance(1e-12))
	q := quantile.Normal{}
	p := Problem{
		Estimate: 2, Scale: 1.5, Alpha: 0.05,
		Spend: logistic{center: 0, steep: 0.8}, Q: q,
	}

	lo, hi, err := solver.Endpoints(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lo >= hi {
		t.Fatalf("expected lo < hi, got %v, %v", lo, hi)
	}

	// Each endpoint must satisfy its implicit equation.
	resLo := p.Estimate + p.Scale*q.Quantile(p.Alpha*(1-p.Spend.At(lo))) - lo
	resHi := p.Estimate + p.Scale*q.Quantile(1-p.Alpha*p.Spend.At(hi)) - hi
	if math.Abs(resLo) > 1e-9 {
		t.Errorf("lower residual = %v", resLo)
	}
	if math.Abs(resHi) > 1e-9 {
		t.Errorf("upper residual = %v", resHi)
	}
}

func TestSolver_MonotoneInEstimate(t *testing.T) {
	solver := New()
	sf := logistic{center: 1, steep: 2}

	prevLo, prevHi := math.Inf(-1), math.Inf(-1)
	for y := -5.0; y <= 5.0; y += 0.5 {
		lo, hi, err := solver.Endpoints(Problem{
			Estimate: y, Scale: 1, Alpha: 0.05, Spend: sf, Q: quantile.Normal{},
		})
		if err != nil {
			t.Fatalf("y=%v: %v", y, err)
		}
		if lo < prevLo || hi < prevHi {
			t.Fatalf("endpoints not monotone in y at y=%v: (%v,%v) after (%v,%v)",
				y, lo, hi, prevLo, prevHi)
		}
		prevLo, prevHi = lo, hi
	}
}

func TestSolver_StudentTProvider(t *testing.T) {
	solver := New()
	q := quantile.NewStudentsT(9)
	lo, hi, err := solver.Endpoints(Problem{
		Estimate: 0, Scale: 2, Alpha: 0.05, Spend: spend.Flat{}, Q: q,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tq := q.Quantile(0.975)
	if math.Abs(lo+2*tq) > 1e-7 || math.Abs(hi-2*tq) > 1e-7 {
		t.Errorf("flat t interval = (%v, %v), want (%v, %v)", lo, hi, -2*tq, 2*tq)
	}
}

func TestSolver_InvalidInput(t *testing.T) {
	solver := New()
	base := Problem{Estimate: 0, Scale: 1, Alpha: 0.05, Spend: spend.Flat{}, Q: quantile.Normal{}}

	t.Run("zero scale", func(t *testing.T) {
		p := base
		p.Scale = 0
		_, _, err := solver.Endpoints(p)
		if !errors.Is(err, ErrZeroScale) {
			t.Errorf("expected ErrZeroScale, got %v", err)
		}
	})

	t.Run("negative scale", func(t *testing.T) {
		p := base
		p.Scale = -1
		_, _, err := solver.Endpoints(p)
		if !errors.Is(err, ErrZeroScale) {
			t.Errorf("expected ErrZeroScale, got %v", err)
		}
	})

	t.Run("NaN scale", func(t *testing.T) {
		p := base
		p.Scale = math.NaN()
		_, _, err := solver.Endpoints(p)
		if !errors.Is(err, ErrZeroScale) {
			t.Errorf("expected ErrZeroScale, got %v", err)
		}
	})

	t.Run("alpha at zero", func(t *testing.T) {
		p := base
		p.Alpha = 0
		_, _, err := solver.Endpoints(p)
		if !errors.Is(err, ErrInvalidAlpha) {
			t.Errorf("expected ErrInvalidAlpha, got %v", err)
		}
	})

	t.Run("alpha at one", func(t *testing.T) {
		p := base
		p.Alpha = 1
		_, _, err := solver.Endpoints(p)
		if !errors.Is(err, ErrInvalidAlpha) {
			t.Errorf("expected ErrInvalidAlpha, got %v", err)
		}
	})
}

func TestSolver_BracketBudgetExhausted(t *testing.T) {
	// A function pinned at 1 shifts the lower root several scales past the
	// direct endpoint; a single expansion cannot reach it.
	solver := New(WithMaxBracketExpansions(1))
	_, _, err := solver.Endpoints(Problem{
		Estimate: 0, Scale: 1, Alpha: 0.05, Spend: stuck{}, Q: quantile.Normal{},
	})
	if !errors.Is(err, ErrBracketNotFound) {
		t.Errorf("expected ErrBracketNotFound, got %v", err)
	}
}

func TestSolver_BisectionBudgetExhausted(t *testing.T) {
	solver := New(WithTolerance(1e-15), WithMaxBisectionIterations(2))
	_, _, err := solver.Endpoints(Problem{
		Estimate: 0, Scale: 1, Alpha: 0.05, Spend: spend.Flat{}, Q: quantile.Normal{},
	})
	if !errors.Is(err, ErrNonConvergence) {
		t.Errorf("expected ErrNonConvergence, got %v", err)
	}
}

func TestSolver_ToleranceHonored(t *testing.T) {
	q := quantile.Normal{}
	p := Problem{Estimate: 10, Scale: 3, Alpha: 0.05, Spend: logistic{center: 8, steep: 1}, Q: q}

	coarse := New(WithTolerance(1e-3))
	fine := New(WithTolerance(1e-12))

	cLo, cHi, err := coarse.Endpoints(p)
	if err != nil {
		t.Fatalf("coarse: %v", err)
	}
	fLo, fHi, err := fine.Endpoints(p)
	if err != nil {
		t.Fatalf("fine: %v", err)
	}

	if math.Abs(cLo-fLo) > 1e-3 || math.Abs(cHi-fHi) > 1e-3 {
		t.Errorf("coarse endpoints (%v,%v) not within coarse tolerance of fine (%v,%v)",
			cLo, cHi, fLo, fHi)
	}
}
